package glib

import (
	"os"
	"path/filepath"
)

func AppBaseDir() string {

	sRet := ""

	xFilePath, xFilePathErr := filepath.Abs(os.Args[0])
	if xFilePathErr != nil {
		return sRet
	}

	sRet = filepath.Dir(xFilePath)

	return sRet
}

// AppPath resolves p against the app base dir unless it is already absolute.
func AppPath(p string) string {

	if len(p) < 1 || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(AppBaseDir(), p)
}
