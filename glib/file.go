package glib

import (
	"fmt"
	"io/fs"
	"os"
)

func FileExists(path string) bool {

	bRet := false

	xFileInfo, xFileInfoErr := os.Stat(path)
	if xFileInfoErr != nil {
		return bRet
	}

	if !xFileInfo.IsDir() {
		bRet = true
	}

	return bRet

}

func DirExists(path string) bool {

	bRet := false

	xFileInfo, xFileInfoErr := os.Stat(path)
	if xFileInfoErr != nil {
		return bRet
	}

	if xFileInfo.IsDir() {
		bRet = true
	}

	return bRet

}

// FsReadAllText reads name from fsys and decodes it with TextDecode.
func FsReadAllText(fsys fs.FS, name string) (string, error) {

	var xErr error

	xFileData, xFileDataErr := fs.ReadFile(fsys, name)
	if xFileDataErr != nil {
		xErr = fmt.Errorf("read file=[%v] error:[%w]", name, xFileDataErr)
		return "", xErr
	}

	return TextDecode(xFileData), xErr
}
