package glib

import (
	"bufio"
	"io"
	"os"
	"strings"
)

func OsVer() string {

	file, err := os.Open("/etc/os-release")
	if err != nil {
		return "unknown"
	}

	defer file.Close()

	return parseOsRelease(file)
}

// parseOsRelease returns the PRETTY_NAME value of an os-release document.
func parseOsRelease(r io.Reader) string {

	osVer := "unknown"

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineStr := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(lineStr, "PRETTY_NAME=") {
			continue
		}

		lineStr = strings.TrimPrefix(lineStr, "PRETTY_NAME=")
		osVer = strings.Trim(lineStr, "\"'")

		break
	}

	return osVer

}
