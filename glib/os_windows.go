package glib

import (
	"fmt"
	"golang.org/x/sys/windows"
)

func OsVer() string {

	major, minor, build := windows.RtlGetNtVersionNumbers()

	return fmt.Sprintf("windows %v.%v.%v", major, minor, build)
}
