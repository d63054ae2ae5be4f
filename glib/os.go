package glib

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
)

func OsType() string {
	return runtime.GOOS
}

func OsArch() string {
	return runtime.GOARCH
}

func OsHost() string {

	osHost := "unknown"

	hostName, _ := os.Hostname()
	if len(hostName) > 0 {
		osHost = hostName
	}

	return osHost

}

func OsUser() string {

	osUser := "unknown"

	userData, err := user.Current()
	if err != nil {
		return osUser
	}

	if userData == nil {
		return osUser
	}

	osUser = userData.Username

	return osUser

}

// OsInfo is the one-line host summary logged when a GL context comes up.
func OsInfo() string {
	return fmt.Sprintf("os=[%s/%s] ver=[%s] host=[%s] user=[%s]", OsType(), OsArch(), OsVer(), OsHost(), OsUser())
}
