package gconfig

import (
	"errors"
	"fmt"
	"github.com/chwjbn/shader-hub/glib"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/pelletier/go-toml/v2"
	"io/fs"
	"os"
	"time"
)

const DefaultFileName = "shader-hub.toml"

const (
	InspectCommand = "inspect"
	WatchCommand   = "watch"
)

type ShaderMeta struct {
	Dir     string   `toml:"dir"`
	Preload []string `toml:"preload"`
	Watch   bool     `toml:"watch"`
}

type WindowMeta struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	Visible bool   `toml:"visible"`
}

type LogMeta struct {
	Dir         string `toml:"dir"`
	Mode        string `toml:"mode"`
	MaxAgeHours int    `toml:"max_age_hours"`
}

type AppMeta struct {
	Shader ShaderMeta `toml:"shader"`
	Window WindowMeta `toml:"window"`
	Log    LogMeta    `toml:"log"`
}

func DefaultAppMeta() AppMeta {

	var appData AppMeta

	appData.Shader.Dir = "Shaders"

	appData.Window.Width = 800
	appData.Window.Height = 600
	appData.Window.Title = "shader-hub"

	appData.Log.Dir = "log"
	appData.Log.Mode = "debug"
	appData.Log.MaxAgeHours = 24

	return appData

}

// LoadAppMeta reads filePath over the defaults. A missing file yields the defaults.
func LoadAppMeta(filePath string) (AppMeta, error) {

	appData := DefaultAppMeta()

	var xErr error

	fileData, fileErr := os.ReadFile(filePath)
	if errors.Is(fileErr, fs.ErrNotExist) {
		return appData, xErr
	}

	if fileErr != nil {
		xErr = fmt.Errorf("read config file=[%v] error:[%v]", filePath, fileErr.Error())
		return appData, xErr
	}

	xErr = ParseAppMeta(fileData, &appData)

	return appData, xErr
}

// ParseAppMeta decodes TOML into appData, keeping fields the document does not set.
func ParseAppMeta(data []byte, appData *AppMeta) error {

	var xErr error

	tomlErr := toml.Unmarshal(data, appData)
	if tomlErr != nil {
		xErr = fmt.Errorf("parse config error:[%v]", tomlErr.Error())
		return xErr
	}

	if appData.Window.Width < 1 || appData.Window.Height < 1 {
		xErr = fmt.Errorf("invalid window size=[%vx%v]", appData.Window.Width, appData.Window.Height)
		return xErr
	}

	return xErr
}

// ShaderDir is the shader directory resolved against the app base dir.
func (a AppMeta) ShaderDir() string {
	return glib.AppPath(a.Shader.Dir)
}

// ShouldWatch reports whether command keeps the GL context alive and reloads
// programs on file changes after its initial work.
func (a AppMeta) ShouldWatch(command string) bool {
	return command == WatchCommand || a.Shader.Watch
}

func (a AppMeta) LogConfig() glog.Config {
	return glog.Config{
		Dir:    glib.AppPath(a.Log.Dir),
		Mode:   a.Log.Mode,
		MaxAge: time.Duration(a.Log.MaxAgeHours) * time.Hour,
	}
}
