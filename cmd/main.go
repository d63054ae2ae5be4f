package main

import (
	"fmt"
	"os"

	"github.com/chwjbn/shader-hub/glib"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/chwjbn/shader-hub/render/gconfig"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
		Value: glib.AppPath(gconfig.DefaultFileName),
	}
	shaderDirFlag = &cli.StringFlag{
		Name:  "shader-dir",
		Usage: "directory holding vs_<name>.glsl / fs_<name>.glsl (overrides config)",
	}
	visibleFlag = &cli.BoolFlag{
		Name:  "visible",
		Usage: "show the GL window",
	}
)

func main() {

	app := &cli.App{
		Name:  "shader-hub",
		Usage: "compile, link and introspect GLSL shader programs",
		Flags: []cli.Flag{configFlag, shaderDirFlag, visibleFlag},
		Commands: []*cli.Command{
			{
				Name:      gconfig.InspectCommand,
				Usage:     "build the named programs and log their attributes and uniforms",
				ArgsUsage: "[name...]",
				Action:    inspectAction,
			},
			{
				Name:   gconfig.WatchCommand,
				Usage:  "keep a GL context alive and reload programs when their files change",
				Action: watchAction,
			},
		},
	}

	glog.Info("app begin")

	if xErr := app.Run(os.Args); xErr != nil {
		glog.Error(xErr.Error())
		glog.Sync()
		os.Exit(1)
	}

	glog.Info("app end")
	glog.Sync()
}

// loadAppMeta reads the config file and applies command line overrides.
func loadAppMeta(ctx *cli.Context) (gconfig.AppMeta, error) {

	configPath := ctx.String(configFlag.Name)

	appData, xErr := gconfig.LoadAppMeta(configPath)
	if xErr != nil {
		return appData, xErr
	}

	if ctx.IsSet(shaderDirFlag.Name) {
		appData.Shader.Dir = ctx.String(shaderDirFlag.Name)
	}

	if ctx.IsSet(visibleFlag.Name) {
		appData.Window.Visible = ctx.Bool(visibleFlag.Name)
	}

	logErr := glog.Setup(appData.LogConfig())
	if logErr != nil {
		glog.StdError(fmt.Sprintf("log setup error:[%v]", logErr.Error()))
	}

	if !glib.FileExists(configPath) {
		glog.InfoF("config file=[%v] not found, using defaults", configPath)
	}

	return appData, nil
}
