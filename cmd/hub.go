package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chwjbn/shader-hub/glib"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/chwjbn/shader-hub/render/gconfig"
	"github.com/chwjbn/shader-hub/render/glcore"
	"github.com/chwjbn/shader-hub/render/glwin"
	"github.com/chwjbn/shader-hub/render/shader"
	"github.com/urfave/cli/v2"
)

type shaderHub struct {
	mAppData gconfig.AppMeta
	mWindow  *glwin.GlWindow
	mApi     *glcore.Api
	mCache   *shader.ShaderCache
}

func newShaderHub(appData gconfig.AppMeta) (*shaderHub, error) {

	var xErr error

	pThis := new(shaderHub)
	pThis.mAppData = appData

	pThis.mWindow, xErr = glwin.NewGlWindow(appData.Window.Width, appData.Window.Height, appData.Window.Title, appData.Window.Visible)
	if xErr != nil {
		return nil, xErr
	}

	pThis.mApi, xErr = glcore.NewApi()
	if xErr != nil {
		pThis.mWindow.Destroy()
		return nil, xErr
	}

	glog.InfoF("GL context ready %s gl=[%s]", glib.OsInfo(), pThis.mApi.Version())

	shaderDir := appData.ShaderDir()
	if !glib.DirExists(shaderDir) {
		glog.WarnF("shader dir=[%v] missing, every program will use the fallback shader", shaderDir)
	}

	pThis.mCache = shader.NewShaderCache(pThis.mApi, shader.Options{
		Logger:   glog.Default(),
		ShaderFs: os.DirFS(shaderDir),
	})

	return pThis, xErr
}

func (h *shaderHub) close() {
	h.mCache.Close()
	h.mWindow.Destroy()
}

func (h *shaderHub) load(names []string) {
	for _, name := range names {
		prog := h.mCache.Load(name)
		if prog == nil {
			continue
		}
		logProgram(name, prog)
	}
}

func logProgram(name string, prog *shader.ShaderProgram) {

	if !prog.Linked() {
		glog.WarnF("program=[%v] did not link: %v", name, prog.LinkError())
	}

	glog.InfoF("program=[%v] handle=[%v] attributes=[%v] uniforms=[%v]", name, prog.Handle(), prog.AttributeCount(), prog.UniformCount())

	for _, info := range prog.Attributes() {
		glog.InfoF("  attribute name=[%v] location=[%v] size=[%v] type=[%v] buffer=[%v]", info.Name, info.Location, info.Size, info.Type, prog.Buffer(info.Name))
	}

	for _, info := range prog.Uniforms() {
		glog.InfoF("  uniform name=[%v] location=[%v] size=[%v] type=[%v] buffer=[%v]", info.Name, info.Location, info.Size, info.Type, prog.Buffer(info.Name))
	}
}

func inspectAction(ctx *cli.Context) error {

	appData, xErr := loadAppMeta(ctx)
	if xErr != nil {
		return xErr
	}

	names := ctx.Args().Slice()
	if len(names) < 1 {
		names = appData.Shader.Preload
	}

	if len(names) < 1 {
		return fmt.Errorf("no shader names given and none preloaded in config")
	}

	hub, xErr := newShaderHub(appData)
	if xErr != nil {
		return xErr
	}
	defer hub.close()

	hub.load(names)

	passthrough := shader.NewPassthroughProgram(hub.mApi, hub.mCache.Options())
	logProgram("passthrough", passthrough)
	passthrough.Delete()

	if !appData.ShouldWatch(ctx.Command.Name) {
		return nil
	}

	return hub.watch()
}

func watchAction(ctx *cli.Context) error {

	appData, xErr := loadAppMeta(ctx)
	if xErr != nil {
		return xErr
	}

	hub, xErr := newShaderHub(appData)
	if xErr != nil {
		return xErr
	}
	defer hub.close()

	hub.load(appData.Shader.Preload)

	return hub.watch()
}

// watch reloads cached programs whose files change until SIGINT/SIGTERM or the window closes.
func (h *shaderHub) watch() error {

	shaderDir := h.mAppData.ShaderDir()

	watcher, xErr := shader.NewWatcher(shaderDir, glog.Default())
	if xErr != nil {
		return xErr
	}
	defer watcher.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-sigCtx.Done()
		glog.Info("watch stop requested")
		h.mWindow.Close()
		h.mWindow.Wake()
	}()

	glog.InfoF("watching shader dir=[%v]", shaderDir)

	for !h.mWindow.ShouldClose() {

		h.drainReloads(watcher.Names())

		h.mWindow.WaitFrame(0.25)
	}

	return nil
}

// drainReloads applies every pending change without blocking the frame loop.
func (h *shaderHub) drainReloads(names <-chan string) {
	for {
		select {
		case name, ok := <-names:
			if !ok {
				return
			}
			if !h.mCache.Reload(name) {
				continue
			}
			if prog, found := h.mCache.Get(name); found {
				logProgram(name, prog)
			}
		default:
			return
		}
	}
}
