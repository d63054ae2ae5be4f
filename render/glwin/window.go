// Package glwin owns the GLFW window whose GL context shader programs run in.
package glwin

import (
	"fmt"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"runtime"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type GlWindow struct {
	mWidth    int
	mHeight   int
	mTitle    string
	mVisible  bool
	mGLWindow *glfw.Window
}

func NewGlWindow(width int, height int, title string, visible bool) (*GlWindow, error) {

	pThis := new(GlWindow)
	pThis.mWidth = width
	pThis.mHeight = height
	pThis.mTitle = title
	pThis.mVisible = visible

	xErr := pThis.init()

	if xErr != nil {
		return nil, xErr
	}

	return pThis, nil

}

func (w *GlWindow) init() error {

	var xErr error

	glErr := glfw.Init()
	if glErr != nil {
		xErr = fmt.Errorf("glfw.Init error:[%v]", glErr.Error())
		return xErr
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if w.mVisible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	w.mGLWindow, glErr = glfw.CreateWindow(w.mWidth, w.mHeight, w.mTitle, nil, nil)
	if glErr != nil {
		glfw.Terminate()
		xErr = fmt.Errorf("glfw.CreateWindow error:[%v]", glErr.Error())
		return xErr
	}

	w.mGLWindow.MakeContextCurrent()

	//窗口变化
	w.mGLWindow.SetFramebufferSizeCallback(func(win *glfw.Window, width int, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	glog.InfoF("GlWindow created size=[%vx%v] visible=[%v]", w.mWidth, w.mHeight, w.mVisible)

	return xErr

}

func (w *GlWindow) ShouldClose() bool {
	return w.mGLWindow.ShouldClose()
}

// WaitFrame swaps buffers and sleeps until an event arrives or timeoutSec passes.
func (w *GlWindow) WaitFrame(timeoutSec float64) {
	w.mGLWindow.SwapBuffers()
	glfw.WaitEventsTimeout(timeoutSec)
}

// Close asks the frame loop to stop. Safe to call from any goroutine.
func (w *GlWindow) Close() {
	w.mGLWindow.SetShouldClose(true)
}

func (w *GlWindow) Wake() {
	glfw.PostEmptyEvent()
}

func (w *GlWindow) Destroy() {
	w.mGLWindow.Destroy()
	glfw.Terminate()
}
