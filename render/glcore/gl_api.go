// Package glcore implements glapi.Api over go-gl's OpenGL 3.3 core bindings.
package glcore

import (
	"fmt"
	"github.com/chwjbn/shader-hub/render/glapi"
	"github.com/go-gl/gl/v3.3-core/gl"
	"strings"
)

// Api forwards to the bound GL context. Init must succeed before use.
type Api struct{}

var _ glapi.Api = (*Api)(nil)

func NewApi() (*Api, error) {

	var xErr error

	glErr := gl.Init()
	if glErr != nil {
		xErr = fmt.Errorf("gl.Init error:[%v]", glErr.Error())
		return nil, xErr
	}

	return &Api{}, xErr
}

// Version reports the GL version and renderer strings of the current context.
func (a *Api) Version() string {
	return fmt.Sprintf("%s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
}

func (a *Api) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (a *Api) ShaderSource(shader uint32, src string) {
	glSrc, freeFn := gl.Strs(src + "\x00")
	defer freeFn()
	gl.ShaderSource(shader, 1, glSrc, nil)
}

func (a *Api) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (a *Api) GetShaderiv(shader uint32, pname uint32) int32 {
	var value int32
	gl.GetShaderiv(shader, pname, &value)
	return value
}

func (a *Api) GetShaderInfoLog(shader uint32) string {
	return readInfoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
}

func (a *Api) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (a *Api) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (a *Api) AttachShader(program uint32, shader uint32) {
	gl.AttachShader(program, shader)
}

func (a *Api) DetachShader(program uint32, shader uint32) {
	gl.DetachShader(program, shader)
}

func (a *Api) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (a *Api) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (a *Api) GetProgramiv(program uint32, pname uint32) int32 {
	var value int32
	gl.GetProgramiv(program, pname, &value)
	return value
}

func (a *Api) GetProgramInfoLog(program uint32) string {
	return readInfoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
}

func (a *Api) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (a *Api) GetActiveAttrib(program uint32, index uint32) (string, int32, uint32) {
	return readActive(program, index, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib)
}

func (a *Api) GetActiveUniform(program uint32, index uint32) (string, int32, uint32) {
	return readActive(program, index, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform)
}

func (a *Api) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (a *Api) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (a *Api) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (a *Api) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (a *Api) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (a *Api) DisableVertexAttribArray(index uint32) {
	gl.DisableVertexAttribArray(index)
}

type getObjIv func(uint32, uint32, *int32)
type getObjInfoLog func(uint32, int32, *int32, *uint8)
type getActive func(uint32, uint32, int32, *int32, *int32, *uint32, *uint8)

func readInfoLog(glHandle uint32, getObjIvFn getObjIv, getObjInfoLogFn getObjInfoLog) string {

	var logLength int32
	getObjIvFn(glHandle, gl.INFO_LOG_LENGTH, &logLength)

	if logLength < 1 {
		return ""
	}

	logStr := strings.Repeat("\x00", int(logLength+1))

	log := gl.Str(logStr)
	getObjInfoLogFn(glHandle, logLength, nil, log)

	return strings.TrimSpace(gl.GoStr(log))
}

func readActive(program uint32, index uint32, maxLenParam uint32, getActiveFn getActive) (string, int32, uint32) {

	var maxLength int32
	gl.GetProgramiv(program, maxLenParam, &maxLength)
	if maxLength < 1 {
		maxLength = 256
	}

	nameBuf := make([]uint8, maxLength+1)

	var length int32
	var size int32
	var xtype uint32
	getActiveFn(program, index, maxLength, &length, &size, &xtype, &nameBuf[0])

	return string(nameBuf[:length]), size, xtype
}
