// Package glapi describes the slice of the OpenGL API that shader programs
// are built on. The enum values match the GL headers so an implementation
// can pass them straight through.
package glapi

const (
	FALSE = 0
	TRUE  = 1

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30

	COMPILE_STATUS    = 0x8B81
	LINK_STATUS       = 0x8B82
	INFO_LOG_LENGTH   = 0x8B84
	ACTIVE_UNIFORMS   = 0x8B86
	ACTIVE_ATTRIBUTES = 0x8B89
)

// Api is implemented by render/glcore on top of go-gl and by glfake in tests.
// Every call must happen on the goroutine that owns the current context.
type Api interface {
	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderiv(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program uint32, shader uint32)
	DetachShader(program uint32, shader uint32)
	LinkProgram(program uint32)
	UseProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)

	// GetActiveAttrib and GetActiveUniform return the variable's name,
	// array size and GL type for index in [0, ACTIVE_*).
	GetActiveAttrib(program uint32, index uint32) (string, int32, uint32)
	GetActiveUniform(program uint32, index uint32) (string, int32, uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
}
