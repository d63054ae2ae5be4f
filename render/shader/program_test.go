package shader

import (
	"testing"
	"testing/fstest"

	"github.com/chwjbn/shader-hub/glog"
	"github.com/chwjbn/shader-hub/render/glapi"
	"github.com/chwjbn/shader-hub/render/glapi/glfake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const basicVert = `#version 330
layout(location = 0) in vec3 position;
in vec3 normal;
in vec2 uv;
out vec2 f_uv;
uniform mat4 MVP;
uniform mat4 model;
void main(){
    gl_Position = MVP * model * vec4(position, 1);
    f_uv = uv;
}
`

const basicFrag = `#version 330
in vec2 f_uv;
out vec4 color;
uniform sampler2D diffuse;
uniform vec3 lights[4];
uniform mat4 MVP;
void main(){
    color = texture(diffuse, f_uv);
}
`

func newTestOptions(files fstest.MapFS) (Options, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return Options{Logger: glog.NewLogger(zap.New(core)), ShaderFs: files}, logs
}

func basicFiles() fstest.MapFS {
	return fstest.MapFS{
		"vs_basic.glsl": {Data: []byte(basicVert)},
		"fs_basic.glsl": {Data: []byte(basicFrag)},
	}
}

func TestMissingFileCompilesFallback(t *testing.T) {
	api := glfake.New()
	opts, logs := newTestOptions(fstest.MapFS{})

	prog := NewShaderProgram(api, opts, "vs_gone.glsl", "fs_gone.glsl", true, true)

	assert.Equal(t, FallbackVertexSource, api.ShaderSourceOf(prog.VertexHandle()))
	assert.Equal(t, FallbackFragmentSource, api.ShaderSourceOf(prog.FragmentHandle()))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Shader 'fs_gone.glsl' not found! Using fallback shader...", warnings[0].Message)
	assert.Equal(t, "Shader 'vs_gone.glsl' not found! Using fallback shader...", warnings[1].Message)

	require.True(t, prog.Linked())
	assert.Equal(t, []AttributeInfo{
		{Name: "vPosition", Location: 0, Size: 1, Type: glapi.FLOAT_VEC3},
		{Name: "texcoord", Location: 1, Size: 1, Type: glapi.FLOAT_VEC2},
	}, prog.Attributes())

	for _, name := range []string{"maintexture", "M", "V", "P", "MVP"} {
		assert.GreaterOrEqual(t, prog.UniformLocation(name), int32(0), name)
	}
	assert.Equal(t, 5, prog.UniformCount())
}

func TestOnlyMissingStageFallsBack(t *testing.T) {
	api := glfake.New()
	opts, logs := newTestOptions(fstest.MapFS{"fs_basic.glsl": {Data: []byte(basicFrag)}})

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	assert.Equal(t, FallbackVertexSource, api.ShaderSourceOf(prog.VertexHandle()))
	assert.Equal(t, basicFrag, api.ShaderSourceOf(prog.FragmentHandle()))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestTablesMatchActiveVariables(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)
	require.True(t, prog.Linked())
	require.NoError(t, prog.LinkError())

	attributes := prog.Attributes()
	require.Len(t, attributes, 3)
	assert.Equal(t, "position", attributes[0].Name)
	assert.Equal(t, "normal", attributes[1].Name)
	assert.Equal(t, "uv", attributes[2].Name)

	names := map[string]bool{}
	for _, info := range prog.Uniforms() {
		names[info.Name] = true
		assert.GreaterOrEqual(t, info.Location, int32(0), info.Name)
	}
	assert.Equal(t, map[string]bool{"diffuse": true, "lights[0]": true, "MVP": true, "model": true}, names)

	lights, ok := prog.Uniform("lights[0]")
	require.True(t, ok)
	assert.Equal(t, int32(4), lights.Size)
	assert.Equal(t, glapi.FLOAT_VEC3, lights.Type)

	normal, ok := prog.Attribute("normal")
	require.True(t, ok)
	assert.Equal(t, normal.Location, prog.AttributeLocation("normal"))
}

func TestFragmentStageLoadsFirst(t *testing.T) {
	api := glfake.New()
	opts, logs := newTestOptions(nil)

	prog := NewPassthroughProgram(api, opts)

	assert.Equal(t, []glapi.Stage{glapi.StageFragment, glapi.StageVertex}, api.CreatedStages)
	assert.Equal(t, api.AttachedShaders(prog.Handle()), []uint32{prog.FragmentHandle(), prog.VertexHandle()})
	assert.Equal(t, api.CurrentProgram, prog.Handle())

	messages := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.NotEmpty(t, messages)
	assert.Equal(t, "Initializing shaders...", messages[0].Message)
	assert.Equal(t, "Shaders compiled!", messages[len(messages)-1].Message)
}

func TestPassthroughProgram(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(nil)

	prog := NewPassthroughProgram(api, opts)

	require.True(t, prog.Linked())
	assert.Equal(t, []AttributeInfo{{Name: "vPosition", Location: 0, Size: 1, Type: glapi.FLOAT_VEC3}}, prog.Attributes())
	assert.Equal(t, 2, prog.UniformCount())
	assert.GreaterOrEqual(t, prog.UniformLocation("renderedTexture"), int32(0))
	assert.GreaterOrEqual(t, prog.UniformLocation("time"), int32(0))
}

func TestLookupSentinels(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	assert.Equal(t, int32(-1), prog.AttributeLocation("tangent"))
	assert.Equal(t, int32(-1), prog.UniformLocation("projection"))
	assert.Equal(t, uint32(0), prog.Buffer("tangent"))
	assert.Equal(t, int32(-1), prog.AttributeLocation("MVP"))
	assert.Equal(t, int32(-1), prog.UniformLocation("position"))

	_, ok := prog.Attribute("tangent")
	assert.False(t, ok)
	_, ok = prog.Uniform("projection")
	assert.False(t, ok)
}

func TestOneBufferPerVariable(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	seen := map[uint32]string{}
	for _, info := range prog.Attributes() {
		buffer := prog.Buffer(info.Name)
		require.NotZero(t, buffer, info.Name)
		seen[buffer] = info.Name
	}
	for _, info := range prog.Uniforms() {
		buffer := prog.Buffer(info.Name)
		require.NotZero(t, buffer, info.Name)
		seen[buffer] = info.Name
	}

	assert.Len(t, seen, prog.AttributeCount()+prog.UniformCount())
	assert.Equal(t, len(seen), api.LiveBuffers())
}

func TestBuiltinAttributesAreSkipped(t *testing.T) {
	api := glfake.New()
	api.AddBuiltinAttribute("gl_VertexID")
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	assert.Equal(t, 3, prog.AttributeCount())
	assert.Equal(t, int32(-1), prog.AttributeLocation("gl_VertexID"))
	for _, info := range prog.Attributes() {
		assert.GreaterOrEqual(t, info.Location, int32(0))
	}
}

func TestLinkFailureIsLoggedNotReturned(t *testing.T) {
	api := glfake.New()
	api.FailLink = "error: varying f_uv not written"
	opts, logs := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	require.NotNil(t, prog)
	assert.False(t, prog.Linked())
	require.Error(t, prog.LinkError())
	assert.Equal(t, "GlProgram::LINKING_FAILURE: error: varying f_uv not written", prog.LinkError().Error())
	assert.Zero(t, prog.AttributeCount())
	assert.Zero(t, prog.UniformCount())
	assert.Equal(t, int32(-1), prog.AttributeLocation("position"))

	assert.Equal(t, 1, logs.FilterMessage("error: varying f_uv not written").FilterLevelExact(zapcore.InfoLevel).Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestCompileLogIsLogged(t *testing.T) {
	api := glfake.New()
	opts, logs := newTestOptions(nil)

	prog := NewShaderProgram(api, opts, basicVert, "#version 330\n#error broken\nvoid main(){}\n", false, false)

	assert.Equal(t, 1, logs.FilterMessage("0:1: error: #error directive").Len())
	assert.False(t, prog.Linked())
}

func TestEnableDisableVertexAttribArrays(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)

	prog.EnableVertexAttribArrays()
	assert.Equal(t, []uint32{0, 1, 2}, api.EnabledSlots())

	prog.DisableVertexAttribArrays()
	assert.Empty(t, api.EnabledSlots())
}

func TestDeleteReleasesHandles(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)
	require.Equal(t, 1, api.LivePrograms())
	require.Equal(t, 2, api.LiveShaders())
	require.Equal(t, 7, api.LiveBuffers())

	prog.Delete()
	prog.Delete()

	assert.Zero(t, api.LivePrograms())
	assert.Zero(t, api.LiveShaders())
	assert.Zero(t, api.LiveBuffers())
	assert.Zero(t, api.DoubleDeletes)
	assert.False(t, prog.Linked())
	assert.Zero(t, prog.Handle())
	assert.Equal(t, int32(-1), prog.AttributeLocation("position"))
}

func TestReloadKeepsIdentity(t *testing.T) {
	api := glfake.New()
	files := basicFiles()
	opts, _ := newTestOptions(files)

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)
	oldHandle := prog.Handle()
	require.Equal(t, 3, prog.AttributeCount())

	files["vs_basic.glsl"] = &fstest.MapFile{Data: []byte(`#version 330
in vec3 position;
uniform mat4 MVP;
void main(){ gl_Position = MVP * vec4(position, 1); }
`)}

	prog.Reload()

	assert.NotEqual(t, oldHandle, prog.Handle())
	assert.Equal(t, 1, prog.AttributeCount())
	assert.Equal(t, int32(-1), prog.AttributeLocation("normal"))
	assert.Equal(t, 1, api.LivePrograms())
	assert.Equal(t, 2, api.LiveShaders())
	assert.Equal(t, prog.AttributeCount()+prog.UniformCount(), api.LiveBuffers())
	assert.Zero(t, api.DoubleDeletes)

	prog.Delete()
	prog.Reload()
	assert.Zero(t, api.LivePrograms())
}

func TestLoadShaderFromStringReplacesStage(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(nil)

	prog := NewPassthroughProgram(api, opts)
	oldVertex := prog.VertexHandle()

	prog.LoadShaderFromString(FallbackVertexSource, glapi.StageVertex)
	prog.Link()
	prog.GenBuffers()

	assert.NotEqual(t, oldVertex, prog.VertexHandle())
	assert.Equal(t, 2, api.LiveShaders())
	assert.Equal(t, int32(1), prog.AttributeLocation("texcoord"))
	assert.NotZero(t, prog.Buffer("MVP"))
	assert.Equal(t, prog.AttributeCount()+prog.UniformCount(), api.LiveBuffers())
}

func TestRelinkReleasesStaleBuffers(t *testing.T) {
	api := glfake.New()
	opts, _ := newTestOptions(basicFiles())

	prog := NewShaderProgram(api, opts, "vs_basic.glsl", "fs_basic.glsl", true, true)
	require.NotZero(t, prog.Buffer("normal"))
	require.NotZero(t, prog.Buffer("model"))
	diffuseBuffer := prog.Buffer("diffuse")

	prog.LoadShaderFromString(FallbackVertexSource, glapi.StageVertex)
	prog.Link()

	assert.Equal(t, int32(-1), prog.AttributeLocation("normal"))
	assert.Equal(t, uint32(0), prog.Buffer("normal"))
	assert.Equal(t, uint32(0), prog.Buffer("uv"))
	assert.Equal(t, uint32(0), prog.Buffer("model"))
	assert.Equal(t, uint32(0), prog.Buffer("position"))
	assert.Equal(t, diffuseBuffer, prog.Buffer("diffuse"))

	prog.GenBuffers()

	assert.Equal(t, 2, prog.AttributeCount())
	assert.Equal(t, 6, prog.UniformCount())
	assert.Equal(t, uint32(0), prog.Buffer("normal"))
	assert.NotZero(t, prog.Buffer("texcoord"))
	assert.Equal(t, diffuseBuffer, prog.Buffer("diffuse"))
	assert.Equal(t, prog.AttributeCount()+prog.UniformCount(), api.LiveBuffers())
	assert.Zero(t, api.DoubleDeletes)

	prog.Delete()
	assert.Zero(t, api.LiveBuffers())
	assert.Zero(t, api.DoubleDeletes)
}

func TestShaderFileWithBOM(t *testing.T) {
	api := glfake.New()
	files := fstest.MapFS{
		"vs_bom.glsl": {Data: append([]byte{0xEF, 0xBB, 0xBF}, []byte(basicVert)...)},
		"fs_bom.glsl": {Data: []byte(basicFrag)},
	}
	opts, _ := newTestOptions(files)

	prog := NewShaderProgram(api, opts, "vs_bom.glsl", "fs_bom.glsl", true, true)

	assert.Equal(t, basicVert, api.ShaderSourceOf(prog.VertexHandle()))
	assert.Equal(t, int32(0), prog.AttributeLocation("position"))
}
