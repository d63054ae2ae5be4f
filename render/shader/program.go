// Package shader compiles, links and introspects GL shader programs.
//
// Failures never surface as errors from construction: a missing source file
// degrades to a fallback shader and compile/link diagnostics are logged. The
// link outcome stays available through Linked and LinkError.
package shader

import (
	"github.com/chwjbn/shader-hub/glib"
	"github.com/chwjbn/shader-hub/glog"
	"github.com/chwjbn/shader-hub/render/glapi"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ShaderDir is the default directory shader files are read from, relative to the app base dir.
const ShaderDir = "Shaders"

// Options carries the collaborators of a ShaderProgram.
type Options struct {
	// Logger receives compile/link logs and missing file warnings. Nil uses glog.Default().
	Logger *glog.Logger
	// ShaderFs resolves file names passed with isPath. Nil uses ShaderDir on disk.
	ShaderFs fs.FS
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = glog.Default()
	}
	if o.ShaderFs == nil {
		o.ShaderFs = os.DirFS(glib.AppPath(ShaderDir))
	}
	return o
}

type ShaderProgram struct {
	mApi      glapi.Api
	mLogger   *glog.Logger
	mShaderFs fs.FS

	mVertexSource   string
	mFragmentSource string
	mVertexIsPath   bool
	mFragmentIsPath bool

	mProgramHandle  uint32
	mVertexHandle   uint32
	mFragmentHandle uint32

	mAttributes map[string]AttributeInfo
	mUniforms   map[string]UniformInfo
	mBuffers    map[string]uint32

	mLinkErr error
	mDeleted bool
}

// NewShaderProgram compiles both stages, links them and allocates one buffer
// per active variable. A source flagged isPath is a file name under
// opts.ShaderFs, otherwise it is GLSL text.
func NewShaderProgram(api glapi.Api, opts Options, vertexSource string, fragmentSource string, vertexIsPath bool, fragmentIsPath bool) *ShaderProgram {

	opts = opts.withDefaults()

	pThis := new(ShaderProgram)
	pThis.mApi = api
	pThis.mLogger = opts.Logger
	pThis.mShaderFs = opts.ShaderFs
	pThis.mVertexSource = vertexSource
	pThis.mFragmentSource = fragmentSource
	pThis.mVertexIsPath = vertexIsPath
	pThis.mFragmentIsPath = fragmentIsPath

	pThis.build()

	return pThis
}

func (p *ShaderProgram) build() {

	p.mLogger.Info("Initializing shaders...")

	p.mProgramHandle = p.mApi.CreateProgram()
	p.mAttributes = make(map[string]AttributeInfo)
	p.mUniforms = make(map[string]UniformInfo)
	p.mBuffers = make(map[string]uint32)

	if p.mFragmentIsPath {
		p.LoadShaderFromFile(p.mFragmentSource, glapi.StageFragment)
	} else {
		p.LoadShaderFromString(p.mFragmentSource, glapi.StageFragment)
	}

	if p.mVertexIsPath {
		p.LoadShaderFromFile(p.mVertexSource, glapi.StageVertex)
	} else {
		p.LoadShaderFromString(p.mVertexSource, glapi.StageVertex)
	}

	p.Link()
	p.GenBuffers()

	p.mLogger.Info("Shaders compiled!")
}

func (p *ShaderProgram) loadShader(code string, stage glapi.Stage) uint32 {

	handle := p.mApi.CreateShader(uint32(stage))
	p.mApi.ShaderSource(handle, code)
	p.mApi.CompileShader(handle)
	p.mApi.AttachShader(p.mProgramHandle, handle)

	infoLog := p.mApi.GetShaderInfoLog(handle)
	if len(infoLog) > 0 {
		p.mLogger.Info(infoLog)
	}

	return handle
}

// releaseStage detaches and deletes a previously loaded shader of the same stage.
func (p *ShaderProgram) releaseStage(handle *uint32) {
	if *handle == 0 {
		return
	}
	p.mApi.DetachShader(p.mProgramHandle, *handle)
	p.mApi.DeleteShader(*handle)
	*handle = 0
}

// LoadShaderFromString compiles code as stage and attaches it to the program.
// It takes effect on the next Link.
func (p *ShaderProgram) LoadShaderFromString(code string, stage glapi.Stage) {

	switch stage {
	case glapi.StageVertex:
		p.releaseStage(&p.mVertexHandle)
		p.mVertexHandle = p.loadShader(code, stage)
	case glapi.StageFragment:
		p.releaseStage(&p.mFragmentHandle)
		p.mFragmentHandle = p.loadShader(code, stage)
	default:
		p.mLogger.ErrorF("unsupported shader stage=[%v]", stage)
	}
}

// LoadShaderFromFile reads name from the shader directory and compiles it as
// stage. An unreadable file is replaced by the stage's fallback source.
func (p *ShaderProgram) LoadShaderFromFile(name string, stage glapi.Stage) {

	code, readErr := glib.FsReadAllText(p.mShaderFs, path.Clean(filepath.ToSlash(name)))
	if readErr != nil {
		p.mLogger.WarnF("Shader '%s' not found! Using fallback shader...", name)
		code = FallbackSource(stage)
	}

	p.LoadShaderFromString(code, stage)
}

// Link links the attached stages, makes the program current and rebuilds the
// attribute and uniform tables from the driver's active variables.
func (p *ShaderProgram) Link() {

	p.mApi.LinkProgram(p.mProgramHandle)
	p.mApi.UseProgram(p.mProgramHandle)

	p.mLogger.Info(p.mApi.GetProgramInfoLog(p.mProgramHandle))

	p.mLinkErr = getGlError(p.mProgramHandle, glapi.LINK_STATUS, p.mApi.GetProgramiv, p.mApi.GetProgramInfoLog,
		"GlProgram::LINKING_FAILURE")
	if p.mLinkErr != nil {
		p.mLogger.Error(p.mLinkErr.Error())
	}

	p.mAttributes = make(map[string]AttributeInfo)
	p.mUniforms = make(map[string]UniformInfo)

	attributeCount := p.mApi.GetProgramiv(p.mProgramHandle, glapi.ACTIVE_ATTRIBUTES)
	uniformCount := p.mApi.GetProgramiv(p.mProgramHandle, glapi.ACTIVE_UNIFORMS)

	for i := int32(0); i < attributeCount; i++ {

		name, size, xtype := p.mApi.GetActiveAttrib(p.mProgramHandle, uint32(i))

		location := p.mApi.GetAttribLocation(p.mProgramHandle, name)
		if location < 0 {
			// built-in inputs such as gl_VertexID have no slot
			continue
		}

		p.mAttributes[name] = AttributeInfo{Name: name, Location: location, Size: size, Type: glapi.ElementType(xtype)}
	}

	for i := int32(0); i < uniformCount; i++ {

		name, size, xtype := p.mApi.GetActiveUniform(p.mProgramHandle, uint32(i))

		location := p.mApi.GetUniformLocation(p.mProgramHandle, name)
		if location < 0 {
			// uniform block members are addressed through their block
			continue
		}

		p.mUniforms[name] = UniformInfo{Name: name, Location: location, Size: size, Type: glapi.ElementType(xtype)}
	}

	p.releaseStaleBuffers()
}

// releaseStaleBuffers deletes buffers of variables the last Link no longer reports.
func (p *ShaderProgram) releaseStaleBuffers() {

	for _, name := range sortedKeys(p.mBuffers) {

		_, isAttribute := p.mAttributes[name]
		_, isUniform := p.mUniforms[name]
		if isAttribute || isUniform {
			continue
		}

		p.mApi.DeleteBuffer(p.mBuffers[name])
		delete(p.mBuffers, name)
	}
}

// GenBuffers allocates one buffer per attribute and per uniform that has none yet.
func (p *ShaderProgram) GenBuffers() {

	for _, name := range sortedKeys(p.mAttributes) {
		if _, ok := p.mBuffers[name]; ok {
			continue
		}
		p.mBuffers[name] = p.mApi.GenBuffer()
	}

	for _, name := range sortedKeys(p.mUniforms) {
		if _, ok := p.mBuffers[name]; ok {
			continue
		}
		p.mBuffers[name] = p.mApi.GenBuffer()
	}
}

func (p *ShaderProgram) Use() {
	p.mApi.UseProgram(p.mProgramHandle)
}

func (p *ShaderProgram) EnableVertexAttribArrays() {
	for _, info := range p.Attributes() {
		p.mApi.EnableVertexAttribArray(uint32(info.Location))
	}
}

func (p *ShaderProgram) DisableVertexAttribArrays() {
	for _, info := range p.Attributes() {
		p.mApi.DisableVertexAttribArray(uint32(info.Location))
	}
}

// AttributeLocation returns the slot of the named attribute, or -1.
func (p *ShaderProgram) AttributeLocation(name string) int32 {
	if info, ok := p.mAttributes[name]; ok {
		return info.Location
	}
	return -1
}

// UniformLocation returns the location of the named uniform, or -1.
func (p *ShaderProgram) UniformLocation(name string) int32 {
	if info, ok := p.mUniforms[name]; ok {
		return info.Location
	}
	return -1
}

// Buffer returns the buffer allocated for the named variable, or 0.
func (p *ShaderProgram) Buffer(name string) uint32 {
	if buffer, ok := p.mBuffers[name]; ok {
		return buffer
	}
	return 0
}

func (p *ShaderProgram) Attribute(name string) (AttributeInfo, bool) {
	info, ok := p.mAttributes[name]
	return info, ok
}

func (p *ShaderProgram) Uniform(name string) (UniformInfo, bool) {
	info, ok := p.mUniforms[name]
	return info, ok
}

// Attributes returns the active attributes ordered by location.
func (p *ShaderProgram) Attributes() []AttributeInfo {
	list := make([]AttributeInfo, 0, len(p.mAttributes))
	for _, info := range p.mAttributes {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Location != list[j].Location {
			return list[i].Location < list[j].Location
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// Uniforms returns the active uniforms ordered by location.
func (p *ShaderProgram) Uniforms() []UniformInfo {
	list := make([]UniformInfo, 0, len(p.mUniforms))
	for _, info := range p.mUniforms {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Location != list[j].Location {
			return list[i].Location < list[j].Location
		}
		return list[i].Name < list[j].Name
	})
	return list
}

func (p *ShaderProgram) AttributeCount() int {
	return len(p.mAttributes)
}

func (p *ShaderProgram) UniformCount() int {
	return len(p.mUniforms)
}

func (p *ShaderProgram) Handle() uint32 {
	return p.mProgramHandle
}

func (p *ShaderProgram) VertexHandle() uint32 {
	return p.mVertexHandle
}

func (p *ShaderProgram) FragmentHandle() uint32 {
	return p.mFragmentHandle
}

// Linked reports whether the last Link succeeded.
func (p *ShaderProgram) Linked() bool {
	return !p.mDeleted && p.mProgramHandle != 0 && p.mLinkErr == nil
}

// LinkError returns the driver's link failure from the last Link, if any.
func (p *ShaderProgram) LinkError() error {
	return p.mLinkErr
}

// Reload rebuilds the program from the sources it was created with. The
// pointer stays the same; handles, tables and buffers are replaced.
func (p *ShaderProgram) Reload() {

	if p.mDeleted {
		p.mLogger.Warn("reload of a deleted shader program ignored")
		return
	}

	p.release()
	p.build()
}

// Delete releases every native handle owned by the program. It is safe to call twice.
func (p *ShaderProgram) Delete() {

	if p.mDeleted {
		return
	}

	p.release()
	p.mDeleted = true
}

func (p *ShaderProgram) release() {

	for _, name := range sortedKeys(p.mBuffers) {
		p.mApi.DeleteBuffer(p.mBuffers[name])
	}

	p.releaseStage(&p.mVertexHandle)
	p.releaseStage(&p.mFragmentHandle)

	if p.mProgramHandle != 0 {
		p.mApi.DeleteProgram(p.mProgramHandle)
		p.mProgramHandle = 0
	}

	p.mAttributes = make(map[string]AttributeInfo)
	p.mUniforms = make(map[string]UniformInfo)
	p.mBuffers = make(map[string]uint32)
	p.mLinkErr = nil
}
