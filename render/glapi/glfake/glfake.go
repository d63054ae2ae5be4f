// Package glfake is an in-memory glapi.Api for tests. It "compiles" GLSL by
// scanning top level in/uniform declarations, so introspection results follow
// the source text. Unused variables are never optimized away.
package glfake

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/chwjbn/shader-hub/render/glapi"
)

var (
	attribDecl  = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?in\s+(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?uniform\s+(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)
	mainDecl    = regexp.MustCompile(`void\s+main\s*\(`)
)

type variable struct {
	name     string
	size     int32
	xtype    uint32
	location int32
}

type shader struct {
	stage    uint32
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders    []uint32
	linked     bool
	log        string
	attributes []variable
	uniforms   []variable
}

// Api records every object it hands out. The zero value is not usable, call New.
type Api struct {
	nextObject uint32
	nextBuffer uint32

	shaders  map[uint32]*shader
	programs map[uint32]*program
	buffers  map[uint32]bool

	// FailLink makes every following LinkProgram fail with this log.
	FailLink string

	builtins []string

	CurrentProgram uint32
	Enabled        map[uint32]bool
	CreatedStages  []glapi.Stage
	DoubleDeletes  int
}

var _ glapi.Api = (*Api)(nil)

func New() *Api {
	return &Api{
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		buffers:  make(map[uint32]bool),
		Enabled:  make(map[uint32]bool),
	}
}

// AddBuiltinAttribute makes name an active attribute of every later link,
// reported with location -1 the way drivers report gl_VertexID.
func (a *Api) AddBuiltinAttribute(name string) {
	a.builtins = append(a.builtins, name)
}

func (a *Api) LiveShaders() int  { return len(a.shaders) }
func (a *Api) LivePrograms() int { return len(a.programs) }
func (a *Api) LiveBuffers() int  { return len(a.buffers) }

// ShaderSourceOf returns the source last given to shader.
func (a *Api) ShaderSourceOf(handle uint32) string {
	if s, ok := a.shaders[handle]; ok {
		return s.source
	}
	return ""
}

// AttachedShaders lists the shaders attached to program in attach order.
func (a *Api) AttachedShaders(handle uint32) []uint32 {
	if p, ok := a.programs[handle]; ok {
		return append([]uint32(nil), p.shaders...)
	}
	return nil
}

func (a *Api) CreateShader(stage uint32) uint32 {
	a.nextObject++
	a.shaders[a.nextObject] = &shader{stage: stage}
	a.CreatedStages = append(a.CreatedStages, glapi.Stage(stage))
	return a.nextObject
}

func (a *Api) ShaderSource(handle uint32, src string) {
	if s, ok := a.shaders[handle]; ok {
		s.source = src
	}
}

func (a *Api) CompileShader(handle uint32) {
	s, ok := a.shaders[handle]
	if !ok {
		return
	}

	s.compiled = false
	s.log = ""

	switch {
	case strings.TrimSpace(s.source) == "":
		s.log = "0:0: error: empty source"
	case strings.Contains(s.source, "#error"):
		s.log = "0:1: error: #error directive"
	case !mainDecl.MatchString(s.source):
		s.log = "0:0: error: missing main()"
	default:
		s.compiled = true
	}
}

func (a *Api) GetShaderiv(handle uint32, pname uint32) int32 {
	s, ok := a.shaders[handle]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.COMPILE_STATUS:
		if s.compiled {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.INFO_LOG_LENGTH:
		return infoLogLength(s.log)
	}
	return 0
}

func (a *Api) GetShaderInfoLog(handle uint32) string {
	if s, ok := a.shaders[handle]; ok {
		return s.log
	}
	return ""
}

func (a *Api) DeleteShader(handle uint32) {
	if _, ok := a.shaders[handle]; !ok {
		a.DoubleDeletes++
		return
	}
	delete(a.shaders, handle)
}

func (a *Api) CreateProgram() uint32 {
	a.nextObject++
	a.programs[a.nextObject] = &program{}
	return a.nextObject
}

func (a *Api) AttachShader(prog uint32, handle uint32) {
	if p, ok := a.programs[prog]; ok {
		p.shaders = append(p.shaders, handle)
	}
}

func (a *Api) DetachShader(prog uint32, handle uint32) {
	p, ok := a.programs[prog]
	if !ok {
		return
	}
	for i, h := range p.shaders {
		if h == handle {
			p.shaders = append(p.shaders[:i], p.shaders[i+1:]...)
			return
		}
	}
}

func (a *Api) LinkProgram(prog uint32) {
	p, ok := a.programs[prog]
	if !ok {
		return
	}

	p.linked = false
	p.log = ""
	p.attributes = nil
	p.uniforms = nil

	if a.FailLink != "" {
		p.log = a.FailLink
		return
	}

	var hasVertex, hasFragment bool
	seenUniform := make(map[string]bool)
	var nextUniform int32

	for _, h := range p.shaders {
		s, ok := a.shaders[h]
		if !ok || !s.compiled {
			p.log = fmt.Sprintf("error: shader %d is not compiled", h)
			p.attributes = nil
			p.uniforms = nil
			return
		}

		if s.stage == glapi.VERTEX_SHADER {
			hasVertex = true
			var nextAttrib int32
			for _, v := range parseDecls(attribDecl, s.source) {
				v.location = nextAttrib
				nextAttrib += v.size
				p.attributes = append(p.attributes, v)
			}
		} else if s.stage == glapi.FRAGMENT_SHADER {
			hasFragment = true
		}

		for _, v := range parseDecls(uniformDecl, s.source) {
			if seenUniform[v.name] {
				continue
			}
			seenUniform[v.name] = true
			v.location = nextUniform
			nextUniform += v.size
			p.uniforms = append(p.uniforms, v)
		}
	}

	if !hasVertex || !hasFragment {
		p.log = "error: program needs a vertex and a fragment shader"
		p.attributes = nil
		p.uniforms = nil
		return
	}

	for _, name := range a.builtins {
		p.attributes = append(p.attributes, variable{name: name, size: 1, xtype: uint32(glapi.INT), location: -1})
	}

	p.linked = true
}

func (a *Api) UseProgram(prog uint32) {
	a.CurrentProgram = prog
}

func (a *Api) GetProgramiv(prog uint32, pname uint32) int32 {
	p, ok := a.programs[prog]
	if !ok {
		return 0
	}
	switch pname {
	case glapi.LINK_STATUS:
		if p.linked {
			return glapi.TRUE
		}
		return glapi.FALSE
	case glapi.INFO_LOG_LENGTH:
		return infoLogLength(p.log)
	case glapi.ACTIVE_ATTRIBUTES:
		return int32(len(p.attributes))
	case glapi.ACTIVE_UNIFORMS:
		return int32(len(p.uniforms))
	}
	return 0
}

func (a *Api) GetProgramInfoLog(prog uint32) string {
	if p, ok := a.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (a *Api) DeleteProgram(prog uint32) {
	if _, ok := a.programs[prog]; !ok {
		a.DoubleDeletes++
		return
	}
	delete(a.programs, prog)
	if a.CurrentProgram == prog {
		a.CurrentProgram = 0
	}
}

func (a *Api) GetActiveAttrib(prog uint32, index uint32) (string, int32, uint32) {
	p, ok := a.programs[prog]
	if !ok || int(index) >= len(p.attributes) {
		return "", 0, 0
	}
	v := p.attributes[index]
	return v.name, v.size, v.xtype
}

func (a *Api) GetActiveUniform(prog uint32, index uint32) (string, int32, uint32) {
	p, ok := a.programs[prog]
	if !ok || int(index) >= len(p.uniforms) {
		return "", 0, 0
	}
	v := p.uniforms[index]
	return activeName(v), v.size, v.xtype
}

func (a *Api) GetAttribLocation(prog uint32, name string) int32 {
	p, ok := a.programs[prog]
	if !ok {
		return -1
	}
	for _, v := range p.attributes {
		if v.name == name {
			return v.location
		}
	}
	return -1
}

func (a *Api) GetUniformLocation(prog uint32, name string) int32 {
	p, ok := a.programs[prog]
	if !ok {
		return -1
	}
	for _, v := range p.uniforms {
		if v.name == name || activeName(v) == name {
			return v.location
		}
	}
	return -1
}

func (a *Api) GenBuffer() uint32 {
	a.nextBuffer++
	a.buffers[a.nextBuffer] = true
	return a.nextBuffer
}

func (a *Api) DeleteBuffer(buffer uint32) {
	if !a.buffers[buffer] {
		a.DoubleDeletes++
		return
	}
	delete(a.buffers, buffer)
}

func (a *Api) EnableVertexAttribArray(index uint32) {
	a.Enabled[index] = true
}

func (a *Api) DisableVertexAttribArray(index uint32) {
	delete(a.Enabled, index)
}

// EnabledSlots returns the enabled attribute slots in ascending order.
func (a *Api) EnabledSlots() []uint32 {
	slots := make([]uint32, 0, len(a.Enabled))
	for slot := range a.Enabled {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

func parseDecls(re *regexp.Regexp, src string) []variable {
	var vars []variable
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		xtype, ok := glapi.ElementTypeByName(m[1])
		if !ok {
			continue
		}
		size := int32(1)
		if m[3] != "" {
			n, err := strconv.Atoi(m[3])
			if err == nil && n > 0 {
				size = int32(n)
			}
		}
		vars = append(vars, variable{name: m[2], size: size, xtype: uint32(xtype)})
	}
	return vars
}

// activeName spells arrays the way drivers report them.
func activeName(v variable) string {
	if v.size > 1 {
		return v.name + "[0]"
	}
	return v.name
}

func infoLogLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
