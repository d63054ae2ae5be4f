package shader

import (
	"github.com/chwjbn/shader-hub/render/glapi"
	"strings"
	"sync"
)

const (
	vertexFilePrefix   = "vs_"
	fragmentFilePrefix = "fs_"
	shaderFileExt      = ".glsl"
)

func VertexFileName(name string) string {
	return vertexFilePrefix + name + shaderFileExt
}

func FragmentFileName(name string) string {
	return fragmentFilePrefix + name + shaderFileExt
}

// ProgramNameFromFile maps vs_<name>.glsl or fs_<name>.glsl back to <name>.
func ProgramNameFromFile(file string) (string, bool) {

	if !strings.HasSuffix(file, shaderFileExt) {
		return "", false
	}

	name := strings.TrimSuffix(file, shaderFileExt)

	switch {
	case strings.HasPrefix(name, vertexFilePrefix):
		name = strings.TrimPrefix(name, vertexFilePrefix)
	case strings.HasPrefix(name, fragmentFilePrefix):
		name = strings.TrimPrefix(name, fragmentFilePrefix)
	default:
		return "", false
	}

	if len(name) < 1 {
		return "", false
	}

	return name, true
}

// ShaderCache owns the named programs of a renderer. A name maps to one
// program for the cache's lifetime; nothing is evicted before Close.
type ShaderCache struct {
	mApi     glapi.Api
	mOptions Options

	mMutex    sync.Mutex
	mPrograms map[string]*ShaderProgram
	mClosed   bool
}

func NewShaderCache(api glapi.Api, opts Options) *ShaderCache {

	pThis := new(ShaderCache)
	pThis.mApi = api
	pThis.mOptions = opts.withDefaults()
	pThis.mPrograms = make(map[string]*ShaderProgram)

	return pThis
}

// Load returns the program registered under name, building it from
// vs_<name>.glsl and fs_<name>.glsl on first use. It returns nil once the
// cache is closed.
func (c *ShaderCache) Load(name string) *ShaderProgram {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	if c.mClosed {
		c.mOptions.Logger.ErrorF("ShaderCache closed, cannot load shader=[%v]", name)
		return nil
	}

	if prog, ok := c.mPrograms[name]; ok {
		return prog
	}

	prog := NewShaderProgram(c.mApi, c.mOptions, VertexFileName(name), FragmentFileName(name), true, true)
	c.mPrograms[name] = prog

	return prog
}

// Options returns the resolved collaborators programs of this cache are built with.
func (c *ShaderCache) Options() Options {
	return c.mOptions
}

func (c *ShaderCache) Get(name string) (*ShaderProgram, bool) {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	prog, ok := c.mPrograms[name]
	return prog, ok
}

// Names returns the registered program names in sorted order.
func (c *ShaderCache) Names() []string {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	return sortedKeys(c.mPrograms)
}

func (c *ShaderCache) Len() int {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	return len(c.mPrograms)
}

// Reload rebuilds a registered program in place. It reports false for unknown names.
func (c *ShaderCache) Reload(name string) bool {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	prog, ok := c.mPrograms[name]
	if !ok || c.mClosed {
		return false
	}

	c.mOptions.Logger.InfoF("ShaderCache reload shader=[%v]", name)
	prog.Reload()

	return true
}

// Close deletes every registered program. Later Loads return nil.
func (c *ShaderCache) Close() {

	c.mMutex.Lock()
	defer c.mMutex.Unlock()

	if c.mClosed {
		return
	}

	for _, name := range sortedKeys(c.mPrograms) {
		c.mPrograms[name].Delete()
	}

	c.mClosed = true
}
