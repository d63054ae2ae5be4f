package shader

import (
	_ "embed"
	"github.com/chwjbn/shader-hub/render/glapi"
)

// Passthrough blits a full screen texture, used for framebuffer presentation.
var (
	//go:embed defaults/passthrough.vert
	PassthroughVertexSource string

	//go:embed defaults/passthrough.frag
	PassthroughFragmentSource string
)

// Fallback sources are compiled in place of a shader file that cannot be read.
var (
	//go:embed defaults/fallback.vert
	FallbackVertexSource string

	//go:embed defaults/fallback.frag
	FallbackFragmentSource string
)

// FallbackSource returns the compiled-in source for stage, or "" for stages
// without a fallback.
func FallbackSource(stage glapi.Stage) string {
	switch stage {
	case glapi.StageVertex:
		return FallbackVertexSource
	case glapi.StageFragment:
		return FallbackFragmentSource
	}
	return ""
}

// NewPassthroughProgram builds the texture blit program from the embedded sources.
func NewPassthroughProgram(api glapi.Api, opts Options) *ShaderProgram {
	return NewShaderProgram(api, opts, PassthroughVertexSource, PassthroughFragmentSource, false, false)
}
