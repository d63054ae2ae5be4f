package glapi

import "fmt"

// ElementType is the GL type of an active attribute or uniform.
type ElementType uint32

const (
	FLOAT             ElementType = 0x1406
	FLOAT_VEC2        ElementType = 0x8B50
	FLOAT_VEC3        ElementType = 0x8B51
	FLOAT_VEC4        ElementType = 0x8B52
	INT               ElementType = 0x1404
	INT_VEC2          ElementType = 0x8B53
	INT_VEC3          ElementType = 0x8B54
	INT_VEC4          ElementType = 0x8B55
	UNSIGNED_INT      ElementType = 0x1405
	BOOL              ElementType = 0x8B56
	FLOAT_MAT2        ElementType = 0x8B5A
	FLOAT_MAT3        ElementType = 0x8B5B
	FLOAT_MAT4        ElementType = 0x8B5C
	SAMPLER_2D        ElementType = 0x8B5E
	SAMPLER_3D        ElementType = 0x8B5F
	SAMPLER_CUBE      ElementType = 0x8B60
	SAMPLER_2D_SHADOW ElementType = 0x8B62
)

var elementTypeNames = map[ElementType]string{
	FLOAT:             "float",
	FLOAT_VEC2:        "vec2",
	FLOAT_VEC3:        "vec3",
	FLOAT_VEC4:        "vec4",
	INT:               "int",
	INT_VEC2:          "ivec2",
	INT_VEC3:          "ivec3",
	INT_VEC4:          "ivec4",
	UNSIGNED_INT:      "uint",
	BOOL:              "bool",
	FLOAT_MAT2:        "mat2",
	FLOAT_MAT3:        "mat3",
	FLOAT_MAT4:        "mat4",
	SAMPLER_2D:        "sampler2D",
	SAMPLER_3D:        "sampler3D",
	SAMPLER_CUBE:      "samplerCube",
	SAMPLER_2D_SHADOW: "sampler2DShadow",
}

// String returns the GLSL spelling of the type, or its hex value when unknown.
func (t ElementType) String() string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", uint32(t))
}

// ElementTypeByName maps a GLSL type keyword back to its GL enum.
func ElementTypeByName(name string) (ElementType, bool) {
	for t, n := range elementTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Stage identifies a shader stage.
type Stage uint32

const (
	StageVertex   Stage = VERTEX_SHADER
	StageFragment Stage = FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(0x%04X)", uint32(s))
}
