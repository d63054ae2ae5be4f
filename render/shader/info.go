package shader

import (
	"github.com/chwjbn/shader-hub/render/glapi"
	"sort"
)

// AttributeInfo describes one active vertex input of a linked program.
type AttributeInfo struct {
	Name     string
	Location int32
	Size     int32
	Type     glapi.ElementType
}

// UniformInfo describes one active uniform of a linked program.
type UniformInfo struct {
	Name     string
	Location int32
	Size     int32
	Type     glapi.ElementType
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
