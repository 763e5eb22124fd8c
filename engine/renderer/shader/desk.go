package shader

import (
	_ "embed"
	"fmt"
)

// DeskShaderSource is the annotated WGSL source of the desk render pipeline. Its vertex and
// fragment stages mirror shading.TransformVertex and shading.ShadeFragment.
//
//go:embed assets/desk.wgsl
var DeskShaderSource string

const (
	// DeskVertexShaderKey is the cache key of the desk vertex stage.
	DeskVertexShaderKey = "desk_vertex"
	// DeskFragmentShaderKey is the cache key of the desk fragment stage.
	DeskFragmentShaderKey = "desk_fragment"
)

// NewDeskShaders parses both stages of the desk pipeline.
//
// Returns:
//   - Shader: the vertex stage (vs_main)
//   - Shader: the fragment stage (fs_main)
//   - error: if either stage fails to parse
func NewDeskShaders() (Shader, Shader, error) {
	vs, err := NewShader(DeskVertexShaderKey, ShaderTypeVertex, DeskShaderSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create desk vertex shader: %w", err)
	}
	fs, err := NewShader(DeskFragmentShaderKey, ShaderTypeFragment, DeskShaderSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create desk fragment shader: %w", err)
	}
	return vs, fs, nil
}
