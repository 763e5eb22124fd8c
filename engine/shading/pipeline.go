package shading

import "github.com/go-gl/mathgl/mgl32"

// pipelineImpl is the implementation of the Pipeline interface.
type pipelineImpl struct {
	lighting LightingModel
}

// Pipeline binds a LightingModel to the two shading stages so a rasterizer
// can drive them without knowing which model is in use.
//
// A Pipeline holds no per-frame state. Camera, model and lighting snapshots
// are supplied on every call, and a single Pipeline may be shared by any
// number of goroutines.
type Pipeline interface {
	// LightingModel returns the model used by the fragment stage.
	//
	// Returns:
	//   - LightingModel: the configured lighting model
	LightingModel() LightingModel

	// Vertex runs the vertex stage.
	//
	// Parameters:
	//   - v: the local-space vertex
	//   - cam: camera snapshot
	//   - model: local-to-world transform
	//
	// Returns:
	//   - VertexOutput: the transformed vertex
	Vertex(v Vertex, cam CameraState, model ModelState) VertexOutput

	// Fragment runs the fragment stage.
	//
	// Parameters:
	//   - f: interpolated fragment attributes
	//   - cam: camera snapshot
	//   - ls: lighting snapshot
	//
	// Returns:
	//   - mgl32.Vec4: the shaded straight-alpha color
	Fragment(f Fragment, cam CameraState, ls LightingState) mgl32.Vec4
}

var _ Pipeline = &pipelineImpl{}

// NewPipeline creates a Pipeline using DynamicLighting unless an option
// overrides it.
//
// Parameters:
//   - opts: variadic list of PipelineBuilderOption functions
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(opts ...PipelineBuilderOption) Pipeline {
	p := &pipelineImpl{
		lighting: DynamicLighting{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipelineImpl) LightingModel() LightingModel {
	return p.lighting
}

func (p *pipelineImpl) Vertex(v Vertex, cam CameraState, model ModelState) VertexOutput {
	return TransformVertex(v, cam, model)
}

func (p *pipelineImpl) Fragment(f Fragment, cam CameraState, ls LightingState) mgl32.Vec4 {
	return ShadeFragment(f, cam, ls, p.lighting)
}
