package shading

// PipelineBuilderOption is a function that configures a Pipeline during construction.
type PipelineBuilderOption func(*pipelineImpl)

// WithLightingModel is an option builder that selects the lighting model used
// by the fragment stage. A nil model is ignored.
//
// Parameters:
//   - model: the lighting model
//
// Returns:
//   - PipelineBuilderOption: a function that applies the model to a pipelineImpl
func WithLightingModel(model LightingModel) PipelineBuilderOption {
	return func(p *pipelineImpl) {
		if model != nil {
			p.lighting = model
		}
	}
}

// WithStaticLighting is an option builder that selects the single directional
// light model with its stock parameters.
//
// Returns:
//   - PipelineBuilderOption: a function that applies StaticLighting to a pipelineImpl
func WithStaticLighting() PipelineBuilderOption {
	return WithLightingModel(NewStaticLighting())
}
