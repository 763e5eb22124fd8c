package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderBuilderOption is a functional option for configuring a BindGroupProvider.
type BindGroupProviderBuilderOption func(*bindGroupProvider)

// WithLabel sets the debug label for the BindGroupProvider.
//
// Parameters:
//   - label: the debug label string
//
// Returns:
//   - BindGroupProviderBuilderOption: a function that applies the label option to a bindGroupProvider
func WithLabel(label string) BindGroupProviderBuilderOption {
	return func(p *bindGroupProvider) {
		p.label = label
	}
}

// WithGroup sets the @group index the provider stages.
//
// Parameters:
//   - group: the bind group index
//
// Returns:
//   - BindGroupProviderBuilderOption: a function that applies the group option to a bindGroupProvider
func WithGroup(group int) BindGroupProviderBuilderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}

// WithLayout sets the bind group layout the provider's buffers are sized from, usually
// Shader.BindGroupLayoutDescriptor for the group.
//
// Parameters:
//   - layout: the bind group layout descriptor
//
// Returns:
//   - BindGroupProviderBuilderOption: a function that applies the layout option to a bindGroupProvider
func WithLayout(layout wgpu.BindGroupLayoutDescriptor) BindGroupProviderBuilderOption {
	return func(p *bindGroupProvider) {
		p.layout = layout
	}
}
