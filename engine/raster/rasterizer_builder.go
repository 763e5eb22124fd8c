package raster

import "github.com/Carmen-Shannon/oxy-desk/engine/shading"

// RasterizerBuilderOption is a function that configures a rasterizer.
type RasterizerBuilderOption func(*rasterizer)

// WithPipeline sets the shading pipeline driven by the rasterizer.
//
// Parameters:
//   - p: the pipeline, nil keeps the DynamicLighting default
//
// Returns:
//   - RasterizerBuilderOption: a function that applies the pipeline option
func WithPipeline(p shading.Pipeline) RasterizerBuilderOption {
	return func(r *rasterizer) {
		if p != nil {
			r.pipeline = p
		}
	}
}

// WithWorkers sets the number of pool workers that shade tiles. Zero or a negative count
// disables the pool and shades every tile on the calling goroutine.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RasterizerBuilderOption: a function that applies the worker count option
func WithWorkers(n int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.workers = n
	}
}

// WithTileSize sets the tile edge length in pixels.
//
// Parameters:
//   - size: tile edge length, non-positive values fall back to DefaultTileSize
//
// Returns:
//   - RasterizerBuilderOption: a function that applies the tile size option
func WithTileSize(size int) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.tileSize = size
	}
}

// WithBackfaceCulling toggles rejection of clockwise (back-facing) triangles.
//
// Parameters:
//   - enabled: true to cull back faces
//
// Returns:
//   - RasterizerBuilderOption: a function that applies the culling option
func WithBackfaceCulling(enabled bool) RasterizerBuilderOption {
	return func(r *rasterizer) {
		r.cullBack = enabled
	}
}
