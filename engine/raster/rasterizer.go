package raster

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultTileSize is the edge length in pixels of the square tiles shaded as one task.
	DefaultTileSize = 32

	// taskQueueSize is the buffered task capacity of the worker pool.
	taskQueueSize = 256
)

// Stats counts rasterizer work since the last ResetStats.
type Stats struct {
	// TrianglesDrawn is the number of triangles that reached scan conversion.
	TrianglesDrawn uint64
	// TrianglesCulled counts triangles rejected by frustum, near-plane, facing or area tests.
	TrianglesCulled uint64
	// FragmentsShaded is the number of fragments that passed the depth test and were shaded.
	FragmentsShaded uint64
}

// rasterizer is the implementation of the Rasterizer interface.
type rasterizer struct {
	mu       *sync.Mutex
	pipeline shading.Pipeline
	workers  int
	tileSize int
	cullBack bool
	pool     worker.DynamicWorkerPool
	closed   bool

	trianglesDrawn  atomic.Uint64
	trianglesCulled atomic.Uint64
	fragmentsShaded atomic.Uint64
}

// Rasterizer drives a shading.Pipeline over indexed triangle meshes into a Framebuffer.
// It transforms every vertex of a mesh before any fragment is shaded, then shades
// framebuffer tiles in parallel on a worker pool. Each tile owns its pixels, so fragments
// of one tile are always resolved in triangle submission order.
type Rasterizer interface {
	// DrawMesh renders one mesh into fb. The snapshots are read by value for the whole
	// draw; the call returns once every fragment of the mesh has been written.
	//
	// Parameters:
	//   - fb: the render target
	//   - mesh: the mesh to draw, nil or empty meshes are ignored
	//   - m: the mesh's local-to-world transform
	//   - cam: camera snapshot
	//   - ls: lighting snapshot
	DrawMesh(fb *Framebuffer, mesh *model.Mesh, m shading.ModelState, cam shading.CameraState, ls shading.LightingState)

	// Pipeline returns the shading pipeline used for both stages.
	//
	// Returns:
	//   - shading.Pipeline: the configured pipeline
	Pipeline() shading.Pipeline

	// Stats returns the work counters accumulated since the last ResetStats.
	//
	// Returns:
	//   - Stats: a copy of the counters
	Stats() Stats

	// ResetStats zeroes the work counters.
	ResetStats()

	// Close stops the worker pool. Later draws shade tiles on the calling goroutine.
	Close()
}

var _ Rasterizer = &rasterizer{}

// NewRasterizer creates a Rasterizer with back-face culling enabled, DynamicLighting and
// one worker per CPU minus one.
//
// Parameters:
//   - options: variadic list of RasterizerBuilderOption functions
//
// Returns:
//   - Rasterizer: a new Rasterizer instance
func NewRasterizer(options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizer{
		mu:       &sync.Mutex{},
		workers:  max(runtime.NumCPU()-1, 1),
		tileSize: DefaultTileSize,
		cullBack: true,
	}
	for _, option := range options {
		option(r)
	}
	if r.pipeline == nil {
		r.pipeline = shading.NewPipeline()
	}
	if r.tileSize <= 0 {
		r.tileSize = DefaultTileSize
	}
	if r.workers > 0 {
		r.pool = worker.NewDynamicWorkerPool(r.workers, taskQueueSize, time.Second)
	}
	return r
}

func (r *rasterizer) Pipeline() shading.Pipeline {
	return r.pipeline
}

func (r *rasterizer) Stats() Stats {
	return Stats{
		TrianglesDrawn:  r.trianglesDrawn.Load(),
		TrianglesCulled: r.trianglesCulled.Load(),
		FragmentsShaded: r.fragmentsShaded.Load(),
	}
}

func (r *rasterizer) ResetStats() {
	r.trianglesDrawn.Store(0)
	r.trianglesCulled.Store(0)
	r.fragmentsShaded.Store(0)
}

func (r *rasterizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.pool != nil {
		r.pool.Stop()
	}
	common.Logger().Debug("raster: rasterizer closed")
}

func (r *rasterizer) DrawMesh(fb *Framebuffer, mesh *model.Mesh, m shading.ModelState, cam shading.CameraState, ls shading.LightingState) {
	if fb == nil || mesh == nil || len(mesh.Indices) < 3 {
		return
	}
	triCount := uint64(mesh.TriangleCount())
	if !r.visible(mesh, m, cam) {
		r.trianglesCulled.Add(triCount)
		return
	}

	// vertex stage
	outs := make([]shading.VertexOutput, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		outs[i] = r.pipeline.Vertex(v, cam, m)
	}

	tris := make([]setupTriangle, 0, triCount)
	poly := make([]shading.VertexOutput, 0, 4)
	var culled uint64
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0, i1, i2 := int(mesh.Indices[i]), int(mesh.Indices[i+1]), int(mesh.Indices[i+2])
		if i0 >= len(outs) || i1 >= len(outs) || i2 >= len(outs) {
			culled++
			continue
		}
		poly = clipNear([3]shading.VertexOutput{outs[i0], outs[i1], outs[i2]}, poly[:0])
		if len(poly) < 3 {
			culled++
			continue
		}
		// a clipped quad fans out into two triangles that share the cull decision
		kept := false
		for k := 1; k+1 < len(poly); k++ {
			if t, ok := setup(poly[0], poly[k], poly[k+1], fb.width, fb.height, r.cullBack); ok {
				tris = append(tris, t)
				kept = true
			}
		}
		if !kept {
			culled++
		}
	}
	r.trianglesCulled.Add(culled)
	r.trianglesDrawn.Add(triCount - culled)
	if len(tris) == 0 {
		return
	}

	bins := r.binTriangles(fb, tris)
	r.mu.Lock()
	pool := r.pool
	if r.closed {
		pool = nil
	}
	r.mu.Unlock()

	var wg sync.WaitGroup
	for id, b := range bins {
		if len(b.tris) == 0 {
			continue
		}
		if pool == nil {
			r.shadeTile(fb, b, tris, cam, ls)
			continue
		}
		wg.Add(1)
		tile := b
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				r.shadeTile(fb, tile, tris, cam, ls)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// visible rejects meshes whose bounding sphere lies outside the view frustum.
func (r *rasterizer) visible(mesh *model.Mesh, m shading.ModelState, cam shading.CameraState) bool {
	radius := mesh.Bounds()
	if radius <= 0 {
		return true
	}
	mat := m.Model.Mat3()
	scale := max(mat.Col(0).Len(), mat.Col(1).Len(), mat.Col(2).Len())
	center := m.Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	frustum := common.ExtractFrustum(cam.ViewProj)
	return frustum.IntersectsSphere(center, radius*scale)
}

// tileBin lists the triangles, by index and in submission order, that overlap one tile.
type tileBin struct {
	x0, y0, x1, y1 int
	tris           []int
}

// binTriangles assigns each triangle to every tile its bounding box overlaps.
func (r *rasterizer) binTriangles(fb *Framebuffer, tris []setupTriangle) []tileBin {
	ts := r.tileSize
	cols := (fb.width + ts - 1) / ts
	rows := (fb.height + ts - 1) / ts
	bins := make([]tileBin, cols*rows)
	for ty := range rows {
		for tx := range cols {
			bins[ty*cols+tx] = tileBin{
				x0: tx * ts,
				y0: ty * ts,
				x1: min((tx+1)*ts, fb.width) - 1,
				y1: min((ty+1)*ts, fb.height) - 1,
			}
		}
	}
	for i := range tris {
		t := &tris[i]
		for ty := t.minY / ts; ty <= t.maxY/ts; ty++ {
			for tx := t.minX / ts; tx <= t.maxX/ts; tx++ {
				b := &bins[ty*cols+tx]
				b.tris = append(b.tris, i)
			}
		}
	}
	return bins
}

// shadeTile scan-converts the binned triangles inside one tile, runs the depth test and
// the fragment stage, and blends surviving fragments into fb.
func (r *rasterizer) shadeTile(fb *Framebuffer, b tileBin, tris []setupTriangle, cam shading.CameraState, ls shading.LightingState) {
	var shaded uint64
	for _, ti := range b.tris {
		t := &tris[ti]
		for py := max(t.minY, b.y0); py <= min(t.maxY, b.y1); py++ {
			cy := float32(py) + 0.5
			row := py * fb.width
			for px := max(t.minX, b.x0); px <= min(t.maxX, b.x1); px++ {
				b0, b1, b2, inside := t.coverage(float32(px)+0.5, cy)
				if !inside {
					continue
				}
				frag, z := t.interpolate(b0, b1, b2)
				idx := row + px
				if z < 0 || z > 1 || !(z < fb.depth[idx]) {
					continue
				}
				fb.blend(idx, r.pipeline.Fragment(frag, cam, ls))
				fb.depth[idx] = z
				shaded++
			}
		}
	}
	r.fragmentsShaded.Add(shaded)
}
