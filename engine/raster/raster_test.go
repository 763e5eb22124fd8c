package raster

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

// unitLight passes surface colors through unchanged.
type unitLight struct{}

func (unitLight) Evaluate(_, _, _ mgl32.Vec3, _ shading.LightingState) mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}
}

// identityCamera maps world space straight to clip space with w = 1.
func identityCamera() shading.CameraState {
	return shading.CameraState{ViewProj: mgl32.Ident4()}
}

// quad builds an axis-aligned square in the xy plane at depth z.
func quad(z float32, color mgl32.Vec4, ccw bool) *model.Mesh {
	n := mgl32.Vec3{0, 0, 1}
	v := []shading.Vertex{
		{Position: mgl32.Vec3{-1, -1, z}, Normal: n, Color: color},
		{Position: mgl32.Vec3{1, -1, z}, Normal: n, Color: color},
		{Position: mgl32.Vec3{1, 1, z}, Normal: n, Color: color},
		{Position: mgl32.Vec3{-1, 1, z}, Normal: n, Color: color},
	}
	m := model.NewMesh()
	if ccw {
		m.AddQuad(v[0], v[1], v[2], v[3])
	} else {
		m.AddQuad(v[0], v[3], v[2], v[1])
	}
	return m
}

func newTestRasterizer(t *testing.T, opts ...RasterizerBuilderOption) Rasterizer {
	t.Helper()
	opts = append([]RasterizerBuilderOption{
		WithPipeline(shading.NewPipeline(shading.WithLightingModel(unitLight{}))),
		WithTileSize(4),
	}, opts...)
	r := NewRasterizer(opts...)
	t.Cleanup(r.Close)
	return r
}

func newTestFramebuffer(t *testing.T, w, h int) *Framebuffer {
	t.Helper()
	fb, err := NewFramebuffer(w, h)
	if err != nil {
		t.Fatalf("NewFramebuffer: %v", err)
	}
	return fb
}

func TestNewFramebufferInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 4}, {4, 0}, {-1, -1}} {
		if _, err := NewFramebuffer(size[0], size[1]); err == nil {
			t.Errorf("NewFramebuffer(%d, %d) should fail", size[0], size[1])
		}
	}
}

func TestFramebufferClearAndImage(t *testing.T) {
	fb := newTestFramebuffer(t, 3, 2)
	fb.Clear(mgl32.Vec4{-0.5, 0.5, 2, 1})
	if fb.Depth(1, 1) != 1 {
		t.Errorf("Depth after Clear = %v, want 1", fb.Depth(1, 1))
	}
	if got := fb.At(2, 1); got != (mgl32.Vec4{-0.5, 0.5, 2, 1}) {
		t.Errorf("At = %v, stored colors must stay unclamped", got)
	}
	if got := fb.At(5, 5); got != (mgl32.Vec4{}) {
		t.Errorf("out-of-range At = %v, want zero", got)
	}

	img := fb.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Image bounds = %v", img.Bounds())
	}
	c := img.RGBAAt(1, 1)
	if c.R != 0 || c.G != 128 || c.B != 255 || c.A != 255 {
		t.Errorf("quantized = %v, want {0 128 255 255}", c)
	}

	scaled := fb.ScaledImage(4)
	if scaled.Bounds().Dx() != 12 || scaled.Bounds().Dy() != 8 {
		t.Errorf("ScaledImage bounds = %v, want 12x8", scaled.Bounds())
	}
	if scaled.RGBAAt(11, 7) != c {
		t.Errorf("scaled pixel = %v, want %v", scaled.RGBAAt(11, 7), c)
	}
	if fb.ScaledImage(1).Bounds() != img.Bounds() {
		t.Error("scale 1 should return the unscaled image")
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{7, 255},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 255},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("Quantize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	fb := newTestFramebuffer(t, 2, 2)
	fb.Clear(mgl32.Vec4{1, 0, 0, 1})
	var buf bytes.Buffer
	if err := fb.WritePNG(&buf, 2); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("decoded width = %d, want 4", img.Bounds().Dx())
	}
	r, g, _, _ := img.At(3, 3).RGBA()
	if r != 0xffff || g != 0 {
		t.Errorf("decoded pixel r=%x g=%x, want red", r, g)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path, 1); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "out.png"), 1); err == nil {
		t.Error("SavePNG into a missing directory should fail")
	}
}

func TestClipNear(t *testing.T) {
	at := func(z float32) shading.VertexOutput {
		return shading.VertexOutput{ClipPosition: mgl32.Vec4{0, 0, z, 1}, Color: mgl32.Vec4{z, 0, 0, 1}}
	}
	tests := []struct {
		name string
		z    [3]float32
		want int
	}{
		{"all inside", [3]float32{0.1, 0.2, 0.3}, 3},
		{"on plane", [3]float32{0, 0, 0}, 3},
		{"one outside", [3]float32{-1, 0.5, 0.5}, 4},
		{"two outside", [3]float32{-1, -1, 0.5}, 3},
		{"all outside", [3]float32{-1, -0.5, -0.1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := clipNear([3]shading.VertexOutput{at(tt.z[0]), at(tt.z[1]), at(tt.z[2])}, nil)
			if len(poly) != tt.want {
				t.Fatalf("len = %d, want %d", len(poly), tt.want)
			}
			for _, v := range poly {
				if v.ClipPosition[2] < 0 {
					t.Errorf("vertex behind near plane: %v", v.ClipPosition)
				}
				// color tracks z linearly along every clipped edge
				if !near(v.Color[0], v.ClipPosition[2], eps) {
					t.Errorf("attribute %v not interpolated with z %v", v.Color[0], v.ClipPosition[2])
				}
			}
		})
	}
}

func TestDrawMeshFillsViewport(t *testing.T) {
	for _, workers := range []int{0, 3} {
		r := newTestRasterizer(t, WithWorkers(workers))
		fb := newTestFramebuffer(t, 8, 8)
		color := mgl32.Vec4{0.2, 0.4, 0.6, 1}
		r.DrawMesh(fb, quad(0.5, color, true), shading.IdentityModel(), identityCamera(), shading.LightingState{})

		for y := range 8 {
			for x := range 8 {
				if got := fb.At(x, y); !got.ApproxFuncEqual(color, within(eps)) {
					t.Fatalf("workers=%d: pixel (%d,%d) = %v, want %v", workers, x, y, got, color)
				}
				if !near(fb.Depth(x, y), 0.5, eps) {
					t.Fatalf("workers=%d: depth (%d,%d) = %v, want 0.5", workers, x, y, fb.Depth(x, y))
				}
			}
		}
		st := r.Stats()
		if st.TrianglesDrawn != 2 || st.TrianglesCulled != 0 {
			t.Errorf("workers=%d: stats = %+v, want 2 drawn", workers, st)
		}
		if st.FragmentsShaded < 64 {
			t.Errorf("workers=%d: FragmentsShaded = %d, want >= 64", workers, st.FragmentsShaded)
		}
		r.ResetStats()
		if r.Stats() != (Stats{}) {
			t.Errorf("ResetStats left %+v", r.Stats())
		}
	}
}

func TestDrawMeshBackfaceCulling(t *testing.T) {
	clear := mgl32.Vec4{0, 0, 0, 1}
	color := mgl32.Vec4{1, 1, 1, 1}

	r := newTestRasterizer(t)
	fb := newTestFramebuffer(t, 4, 4)
	fb.Clear(clear)
	r.DrawMesh(fb, quad(0.5, color, false), shading.IdentityModel(), identityCamera(), shading.LightingState{})
	if fb.At(1, 1) != clear {
		t.Errorf("clockwise quad drawn with culling enabled: %v", fb.At(1, 1))
	}
	if st := r.Stats(); st.TrianglesCulled != 2 || st.FragmentsShaded != 0 {
		t.Errorf("stats = %+v, want 2 culled", st)
	}

	r = newTestRasterizer(t, WithBackfaceCulling(false))
	r.DrawMesh(fb, quad(0.5, color, false), shading.IdentityModel(), identityCamera(), shading.LightingState{})
	if !fb.At(1, 1).ApproxFuncEqual(color, within(eps)) {
		t.Errorf("clockwise quad not drawn with culling disabled: %v", fb.At(1, 1))
	}
}

func TestDrawMeshDepthTest(t *testing.T) {
	red := mgl32.Vec4{1, 0, 0, 1}
	blue := mgl32.Vec4{0, 0, 1, 1}
	orders := map[string][]*model.Mesh{
		"near first": {quad(0.2, red, true), quad(0.6, blue, true)},
		"far first":  {quad(0.6, blue, true), quad(0.2, red, true)},
	}
	for name, meshes := range orders {
		t.Run(name, func(t *testing.T) {
			r := newTestRasterizer(t)
			fb := newTestFramebuffer(t, 4, 4)
			for _, m := range meshes {
				r.DrawMesh(fb, m, shading.IdentityModel(), identityCamera(), shading.LightingState{})
			}
			if got := fb.At(2, 2); !got.ApproxFuncEqual(red, within(eps)) {
				t.Errorf("pixel = %v, want nearer red", got)
			}
			if !near(fb.Depth(2, 2), 0.2, eps) {
				t.Errorf("depth = %v, want 0.2", fb.Depth(2, 2))
			}
		})
	}
}

func TestDrawMeshAlphaBlend(t *testing.T) {
	r := newTestRasterizer(t)
	fb := newTestFramebuffer(t, 4, 4)
	fb.Clear(mgl32.Vec4{0, 0, 0, 1})
	r.DrawMesh(fb, quad(0.5, mgl32.Vec4{1, 1, 1, 0.5}, true), shading.IdentityModel(), identityCamera(), shading.LightingState{})
	want := mgl32.Vec4{0.5, 0.5, 0.5, 1}
	if got := fb.At(0, 0); !got.ApproxFuncEqual(want, within(eps)) {
		t.Errorf("blended = %v, want %v", got, want)
	}
}

func TestDrawMeshNearClip(t *testing.T) {
	// depth runs from -0.5 at x=-1 to 0.5 at x=1, so the left half is clipped away
	n := mgl32.Vec3{0, 0, 1}
	c := mgl32.Vec4{1, 1, 1, 1}
	m := model.NewMesh()
	m.AddQuad(
		shading.Vertex{Position: mgl32.Vec3{-1, -1, -0.5}, Normal: n, Color: c},
		shading.Vertex{Position: mgl32.Vec3{1, -1, 0.5}, Normal: n, Color: c},
		shading.Vertex{Position: mgl32.Vec3{1, 1, 0.5}, Normal: n, Color: c},
		shading.Vertex{Position: mgl32.Vec3{-1, 1, -0.5}, Normal: n, Color: c},
	)
	r := newTestRasterizer(t)
	fb := newTestFramebuffer(t, 8, 8)
	r.DrawMesh(fb, m, shading.IdentityModel(), identityCamera(), shading.LightingState{})
	for x := range 8 {
		drawn := fb.At(x, 3) != (mgl32.Vec4{})
		if want := x >= 4; drawn != want {
			t.Errorf("column %d drawn = %v, want %v", x, drawn, want)
		}
		if x >= 4 && fb.Depth(x, 3) < 0 {
			t.Errorf("column %d depth %v behind near plane", x, fb.Depth(x, 3))
		}
	}
}

func TestDrawMeshFrustumReject(t *testing.T) {
	r := newTestRasterizer(t)
	fb := newTestFramebuffer(t, 4, 4)
	m := shading.ModelState{Model: mgl32.Translate3D(10, 0, 0)}
	r.DrawMesh(fb, quad(0.5, mgl32.Vec4{1, 1, 1, 1}, true), m, identityCamera(), shading.LightingState{})
	if st := r.Stats(); st.TrianglesCulled != 2 || st.TrianglesDrawn != 0 || st.FragmentsShaded != 0 {
		t.Errorf("stats = %+v, want the whole mesh culled", st)
	}
	r.DrawMesh(fb, nil, m, identityCamera(), shading.LightingState{})
	r.DrawMesh(nil, quad(0.5, mgl32.Vec4{}, true), m, identityCamera(), shading.LightingState{})
}

func TestDrawMeshParallelMatchesSerial(t *testing.T) {
	eye := mgl32.Vec3{0, 3.2, 6.5}
	proj := common.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	view := mgl32.LookAtV(eye, mgl32.Vec3{0, 0.75, 0}, mgl32.Vec3{0, 1, 0})
	cam := shading.CameraState{ViewProj: proj.Mul4(view), Position: eye}
	ls := shading.LightingState{
		NumLights:    1,
		RoomDarkness: 1,
	}
	ls.Lights[0] = shading.PointLight{Position: mgl32.Vec3{0, 1.5, 0}, Intensity: 2.5}

	box := model.NewBox(2, 1, 1.5, mgl32.Vec4{0.55, 0.35, 0.17, 1}, 0.5)
	sphere := model.NewSphere(0.6, 12, 8, mgl32.Vec4{0.2, 0.4, 0.9, 0.7}, 1.4)
	models := []shading.ModelState{
		{Model: mgl32.HomogRotate3DY(0.4)},
		{Model: mgl32.Translate3D(0.3, 0, 0.2)},
	}

	render := func(workers int) *Framebuffer {
		r := NewRasterizer(WithWorkers(workers), WithTileSize(8))
		defer r.Close()
		fb := newTestFramebuffer(t, 48, 48)
		fb.Clear(shading.FogColor(ls.RoomDarkness).Vec4(1))
		r.DrawMesh(fb, box, models[0], cam, ls)
		r.DrawMesh(fb, sphere, models[1], cam, ls)
		if r.Stats().FragmentsShaded == 0 {
			t.Fatalf("workers=%d: nothing shaded", workers)
		}
		return fb
	}

	serial, parallel := render(0), render(4)
	for y := range 48 {
		for x := range 48 {
			if serial.At(x, y) != parallel.At(x, y) || serial.Depth(x, y) != parallel.Depth(x, y) {
				t.Fatalf("pixel (%d,%d): serial %v, parallel %v", x, y, serial.At(x, y), parallel.At(x, y))
			}
		}
	}
}

func TestDrawMeshAfterClose(t *testing.T) {
	r := newTestRasterizer(t, WithWorkers(2))
	r.Close()
	r.Close()
	fb := newTestFramebuffer(t, 4, 4)
	color := mgl32.Vec4{0, 1, 0, 1}
	r.DrawMesh(fb, quad(0.5, color, true), shading.IdentityModel(), identityCamera(), shading.LightingState{})
	if !fb.At(1, 2).ApproxFuncEqual(color, within(eps)) {
		t.Errorf("pixel = %v, want %v after Close", fb.At(1, 2), color)
	}
}

func TestInterpolatePerspectiveCorrect(t *testing.T) {
	// two vertices at w=1 and one at w=4; the midpoint of the w=1/w=4 edge in screen
	// space sits at 1/5 of the way in world space
	out := func(x, y, w, attr float32) shading.VertexOutput {
		return shading.VertexOutput{
			ClipPosition:  mgl32.Vec4{x * w, y * w, 0.5 * w, w},
			WorldPosition: mgl32.Vec3{attr, 0, 0},
			Color:         mgl32.Vec4{attr, 0, 0, 1},
		}
	}
	tri, ok := setup(out(-1, -1, 1, 0), out(1, -1, 4, 1), out(-1, 1, 1, 0), 8, 8, false)
	if !ok {
		t.Fatal("setup rejected a visible triangle")
	}
	// find the vertex order after setup
	var iA, iB = -1, -1
	for i, v := range tri.v {
		if v.invW == 1 && v.x == 0 && v.y == 8 {
			iA = i
		}
		if v.invW == 0.25 {
			iB = i
		}
	}
	if iA < 0 || iB < 0 {
		t.Fatalf("unexpected setup vertices: %+v", tri.v)
	}
	var b [3]float32
	b[iA], b[iB] = 0.5, 0.5
	frag, z := tri.interpolate(b[0], b[1], b[2])
	if !near(frag.WorldPosition[0], 0.2, eps) {
		t.Errorf("world x = %v, want 0.2", frag.WorldPosition[0])
	}
	if !near(frag.Color[3], 1, eps) {
		t.Errorf("alpha = %v, want 1", frag.Color[3])
	}
	if !near(z, 0.5, eps) {
		t.Errorf("z = %v, want 0.5", z)
	}
}

// near compares with an absolute tolerance so expected zeros survive float noise.
func near(a, b, tol float32) bool {
	return mgl32.Abs(a-b) <= tol
}

func within(tol float32) func(a, b float32) bool {
	return func(a, b float32) bool { return near(a, b, tol) }
}
