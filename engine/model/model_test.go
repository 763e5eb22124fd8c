package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

func testVertex(x, y, z float32) shading.Vertex {
	return shading.Vertex{Position: mgl32.Vec3{x, y, z}, Normal: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec4{1, 1, 1, 1}}
}

func TestMeshAddQuadAndTriangle(t *testing.T) {
	m := NewMesh()
	m.AddTriangle(testVertex(0, 0, 0), testVertex(1, 0, 0), testVertex(0, 1, 0))
	m.AddQuad(testVertex(0, 0, 0), testVertex(1, 0, 0), testVertex(1, 1, 0), testVertex(0, 1, 0))

	want := []uint16{0, 1, 2, 3, 4, 5, 3, 5, 6}
	if len(m.Indices) != len(want) {
		t.Fatalf("len(Indices) = %d, want %d", len(m.Indices), len(want))
	}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Errorf("Indices[%d] = %d, want %d", i, m.Indices[i], want[i])
		}
	}
	if m.TriangleCount() != 3 {
		t.Errorf("TriangleCount() = %d, want 3", m.TriangleCount())
	}
}

func TestMeshMergeRebasesIndices(t *testing.T) {
	a := NewMesh()
	a.AddTriangle(testVertex(0, 0, 0), testVertex(1, 0, 0), testVertex(0, 1, 0))
	b := NewMesh()
	b.AddQuad(testVertex(0, 0, 0), testVertex(1, 0, 0), testVertex(1, 1, 0), testVertex(0, 1, 0))

	a.Merge(b)
	a.Merge(nil)

	if len(a.Vertices) != 7 {
		t.Fatalf("len(Vertices) = %d, want 7", len(a.Vertices))
	}
	for i, want := range []uint16{3, 4, 5, 3, 5, 6} {
		if got := a.Indices[3+i]; got != want {
			t.Errorf("merged index %d = %d, want %d", i, got, want)
		}
	}
	if b.Indices[0] != 0 {
		t.Error("Merge must not modify its argument")
	}
}

func TestMeshTransformRotatesNormals(t *testing.T) {
	m := NewMesh()
	m.AddTriangle(testVertex(0, 1, 0), testVertex(1, 1, 0), testVertex(0, 1, 1))

	m.Transform(mgl32.Translate3D(0, 2, 0).Mul4(mgl32.HomogRotate3DX(math.Pi / 2)).Mul4(mgl32.Scale3D(3, 3, 3)))

	v := m.Vertices[0]
	if !v.Position.ApproxFuncEqual(mgl32.Vec3{0, 2, 3}, within(1e-5)) {
		t.Errorf("Position = %v, want (0, 2, 3)", v.Position)
	}
	if !v.Normal.ApproxFuncEqual(mgl32.Vec3{0, 0, 1}, within(1e-5)) {
		t.Errorf("Normal = %v, want (0, 0, 1)", v.Normal)
	}
	if l := v.Normal.Len(); !near(l, 1, 1e-5) {
		t.Errorf("|Normal| = %v, want 1", l)
	}
}

func TestMeshBounds(t *testing.T) {
	if r := NewMesh().Bounds(); r != 0 {
		t.Errorf("empty Bounds() = %v, want 0", r)
	}
	s := NewSphere(0.5, 8, 6, mgl32.Vec4{1, 1, 1, 1}, 0)
	if r := s.Bounds(); !near(r, 0.5, 1e-5) {
		t.Errorf("sphere Bounds() = %v, want 0.5", r)
	}
	b := NewBox(2, 2, 2, mgl32.Vec4{1, 1, 1, 1}, -1)
	if r := b.Bounds(); !near(r, float32(math.Sqrt(3)), 1e-5) {
		t.Errorf("cube Bounds() = %v, want sqrt(3)", r)
	}
}

// assertOutwardWinding checks that every non-degenerate triangle winds
// counter-clockwise around its vertex normals.
func assertOutwardWinding(t *testing.T, name string, m *Mesh) {
	t.Helper()
	for i := range m.TriangleCount() {
		a, b, c := m.Triangle(i)
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if face.Len() < 1e-9 {
			continue
		}
		n := a.Normal.Add(b.Normal).Add(c.Normal)
		if face.Dot(n) <= 0 {
			t.Errorf("%s: triangle %d winds against its normals (face %v, normal %v)", name, i, face, n)
			return
		}
	}
}

func TestPrimitiveWinding(t *testing.T) {
	white := mgl32.Vec4{1, 1, 1, 1}
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"box", NewBox(1, 2, 3, white, 0.5)},
		{"cylinder", NewCylinder(0.5, 1, 12, white, 0, true, true)},
		{"sphere", NewSphere(1, 16, 12, white, 0.25)},
		{"plane", NewPlane(5, 0, white)},
		{"desk", NewDesk(10, 7, 0.75, 0x8b5a2b)},
		{"floor", NewFloor(50, 0x2d2d44)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertOutwardWinding(t, tt.name, tt.mesh)
		})
	}
}

func TestObjectMeshes(t *testing.T) {
	for _, typ := range ObjectTypes() {
		t.Run(typ.String(), func(t *testing.T) {
			m, err := NewObjectMesh(typ, typ.DefaultColor(), typ.DefaultAccentColor(), true)
			if err != nil {
				t.Fatalf("NewObjectMesh(%v) error: %v", typ, err)
			}
			if m.TriangleCount() == 0 {
				t.Fatal("mesh has no triangles")
			}
			if len(m.Vertices) > MaxMeshVertices {
				t.Fatalf("mesh has %d vertices, more than 16-bit indices can address", len(m.Vertices))
			}
			assertOutwardWinding(t, typ.String(), m)
		})
	}

	if _, err := NewObjectMesh(ObjectType(99), 0, 0, false); err == nil {
		t.Error("NewObjectMesh(unknown) should fail")
	}
	if got := ObjectType(99).String(); got != "ObjectType(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLampGlowDimmedWhenOff(t *testing.T) {
	on := NewLamp(0x4f46e5, 0xfef3c7, true)
	off := NewLamp(0x4f46e5, 0xfef3c7, false)
	last := len(on.Vertices) - 1
	gOn, gOff := on.Vertices[last].Color, off.Vertices[last].Color
	if !near(gOff[0], gOn[0]*LampGlowDim, 1e-6) {
		t.Errorf("glow red off = %v, want %v", gOff[0], gOn[0]*LampGlowDim)
	}
	if gOff[3] != 1 {
		t.Errorf("glow alpha off = %v, want 1", gOff[3])
	}
}

func TestBoxFaceShading(t *testing.T) {
	m := NewBox(1, 1, 1, mgl32.Vec4{1, 1, 1, 0.5}, 0)
	// Faces are emitted front, back, right, left, top, bottom; four vertices each.
	want := []float32{0.9, 0.8, 0.85, 0.75, 1, 0.7}
	for face, w := range want {
		c := m.Vertices[face*4].Color
		if c[0] != w || c[3] != 0.5 {
			t.Errorf("face %d color = %v, want rgb %v alpha 0.5", face, c, w)
		}
	}
}

func TestGPUVertexLayout(t *testing.T) {
	var v GPUVertex
	if v.Size() != GPUVertexStride {
		t.Fatalf("GPUVertex.Size() = %d, want %d", v.Size(), GPUVertexStride)
	}

	v = ToGPUVertex(shading.Vertex{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{4, 5, 6},
		Color:    mgl32.Vec4{7, 8, 9, 10},
	})
	buf := v.Marshal()
	for i := range 10 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		if got != float32(i+1) {
			t.Errorf("float %d = %v, want %v", i, got, i+1)
		}
	}

	layout := VertexBufferLayout()
	if layout.ArrayStride != GPUVertexStride {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, GPUVertexStride)
	}
	wantOffsets := []uint64{0, 12, 24}
	for i, a := range layout.Attributes {
		if a.Offset != wantOffsets[i] || a.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d = offset %d location %d", i, a.Offset, a.ShaderLocation)
		}
	}
}

func TestMarshalIndicesPadding(t *testing.T) {
	buf := MarshalIndices([]uint16{1, 2, 3})
	if len(buf) != 8 {
		t.Fatalf("len = %d, want 8", len(buf))
	}
	if binary.LittleEndian.Uint16(buf[4:]) != 3 {
		t.Errorf("third index = %d, want 3", binary.LittleEndian.Uint16(buf[4:]))
	}
}

func TestGPUModelData(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: 2}
	g := ToGPUModelData(tr.ModelState())
	if g.Size() != 64 {
		t.Fatalf("Size() = %d, want 64", g.Size())
	}
	buf := g.Marshal()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])); got != 2 {
		t.Errorf("m[0] = %v, want 2", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12*4:])); got != 1 {
		t.Errorf("m[12] = %v, want 1", got)
	}
}

func TestIdentityTransform(t *testing.T) {
	if got := IdentityTransform().Matrix(); !got.ApproxFuncEqual(mgl32.Ident4(), within(1e-6)) {
		t.Errorf("IdentityTransform().Matrix() = %v", got)
	}
}

func TestModelSerializesLazily(t *testing.T) {
	mesh := NewBox(1, 1, 1, mgl32.Vec4{1, 0, 0, 1}, 0)
	m := NewModel(WithName("box"), WithMesh(mesh))
	if m.Name() != "box" {
		t.Errorf("Name() = %q", m.Name())
	}
	if got, want := len(m.VertexData()), len(mesh.Vertices)*GPUVertexStride; got != want {
		t.Errorf("len(VertexData()) = %d, want %d", got, want)
	}
	if m.IndexCount() != 36 {
		t.Errorf("IndexCount() = %d, want 36", m.IndexCount())
	}

	m.SetMesh(NewPlane(1, 0, mgl32.Vec4{1, 1, 1, 1}))
	if got := len(m.VertexData()); got != 4*GPUVertexStride {
		t.Errorf("after SetMesh len(VertexData()) = %d, want %d", got, 4*GPUVertexStride)
	}
	if got := len(m.IndexData()); got != 12 {
		t.Errorf("after SetMesh len(IndexData()) = %d, want 12", got)
	}

	m.SetMesh(nil)
	if m.Mesh() == nil || m.IndexCount() != 0 {
		t.Error("SetMesh(nil) should install an empty mesh")
	}
}

// near compares with an absolute tolerance so expected zeros survive float noise.
func near(a, b, tol float32) bool {
	return mgl32.Abs(a-b) <= tol
}

func within(tol float32) func(a, b float32) bool {
	return func(a, b float32) bool { return near(a, b, tol) }
}

func TestObjectPhysics(t *testing.T) {
	for _, typ := range ObjectTypes() {
		if _, ok := objectPhysics[typ]; !ok {
			t.Errorf("%v has no physics entry", typ)
		}
		p := typ.Physics()
		if p.Height <= 0 || p.Weight <= 0 {
			t.Errorf("%v physics = %+v, want positive height and weight", typ, p)
		}
		if p.Stability < 0 || p.Stability > 1 || p.Friction < 0 || p.Friction > 1 {
			t.Errorf("%v physics = %+v, stability and friction must lie in [0,1]", typ, p)
		}
	}

	for _, typ := range []ObjectType{ObjectClock, ObjectPhotoFrame} {
		if !typ.Physics().NoStackingOnTop {
			t.Errorf("%v should refuse stacking", typ)
		}
	}
	if ObjectBooks.Physics().NoStackingOnTop {
		t.Error("books should accept stacking")
	}
	if got := ObjectGlobe.Physics().BaseOffset; got != 0.025 {
		t.Errorf("globe base offset = %v, want 0.025", got)
	}
	if got := ObjectType(99).Physics(); got.Height <= 0 || got.NoStackingOnTop {
		t.Errorf("unknown type physics = %+v", got)
	}
}

func TestLaptopLidStandsUp(t *testing.T) {
	m := NewLaptop(ObjectLaptop.DefaultColor(), ObjectLaptop.DefaultAccentColor())
	var top float32
	for _, v := range m.Vertices {
		top = max(top, v.Position.Y())
	}
	// base is 0.02 thick; an opened 0.25 lid reaches well above it
	if top < 0.2 {
		t.Errorf("laptop top = %v, want the lid raised above 0.2", top)
	}
}
