package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestPrimitiveLayout(t *testing.T) {
	tests := []struct {
		typeName string
		want     wgslLayout
		ok       bool
	}{
		{"f32", wgslLayout{4, 4}, true},
		{"bool", wgslLayout{4, 4}, true},
		{"vec2f", wgslLayout{8, 8}, true},
		{"vec3<f32>", wgslLayout{12, 16}, true},
		{"vec3u", wgslLayout{12, 16}, true},
		{"vec4<i32>", wgslLayout{16, 16}, true},
		{"mat2x2<f32>", wgslLayout{16, 8}, true},
		{"mat3x3<f32>", wgslLayout{48, 16}, true},
		{"mat4x3f", wgslLayout{64, 16}, true},
		{"mat4x4<f32>", wgslLayout{64, 16}, true},
		{"vec5f", wgslLayout{}, false},
		{"vec3<f16>", wgslLayout{}, false},
		{"mat4x4<f16>", wgslLayout{}, false},
		{"CameraUniform", wgslLayout{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			got, ok := primitiveLayout(tt.typeName)
			if ok != tt.ok || got != tt.want {
				t.Errorf("primitiveLayout(%q) = %+v, %v; want %+v, %v", tt.typeName, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestStructLayouts(t *testing.T) {
	src := `
struct Lighting {
    point_lights: array<vec4<f32>, 8>,
    num_lights: u32,
    room_darkness: f32,
    _padding: vec2<f32>,
};
struct Outer {
    a: f32,
    inner: Inner,
};
struct Inner {
    v: vec3<f32>,
};
struct Dynamic {
    count: u32,
    items: array<vec4<f32>>,
};
`
	m := parseWGSL(src)
	tests := []struct {
		name string
		want wgslLayout
	}{
		{"Lighting", wgslLayout{144, 16}},
		{"Inner", wgslLayout{16, 16}},
		{"Outer", wgslLayout{32, 16}},
		{"Dynamic", wgslLayout{16, 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.typeLayout(tt.name)
			if !ok || got != tt.want {
				t.Errorf("layout = %+v, %v; want %+v", got, ok, tt.want)
			}
		})
	}

	if got, ok := m.typeLayout("array<Inner, 3>"); !ok || got.size != 48 {
		t.Errorf("array<Inner, 3> = %+v, %v; want size 48", got, ok)
	}
	if got, ok := m.typeLayout("array<Inner>"); !ok || got.size != 16 {
		t.Errorf("array<Inner> = %+v, %v; want one element stride", got, ok)
	}
	if _, ok := m.typeLayout("array<Missing, 2>"); ok {
		t.Error("unknown element type should not resolve")
	}
}

func TestVertexLayoutsFollowEntryPoint(t *testing.T) {
	src := `
struct Unused {
    @location(0) a: vec4<f32>,
};
struct Mesh {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
};
struct Instance {
    @location(4) offset: vec3<f32>,
    @location(5) id: u32,
};
@vertex
fn main(@builtin(vertex_index) idx: u32, mesh: Mesh, inst: Instance) -> @builtin(position) vec4<f32> {
    return vec4<f32>(mesh.position + inst.offset, 1.0);
}
`
	m := parseWGSL(src)
	if m.entryPoint(ShaderTypeVertex) != "main" {
		t.Fatalf("entry point = %q, want main", m.entryPoint(ShaderTypeVertex))
	}
	layouts, err := m.vertexLayouts()
	if err != nil {
		t.Fatalf("vertexLayouts: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("len(layouts) = %d, want 2", len(layouts))
	}
	mesh, inst := layouts[0][0], layouts[1][0]
	if mesh.ArrayStride != 20 || inst.ArrayStride != 16 {
		t.Errorf("strides = %d, %d; want 20, 16", mesh.ArrayStride, inst.ArrayStride)
	}
	want := wgpu.VertexAttribute{Format: wgpu.VertexFormatUint32, Offset: 12, ShaderLocation: 5}
	if inst.Attributes[1] != want {
		t.Errorf("instance id attribute = %+v, want %+v", inst.Attributes[1], want)
	}
}

func TestVertexLayoutsRejectUnknownFormat(t *testing.T) {
	src := `
struct In {
    @location(0) m: mat2x2<f32>,
};
@vertex
fn vs(input: In) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0);
}
`
	if _, err := parseWGSL(src).vertexLayouts(); err == nil {
		t.Error("expected an error for a matrix vertex input")
	}
}

func TestBindGroupLayouts(t *testing.T) {
	src := `
struct Params { scale: f32, };
@group(1) @binding(2) var<storage, read_write> out: array<vec4<f32>>;
@group(1) @binding(0) var<uniform> params: Params;
@group(1) @binding(1) var<storage, read> items: array<Params, 4>;
@group(0) @binding(0) var samp: sampler;
`
	layouts, names, err := parseWGSL(src).bindGroupLayouts(wgpu.ShaderStageFragment)
	if err != nil {
		t.Fatalf("bindGroupLayouts: %v", err)
	}
	g1 := layouts[1].Entries
	if len(g1) != 3 {
		t.Fatalf("group 1 entries = %d, want 3", len(g1))
	}
	tests := []struct {
		typ     wgpu.BufferBindingType
		minSize uint64
	}{
		{wgpu.BufferBindingTypeUniform, 4},
		{wgpu.BufferBindingTypeReadOnlyStorage, 16},
		{wgpu.BufferBindingTypeStorage, 16},
	}
	for i, tt := range tests {
		if g1[i].Binding != uint32(i) {
			t.Errorf("entry %d has binding %d", i, g1[i].Binding)
		}
		if g1[i].Buffer.Type != tt.typ || g1[i].Buffer.MinBindingSize != tt.minSize {
			t.Errorf("binding %d = %v/%d, want %v/%d", i, g1[i].Buffer.Type, g1[i].Buffer.MinBindingSize, tt.typ, tt.minSize)
		}
		if g1[i].Visibility != wgpu.ShaderStageFragment {
			t.Errorf("binding %d visibility = %v", i, g1[i].Visibility)
		}
	}
	if layouts[0].Entries[0].Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Error("sampler binding not classified")
	}
	if names[1][2] != "out" || names[0][0] != "samp" {
		t.Errorf("names = %v", names)
	}
}

func TestBindGroupLayoutsDuplicate(t *testing.T) {
	src := `
@group(0) @binding(0) var<uniform> a: f32;
@group(0) @binding(0) var<uniform> b: f32;
`
	_, _, err := parseWGSL(src).bindGroupLayouts(wgpu.ShaderStageVertex)
	if err == nil || !strings.Contains(err.Error(), "a and b") {
		t.Errorf("error = %v, want duplicate binding", err)
	}
}

func TestStripComments(t *testing.T) {
	src := "a /* one /* two */ still */ b // tail\nc /* x\ny */ d"
	got := stripComments(src)
	want := "a  b \nc \n d"
	if got != want {
		t.Errorf("stripComments = %q, want %q", got, want)
	}
}
