package shader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

const minimalVertexShader = `@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(f32(idx), 0.0, 0.0, 1.0);
}
`

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    AnnotationType
		wantNil bool
		wantErr string
	}{
		{name: "plain line", line: "let x = 1.0;", wantNil: true},
		{name: "include", line: "//@oxy:include camera", want: annotationTypeInclude},
		{name: "group", line: "//@oxy:group 0 1 storage_uniform lighting lighting", want: AnnotationTypeBindingGroup},
		{name: "provider", line: "  //@oxy:provider 1 0 model", want: AnnotationTypeProvider},
		{name: "empty", line: "//@oxy:", wantErr: "empty"},
		{name: "unknown type", line: "//@oxy:texture 0 0", wantErr: "unknown @oxy annotation type"},
		{name: "include arity", line: "//@oxy:include", wantErr: "exactly one argument"},
		{name: "include unknown struct", line: "//@oxy:include mesh", wantErr: "unknown struct type"},
		{name: "group arity", line: "//@oxy:group 0 0 storage_uniform camera", wantErr: "exactly five arguments"},
		{name: "group bad number", line: "//@oxy:group a 0 storage_uniform camera camera", wantErr: "invalid group number"},
		{name: "group bad binding", line: "//@oxy:group 0 b storage_uniform camera camera", wantErr: "invalid binding number"},
		{name: "group address space", line: "//@oxy:group 0 0 push_constant camera camera", wantErr: "unknown address space"},
		{name: "provider arity", line: "//@oxy:provider 0 0", wantErr: "exactly three arguments"},
		{name: "provider identity", line: "//@oxy:provider 0 0 animator", wantErr: "unknown provider identity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseAnnotation(tt.line, 7)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) || !strings.Contains(err.Error(), "line 7") {
					t.Errorf("error = %q, want %q with line number", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if a != nil {
					t.Errorf("expected nil annotation, got %+v", a)
				}
				return
			}
			if a.Type != tt.want {
				t.Errorf("Type = %q, want %q", a.Type, tt.want)
			}
		})
	}
}

func TestPreProcessorProcess(t *testing.T) {
	pp := NewPreProcessor()
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:include camera",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"//@oxy:group 2 3 storage_read objects array<model_data>",
		"//@oxy:provider 0 0 camera",
	}, "\n")
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := strings.Count(out, "struct CameraUniform"); n != 1 {
		t.Errorf("CameraUniform declared %d times, want 1", n)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Errorf("missing camera binding in:\n%s", out)
	}
	if !strings.Contains(out, "@group(2) @binding(3) var<storage, read> objects: array<ModelData>;") {
		t.Errorf("missing storage binding in:\n%s", out)
	}
	if strings.Contains(out, annotationPrefix) {
		t.Errorf("annotations left in output:\n%s", out)
	}
	decls := pp.Declarations()
	if len(decls) != 3 {
		t.Fatalf("len(Declarations()) = %d, want 3", len(decls))
	}
	if decls[2].Type != AnnotationTypeProvider || decls[2].Args[0] != AnnotationArgCamera {
		t.Errorf("last declaration = %+v, want camera provider", decls[2])
	}

	// declarations reset between calls
	if _, err := pp.Process("fn f() {}"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pp.Declarations()) != 0 {
		t.Errorf("declarations not reset: %+v", pp.Declarations())
	}
}

func TestPreProcessorProcessError(t *testing.T) {
	_, err := NewPreProcessor().Process("fn f() {}\n//@oxy:include nothing")
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error = %v, want line 2 failure", err)
	}
}

func TestPreProcessorProviderChecks(t *testing.T) {
	tests := []struct {
		name    string
		src     []string
		wantErr string
	}{
		{
			name: "matching",
			src:  []string{"//@oxy:group 1 0 storage_read objects array<model_data>", "//@oxy:provider 1 0 model"},
		},
		{
			name:    "undeclared binding",
			src:     []string{"//@oxy:provider 0 0 camera"},
			wantErr: "no @oxy:group declaration",
		},
		{
			name:    "wrong struct",
			src:     []string{"//@oxy:group 0 1 storage_uniform camera camera", "//@oxy:provider 0 1 lighting"},
			wantErr: "needs a lighting binding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreProcessor().Process(strings.Join(tt.src, "\n"))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Process: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewDeskShaders(t *testing.T) {
	vs, fs, err := NewDeskShaders()
	if err != nil {
		t.Fatalf("NewDeskShaders: %v", err)
	}

	if vs.EntryPoint() != "vs_main" || fs.EntryPoint() != "fs_main" {
		t.Errorf("entry points = %q, %q", vs.EntryPoint(), fs.EntryPoint())
	}
	if vs.ShaderType() != ShaderTypeVertex || fs.ShaderType() != ShaderTypeFragment {
		t.Errorf("shader types = %v, %v", vs.ShaderType(), fs.ShaderType())
	}
	if vs.Module() == nil || vs.Module().WGSLDescriptor.Code != vs.Source() {
		t.Error("module descriptor should carry the processed source")
	}
	if len(vs.Declarations()) != 6 {
		t.Errorf("len(Declarations()) = %d, want 6", len(vs.Declarations()))
	}

	layouts := vs.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("len(VertexLayouts()) = %d, want 1", len(layouts))
	}
	layout := vs.VertexLayout(0)[0]
	if layout.ArrayStride != 40 {
		t.Errorf("ArrayStride = %d, want 40", layout.ArrayStride)
	}
	wantAttrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
	}
	if len(layout.Attributes) != len(wantAttrs) {
		t.Fatalf("len(Attributes) = %d, want %d", len(layout.Attributes), len(wantAttrs))
	}
	for i, want := range wantAttrs {
		if layout.Attributes[i] != want {
			t.Errorf("Attributes[%d] = %+v, want %+v", i, layout.Attributes[i], want)
		}
	}
	if len(fs.VertexLayouts()) != 0 {
		t.Error("fragment shader should not carry vertex layouts")
	}

	bindings := []struct {
		group, binding int
		varName        string
		minSize        uint64
	}{
		{0, 0, "camera", 80},
		{0, 1, "lighting", 144},
		{1, 0, "object", 64},
	}
	for _, b := range bindings {
		if got := vs.BindGroupVarName(b.group, b.binding); got != b.varName {
			t.Errorf("BindGroupVarName(%d, %d) = %q, want %q", b.group, b.binding, got, b.varName)
		}
		if got, ok := fs.BindGroupFromVarName(b.group, b.varName); !ok || got != b.binding {
			t.Errorf("BindGroupFromVarName(%d, %q) = %d, %v", b.group, b.varName, got, ok)
		}
		var entry *wgpu.BindGroupLayoutEntry
		desc := vs.BindGroupLayoutDescriptor(b.group)
		for i := range desc.Entries {
			if int(desc.Entries[i].Binding) == b.binding {
				entry = &desc.Entries[i]
			}
		}
		if entry == nil {
			t.Errorf("no layout entry for group %d binding %d", b.group, b.binding)
			continue
		}
		if entry.Buffer.Type != wgpu.BufferBindingTypeUniform {
			t.Errorf("%s: buffer type = %v, want uniform", b.varName, entry.Buffer.Type)
		}
		if entry.Buffer.MinBindingSize != b.minSize {
			t.Errorf("%s: MinBindingSize = %d, want %d", b.varName, entry.Buffer.MinBindingSize, b.minSize)
		}
		if entry.Visibility != wgpu.ShaderStageVertex {
			t.Errorf("%s: visibility = %v, want vertex", b.varName, entry.Visibility)
		}
	}
	if fs.BindGroupLayoutDescriptor(0).Entries[0].Visibility != wgpu.ShaderStageFragment {
		t.Error("fragment shader entries should be fragment-visible")
	}
	if _, ok := vs.BindGroupFromVarName(3, "camera"); ok {
		t.Error("unknown group should not resolve")
	}
}

func TestNewShaderErrors(t *testing.T) {
	if _, err := NewShader("empty", ShaderTypeVertex, ""); err == nil {
		t.Error("empty source should fail")
	}
	if _, err := NewShader("no_fragment", ShaderTypeFragment, minimalVertexShader); err == nil {
		t.Error("missing fragment entry point should fail")
	}
	if _, err := NewShader("bad", ShaderTypeVertex, "//@oxy:include lamp\n"+minimalVertexShader); err == nil {
		t.Error("bad annotation should fail")
	}
	if _, err := NewShader("bad_type", ShaderType(9), minimalVertexShader); err == nil {
		t.Error("unknown shader type should fail")
	}
}

func TestNewShaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.wgsl")
	if err := os.WriteFile(path, []byte(minimalVertexShader), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewShaderFromFile("minimal", ShaderTypeVertex, path)
	if err != nil {
		t.Fatalf("NewShaderFromFile: %v", err)
	}
	if s.Key() != "minimal" || s.EntryPoint() != "vs_main" {
		t.Errorf("Key/EntryPoint = %q/%q", s.Key(), s.EntryPoint())
	}
	if _, err := NewShaderFromFile("missing", ShaderTypeVertex, filepath.Join(t.TempDir(), "nope.wgsl")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestCompileSPIRV(t *testing.T) {
	spv, err := CompileSPIRV(minimalVertexShader)
	if err != nil {
		t.Fatalf("CompileSPIRV: %v", err)
	}
	if len(spv) < 20 || len(spv)%4 != 0 {
		t.Fatalf("SPIR-V length = %d, want a whole number of words past the header", len(spv))
	}
	if magic := binary.LittleEndian.Uint32(spv[:4]); magic != SPIRVMagic {
		t.Errorf("magic = %#x, want %#x", magic, SPIRVMagic)
	}

	if _, err := CompileSPIRV("fn broken( {"); err == nil {
		t.Error("invalid WGSL should fail to compile")
	}
}

func TestDeskShaderSPIRV(t *testing.T) {
	vs, _, err := NewDeskShaders()
	if err != nil {
		t.Fatalf("NewDeskShaders: %v", err)
	}
	spv, err := vs.SPIRV()
	if err != nil {
		// the naga port does not cover every WGSL construct yet
		t.Skipf("desk shader not compilable by naga: %v", err)
	}
	if magic := binary.LittleEndian.Uint32(spv[:4]); magic != SPIRVMagic {
		t.Errorf("magic = %#x, want %#x", magic, SPIRVMagic)
	}
}
