package bind_group_provider

import (
	"bytes"
	"slices"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func testLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "frame",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 16},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 8},
			},
		},
	}
}

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider(WithLabel("frame"), WithGroup(1), WithLayout(testLayout()))

	if p.Label() != "frame" || p.Group() != 1 {
		t.Errorf("label/group = %q/%d, want frame/1", p.Label(), p.Group())
	}
	if got := p.Bindings(); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("Bindings = %v, want [0 2]", got)
	}
	if got := len(p.Buffer(0)); got != 16 {
		t.Errorf("len(Buffer(0)) = %d, want 16", got)
	}
	if p.Buffer(1) != nil {
		t.Error("Buffer(1) should be nil for an unused binding")
	}
	if len(p.LayoutDescriptor().Entries) != 2 {
		t.Error("LayoutDescriptor lost its entries")
	}
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name    string
		binding int
		offset  uint64
		data    []byte
		changed bool
		wantErr bool
	}{
		{"full buffer", 0, 0, bytes.Repeat([]byte{1}, 16), true, false},
		{"tail", 2, 4, []byte{9, 9, 9, 9}, true, false},
		{"zeros are unchanged", 0, 0, make([]byte, 16), false, false},
		{"overrun", 2, 6, []byte{1, 2, 3}, false, true},
		{"unknown binding", 5, 0, []byte{1}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBindGroupProvider(WithLayout(testLayout()))
			changed, err := p.Write(tt.binding, tt.offset, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Write error = %v, wantErr %v", err, tt.wantErr)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if tt.changed {
				got := p.Buffer(tt.binding)[tt.offset : tt.offset+uint64(len(tt.data))]
				if !bytes.Equal(got, tt.data) {
					t.Errorf("buffer = %v, want %v", got, tt.data)
				}
			}
		})
	}
}

func TestFlushDedupsUnchangedWrites(t *testing.T) {
	p := NewBindGroupProvider(WithLayout(testLayout()))
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	if _, err := p.Write(2, 0, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := p.Write(2, 0, data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if p.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", p.Pending())
	}

	data[0] = 42
	writes := p.Flush()
	if len(writes) != 1 {
		t.Fatalf("Flush returned %d writes, want 1", len(writes))
	}
	w := writes[0]
	if w.Provider != p || w.Binding != 2 || w.Offset != 0 {
		t.Errorf("write = %+v", w)
	}
	if w.Data[0] != 1 {
		t.Error("queued write should not alias the caller's slice")
	}
	if p.Pending() != 0 || len(p.Flush()) != 0 {
		t.Error("Flush should clear the queue")
	}
}

func TestRelease(t *testing.T) {
	p := NewBindGroupProvider(WithLayout(testLayout()))
	if _, err := p.Write(0, 0, []byte{1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	p.Release()

	if p.Pending() != 0 || len(p.Bindings()) != 0 {
		t.Error("Release should drop buffers and pending writes")
	}
	if _, err := p.Write(0, 0, []byte{1}); err == nil {
		t.Error("expected an error writing after Release")
	}
}
