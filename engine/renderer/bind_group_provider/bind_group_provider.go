package bind_group_provider

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	mu *sync.Mutex

	// label is a debug label added for convenience.
	label string
	// group is the @group index this provider binds to.
	group int
	// layout describes the bindings staged by this provider.
	layout wgpu.BindGroupLayoutDescriptor

	// buffers holds the CPU copy of each uniform buffer, keyed by binding index and sized from
	// the layout entry's MinBindingSize.
	buffers map[int][]byte
	// pending collects writes not yet taken by Flush, in submission order.
	pending []BufferWrite
	// released is set by Release; later writes are rejected.
	released bool
}

// BindGroupProvider stages the uniform buffer contents of one bind group on the CPU.
// A component writes its GPU-layout bytes into a binding; the provider keeps a shadow copy,
// drops writes that would not change it, and hands the remaining writes to whatever uploads
// them (a wgpu queue, a capture file, a test) through Flush.
//
// Usage pattern:
//  1. Create a provider from a shader's BindGroupLayoutDescriptor for the group
//  2. Write the marshalled uniform bytes every frame
//  3. Flush the pending writes and upload them in order
type BindGroupProvider interface {
	// Release drops the staged buffers and pending writes.
	Release()

	// Label returns the debug label for this provider.
	// Used for debugging and profiling purposes.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Group returns the bind group index this provider stages.
	//
	// Returns:
	//   - int: the @group index
	Group() int

	// LayoutDescriptor returns the layout the provider's buffers were sized from.
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the bind group layout descriptor
	LayoutDescriptor() wgpu.BindGroupLayoutDescriptor

	// Bindings returns the staged binding indices in ascending order.
	//
	// Returns:
	//   - []int: binding indices with a buffer
	Bindings() []int

	// Buffer returns a copy of the staged bytes for a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - []byte: the buffer contents, or nil if the binding has no buffer
	Buffer(binding int) []byte

	// Write copies data into a binding's buffer at offset and queues a BufferWrite if the
	// bytes changed.
	//
	// Parameters:
	//   - binding: the binding index
	//   - offset: byte offset into the buffer
	//   - data: the bytes to write
	//
	// Returns:
	//   - bool: true if the write changed the buffer
	//   - error: if the binding is unknown, the write overruns the buffer or the provider was released
	Write(binding int, offset uint64, data []byte) (bool, error)

	// Pending returns the number of writes waiting for Flush.
	//
	// Returns:
	//   - int: queued write count
	Pending() int

	// Flush returns the queued writes in submission order and clears the queue.
	//
	// Returns:
	//   - []BufferWrite: the writes to upload
	Flush() []BufferWrite
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the provided options.
// One zeroed buffer is allocated for every layout entry with a non-zero MinBindingSize.
//
// Parameters:
//   - options: variadic list of BindGroupProviderBuilderOption functions to configure the provider
//
// Returns:
//   - BindGroupProvider: the newly created bind group provider
func NewBindGroupProvider(options ...BindGroupProviderBuilderOption) BindGroupProvider {
	p := &bindGroupProvider{
		mu:      &sync.Mutex{},
		buffers: make(map[int][]byte),
	}

	for _, opt := range options {
		opt(p)
	}

	for _, entry := range p.layout.Entries {
		if size := entry.Buffer.MinBindingSize; size > 0 {
			p.buffers[int(entry.Binding)] = make([]byte, size)
		}
	}
	return p
}

func (p *bindGroupProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers = make(map[int][]byte)
	p.pending = nil
	p.released = true
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) Group() int {
	return p.group
}

func (p *bindGroupProvider) LayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return p.layout
}

func (p *bindGroupProvider) Bindings() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Sorted(maps.Keys(p.buffers))
}

func (p *bindGroupProvider) Buffer(binding int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf, ok := p.buffers[binding]
	if !ok {
		return nil
	}
	return bytes.Clone(buf)
}

func (p *bindGroupProvider) Write(binding int, offset uint64, data []byte) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return false, fmt.Errorf("bind group %s: write after release", p.label)
	}
	buf, ok := p.buffers[binding]
	if !ok {
		return false, fmt.Errorf("bind group %s: no buffer at binding %d", p.label, binding)
	}
	end := offset + uint64(len(data))
	if end > uint64(len(buf)) {
		return false, fmt.Errorf("bind group %s: write of %d bytes at offset %d overruns %d-byte binding %d",
			p.label, len(data), offset, len(buf), binding)
	}

	dst := buf[offset:end]
	if bytes.Equal(dst, data) {
		return false, nil
	}
	copy(dst, data)
	p.pending = append(p.pending, BufferWrite{
		Provider: p,
		Binding:  binding,
		Offset:   offset,
		Data:     bytes.Clone(data),
	})
	return true, nil
}

func (p *bindGroupProvider) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *bindGroupProvider) Flush() []BufferWrite {
	p.mu.Lock()
	defer p.mu.Unlock()
	writes := p.pending
	p.pending = nil
	return writes
}
