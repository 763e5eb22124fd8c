package model

import (
	"sync"
)

// model is the implementation of the Model interface.
type model struct {
	mu                    *sync.Mutex
	name                  string
	mesh                  *Mesh
	boundingRadius        float32
	vertexData, indexData []byte
	dirty                 bool
}

// Model defines the interface for a named drawable mesh.
// A Model owns its local-space Mesh and lazily serializes it into GPU-ready
// vertex and index buffers (see GPUVertex and MarshalIndices).
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the local-space geometry.
	// Callers must not mutate the returned mesh while it is being drawn.
	//
	// Returns:
	//   - *Mesh: the mesh, never nil
	Mesh() *Mesh

	// SetMesh replaces the geometry and invalidates the serialized buffers.
	//
	// Parameters:
	//   - mesh: the new mesh; nil is treated as an empty mesh
	SetMesh(mesh *Mesh)

	// BoundingRadius returns the radius of the origin-centred sphere enclosing the mesh.
	//
	// Returns:
	//   - float32: the bounding radius in local units
	BoundingRadius() float32

	// VertexData returns the mesh vertices serialized as GPUVertex records.
	//
	// Returns:
	//   - []byte: the vertex buffer contents
	VertexData() []byte

	// IndexData returns the mesh indices serialized as little-endian uint16.
	//
	// Returns:
	//   - []byte: the index buffer contents, padded to 4 bytes
	IndexData() []byte

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:   &sync.Mutex{},
		mesh: NewMesh(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.boundingRadius = m.mesh.Bounds()
	m.dirty = true
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() *Mesh {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mesh
}

func (m *model) SetMesh(mesh *Mesh) {
	if mesh == nil {
		mesh = NewMesh()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mesh = mesh
	m.boundingRadius = mesh.Bounds()
	m.dirty = true
}

func (m *model) BoundingRadius() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boundingRadius
}

func (m *model) VertexData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serialize()
	return m.vertexData
}

func (m *model) IndexData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serialize()
	return m.indexData
}

func (m *model) IndexCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mesh.Indices)
}

// serialize rebuilds the GPU buffers if the mesh changed. Caller holds mu.
func (m *model) serialize() {
	if !m.dirty {
		return
	}
	m.vertexData = MarshalVertices(m.mesh.Vertices)
	m.indexData = MarshalIndices(m.mesh.Indices)
	m.dirty = false
}
