package mesh

import (
	"fmt"
	"image/color"

	"github.com/Faultbox/meshpick/pkg/math"
)

// Mesh owns one vertex buffer and one triangle index buffer.
// Vertex identity is its position in the vertex buffer; every three indices
// form one triangle.
type Mesh struct {
	vertices []Vertex
	indices  []uint16
}

// New creates an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex. Overflowing the 16-bit index range is not
// checked here; Validate reports it.
func (m *Mesh) AddVertex(position math.Vec3, c color.RGBA, uv math.Vec2) {
	m.vertices = append(m.vertices, Vertex{Position: position, Color: c, UV: uv})
}

// AddIndex appends one triangle corner. The caller keeps index < VertexCount
// and supplies indices in triples.
func (m *Mesh) AddIndex(index uint16) {
	m.indices = append(m.indices, index)
}

// AddTriangle appends the three corners of one triangle.
func (m *Mesh) AddTriangle(a, b, c uint16) {
	m.indices = append(m.indices, a, b, c)
}

// VertexCount returns the number of stored vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// IndexCount returns the number of stored indices.
func (m *Mesh) IndexCount() int {
	return len(m.indices)
}

// TriangleCount returns the number of complete index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Vertices returns the live vertex buffer for rendering.
// Callers must not append to it.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the live index buffer for rendering.
func (m *Mesh) Indices() []uint16 {
	return m.indices
}

// VertexIndex returns the vertex referenced by index slot.
func (m *Mesh) VertexIndex(slot int) uint16 {
	return m.indices[slot]
}

// PositionsByIndex expands the index buffer into a triangle soup: one
// position per index slot, in index order.
func (m *Mesh) PositionsByIndex() []math.Vec3 {
	out := make([]math.Vec3, len(m.indices))
	for i, idx := range m.indices {
		out[i] = m.vertices[idx].Position
	}
	return out
}

// Positions returns one position per stored vertex, in storage order.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.vertices))
	for i := range m.vertices {
		out[i] = m.vertices[i].Position
	}
	return out
}

// SetPositionAtSlot overwrites the position of the vertex referenced by the
// given index slot. Every triangle sharing that vertex sees the change.
func (m *Mesh) SetPositionAtSlot(slot int, position math.Vec3) {
	m.vertices[m.indices[slot]].Position = position
}

// Validate checks the buffer invariants: whole triangles only, every index
// in range and a vertex count addressable by 16-bit indices.
func (m *Mesh) Validate() error {
	if len(m.vertices) > MaxVertices {
		return fmt.Errorf("%d vertices: %w", len(m.vertices), ErrTooManyVertices)
	}
	if len(m.indices)%3 != 0 {
		return fmt.Errorf("%d indices: %w", len(m.indices), ErrIndexCount)
	}
	for slot, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("slot %d index %d with %d vertices: %w",
				slot, idx, len(m.vertices), ErrIndexOutOfRange)
		}
	}
	return nil
}

// Clone returns a deep copy sharing no buffers with m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		vertices: append([]Vertex(nil), m.vertices...),
		indices:  append([]uint16(nil), m.indices...),
	}
}
