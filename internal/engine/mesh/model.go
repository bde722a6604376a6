package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpick/pkg/math"
)

// Model is an ordered list of meshes forming one pickable object.
type Model struct {
	meshes []*Mesh
}

// NewModel creates a model from the given meshes, in draw order.
func NewModel(meshes ...*Mesh) *Model {
	return &Model{meshes: append([]*Mesh(nil), meshes...)}
}

// AddMesh appends a mesh.
func (m *Model) AddMesh(mesh *Mesh) {
	m.meshes = append(m.meshes, mesh)
}

// Meshes returns the model's meshes in draw order.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// Mesh returns the i-th mesh.
func (m *Model) Mesh(i int) *Mesh {
	return m.meshes[i]
}

// MeshCount returns the number of meshes.
func (m *Model) MeshCount() int {
	return len(m.meshes)
}

// BoundingSphere computes a sphere around every vertex of every mesh.
//
// The center is the midpoint of the per-axis extents. The radius is twice
// the largest half-extent, which always contains the box corners and keeps
// the rejection test cheap. It is recomputed on each call so it tracks
// vertex edits. A model without vertices yields the zero sphere.
func (m *Model) BoundingSphere() BoundingSphere {
	lo := math.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32}
	hi := math.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32}
	empty := true

	for _, mesh := range m.meshes {
		for i := range mesh.vertices {
			p := mesh.vertices[i].Position
			lo = lo.Min(p)
			hi = hi.Max(p)
			empty = false
		}
	}
	if empty {
		return BoundingSphere{}
	}

	half := hi.Sub(lo).Scale(0.5)
	return BoundingSphere{
		Center: lo.Add(half),
		Radius: math32.Max(math32.Max(half.X, half.Y), half.Z) * 2,
	}
}

// Validate checks every mesh.
func (m *Model) Validate() error {
	for i, mesh := range m.meshes {
		if err := mesh.Validate(); err != nil {
			return fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of the model and all its meshes.
func (m *Model) Clone() *Model {
	out := &Model{meshes: make([]*Mesh, len(m.meshes))}
	for i, mesh := range m.meshes {
		out.meshes[i] = mesh.Clone()
	}
	return out
}

// Restore replaces the model's contents with a deep copy of from, keeping
// the receiver's identity.
func (m *Model) Restore(from *Model) {
	m.meshes = from.Clone().meshes
}
