// Package mesh provides the editable in-memory triangle meshes that picking
// and vertex editing operate on.
package mesh

import (
	"errors"
	"image/color"

	"github.com/Faultbox/meshpick/pkg/math"
)

// MaxVertices is the largest vertex count addressable by a 16-bit index.
const MaxVertices = 1 << 16

// Construction errors reported by Validate.
var (
	ErrIndexCount      = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("index references a missing vertex")
	ErrTooManyVertices = errors.New("vertex count exceeds 16-bit index range")
)

// Vertex is a mesh vertex with position, color and texture coordinates.
// Only Position is edited after creation.
type Vertex struct {
	Position math.Vec3
	Color    color.RGBA
	UV       math.Vec2
}

// BoundingSphere is a sphere enclosing every vertex of a model.
type BoundingSphere struct {
	Center math.Vec3
	Radius float32
}

// Contains reports whether p lies inside or on the sphere.
func (s BoundingSphere) Contains(p math.Vec3) bool {
	return p.Sub(s.Center).LengthSquared() <= s.Radius*s.Radius
}
