// Package primitives builds procedural meshes that seed a scene.
package primitives

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpick/internal/engine/mesh"
	"github.com/Faultbox/meshpick/pkg/math"
)

// Primitive kinds accepted by Build.
const (
	KindCube     = "cube"
	KindSphere   = "sphere"
	KindCylinder = "cylinder"
)

// ErrTessellation is returned when a round primitive has fewer than 3 segments.
var ErrTessellation = errors.New("tessellation must be at least 3")

// ErrUnknownKind is returned by Build for an unrecognized primitive name.
var ErrUnknownKind = errors.New("unknown primitive kind")

// Cube corner slots. Vertices 0-3 are the z=+h face, 4-7 the z=-h face.
const (
	topLeftBack uint16 = iota
	topRightBack
	bottomRightBack
	bottomLeftBack
	topLeftForth
	topRightForth
	bottomRightForth
	bottomLeftForth
)

// cubeTriangles lists the 12 cube triangles, two per face.
var cubeTriangles = [12][3]uint16{
	// bottom
	{bottomRightBack, bottomRightForth, bottomLeftBack},
	{bottomLeftForth, bottomLeftBack, bottomRightForth},
	// left
	{topLeftForth, bottomLeftBack, bottomLeftForth},
	{bottomLeftBack, topLeftForth, topLeftBack},
	// forth
	{bottomRightForth, topRightForth, bottomLeftForth},
	{topLeftForth, bottomLeftForth, topRightForth},
	// right
	{bottomRightBack, topRightBack, bottomRightForth},
	{topRightForth, bottomRightForth, topRightBack},
	// back
	{bottomLeftBack, topLeftBack, bottomRightBack},
	{topRightBack, bottomRightBack, topLeftBack},
	// top
	{topRightForth, topRightBack, topLeftBack},
	{topLeftBack, topLeftForth, topRightForth},
}

// Cube builds an axis-aligned cube centered on the origin with 8 shared
// corner vertices.
func Cube(halfSide float32, c color.RGBA) (*mesh.Model, error) {
	h := halfSide
	m := mesh.New()

	m.AddVertex(math.Vec3{X: -h, Y: h, Z: h}, c, math.Vec2{X: 0, Y: 0})
	m.AddVertex(math.Vec3{X: h, Y: h, Z: h}, c, math.Vec2{X: 1, Y: 0})
	m.AddVertex(math.Vec3{X: h, Y: -h, Z: h}, c, math.Vec2{X: 1, Y: 1})
	m.AddVertex(math.Vec3{X: -h, Y: -h, Z: h}, c, math.Vec2{X: 0, Y: 1})

	m.AddVertex(math.Vec3{X: -h, Y: h, Z: -h}, c, math.Vec2{X: 0, Y: 0})
	m.AddVertex(math.Vec3{X: h, Y: h, Z: -h}, c, math.Vec2{X: 1, Y: 0})
	m.AddVertex(math.Vec3{X: h, Y: -h, Z: -h}, c, math.Vec2{X: 1, Y: 1})
	m.AddVertex(math.Vec3{X: -h, Y: -h, Z: -h}, c, math.Vec2{X: 0, Y: 1})

	for _, tri := range cubeTriangles {
		m.AddTriangle(tri[0], tri[1], tri[2])
	}

	return finish(m)
}

// Sphere builds a UV sphere: a bottom pole, tessellation-1 latitude rings of
// 2*tessellation vertices, and a top pole.
func Sphere(diameter float32, tessellation int, c color.RGBA) (*mesh.Model, error) {
	if tessellation < 3 {
		return nil, fmt.Errorf("sphere %d: %w", tessellation, ErrTessellation)
	}

	vertical := tessellation
	horizontal := tessellation * 2
	radius := diameter / 2
	m := mesh.New()

	m.AddVertex(math.Vec3{Y: -radius}, c, math.Vec2{})

	for i := 0; i < vertical-1; i++ {
		latitude := float32(i+1)*math32.Pi/float32(vertical) - math32.Pi/2
		dy := math32.Sin(latitude)
		dxz := math32.Cos(latitude)

		for j := 0; j < horizontal; j++ {
			longitude := float32(j) * 2 * math32.Pi / float32(horizontal)
			dx := math32.Cos(longitude) * dxz
			dz := math32.Sin(longitude) * dxz
			m.AddVertex(math.Vec3{X: dx, Y: dy, Z: dz}.Scale(radius), c, math.Vec2{})
		}
	}

	m.AddVertex(math.Vec3{Y: radius}, c, math.Vec2{})

	// Bottom cap fan.
	for i := 0; i < horizontal; i++ {
		m.AddTriangle(0, idx(1+(i+1)%horizontal), idx(1+i))
	}

	// Bands between rings.
	for i := 0; i < vertical-2; i++ {
		for j := 0; j < horizontal; j++ {
			nextI := i + 1
			nextJ := (j + 1) % horizontal

			m.AddTriangle(
				idx(1+i*horizontal+j),
				idx(1+i*horizontal+nextJ),
				idx(1+nextI*horizontal+j),
			)
			m.AddTriangle(
				idx(1+i*horizontal+nextJ),
				idx(1+nextI*horizontal+nextJ),
				idx(1+nextI*horizontal+j),
			)
		}
	}

	// Top cap fan.
	last := m.VertexCount()
	for i := 0; i < horizontal; i++ {
		m.AddTriangle(
			idx(last-1),
			idx(last-2-(i+1)%horizontal),
			idx(last-2-i),
		)
	}

	return finish(m)
}

// Cylinder builds a Y-aligned capped cylinder centered on the origin.
// Side and caps use separate vertices so cap edits do not drag the walls.
func Cylinder(height, diameter float32, tessellation int, c color.RGBA) (*mesh.Model, error) {
	if tessellation < 3 {
		return nil, fmt.Errorf("cylinder %d: %w", tessellation, ErrTessellation)
	}

	half := height / 2
	radius := diameter / 2
	ring := func(i int) math.Vec3 {
		angle := float32(i) * 2 * math32.Pi / float32(tessellation)
		return math.Vec3{X: math32.Cos(angle), Z: math32.Sin(angle)}.Scale(radius)
	}

	m := mesh.New()
	n := tessellation * 2

	for i := 0; i < tessellation; i++ {
		p := ring(i)
		u := float32(i) / float32(tessellation)
		m.AddVertex(p.Add(math.Vec3{Y: half}), c, math.Vec2{X: u, Y: 0})
		m.AddVertex(p.Add(math.Vec3{Y: -half}), c, math.Vec2{X: u, Y: 1})

		m.AddTriangle(idx(i*2), idx((i*2+2)%n), idx(i*2+1))
		m.AddTriangle(idx(i*2+1), idx((i*2+2)%n), idx((i*2+3)%n))
	}

	addCap := func(y float32, up bool) {
		center := m.VertexCount()
		m.AddVertex(math.Vec3{Y: y}, c, math.Vec2{X: 0.5, Y: 0.5})
		for i := 0; i < tessellation; i++ {
			p := ring(i)
			m.AddVertex(p.Add(math.Vec3{Y: y}), c, math.Vec2{X: p.X/diameter + 0.5, Y: p.Z/diameter + 0.5})
		}
		for i := 0; i < tessellation; i++ {
			a := idx(center + 1 + i)
			b := idx(center + 1 + (i+1)%tessellation)
			if up {
				m.AddTriangle(idx(center), b, a)
			} else {
				m.AddTriangle(idx(center), a, b)
			}
		}
	}
	addCap(half, true)
	addCap(-half, false)

	return finish(m)
}

// Build dispatches on a primitive kind name. size is the cube half side or
// the sphere/cylinder diameter (and cylinder height).
func Build(kind string, size float32, tessellation int, c color.RGBA) (*mesh.Model, error) {
	switch kind {
	case KindCube:
		return Cube(size, c)
	case KindSphere:
		return Sphere(size, tessellation, c)
	case KindCylinder:
		return Cylinder(size, size, tessellation, c)
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
}

func finish(m *mesh.Mesh) (*mesh.Model, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return mesh.NewModel(m), nil
}

func idx(i int) uint16 {
	return uint16(i)
}
