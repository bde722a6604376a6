package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpick/internal/engine/mesh"
	"github.com/Faultbox/meshpick/pkg/math"
)

// Epsilon is the float32 machine epsilon. A triangle whose determinant is
// smaller in magnitude is treated as parallel to the ray.
const Epsilon float32 = 1.1920929e-7

// IntersectSphere tests the ray against a sphere.
// A ray starting inside the sphere hits at distance 0; otherwise the entry
// distance is returned. Spheres behind the origin do not hit.
func IntersectSphere(r Ray, s mesh.BoundingSphere) (t float32, hit bool) {
	diff := s.Center.Sub(r.Origin)
	distSq := diff.LengthSquared()
	radSq := s.Radius * s.Radius
	if distSq < radSq {
		return 0, true
	}

	a := r.Direction.LengthSquared()
	if a == 0 {
		return 0, false
	}
	b := r.Direction.Dot(diff)
	if b < 0 {
		return 0, false
	}

	// Solve a*t^2 - 2*b*t + (distSq - radSq) = 0 for the nearer root.
	disc := b*b - a*(distSq-radSq)
	if disc < 0 {
		return 0, false
	}
	return (b - math32.Sqrt(disc)) / a, true
}

// IntersectTriangle is the Möller–Trumbore ray/triangle test. It returns
// the ray parameter of the hit; hits behind the origin are rejected.
func IntersectTriangle(r Ray, v0, v1, v2 math.Vec3) (t float32, hit bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < Epsilon {
		return 0, false
	}
	invDet := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}
