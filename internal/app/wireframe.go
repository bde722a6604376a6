package app

import (
	"github.com/Faultbox/meshpick/pkg/math"
)

// Edge is a projected line in pixel coordinates.
type Edge [2]math.Vec2

// Wireframe projects a triangle soup through mvp and returns the three
// edges of every triangle in front of the camera. Triangles with a corner
// at or behind the eye plane are dropped rather than clipped.
func Wireframe(soup []math.Vec3, mvp math.Mat4, width, height int) []Edge {
	edges := make([]Edge, 0, len(soup))
	for i := 0; i+2 < len(soup); i += 3 {
		var px [3]math.Vec2
		visible := true
		for k := 0; k < 3; k++ {
			p, ok := project(soup[i+k], mvp, width, height)
			if !ok {
				visible = false
				break
			}
			px[k] = p
		}
		if !visible {
			continue
		}
		edges = append(edges, Edge{px[0], px[1]}, Edge{px[1], px[2]}, Edge{px[2], px[0]})
	}
	return edges
}

// project maps a point to pixel coordinates with the origin at the top left.
func project(p math.Vec3, mvp math.Mat4, width, height int) (math.Vec2, bool) {
	clip := mvp.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return math.Vec2{}, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	return math.Vec2{
		X: (ndcX + 1) / 2 * float32(width),
		Y: (1 - ndcY) / 2 * float32(height),
	}, true
}
