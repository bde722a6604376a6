// Package camera provides the orbiting view used to look at and pick the
// scene.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpick/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Arc      float32 // Tilt in radians; negative looks down on the center
	Rotation float32 // Yaw around the Y axis in radians

	// Projection
	FOV  float32 // Vertical field of view in radians
	Near float32
	Far  float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinArc      float32
	MaxArc      float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        4.5,
		Arc:             Radians(-30),
		Rotation:        Radians(225),
		FOV:             Radians(45),
		Near:            0.01,
		Far:             1000,
		MinDistance:     0.5,
		MaxDistance:     100,
		MinArc:          Radians(-89),
		MaxArc:          Radians(89),
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	horiz := c.Distance * math32.Cos(c.Arc)
	return math.Vec3{
		X: c.Center.X + horiz*math32.Sin(c.Rotation),
		Y: c.Center.Y - c.Distance*math32.Sin(c.Arc),
		Z: c.Center.Z + horiz*math32.Cos(c.Rotation),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.UnitY)
}

// ProjectionMatrix returns the perspective projection for a viewport.
func (c *OrbitCamera) ProjectionMatrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view for a viewport.
func (c *OrbitCamera) ViewProjection(width, height int) math.Mat4 {
	return c.ProjectionMatrix(width, height).Mul(c.ViewMatrix())
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Rotation -= deltaX * c.DragSensitivity
	c.Arc += deltaY * c.DragSensitivity
	c.Arc = math32.Max(c.MinArc, math32.Min(c.MaxArc, c.Arc))
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math32.Max(c.MinDistance, math32.Min(c.MaxDistance, c.Distance))
}
