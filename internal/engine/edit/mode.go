// Package edit moves selected vertices along a world axis during a drag
// gesture, with a snapshot taken at the start so the gesture can be undone.
package edit

import (
	"github.com/Faultbox/meshpick/pkg/math"
)

// Mode is the editor's current interaction mode.
type Mode int

const (
	Normal Mode = iota
	MoveX
	MoveY
	MoveZ
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case MoveX:
		return "MOVE_X"
	case MoveY:
		return "MOVE_Y"
	case MoveZ:
		return "MOVE_Z"
	default:
		return "UNKNOWN"
	}
}

// Axis returns the axis a move mode drags along. It reports false for Normal.
func (m Mode) Axis() (Axis, bool) {
	switch m {
	case MoveX:
		return X, true
	case MoveY:
		return Y, true
	case MoveZ:
		return Z, true
	default:
		return 0, false
	}
}

// Axis is a world axis.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Mode returns the move mode for the axis.
func (a Axis) Mode() Mode {
	return MoveX + Mode(a)
}

// DefaultDragScale converts pixels to world units.
const DefaultDragScale = 0.01

// Displacement converts a screen-space pointer delta into a world-space
// offset along axis. X and Z follow horizontal movement; Y follows vertical
// movement with screen-down mapped to world-down.
func Displacement(axis Axis, delta math.Vec2, scale float32) math.Vec3 {
	switch axis {
	case X:
		return math.Vec3{X: delta.X * scale}
	case Y:
		return math.Vec3{Y: -delta.Y * scale}
	case Z:
		return math.Vec3{Z: delta.X * scale}
	default:
		return math.Vec3{}
	}
}
