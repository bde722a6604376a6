// Package editor drives picking, selection and vertex dragging from pointer
// and keyboard input.
//
// The controller is a small state machine. In NORMAL mode a left press picks
// the triangle under the pointer and toggles its selection. Choosing a move
// mode snapshots the scene and anchors the drag at the pointer; pointer motion
// then moves the selected vertices along the mode's axis. Releasing the right
// button cancels the gesture, releasing any other button commits it, and both
// return to NORMAL.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpick/internal/engine/camera"
	"github.com/Faultbox/meshpick/internal/engine/edit"
	"github.com/Faultbox/meshpick/internal/engine/input"
	"github.com/Faultbox/meshpick/internal/engine/picking"
	"github.com/Faultbox/meshpick/internal/engine/scene"
	"github.com/Faultbox/meshpick/internal/logger"
	"github.com/Faultbox/meshpick/pkg/math"
)

// Controller owns the edit mode and applies input to a scene.
type Controller struct {
	scene   *scene.Scene
	camera  *camera.OrbitCamera
	session *edit.Session
	mode    edit.Mode

	width, height int
	pointer       math.Vec2
	anchor        math.Vec2
	hover         picking.Pick

	log *zap.Logger
}

// New creates a controller in NORMAL mode.
func New(sc *scene.Scene, cam *camera.OrbitCamera, dragScale float32) *Controller {
	return &Controller{
		scene:   sc,
		camera:  cam,
		session: edit.NewSession(dragScale),
		width:   1,
		height:  1,
		hover:   picking.Pick{ModelIndex: -1},
		log:     logger.Named("editor"),
	}
}

// Mode returns the current edit mode.
func (c *Controller) Mode() edit.Mode {
	return c.mode
}

// Scene returns the edited scene.
func (c *Controller) Scene() *scene.Scene {
	return c.scene
}

// Camera returns the view camera.
func (c *Controller) Camera() *camera.OrbitCamera {
	return c.camera
}

// SetViewport sets the viewport size in pixels.
func (c *Controller) SetViewport(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
}

// Hover returns the pick under the pointer from the last pointer event.
func (c *Controller) Hover() picking.Pick {
	return c.hover
}

// Ray returns the world-space ray through a viewport pixel.
func (c *Controller) Ray(x, y int) picking.Ray {
	inv := c.camera.ViewProjection(c.width, c.height).Inverse()
	return picking.ScreenToRay(float32(x), float32(y), float32(c.width), float32(c.height), inv)
}

// SetMode switches the edit mode. Entering a move mode starts a gesture
// anchored at the current pointer, replacing any gesture already in
// progress. Returning to NORMAL commits.
func (c *Controller) SetMode(mode edit.Mode) error {
	if _, ok := mode.Axis(); !ok {
		if mode != edit.Normal {
			return fmt.Errorf("unknown edit mode %d", int(mode))
		}
		if c.session.Commit() {
			c.log.Info("edit committed")
		}
		c.mode = edit.Normal
		return nil
	}

	if err := c.session.Begin(c.scene.Models(), c.scene.Selection()); err != nil {
		return err
	}
	c.anchor = c.pointer
	c.mode = mode
	c.log.Info("edit mode",
		zap.Stringer("mode", mode),
		zap.Float32("scale", c.session.Scale()),
		zap.Int("selected", c.scene.Selection().Count()))
	return nil
}

// PointerMove updates the hover pick and, in a move mode, drags the
// selection by the pointer's offset from the gesture anchor.
func (c *Controller) PointerMove(x, y int) {
	c.pointer = math.Vec2{X: float32(x), Y: float32(y)}
	c.updateHover(x, y)

	axis, ok := c.mode.Axis()
	if !ok {
		return
	}
	s := c.scene
	moved, err := c.session.ApplyDrag(axis, c.pointer.Sub(c.anchor), s.Models(), s.Transforms(), s.Selection())
	if err != nil {
		c.log.Warn("drag incomplete", zap.Error(err))
	}
	c.log.Debug("drag", zap.Stringer("axis", axis), zap.Int("vertices", moved))
}

// PointerDown toggles the triangle under the pointer when the left button
// is pressed in NORMAL mode.
func (c *Controller) PointerDown(x, y int, button input.Button) {
	c.pointer = math.Vec2{X: float32(x), Y: float32(y)}
	if c.mode != edit.Normal || button != input.ButtonLeft {
		return
	}

	c.updateHover(x, y)
	if !c.hover.Found() {
		return
	}
	added := c.scene.Selection().Toggle(c.hover.ModelIndex, c.hover.Triangle)
	c.log.Debug("selection toggled",
		zap.String("model", c.hover.Name),
		zap.Bool("added", added),
		zap.Int("selected", c.scene.Selection().Count()))
}

// PointerUp ends a gesture in a move mode: the right button cancels, any
// other button commits.
func (c *Controller) PointerUp(x, y int, button input.Button) {
	c.pointer = math.Vec2{X: float32(x), Y: float32(y)}
	if c.mode == edit.Normal {
		return
	}

	if button == input.ButtonRight {
		if c.session.Cancel(c.scene.Models(), c.scene.Selection()) {
			c.log.Info("edit cancelled")
		} else if c.session.Commit() {
			c.log.Warn("scene changed during the edit, keeping the current geometry")
		}
	} else if c.session.Commit() {
		c.log.Info("edit committed")
	}
	c.mode = edit.Normal
}

// ClearSelection deselects every triangle. It is ignored during a gesture.
func (c *Controller) ClearSelection() {
	if c.mode != edit.Normal {
		return
	}
	c.scene.Selection().ClearAll()
	c.log.Debug("selection cleared")
}

// HandleEvent applies one input event. X, Y and Z enter the move modes and
// Space clears the selection.
func (c *Controller) HandleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventWindowResize:
		c.SetViewport(ev.Width, ev.Height)
	case input.EventKeyDown:
		switch ev.Key {
		case input.KeyX:
			return c.SetMode(edit.MoveX)
		case input.KeyY:
			return c.SetMode(edit.MoveY)
		case input.KeyZ:
			return c.SetMode(edit.MoveZ)
		case input.KeySpace:
			c.ClearSelection()
		}
	case input.EventMouseMove:
		c.PointerMove(ev.MouseX, ev.MouseY)
	case input.EventMouseDown:
		c.PointerDown(ev.MouseX, ev.MouseY, ev.Button)
	case input.EventMouseUp:
		c.PointerUp(ev.MouseX, ev.MouseY, ev.Button)
	}
	return nil
}

func (c *Controller) updateHover(x, y int) {
	p, err := c.scene.Pick(c.Ray(x, y))
	switch {
	case err == nil:
	case errors.Is(err, picking.ErrRosterMismatch):
		c.log.Error("pick failed", zap.Error(err))
		p = picking.Pick{ModelIndex: -1}
	default:
		// Models that could not be tested are skipped; the rest still pick.
		c.log.Warn("pick skipped models", zap.Error(err))
	}
	c.hover = p
}

// Status returns a one-line summary: the edit mode, the model under the
// pointer and every model whose bounding sphere the pointer ray crosses.
func (c *Controller) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Edit mode: %s", c.mode)
	if c.hover.Found() {
		fmt.Fprintf(&b, " | Picked: %s", c.hover.Name)
	}
	if len(c.hover.InsideBoundingSphere) > 0 {
		fmt.Fprintf(&b, " | Bounding spheres: %s", strings.Join(c.hover.InsideBoundingSphere, ", "))
	}
	fmt.Fprintf(&b, " | Selected: %d", c.scene.Selection().Count())
	return b.String()
}
