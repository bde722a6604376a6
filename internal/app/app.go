// Package app runs the mesh editor: it builds the scene from config, opens
// the window and feeds input to the editor controller every frame.
package app

import (
	"fmt"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpick/internal/config"
	"github.com/Faultbox/meshpick/internal/editor"
	"github.com/Faultbox/meshpick/internal/engine/camera"
	"github.com/Faultbox/meshpick/internal/engine/input"
	"github.com/Faultbox/meshpick/internal/engine/primitives"
	"github.com/Faultbox/meshpick/internal/engine/scene"
	"github.com/Faultbox/meshpick/internal/engine/window"
	"github.com/Faultbox/meshpick/internal/logger"
	"github.com/Faultbox/meshpick/pkg/math"
)

var background = color.RGBA{R: 100, G: 149, B: 237, A: 255}

// App is the editor instance.
type App struct {
	cfg        *config.Config
	running    bool
	window     *window.Window
	input      *input.Input
	controller *editor.Controller

	orbiting bool
	last     math.Vec2
	title    string
	log      *zap.Logger
}

// BuildScene creates one model per configured primitive.
func BuildScene(cfg *config.Config) (*scene.Scene, error) {
	sc := scene.New(cfg.Editor.HighlightColor.Color())
	base := cfg.Editor.BaseColor.Color()

	for _, m := range cfg.Scene.Models {
		model, err := primitives.Build(m.Primitive, m.Size, m.Tessellation, base)
		if err != nil {
			return nil, fmt.Errorf("building %s: %w", m.Name, err)
		}
		if _, err := sc.Add(m.Name, model, ModelTransform(m)); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// ModelTransform places a configured model: rotation about X, then Y, then
// translation.
func ModelTransform(m config.ModelConfig) math.Mat4 {
	p := m.Position
	return math.TranslateVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]}).
		Mul(math.RotateY(camera.Radians(m.Rotation[1]))).
		Mul(math.RotateX(camera.Radians(m.Rotation[0])))
}

// NewCamera creates the orbit camera described by cfg.
func NewCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FOV = camera.Radians(cfg.FOVDegrees)
	cam.Distance = cfg.Distance
	cam.Arc = camera.Radians(cfg.ArcDegrees)
	cam.Rotation = camera.Radians(cfg.RotationDegrees)
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	return cam
}

// New creates the scene, window and controller.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg: cfg,
		log: logger.Named("app"),
	}

	sc, err := BuildScene(cfg)
	if err != nil {
		return nil, err
	}
	a.log.Info("scene built", zap.Strings("models", sc.Names()))

	a.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.input = input.New()
	a.controller = editor.New(sc, NewCamera(cfg.Camera), cfg.Editor.DragScale)
	a.controller.SetViewport(a.window.GetSize())
	return a, nil
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true
	frames := 0
	fpsTimer := time.Now()

	a.log.Info("starting editor loop")
	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		for _, ev := range a.input.Events() {
			if a.orbit(ev) {
				continue
			}
			if err := a.controller.HandleEvent(ev); err != nil {
				return fmt.Errorf("handling input: %w", err)
			}
		}

		if status := a.controller.Status(); status != a.title {
			a.title = status
			a.window.SetTitle(a.cfg.Window.Title + " - " + status)
		}

		a.render()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

// orbit turns middle-button drags into camera rotation. It reports whether
// the event was consumed.
func (a *App) orbit(ev input.Event) bool {
	pos := math.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)}
	switch ev.Type {
	case input.EventMouseDown:
		if ev.Button == input.ButtonMiddle {
			a.orbiting = true
			a.last = pos
			return true
		}
	case input.EventMouseUp:
		if ev.Button == input.ButtonMiddle {
			a.orbiting = false
			return true
		}
	case input.EventMouseMove:
		if a.orbiting {
			d := pos.Sub(a.last)
			a.controller.Camera().HandleDrag(d.X, d.Y)
			a.last = pos
			return true
		}
	}
	return false
}

// render draws every model as a wireframe and the selection on top.
func (a *App) render() {
	w, h := a.window.GetSize()
	sc := a.controller.Scene()
	viewProj := a.controller.Camera().ViewProjection(w, h)
	base := a.cfg.Editor.BaseColor.Color()

	a.window.Clear(background)
	for i, model := range sc.Models() {
		mvp := viewProj.Mul(sc.Transform(i))
		for _, m := range model.Meshes() {
			for _, e := range Wireframe(m.PositionsByIndex(), mvp, w, h) {
				a.window.DrawLine(e[0], e[1], base)
			}
		}

		sel := sc.Selection()
		var tris []math.Vec3
		for _, v := range sel.Vertices(i) {
			tris = append(tris, v.Position)
		}
		for _, e := range Wireframe(tris, viewProj, w, h) {
			a.window.DrawLine(e[0], e[1], sel.Highlight())
		}
	}
	a.window.Present()
}

// Close cleans up editor resources.
func (a *App) Close() {
	a.log.Info("closing editor")
	if a.window != nil {
		a.window.Close()
	}
}
