// Package scene holds the editable model roster: each model with its name,
// world transform and selected triangles, kept aligned by index.
package scene

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpick/internal/engine/mesh"
	"github.com/Faultbox/meshpick/internal/engine/picking"
	"github.com/Faultbox/meshpick/internal/engine/selection"
	"github.com/Faultbox/meshpick/internal/logger"
	"github.com/Faultbox/meshpick/pkg/math"
)

// ErrIndexOutOfRange is returned for a model index outside the roster.
var ErrIndexOutOfRange = errors.New("model index out of range")

// Scene owns the models, their transforms and names, and the selection.
// It is not safe for concurrent use.
type Scene struct {
	names      []string
	models     []*mesh.Model
	transforms []math.Mat4
	selection  *selection.Set

	log *zap.Logger
}

// New creates an empty scene whose selection is drawn in highlight.
func New(highlight color.RGBA) *Scene {
	return &Scene{
		selection: selection.New(0, highlight),
		log:       logger.Named("scene"),
	}
}

// Add validates model and appends it to the roster. It returns the new
// model's index.
func (s *Scene) Add(name string, model *mesh.Model, transform math.Mat4) (int, error) {
	if err := model.Validate(); err != nil {
		return -1, fmt.Errorf("adding %s: %w", name, err)
	}

	s.names = append(s.names, name)
	s.models = append(s.models, model)
	s.transforms = append(s.transforms, transform)
	s.selection.AddModel()

	i := len(s.models) - 1
	s.log.Debug("model added",
		zap.Int("index", i),
		zap.String("name", name),
		zap.Int("meshes", model.MeshCount()),
		zap.Float32("radius", model.BoundingSphere().Radius))
	return i, nil
}

// Remove drops model i; later models shift down by one.
func (s *Scene) Remove(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	name := s.names[i]

	s.names = append(s.names[:i], s.names[i+1:]...)
	s.models = append(s.models[:i], s.models[i+1:]...)
	s.transforms = append(s.transforms[:i], s.transforms[i+1:]...)
	s.selection.RemoveModel(i)

	s.log.Debug("model removed", zap.Int("index", i), zap.String("name", name))
	return nil
}

func (s *Scene) check(i int) error {
	if i < 0 || i >= len(s.models) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.models))
	}
	return nil
}

// Len returns the number of models.
func (s *Scene) Len() int {
	return len(s.models)
}

// Model returns model i.
func (s *Scene) Model(i int) *mesh.Model {
	return s.models[i]
}

// Models returns the live model roster.
func (s *Scene) Models() []*mesh.Model {
	return s.models
}

// Transform returns the world transform of model i.
func (s *Scene) Transform(i int) math.Mat4 {
	return s.transforms[i]
}

// Transforms returns the live transform list.
func (s *Scene) Transforms() []math.Mat4 {
	return s.transforms
}

// SetTransform replaces the world transform of model i.
func (s *Scene) SetTransform(i int, transform math.Mat4) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.transforms[i] = transform
	return nil
}

// Name returns the name of model i.
func (s *Scene) Name(i int) string {
	return s.names[i]
}

// Names returns the live name list.
func (s *Scene) Names() []string {
	return s.names
}

// Index returns the index of the first model called name.
func (s *Scene) Index(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Selection returns the scene's selection set.
func (s *Scene) Selection() *selection.Set {
	return s.selection
}

// Pick returns the closest triangle under a world-space ray.
func (s *Scene) Pick(r picking.Ray) (picking.Pick, error) {
	p, err := picking.PickClosest(r, s.models, s.transforms, s.names)
	if p.Found() {
		s.log.Debug("pick",
			zap.String("model", p.Name),
			zap.Float32("distance", p.Distance),
			zap.Strings("bounding_hits", p.InsideBoundingSphere))
	}
	return p, err
}
