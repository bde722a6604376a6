package edit

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshpick/internal/engine/mesh"
	"github.com/Faultbox/meshpick/internal/engine/selection"
	"github.com/Faultbox/meshpick/pkg/math"
)

var (
	// ErrNoSession is returned by ApplyDrag outside a gesture.
	ErrNoSession = errors.New("no edit session in progress")
	// ErrSnapshotMismatch is returned when the roster passed to ApplyDrag
	// no longer matches the one captured by Begin.
	ErrSnapshotMismatch = errors.New("roster differs from session snapshot")
	// ErrSingularTransform is returned when a world-space drag cannot be
	// mapped into a model's object space.
	ErrSingularTransform = errors.New("model transform is not invertible")
)

// Session is a single edit gesture. Begin snapshots the models and the
// selection; every ApplyDrag recomputes vertex positions from that snapshot,
// so drags never compound. Commit keeps the result, Cancel restores the
// snapshot.
type Session struct {
	scale     float32
	models    []*mesh.Model
	selection *selection.Set
	active    bool
}

// NewSession creates an idle session converting pixels to world units by
// scale.
func NewSession(scale float32) *Session {
	return &Session{scale: scale}
}

// Scale returns the pixel to world-unit factor.
func (s *Session) Scale() float32 {
	return s.scale
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool {
	return s.active
}

// Begin snapshots models and sel. A snapshot left by an earlier Begin is
// silently replaced.
func (s *Session) Begin(models []*mesh.Model, sel *selection.Set) error {
	snap, err := sel.Clone()
	if err != nil {
		return fmt.Errorf("begin edit: %w", err)
	}

	clones := make([]*mesh.Model, len(models))
	for i, m := range models {
		clones[i] = m.Clone()
	}

	s.models = clones
	s.selection = snap
	s.active = true
	return nil
}

// vertexRef identifies a vertex within one model.
type vertexRef struct {
	mesh  int
	index uint16
}

// ApplyDrag moves the selected vertices to their snapshot positions plus the
// displacement for delta, the total pointer movement since the gesture began.
// It refreshes sel so the highlight follows the moved triangles and returns
// the number of vertices written.
//
// A vertex shared by several selected triangles is written once per call.
// Models without selected triangles are left alone. A model whose transform
// cannot be inverted keeps its current geometry; its error is joined into
// the returned error while the other models still move.
func (s *Session) ApplyDrag(axis Axis, delta math.Vec2, models []*mesh.Model, transforms []math.Mat4, sel *selection.Set) (int, error) {
	if !s.active {
		return 0, ErrNoSession
	}
	if len(models) != len(s.models) || len(transforms) != len(models) || sel.Models() != len(models) {
		return 0, fmt.Errorf("%d models, %d transforms, %d selections against %d in snapshot: %w",
			len(models), len(transforms), sel.Models(), len(s.models), ErrSnapshotMismatch)
	}

	world := Displacement(axis, delta, s.scale)
	moved := 0
	var errs []error
	for i, model := range models {
		if s.selection.Len(i) == 0 {
			continue
		}
		n, err := s.dragModel(i, world, model, transforms[i], sel)
		if err != nil {
			errs = append(errs, fmt.Errorf("model %d: %w", i, err))
			continue
		}
		moved += n
	}
	return moved, errors.Join(errs...)
}

func (s *Session) dragModel(i int, world math.Vec3, model *mesh.Model, transform math.Mat4, sel *selection.Set) (int, error) {
	inv, ok := transform.Invert()
	if !ok {
		return 0, ErrSingularTransform
	}
	local := inv.TransformDirection(world)

	selected := make(map[selection.TriangleKey][]int)
	for j, key := range s.selection.Keys(i) {
		selected[key] = append(selected[key], j)
	}

	snap := s.models[i]
	if snap.MeshCount() != model.MeshCount() {
		return 0, ErrSnapshotMismatch
	}

	moved := make(map[vertexRef]struct{})
	for m, before := range snap.Meshes() {
		after := model.Mesh(m)
		soup := before.PositionsByIndex()
		for slot := 0; slot+2 < len(soup); slot += 3 {
			tri := [3]math.Vec3{
				transform.TransformVec3(soup[slot]),
				transform.TransformVec3(soup[slot+1]),
				transform.TransformVec3(soup[slot+2]),
			}
			entries, ok := selected[selection.KeyOf(tri)]
			if !ok {
				continue
			}

			var current [3]math.Vec3
			for k := 0; k < 3; k++ {
				ref := vertexRef{mesh: m, index: before.VertexIndex(slot + k)}
				target := soup[slot+k].Add(local)
				if _, done := moved[ref]; !done {
					after.SetPositionAtSlot(slot+k, target)
					moved[ref] = struct{}{}
				}
				current[k] = transform.TransformVec3(target)
			}
			for _, j := range entries {
				sel.SetTriangle(i, j, current)
			}
		}
	}
	return len(moved), nil
}

// Commit ends the gesture and keeps the edited geometry. It reports whether
// a gesture was in progress.
func (s *Session) Commit() bool {
	was := s.active
	s.reset()
	return was
}

// Cancel restores models and sel to the snapshot and ends the gesture.
// Models are restored in place, so references held elsewhere stay valid.
// It does nothing and returns false without a gesture in progress, or when
// the roster no longer matches the snapshot; the gesture then stays active.
func (s *Session) Cancel(models []*mesh.Model, sel *selection.Set) bool {
	if !s.active || len(models) != len(s.models) || sel.Models() != s.selection.Models() {
		return false
	}
	for i, m := range models {
		m.Restore(s.models[i])
	}
	sel.Restore(s.selection)
	s.reset()
	return true
}

func (s *Session) reset() {
	s.models = nil
	s.selection = nil
	s.active = false
}
