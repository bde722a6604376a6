package picking

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshpick/internal/engine/mesh"
	"github.com/Faultbox/meshpick/pkg/math"
)

var (
	// ErrSingularTransform is returned when a model transform has no inverse.
	ErrSingularTransform = errors.New("model transform is not invertible")
	// ErrRosterMismatch is returned when the model, transform and name lists
	// differ in length.
	ErrRosterMismatch = errors.New("models, transforms and names differ in length")
)

// Hit is the result of testing one model.
type Hit struct {
	Hit                  bool
	InsideBoundingSphere bool
	// Distance is the ray parameter of the closest triangle hit.
	Distance float32
	// Triangle holds the hit triangle's corners in world space.
	Triangle [3]math.Vec3
}

// TestModel intersects a world-space ray with a model placed by transform.
//
// The ray is moved into object space and tested against the model's bounding
// sphere first; triangle data is only read when the sphere is hit. Only the
// model's first mesh is tested triangle by triangle. Further meshes count
// toward the bounding sphere but can never be picked.
func TestModel(r Ray, model *mesh.Model, transform math.Mat4) (Hit, error) {
	inv, ok := transform.Invert()
	if !ok {
		return Hit{}, ErrSingularTransform
	}
	local := r.Transform(inv)

	if _, hit := IntersectSphere(local, model.BoundingSphere()); !hit {
		return Hit{}, nil
	}
	result := Hit{InsideBoundingSphere: true}
	if model.MeshCount() == 0 {
		return result, nil
	}

	soup := model.Mesh(0).PositionsByIndex()
	closest := float32(math32.MaxFloat32)
	for i := 0; i+2 < len(soup); i += 3 {
		t, hit := IntersectTriangle(local, soup[i], soup[i+1], soup[i+2])
		if !hit || (result.Hit && t >= closest) {
			continue
		}
		closest = t
		result.Hit = true
		result.Distance = t
		result.Triangle = [3]math.Vec3{
			transform.TransformVec3(soup[i]),
			transform.TransformVec3(soup[i+1]),
			transform.TransformVec3(soup[i+2]),
		}
	}
	return result, nil
}

// Pick is the scene-wide picking result.
type Pick struct {
	// ModelIndex is the index of the picked model, or -1.
	ModelIndex int
	Name       string
	Distance   float32
	Triangle   [3]math.Vec3
	// InsideBoundingSphere names every model whose bounding sphere the ray
	// hit, whether or not a triangle was hit.
	InsideBoundingSphere []string
}

// Found reports whether a triangle was picked.
func (p Pick) Found() bool {
	return p.ModelIndex >= 0
}

// PickClosest tests every model and returns the closest triangle hit.
// On equal distances the earlier model wins. A model whose transform cannot
// be inverted is skipped; its error is joined into the returned error while
// the remaining models are still picked.
func PickClosest(r Ray, models []*mesh.Model, transforms []math.Mat4, names []string) (Pick, error) {
	if len(models) != len(transforms) || len(models) != len(names) {
		return Pick{ModelIndex: -1}, fmt.Errorf("%d models, %d transforms, %d names: %w",
			len(models), len(transforms), len(names), ErrRosterMismatch)
	}

	pick := Pick{ModelIndex: -1}
	var errs []error
	for i, model := range models {
		hit, err := TestModel(r, model, transforms[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("model %d (%s): %w", i, names[i], err))
			continue
		}
		if hit.InsideBoundingSphere {
			pick.InsideBoundingSphere = append(pick.InsideBoundingSphere, names[i])
		}
		if !hit.Hit {
			continue
		}
		if pick.ModelIndex < 0 || hit.Distance < pick.Distance {
			pick.ModelIndex = i
			pick.Name = names[i]
			pick.Distance = hit.Distance
			pick.Triangle = hit.Triangle
		}
	}
	return pick, errors.Join(errs...)
}
