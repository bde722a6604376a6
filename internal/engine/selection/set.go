// Package selection keeps the triangles picked on each model.
//
// A triangle is identified by the exact bit pattern of its three world-space
// corner positions. Two triangles match only when all nine floats are
// bit-identical, so a selection toggles reliably against a pick taken from
// the same geometry and never against a nearby one.
package selection

import (
	"fmt"
	"image/color"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/meshpick/pkg/math"
)

// Vertex is one corner of a selected triangle as drawn by the highlight pass.
type Vertex struct {
	Position math.Vec3
	Color    color.RGBA
}

// TriangleKey is the bit pattern of a triangle's three corners.
type TriangleKey [9]uint32

// KeyOf returns the identity key of a triangle.
func KeyOf(tri [3]math.Vec3) TriangleKey {
	var k TriangleKey
	for i, p := range tri {
		b := p.Key()
		copy(k[i*3:], b[:])
	}
	return k
}

// Set holds one triangle list per model. Lists are runs of three vertices,
// one run per selected triangle, in selection order.
//
// Model indices are positional and must stay aligned with the model roster;
// an out-of-range index panics.
type Set struct {
	highlight color.RGBA
	lists     [][]Vertex
}

// New creates an empty selection for models models.
func New(models int, highlight color.RGBA) *Set {
	return &Set{
		highlight: highlight,
		lists:     make([][]Vertex, models),
	}
}

// Highlight returns the color given to selected triangles.
func (s *Set) Highlight() color.RGBA {
	return s.highlight
}

// AddModel appends an empty list for a new model.
func (s *Set) AddModel() {
	s.lists = append(s.lists, nil)
}

// RemoveModel drops the list of model i; later models shift down by one.
func (s *Set) RemoveModel(i int) {
	s.lists = append(s.lists[:i], s.lists[i+1:]...)
}

// Models returns the number of model lists.
func (s *Set) Models() int {
	return len(s.lists)
}

// Toggle adds tri to the model's selection, or removes it if an identical
// triangle is already selected. It reports whether the triangle was added.
func (s *Set) Toggle(model int, tri [3]math.Vec3) bool {
	if i := s.find(model, KeyOf(tri)); i >= 0 {
		list := s.lists[model]
		copy(list[i*3:], list[i*3+3:])
		s.lists[model] = list[:len(list)-3]
		return false
	}

	for _, p := range tri {
		s.lists[model] = append(s.lists[model], Vertex{Position: p, Color: s.highlight})
	}
	return true
}

// Contains reports whether an identical triangle is selected on model.
func (s *Set) Contains(model int, tri [3]math.Vec3) bool {
	return s.find(model, KeyOf(tri)) >= 0
}

// find returns the triangle index of key within the model list, or -1.
func (s *Set) find(model int, key TriangleKey) int {
	list := s.lists[model]
	for i := 0; i+2 < len(list); i += 3 {
		tri := [3]math.Vec3{list[i].Position, list[i+1].Position, list[i+2].Position}
		if KeyOf(tri) == key {
			return i / 3
		}
	}
	return -1
}

// Clear empties one model's list. The backing array is kept for reuse.
func (s *Set) Clear(model int) {
	s.lists[model] = s.lists[model][:0]
}

// ClearAll empties every list.
func (s *Set) ClearAll() {
	for i := range s.lists {
		s.Clear(i)
	}
}

// Len returns the number of triangles selected on model.
func (s *Set) Len(model int) int {
	return len(s.lists[model]) / 3
}

// Count returns the number of triangles selected across all models.
func (s *Set) Count() int {
	n := 0
	for i := range s.lists {
		n += s.Len(i)
	}
	return n
}

// Vertices returns the live highlight vertices of model. The slice is only
// valid until the next mutation.
func (s *Set) Vertices(model int) []Vertex {
	return s.lists[model]
}

// Triangle returns the corners of the i-th selected triangle of model.
func (s *Set) Triangle(model, i int) [3]math.Vec3 {
	list := s.lists[model]
	return [3]math.Vec3{list[i*3].Position, list[i*3+1].Position, list[i*3+2].Position}
}

// SetTriangle overwrites the corners of the i-th selected triangle of model.
func (s *Set) SetTriangle(model, i int, tri [3]math.Vec3) {
	list := s.lists[model]
	for k, p := range tri {
		list[i*3+k].Position = p
	}
}

// Keys returns the identity keys of model's triangles in selection order.
func (s *Set) Keys(model int) []TriangleKey {
	keys := make([]TriangleKey, s.Len(model))
	for i := range keys {
		keys[i] = KeyOf(s.Triangle(model, i))
	}
	return keys
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() (*Set, error) {
	c := &Set{highlight: s.highlight}
	if err := copier.CopyWithOption(&c.lists, &s.lists, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("clone selection: %w", err)
	}
	// Keep one list per model even where the source list is nil.
	for len(c.lists) < len(s.lists) {
		c.lists = append(c.lists, nil)
	}
	return c, nil
}

// Restore replaces the contents of s with those of from, keeping s's
// identity. from is consumed and must not be used afterwards.
func (s *Set) Restore(from *Set) {
	s.highlight = from.highlight
	s.lists = from.lists
	from.lists = nil
}
