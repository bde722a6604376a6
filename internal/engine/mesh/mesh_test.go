package mesh

import (
	"errors"
	"image/color"
	"testing"

	"github.com/Faultbox/meshpick/pkg/math"
)

var gray = color.RGBA{R: 190, G: 190, B: 190, A: 255}

// quad builds two triangles sharing the edge (1,2).
func quad() *Mesh {
	m := New()
	m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0}, gray, math.Vec2{X: 0, Y: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0}, gray, math.Vec2{X: 1, Y: 0})
	m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0}, gray, math.Vec2{X: 0, Y: 1})
	m.AddVertex(math.Vec3{X: 1, Y: 1, Z: 0}, gray, math.Vec2{X: 1, Y: 1})
	m.AddTriangle(0, 1, 2)
	m.AddTriangle(1, 3, 2)
	return m
}

func TestMeshCounts(t *testing.T) {
	m := quad()
	if m.VertexCount() != 4 {
		t.Errorf("VertexCount: got %d, want 4", m.VertexCount())
	}
	if m.IndexCount() != 6 {
		t.Errorf("IndexCount: got %d, want 6", m.IndexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("TriangleCount: got %d, want 2", m.TriangleCount())
	}
}

func TestPositionsByIndex(t *testing.T) {
	m := quad()
	soup := m.PositionsByIndex()

	if len(soup) != m.IndexCount() {
		t.Fatalf("soup length: got %d, want %d", len(soup), m.IndexCount())
	}
	want := []math.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	}
	for i := range want {
		if soup[i] != want[i] {
			t.Errorf("soup[%d]: got %v, want %v", i, soup[i], want[i])
		}
	}

	if got := len(m.Positions()); got != m.VertexCount() {
		t.Errorf("Positions length: got %d, want %d", got, m.VertexCount())
	}
}

func TestSetPositionAtSlotMovesSharedVertex(t *testing.T) {
	m := quad()
	moved := math.Vec3{X: 5, Y: 5, Z: 5}

	// Slot 1 references vertex 1, which slot 3 also references.
	m.SetPositionAtSlot(1, moved)

	soup := m.PositionsByIndex()
	if soup[1] != moved || soup[3] != moved {
		t.Errorf("shared vertex not updated in both triangles: %v, %v", soup[1], soup[3])
	}
	if m.Vertices()[1].Position != moved {
		t.Errorf("vertex 1: got %v, want %v", m.Vertices()[1].Position, moved)
	}
	if m.Vertices()[1].Color != gray {
		t.Error("color should be untouched by a position edit")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Mesh
		want  error
	}{
		{"valid", quad, nil},
		{"partial triangle", func() *Mesh {
			m := quad()
			m.AddIndex(0)
			return m
		}, ErrIndexCount},
		{"out of range", func() *Mesh {
			m := quad()
			m.AddTriangle(0, 1, 4)
			return m
		}, ErrIndexOutOfRange},
		{"empty", New, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateTooManyVertices(t *testing.T) {
	m := New()
	for i := 0; i <= MaxVertices; i++ {
		m.AddVertex(math.Vec3{X: float32(i)}, gray, math.Vec2{})
	}
	if err := m.Validate(); !errors.Is(err, ErrTooManyVertices) {
		t.Errorf("got %v, want %v", err, ErrTooManyVertices)
	}
}

func TestMeshCloneIndependence(t *testing.T) {
	orig := quad()
	clone := orig.Clone()

	clone.SetPositionAtSlot(0, math.Vec3{X: 9, Y: 9, Z: 9})
	clone.AddTriangle(0, 2, 3)

	if orig.Vertices()[0].Position != (math.Vec3{}) {
		t.Errorf("source vertex changed: %v", orig.Vertices()[0].Position)
	}
	if orig.IndexCount() != 6 {
		t.Errorf("source index count changed: %d", orig.IndexCount())
	}
}
