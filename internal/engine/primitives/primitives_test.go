package primitives

import (
	"errors"
	"image/color"
	"testing"
)

var gray = color.RGBA{R: 190, G: 190, B: 190, A: 255}

func TestCube(t *testing.T) {
	model, err := Cube(1, gray)
	if err != nil {
		t.Fatalf("Cube: %v", err)
	}
	m := model.Mesh(0)
	if m.VertexCount() != 8 {
		t.Errorf("vertices: got %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("triangles: got %d, want 12", m.TriangleCount())
	}

	s := model.BoundingSphere()
	if s.Center.Length() != 0 {
		t.Errorf("center: got %v, want origin", s.Center)
	}
	if s.Radius != 2 {
		t.Errorf("radius: got %v, want 2", s.Radius)
	}
}

func TestSphere(t *testing.T) {
	const tess = 8
	model, err := Sphere(2, tess, gray)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	m := model.Mesh(0)

	wantVerts := 2 + (tess-1)*tess*2
	if m.VertexCount() != wantVerts {
		t.Errorf("vertices: got %d, want %d", m.VertexCount(), wantVerts)
	}
	wantTris := 2*tess*2 + (tess-2)*tess*2*2
	if m.TriangleCount() != wantTris {
		t.Errorf("triangles: got %d, want %d", m.TriangleCount(), wantTris)
	}

	for i, p := range m.Positions() {
		if l := p.Length(); l < 0.999 || l > 1.001 {
			t.Errorf("vertex %d not on unit sphere: length %v", i, l)
		}
	}
}

func TestCylinder(t *testing.T) {
	const tess = 12
	model, err := Cylinder(2, 1, tess, gray)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	m := model.Mesh(0)

	wantVerts := tess*2 + 2*(tess+1)
	if m.VertexCount() != wantVerts {
		t.Errorf("vertices: got %d, want %d", m.VertexCount(), wantVerts)
	}
	wantTris := tess*2 + tess*2
	if m.TriangleCount() != wantTris {
		t.Errorf("triangles: got %d, want %d", m.TriangleCount(), wantTris)
	}

	for i, p := range m.Positions() {
		if p.Y > 1.0001 || p.Y < -1.0001 {
			t.Errorf("vertex %d outside height: %v", i, p)
		}
	}
}

func TestTessellationTooLow(t *testing.T) {
	if _, err := Sphere(1, 2, gray); !errors.Is(err, ErrTessellation) {
		t.Errorf("Sphere: got %v, want %v", err, ErrTessellation)
	}
	if _, err := Cylinder(1, 1, 2, gray); !errors.Is(err, ErrTessellation) {
		t.Errorf("Cylinder: got %v, want %v", err, ErrTessellation)
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr error
	}{
		{KindCube, nil},
		{KindSphere, nil},
		{KindCylinder, nil},
		{"torus", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			model, err := Build(tt.kind, 1, 8, gray)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if model.MeshCount() != 1 {
				t.Errorf("meshes: got %d, want 1", model.MeshCount())
			}
		})
	}
}
