package gfx

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestElementBuildEmpty(t *testing.T) {
	got := NewElement().Build()
	if got == nil {
		t.Fatal("Build() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len(Build()) = %d, want 0", len(got))
	}
}

func TestElementDefaultColor(t *testing.T) {
	e := NewElement()
	if e.Color() != (mgl32.Vec4{}) {
		t.Errorf("default color = %v, want transparent black", e.Color())
	}
	got := e.WithShape([]mgl32.Vec3{{1, 2, 3}}).Build()
	if got[0].Color != (mgl32.Vec4{0, 0, 0, 0}) {
		t.Errorf("vertex color = %v, want transparent black", got[0].Color)
	}
}

func TestElementBuild(t *testing.T) {
	points := TrianglePoints()
	color := mgl32.Vec4{1, 0, 0, 0}

	got := NewElement().WithColor(color).WithShape(points).Build()
	if len(got) != len(points) {
		t.Fatalf("len(Build()) = %d, want %d", len(got), len(points))
	}
	for i, v := range got {
		if v.Position != points[i] {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, points[i])
		}
		if v.Color != color {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, color)
		}
	}
}

func TestElementColorCapturedAtBuild(t *testing.T) {
	points := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}
	final := mgl32.Vec4{0.2, 0.4, 0.6, 0.8}

	got := NewElement().
		WithColor(mgl32.Vec4{1, 1, 1, 1}).
		WithShape(points).
		WithColor(final).
		Build()

	for i, v := range got {
		if v.Color != final {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, final)
		}
	}
}

func TestElementIsValue(t *testing.T) {
	base := NewElement().WithColor(mgl32.Vec4{1, 0, 0, 1})
	green := base.WithColor(mgl32.Vec4{0, 1, 0, 1})

	if base.Color() != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("base color changed to %v", base.Color())
	}
	if green.Color() != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("green color = %v", green.Color())
	}
}

func TestElementMesh(t *testing.T) {
	m, err := NewElement().WithShape(TrianglePoints()).Mesh()
	if err != nil {
		t.Fatalf("Mesh() failed: %v", err)
	}
	want := []uint16{0, 1, 2}
	if len(m.Indices()) != len(want) {
		t.Fatalf("indices = %v, want %v", m.Indices(), want)
	}
	for i := range want {
		if m.Indices()[i] != want[i] {
			t.Errorf("indices[%d] = %d, want %d", i, m.Indices()[i], want[i])
		}
	}
}

func TestElementMeshErrors(t *testing.T) {
	tests := []struct {
		name   string
		points []mgl32.Vec3
		want   error
	}{
		{"empty", nil, ErrEmptyMesh},
		{"two points", []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}}, ErrIncompleteTriangle},
		{"too many", make([]mgl32.Vec3, maxVertices+3), ErrTooManyVertices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewElement().WithShape(tt.points).Mesh()
			if !errors.Is(err, tt.want) {
				t.Errorf("Mesh() error = %v, want %v", err, tt.want)
			}
		})
	}
}
