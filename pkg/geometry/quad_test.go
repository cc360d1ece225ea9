package geometry

import (
	"math"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func testQuad() *Quad {
	// Unit quad in the XY plane with normal +Z
	return NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), nil)
}

func TestQuad_Hit(t *testing.T) {
	quad := testQuad()

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"center hit", core.NewRay(core.NewVec3(0.5, 0.5, 2), core.NewVec3(0, 0, -1)), true, 2.0},
		{"corner hit", core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), true, 1.0},
		{"outside alpha", core.NewRay(core.NewVec3(1.5, 0.5, 1), core.NewVec3(0, 0, -1)), false, 0},
		{"outside beta", core.NewRay(core.NewVec3(0.5, -0.5, 1), core.NewVec3(0, 0, -1)), false, 0},
		{"parallel ray", core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(1, 0, 0)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := quad.Hit(tt.ray, 0.001, 1000.0)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestQuad_Hit_UV(t *testing.T) {
	quad := testQuad()

	hit, isHit := quad.Hit(core.NewRay(core.NewVec3(0.25, 0.75, 1), core.NewVec3(0, 0, -1)), 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected UV (0.25, 0.75), got (%f, %f)", hit.UV.X, hit.UV.Y)
	}
}

func TestQuad_Hit_FaceOrientation(t *testing.T) {
	quad := testQuad()

	// Approaching against the normal sees the front face
	hit, _ := quad.Hit(core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1)), 0.001, 1000.0)
	if !hit.FrontFace || hit.Normal.Z != 1 {
		t.Errorf("Expected front face with normal +Z, got front=%t normal=%v", hit.FrontFace, hit.Normal)
	}

	// Approaching along the normal sees the back face
	hit, _ = quad.Hit(core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1)), 0.001, 1000.0)
	if hit.FrontFace || hit.Normal.Z != -1 {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", hit.FrontFace, hit.Normal)
	}
}

func TestQuad_Area(t *testing.T) {
	quad := NewQuad(core.Vec3{}, core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), nil)
	if got := quad.Area(); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("Expected area 6, got %f", got)
	}
}

func TestQuad_BoundingBoxHasThickness(t *testing.T) {
	quad := testQuad()
	box := quad.BoundingBox()

	if box.Max.Z-box.Min.Z <= 0 {
		t.Error("Expected padded bounding box with non-zero thickness")
	}
	if !box.IsValid() {
		t.Error("Expected valid bounding box")
	}
}
