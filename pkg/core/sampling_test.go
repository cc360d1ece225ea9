package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleCosineHemisphere(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		sample := NewVec2(random.Float64(), random.Float64())
		dir := SampleCosineHemisphere(normal, sample)

		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		if dir.Dot(normal) < 0 {
			t.Fatalf("Direction %v below the hemisphere", dir)
		}
	}
}

func TestSampleCosineHemisphere_MeanCosine(t *testing.T) {
	// For a cosine-weighted distribution E[cosθ] = 2/3
	normal := NewVec3(0, 0, 1)
	random := rand.New(rand.NewSource(7))

	n := 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := SampleCosineHemisphere(normal, NewVec2(random.Float64(), random.Float64()))
		sum += dir.Dot(normal)
	}

	mean := sum / float64(n)
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine 2/3, got %f", mean)
	}
}

func TestSampleUniformSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var mean Vec3
	n := 50000
	for i := 0; i < n; i++ {
		dir := SampleUniformSphere(NewVec2(random.Float64(), random.Float64()))
		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		mean = mean.Add(dir)
	}

	// Uniform directions average out to the zero vector
	mean = mean.Multiply(1.0 / float64(n))
	if mean.Length() > 0.02 {
		t.Errorf("Expected near-zero mean direction, got %v", mean)
	}
}

func TestSampleCone(t *testing.T) {
	direction := NewVec3(1, 2, -1).Normalize()
	cosWidth := 0.9
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		dir := SampleCone(direction, cosWidth, NewVec2(random.Float64(), random.Float64()))
		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		if dir.Dot(direction) < cosWidth-1e-9 {
			t.Fatalf("Direction outside the cone: cos=%f", dir.Dot(direction))
		}
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(NewVec2(random.Float64(), random.Float64()))
		if p.X*p.X+p.Y*p.Y > 1.0+1e-12 {
			t.Fatalf("Point (%f, %f) outside the unit disk", p.X, p.Y)
		}
	}

	// The degenerate center sample maps to the origin
	if p := SamplePointInUnitDisk(NewVec2(0.5, 0.5)); p.X != 0 || p.Y != 0 {
		t.Errorf("Expected origin for center sample, got (%f, %f)", p.X, p.Y)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	directions := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 1).Normalize(),
		NewVec3(-0.3, 0.9, 0.2).Normalize(),
	}

	for _, w := range directions {
		u, v := OrthonormalBasis(w)
		if math.Abs(u.Length()-1) > 1e-9 || math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Basis vectors for %v not unit length", w)
		}
		if math.Abs(u.Dot(w)) > 1e-9 || math.Abs(v.Dot(w)) > 1e-9 || math.Abs(u.Dot(v)) > 1e-9 {
			t.Errorf("Basis for %v not orthogonal", w)
		}
	}
}

func TestPowerHeuristic(t *testing.T) {
	// Complementary weights sum to one
	w1 := PowerHeuristic(1, 0.5, 1, 2.0)
	w2 := PowerHeuristic(1, 2.0, 1, 0.5)
	if math.Abs(w1+w2-1.0) > 1e-12 {
		t.Errorf("Expected weights to sum to 1, got %f", w1+w2)
	}

	// Dominant strategy gets the dominant weight
	if w := PowerHeuristic(1, 10.0, 1, 0.1); w < 0.99 {
		t.Errorf("Expected weight near 1 for dominant pdf, got %f", w)
	}

	// Both pdfs zero degrades to zero instead of NaN
	if w := PowerHeuristic(1, 0, 1, 0); w != 0 {
		t.Errorf("Expected 0 for zero pdfs, got %f", w)
	}
}
