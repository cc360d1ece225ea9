package core_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
)

func randomSpheres(random *rand.Rand, count int) []core.Shape {
	shapes := make([]core.Shape, count)
	for i := range shapes {
		center := core.NewVec3(
			random.Float64()*20-10,
			random.Float64()*20-10,
			random.Float64()*20-10,
		)
		radius := 0.1 + random.Float64()*1.5
		shapes[i] = geometry.NewSphere(center, radius, nil)
	}
	return shapes
}

func randomRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(
		random.Float64()*30-15,
		random.Float64()*30-15,
		random.Float64()*30-15,
	)
	direction := core.SampleUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
	return core.NewRay(origin, direction)
}

// bruteForceHit is the reference: test every shape and keep the closest hit
func bruteForceHit(shapes []core.Shape, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	for _, shape := range shapes {
		if hit, ok := shape.Hit(ray, tMin, tMax); ok {
			closest = hit
			tMax = hit.T
		}
	}
	return closest, closest != nil
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(random, 200)

	bvh, err := core.NewBVH(shapes)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	for i := 0; i < 1000; i++ {
		ray := randomRay(random)

		expected, expectedHit := bruteForceHit(shapes, ray, 0.001, math.Inf(1))
		got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))

		if gotHit != expectedHit {
			t.Fatalf("Ray %d: expected hit=%t, got %t", i, expectedHit, gotHit)
		}
		if gotHit && math.Abs(got.T-expected.T) > 1e-9 {
			t.Fatalf("Ray %d: expected t=%f, got t=%f", i, expected.T, got.T)
		}
	}
}

func TestBVH_HitAnyConsistentWithHit(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	shapes := randomSpheres(random, 100)

	bvh, err := core.NewBVH(shapes)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	for i := 0; i < 500; i++ {
		ray := randomRay(random)
		_, hit := bvh.Hit(ray, 0.001, math.Inf(1))
		any := bvh.HitAny(ray, 0.001, math.Inf(1))
		if hit != any {
			t.Fatalf("Ray %d: Hit=%t but HitAny=%t", i, hit, any)
		}
	}
}

func TestBVH_HitAnyRespectsTMax(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -10), 1.0, nil)
	bvh, err := core.NewBVH([]core.Shape{sphere})
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !bvh.HitAny(ray, 0.001, math.Inf(1)) {
		t.Error("Expected occlusion with unbounded tMax")
	}
	// The sphere starts at t=9; a shorter shadow ray must not see it
	if bvh.HitAny(ray, 0.001, 5.0) {
		t.Error("Expected no occlusion with tMax in front of the sphere")
	}
}

func TestBVH_SingleShape(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1.0, nil)
	bvh, err := core.NewBVH([]core.Shape{sphere})
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	hit, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-4.0) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
}

func TestBVH_EmptyShapesError(t *testing.T) {
	if _, err := core.NewBVH(nil); err == nil {
		t.Error("Expected error for empty shape set")
	}
}

func TestBVH_ManyCoincidentCentroids(t *testing.T) {
	// Shapes sharing one centroid force the degenerate split path
	shapes := make([]core.Shape, 32)
	for i := range shapes {
		shapes[i] = geometry.NewSphere(core.NewVec3(1, 2, 3), 0.5+0.01*float64(i), nil)
	}

	bvh, err := core.NewBVH(shapes)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(1, 2, 10), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	// The largest sphere is hit first
	largest := 0.5 + 0.01*float64(len(shapes)-1)
	expectedT := 7.0 - largest
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got %f", expectedT, hit.T)
	}
}

func TestBVH_DeepUnbalancedTree(t *testing.T) {
	// Exponentially spaced centroids defeat the bucketed splitter: almost
	// every centroid lands in one bucket, so each level peels off only a
	// handful of shapes and the tree degenerates toward a linear chain.
	var shapes []core.Shape
	for i := 0; i < 512; i++ {
		x := math.Pow(2, float64(i))
		shapes = append(shapes,
			geometry.NewSphere(core.NewVec3(x, 0, 0), 0.25, nil),
			geometry.NewSphere(core.NewVec3(-x, 0, 0), 0.25, nil),
		)
	}

	bvh, err := core.NewBVH(shapes)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	stats := bvh.Stats()
	if stats.MaxDepth <= 100 {
		t.Fatalf("Expected a deeply unbalanced tree, got depth %d", stats.MaxDepth)
	}

	// Traversal must survive a tree much deeper than a typical balanced
	// one and still return the closest hit
	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(-1, 0, 0)),
		core.NewRay(core.NewVec3(0, 0.1, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
	}
	for i, ray := range rays {
		expected, expectedHit := bruteForceHit(shapes, ray, 0.001, math.Inf(1))
		got, gotHit := bvh.Hit(ray, 0.001, math.Inf(1))
		if gotHit != expectedHit {
			t.Fatalf("Ray %d: expected hit=%t, got %t", i, expectedHit, gotHit)
		}
		if gotHit && math.Abs(got.T-expected.T) > 1e-9 {
			t.Fatalf("Ray %d: expected t=%f, got t=%f", i, expected.T, got.T)
		}
		if bvh.HitAny(ray, 0.001, math.Inf(1)) != expectedHit {
			t.Fatalf("Ray %d: HitAny disagrees with brute force", i)
		}
	}

	// The closest sphere along +x sits at x=1 with radius 0.25
	hit, ok := bvh.Hit(rays[0], 0.001, math.Inf(1))
	if !ok || math.Abs(hit.T-0.75) > 1e-9 {
		t.Errorf("Expected closest hit at t=0.75, got %+v ok=%t", hit, ok)
	}
}

func TestBVH_Stats(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	shapes := randomSpheres(random, 50)

	bvh, err := core.NewBVH(shapes)
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	stats := bvh.Stats()
	if stats.TotalShapes != 50 {
		t.Errorf("Expected 50 shapes, got %d", stats.TotalShapes)
	}
	if stats.TotalNodes <= 0 {
		t.Errorf("Expected positive node count, got %d", stats.TotalNodes)
	}
	if stats.LeafNodes <= 0 {
		t.Errorf("Expected positive leaf count, got %d", stats.LeafNodes)
	}
	if !bvh.Bounds().IsValid() {
		t.Error("Expected valid root bounds")
	}
}
