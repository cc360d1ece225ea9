package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/lumen-render/lumen/pkg/core"
)

func TestReflect(t *testing.T) {
	n := core.NewVec3(0, 1, 0)
	v := core.NewVec3(1, -1, 0).Normalize()

	r := Reflect(v, n)
	expected := core.NewVec3(1, 1, 0).Normalize()
	if r.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, r)
	}
}

func TestMetal_Scatter_Mirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	result, scattered := metal.Scatter(rayIn, hit, sampler)
	if !scattered {
		t.Fatal("Expected scatter")
	}
	if !result.IsSpecular() {
		t.Error("Mirror scatter must be specular")
	}

	expected := core.NewVec3(1, 1, 0).Normalize()
	if result.Scattered.Direction.Normalize().Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected, result.Scattered.Direction.Normalize())
	}
	if result.Attenuation != metal.Albedo {
		t.Errorf("Expected attenuation %v, got %v", metal.Albedo, result.Attenuation)
	}
}

func TestMetal_Scatter_FuzzStaysAboveSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}
	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	// Every accepted scatter must point away from the surface
	for i := 0; i < 1000; i++ {
		result, scattered := metal.Scatter(rayIn, hit, sampler)
		if scattered && result.Scattered.Direction.Dot(hit.Normal) <= 0 {
			t.Fatal("Accepted scatter below the surface")
		}
	}
}

func TestMetal_FuzzClamped(t *testing.T) {
	if m := NewMetal(core.NewVec3(1, 1, 1), 2.5); m.Fuzzness != 1.0 {
		t.Errorf("Expected fuzz clamped to 1, got %f", m.Fuzzness)
	}
	if m := NewMetal(core.NewVec3(1, 1, 1), -0.5); m.Fuzzness != 0.0 {
		t.Errorf("Expected fuzz clamped to 0, got %f", m.Fuzzness)
	}
}

func TestMetal_DeltaEvaluatesToZero(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	normal := core.NewVec3(0, 1, 0)
	wo := core.NewVec3(0, 1, 1).Normalize()
	wi := core.NewVec3(0, 1, -1).Normalize()

	if !metal.EvaluateBRDF(wo, wi, normal).IsBlack() {
		t.Error("Expected zero brdf for a delta distribution")
	}
	if metal.PDF(wo, wi, normal) != 0 {
		t.Error("Expected zero pdf for a delta distribution")
	}
}

func TestMetal_GrazingReflectionAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 1.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}
	// Near-grazing incidence with maximum fuzz gets absorbed sometimes
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0).Normalize())

	absorbed := 0
	for i := 0; i < 1000; i++ {
		if _, scattered := metal.Scatter(rayIn, hit, sampler); !scattered {
			absorbed++
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
}

func TestMetal_ScatterEnergyConserved(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.7, 0.6), 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	rayIn := core.NewRay(core.NewVec3(0, 1, -1), core.NewVec3(0, -1, 1))

	result, _ := metal.Scatter(rayIn, hit, sampler)
	if result.Attenuation.X > 1 || result.Attenuation.Y > 1 || result.Attenuation.Z > 1 {
		t.Errorf("Attenuation exceeds 1: %v", result.Attenuation)
	}
	if math.Abs(result.Attenuation.X-0.8) > 1e-12 {
		t.Errorf("Expected attenuation 0.8, got %f", result.Attenuation.X)
	}
}
