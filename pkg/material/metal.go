package material

import (
	"github.com/lumen-render/lumen/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)

	// Fuzziness perturbs the mirror direction within a sphere
	if m.Fuzzness > 0 {
		perturbation := core.SampleUniformSphere(sampler.Get2D()).Multiply(m.Fuzzness * sampler.Get1D())
		reflected = reflected.Add(perturbation)
	}

	scattered := core.Ray{Origin: hit.Point, Direction: reflected}

	// Absorb rays that end up below the surface
	scatters := scattered.Direction.Dot(hit.Normal) > 0

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
		PDF:         0, // Delta distribution
	}, scatters
}

// EvaluateBRDF evaluates the BRDF for a specific direction pair.
// A delta distribution evaluates to zero for any finite direction pair;
// the mirror contribution only exists through Scatter.
func (m *Metal) EvaluateBRDF(wo, wi, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF returns 0: delta distributions cannot be density-evaluated
func (m *Metal) PDF(wo, wi, normal core.Vec3) float64 {
	return 0.0
}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
