package material

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base reflectance per channel
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo.Clamp(0, 1)}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Cosine-weighted direction in the hemisphere around the normal
	scatterDirection := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.Ray{Origin: hit.Point, Direction: scatterDirection}

	// PDF: cos(θ)/π where θ is the angle from the normal
	cosTheta := scatterDirection.Dot(hit.Normal)
	if cosTheta < 0 {
		cosTheta = 0
	}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: l.Albedo.Multiply(1.0 / math.Pi), // BRDF: albedo/π
		PDF:         cosTheta / math.Pi,
	}, true
}

// EvaluateBRDF evaluates the BRDF for a specific direction pair
func (l *Lambertian) EvaluateBRDF(wo, wi, normal core.Vec3) core.Vec3 {
	if wi.Dot(normal) <= 0 {
		return core.Vec3{} // Below the surface
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// PDF returns the density of cosine-weighted hemisphere sampling
func (l *Lambertian) PDF(wo, wi, normal core.Vec3) float64 {
	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return 0.0
	}
	return cosTheta / math.Pi
}
