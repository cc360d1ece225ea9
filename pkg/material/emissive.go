package material

import (
	"github.com/lumen-render/lumen/pkg/core"
)

// Emissive represents a light-emitting material. Emission is two-sided;
// area lights that should emit front-face only enforce that in their
// sampling code.
type Emissive struct {
	Emission core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter implements the Material interface; emissive surfaces absorb
// everything they do not emit
func (e *Emissive) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emit returns the emitted radiance for this material
func (e *Emissive) Emit(rayIn core.Ray, hit core.HitRecord) core.Vec3 {
	return e.Emission
}

// EvaluateBRDF evaluates the BRDF: lights do not reflect
func (e *Emissive) EvaluateBRDF(wo, wi, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// PDF returns 0: emissive materials never scatter
func (e *Emissive) PDF(wo, wi, normal core.Vec3) float64 {
	return 0.0
}
