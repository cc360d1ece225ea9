package lights

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
)

// QuadLight represents a rectangular area light. Emission leaves the
// front face only (the side the normal points toward).
type QuadLight struct {
	*geometry.Quad
	area float64
}

// NewQuadLight creates a new quad light
func NewQuadLight(corner, u, v core.Vec3, material core.Material) *QuadLight {
	quad := geometry.NewQuad(corner, u, v, material)
	return &QuadLight{Quad: quad, area: quad.Area()}
}

func (ql *QuadLight) Type() core.LightType {
	return core.LightTypeArea
}

// Sample implements the Light interface: uniform area sampling with the
// density converted to solid angle at the receiving point
func (ql *QuadLight) Sample(point core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	samplePoint := ql.Corner.Add(ql.U.Multiply(sample.X)).Add(ql.V.Multiply(sample.Y))

	toLight := samplePoint.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.LightSample{}, false
	}
	direction := toLight.Multiply(1.0 / distance)

	// Receiver must face the emitting side: the ray toward the light has
	// to run against the quad normal
	cosLight := -ql.Normal.Dot(direction)
	if cosLight < 1e-8 {
		return core.LightSample{}, false
	}

	// pdf_ω = dist² / (cos θ_light · area)
	pdf := distance * distance / (cosLight * ql.area)

	ray := core.NewRay(point, direction)
	hit := core.HitRecord{Point: samplePoint, Normal: ql.Normal, T: distance, Material: ql.Material}

	return core.LightSample{
		Point:     samplePoint,
		Normal:    ql.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  ql.emission(ray, &hit),
		PDF:       pdf,
	}, true
}

// PDF implements the Light interface and mirrors the density used in Sample
func (ql *QuadLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	hit, ok := ql.Quad.Hit(core.NewRay(point, direction), 1e-4, math.Inf(1))
	if !ok {
		return 0.0
	}

	cosLight := -ql.Normal.Dot(direction)
	if cosLight < 1e-8 {
		return 0.0 // Back face or edge-on
	}

	return hit.T * hit.T / (cosLight * ql.area)
}

// emission evaluates the quad's material emission toward the receiver
func (ql *QuadLight) emission(ray core.Ray, hit *core.HitRecord) core.Vec3 {
	if emitter, ok := ql.Material.(core.Emitter); ok {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}
