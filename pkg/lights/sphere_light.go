package lights

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
)

// SphereLight represents a spherical area light. It embeds the sphere
// shape, so the same object is scene geometry and sampled light.
type SphereLight struct {
	*geometry.Sphere
}

// NewSphereLight creates a new spherical light with the given emission
func NewSphereLight(center core.Vec3, radius float64, material core.Material) *SphereLight {
	return &SphereLight{Sphere: geometry.NewSphere(center, radius, material)}
}

func (sl *SphereLight) Type() core.LightType {
	return core.LightTypeArea
}

// Sample implements the Light interface. Points outside the sphere sample
// the cone of directions subtending it; points inside sample the surface
// uniformly by area. Both report solid-angle PDFs so MIS weights combine
// with BSDF densities.
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		return sl.sampleInterior(point, sample)
	}

	// Cone of directions toward the visible cap
	w := toCenter.Multiply(1.0 / distanceToCenter)
	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	direction := core.SampleCone(w, cosThetaMax, sample)

	ray := core.NewRay(point, direction)
	hit, ok := sl.Sphere.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		// Grazing cone sample missed numerically
		return core.LightSample{}, false
	}

	pdf := 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
	if math.IsInf(pdf, 0) {
		return core.LightSample{}, false
	}

	return core.LightSample{
		Point:     hit.Point,
		Normal:    hit.Point.Subtract(sl.Center).Normalize(),
		Direction: direction,
		Distance:  hit.T,
		Emission:  sl.emission(ray, hit),
		PDF:       pdf,
	}, true
}

// sampleInterior samples the surface uniformly by area for points inside
// the sphere (the whole surface is visible from there)
func (sl *SphereLight) sampleInterior(point core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	localDir := core.SampleUniformSphere(sample)
	samplePoint := sl.Center.Add(localDir.Multiply(sl.Radius))
	normal := localDir

	toSample := samplePoint.Subtract(point)
	distance := toSample.Length()
	if distance == 0 {
		return core.LightSample{}, false
	}
	direction := toSample.Multiply(1.0 / distance)

	// Convert the uniform area density to solid angle:
	// pdf_ω = dist² / (|cos θ_light| · area)
	cosLight := math.Abs(normal.Dot(direction.Negate()))
	if cosLight < 1e-8 {
		return core.LightSample{}, false
	}
	area := 4.0 * math.Pi * sl.Radius * sl.Radius
	pdf := distance * distance / (cosLight * area)

	ray := core.NewRay(point, direction)
	hit := core.HitRecord{Point: samplePoint, Normal: normal, T: distance, Material: sl.Material}

	return core.LightSample{
		Point:     samplePoint,
		Normal:    normal,
		Direction: direction,
		Distance:  distance,
		Emission:  sl.emission(ray, &hit),
		PDF:       pdf,
	}, true
}

// PDF implements the Light interface and mirrors the densities used in Sample
func (sl *SphereLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hit, ok := sl.Sphere.Hit(ray, 1e-4, math.Inf(1))
	if !ok {
		return 0.0
	}

	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	if distanceToCenter <= sl.Radius {
		normal := hit.Point.Subtract(sl.Center).Normalize()
		cosLight := math.Abs(normal.Dot(direction.Negate()))
		if cosLight < 1e-8 {
			return 0.0
		}
		area := 4.0 * math.Pi * sl.Radius * sl.Radius
		return hit.T * hit.T / (cosLight * area)
	}

	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))
	if cosThetaMax >= 1.0 {
		return 0.0
	}
	return 1.0 / (2.0 * math.Pi * (1.0 - cosThetaMax))
}

// emission evaluates the sphere's material emission toward the receiver
func (sl *SphereLight) emission(ray core.Ray, hit *core.HitRecord) core.Vec3 {
	if emitter, ok := sl.Material.(core.Emitter); ok {
		return emitter.Emit(ray, *hit)
	}
	return core.Vec3{}
}
