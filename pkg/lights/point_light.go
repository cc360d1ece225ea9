package lights

import (
	"github.com/lumen-render/lumen/pkg/core"
)

// PointLight is a delta-position light emitting intensity I in all
// directions; incident radiance falls off with squared distance.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() core.LightType {
	return core.LightTypeDelta
}

// Sample implements the Light interface. The sample point is unused: a
// delta light has exactly one direction, with probability one.
func (pl *PointLight) Sample(point core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	toLight := pl.Position.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return core.LightSample{}, false
	}
	distance := toLight.Length()

	return core.LightSample{
		Point:     pl.Position,
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Emission:  pl.Intensity.Multiply(1.0 / distanceSquared),
		PDF:       1.0,
	}, true
}

// PDF implements the Light interface; a delta direction can never be
// generated by BSDF sampling
func (pl *PointLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	return 0.0
}
