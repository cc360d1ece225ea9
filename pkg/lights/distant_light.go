package lights

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// DistantLight is a delta-direction light: parallel rays of constant
// radiance from infinitely far away, like sunlight.
type DistantLight struct {
	Radiance  core.Vec3
	direction core.Vec3 // Unit direction the light travels
}

// NewDistantLight creates a distant light traveling in the given direction
func NewDistantLight(radiance, direction core.Vec3) *DistantLight {
	return &DistantLight{Radiance: radiance, direction: direction.Normalize()}
}

// NewDistantLightFromTo creates a distant light shining from one point
// toward another; only the direction between them matters
func NewDistantLightFromTo(radiance, from, to core.Vec3) *DistantLight {
	return NewDistantLight(radiance, to.Subtract(from))
}

func (dl *DistantLight) Type() core.LightType {
	return core.LightTypeDelta
}

// Sample implements the Light interface
func (dl *DistantLight) Sample(point core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	return core.LightSample{
		Direction: dl.direction.Negate(),
		Distance:  math.Inf(1),
		Emission:  dl.Radiance,
		PDF:       1.0,
	}, true
}

// PDF implements the Light interface; delta directions are never
// BSDF-sampled
func (dl *DistantLight) PDF(point core.Vec3, direction core.Vec3) float64 {
	return 0.0
}
