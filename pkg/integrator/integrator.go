package integrator

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
)

// Integrator computes the radiance arriving along a camera ray. A sampler
// is passed in per sample; integrators hold no mutable state so one
// instance serves all workers.
type Integrator interface {
	Li(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3
}

// Intersection epsilon shared by primary and shadow rays; offsets ray
// origins off the surface they spawned from
const rayEpsilon = 1e-4

// FromName constructs one of the supported integrators. Unknown names are
// configuration errors, surfaced before any rendering starts.
func FromName(name string, config core.SamplingConfig) (Integrator, error) {
	switch name {
	case "path":
		return NewPathTracer(config), nil
	case "direct":
		return NewDirectLighting(config), nil
	default:
		return nil, fmt.Errorf("integrator %q is not supported (want \"path\" or \"direct\")", name)
	}
}

// backgroundRadiance evaluates the environment gradient for an escaped ray
func backgroundRadiance(scene core.Scene, ray core.Ray) core.Vec3 {
	topColor, bottomColor := scene.GetBackgroundColors()

	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Multiply(1.0 - t).Add(topColor.Multiply(t))
}
