package lights

import (
	"github.com/lumen-render/lumen/pkg/core"
)

// SampleOneLight picks one light uniformly and samples it for direct
// lighting. The returned sample's PDF already includes the 1/N selection
// probability, so it combines directly with MIS weights.
func SampleOneLight(lightList []core.Light, point core.Vec3, sampler core.Sampler) (core.LightSample, core.Light, bool) {
	n := len(lightList)
	if n == 0 {
		return core.LightSample{}, nil, false
	}

	index := int(sampler.Get1D() * float64(n))
	if index >= n {
		index = n - 1 // Get1D can return values arbitrarily close to 1
	}
	light := lightList[index]

	sample, ok := light.Sample(point, sampler.Get2D())
	if !ok || sample.PDF <= 0 {
		return core.LightSample{}, nil, false
	}

	sample.PDF /= float64(n)
	return sample, light, true
}

// CombinedPDF returns the solid-angle density with which SampleOneLight
// would generate the given direction from the given point, summed over
// all lights weighted by the uniform selection probability. Delta lights
// contribute zero.
func CombinedPDF(lightList []core.Light, point core.Vec3, direction core.Vec3) float64 {
	n := len(lightList)
	if n == 0 {
		return 0.0
	}

	total := 0.0
	for _, light := range lightList {
		total += light.PDF(point, direction)
	}
	return total / float64(n)
}
