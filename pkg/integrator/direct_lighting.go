package integrator

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// DirectLighting is a Whitted-style integrator: at the first diffuse hit
// it sums the contribution of every light, and it follows specular chains
// up to the depth limit. Useful as a fast preview and as a reference for
// the direct term of the path tracer.
type DirectLighting struct {
	maxDepth int
}

func NewDirectLighting(config core.SamplingConfig) *DirectLighting {
	return &DirectLighting{maxDepth: config.MaxDepth}
}

func (dl *DirectLighting) Li(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1.0, 1.0, 1.0)

	bvh := scene.GetBVH()

	for bounce := 0; ; bounce++ {
		hit, found := bvh.Hit(ray, rayEpsilon, math.Inf(1))
		if !found {
			radiance = radiance.Add(throughput.MultiplyVec(backgroundRadiance(scene, ray)))
			break
		}

		if emitter, ok := hit.Material.(core.Emitter); ok {
			radiance = radiance.Add(throughput.MultiplyVec(emitter.Emit(ray, *hit)))
		}

		scatter, scattered := hit.Material.Scatter(ray, *hit, sampler)
		if !scattered {
			break
		}

		// Specular surfaces carry no direct term; continue the chain
		if scatter.IsSpecular() && bounce < dl.maxDepth {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			if throughput.IsBlack() {
				break
			}
			ray = scatter.Scattered
			continue
		}

		direct := dl.sampleAllLights(scene, hit, ray.Direction.Negate(), sampler)
		radiance = radiance.Add(throughput.MultiplyVec(direct))
		break
	}

	return radiance.Sanitize()
}

// sampleAllLights takes one shadow ray per light and accumulates the
// unoccluded contributions. No BSDF sampling and no MIS: area lights are
// estimated by light sampling alone.
func (dl *DirectLighting) sampleAllLights(scene core.Scene, hit *core.HitRecord, wo core.Vec3, sampler core.Sampler) core.Vec3 {
	bvh := scene.GetBVH()
	direct := core.Vec3{}

	for _, light := range scene.GetLights() {
		sample, ok := light.Sample(hit.Point, sampler.Get2D())
		if !ok || sample.PDF <= 0 || sample.Emission.IsBlack() {
			continue
		}

		cosTheta := sample.Direction.Dot(hit.Normal)
		if cosTheta <= 0 {
			continue
		}

		brdf := hit.Material.EvaluateBRDF(wo, sample.Direction, hit.Normal)
		if brdf.IsBlack() {
			continue
		}

		shadowRay := core.NewRay(hit.Point, sample.Direction)
		if bvh.HitAny(shadowRay, rayEpsilon, sample.Distance-rayEpsilon) {
			continue
		}

		direct = direct.Add(brdf.MultiplyVec(sample.Emission).Multiply(cosTheta / sample.PDF))
	}

	return direct.Sanitize()
}
