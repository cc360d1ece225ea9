package integrator

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/lights"
)

// PathTracer is the default integrator: unidirectional path tracing with
// next event estimation and multiple importance sampling. At each diffuse
// vertex it samples one light and one BSDF direction, combining the two
// estimators with the power heuristic.
type PathTracer struct {
	maxDepth              int
	russianRouletteBounce int
}

func NewPathTracer(config core.SamplingConfig) *PathTracer {
	return &PathTracer{
		maxDepth:              config.MaxDepth,
		russianRouletteBounce: config.RussianRouletteMinBounces,
	}
}

func (pt *PathTracer) Li(ray core.Ray, scene core.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1.0, 1.0, 1.0)

	bvh := scene.GetBVH()
	lightList := scene.GetLights()

	// State carried across bounces so emission hit by a BSDF sample can
	// be weighted against the light sampling strategy
	specularBounce := true // camera rays count emission at full weight
	bsdfPDF := 0.0
	prevPoint := ray.Origin

	for bounce := 0; ; bounce++ {
		hit, found := bvh.Hit(ray, rayEpsilon, math.Inf(1))
		if !found {
			radiance = radiance.Add(throughput.MultiplyVec(backgroundRadiance(scene, ray)))
			break
		}

		if emitter, ok := hit.Material.(core.Emitter); ok {
			emission := emitter.Emit(ray, *hit)
			if !emission.IsBlack() {
				weight := 1.0
				if !specularBounce {
					lightPDF := lights.CombinedPDF(lightList, prevPoint, ray.Direction)
					if lightPDF > 0 {
						weight = core.PowerHeuristic(1, bsdfPDF, 1, lightPDF)
					}
				}
				radiance = radiance.Add(throughput.MultiplyVec(emission).Multiply(weight))
			}
		}

		scatter, scattered := hit.Material.Scatter(ray, *hit, sampler)
		if !scattered {
			break
		}

		if !scatter.IsSpecular() {
			direct := pt.sampleDirectLight(bvh, lightList, hit, ray.Direction.Negate(), sampler)
			radiance = radiance.Add(throughput.MultiplyVec(direct))
		}

		// MaxDepth counts indirect bounces: depth 0 still gets the
		// emission and direct light terms above, but never continues
		if bounce >= pt.maxDepth {
			break
		}

		if scatter.IsSpecular() {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
		} else {
			cosTheta := scatter.Scattered.Direction.Dot(hit.Normal)
			if cosTheta <= 0 || scatter.PDF <= 0 {
				break
			}
			// Estimator weight f·cosθ/pdf; cosine sampling of a diffuse
			// BRDF reduces this to the albedo
			throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(cosTheta / scatter.PDF)
		}
		if throughput.IsBlack() {
			break
		}

		if bounce+1 >= pt.russianRouletteBounce {
			survival := math.Min(1.0, math.Max(0.05, throughput.Luminance()))
			if sampler.Get1D() >= survival {
				break
			}
			throughput = throughput.Multiply(1.0 / survival)
		}

		specularBounce = scatter.IsSpecular()
		bsdfPDF = scatter.PDF
		prevPoint = hit.Point
		ray = scatter.Scattered
	}

	return radiance.Sanitize()
}

// sampleDirectLight draws one light sample at a diffuse vertex and returns
// its MIS-weighted contribution, or black if the light is occluded.
func (pt *PathTracer) sampleDirectLight(bvh *core.BVH, lightList []core.Light, hit *core.HitRecord, wo core.Vec3, sampler core.Sampler) core.Vec3 {
	sample, light, ok := lights.SampleOneLight(lightList, hit.Point, sampler)
	if !ok || sample.PDF <= 0 || sample.Emission.IsBlack() {
		return core.Vec3{}
	}

	cosTheta := sample.Direction.Dot(hit.Normal)
	if cosTheta <= 0 {
		return core.Vec3{}
	}

	brdf := hit.Material.EvaluateBRDF(wo, sample.Direction, hit.Normal)
	if brdf.IsBlack() {
		return core.Vec3{}
	}

	shadowRay := core.NewRay(hit.Point, sample.Direction)
	if bvh.HitAny(shadowRay, rayEpsilon, sample.Distance-rayEpsilon) {
		return core.Vec3{}
	}

	// Delta lights cannot be hit by BSDF samples, so light sampling is
	// the only estimator and gets full weight
	weight := 1.0
	if light.Type() == core.LightTypeArea {
		materialPDF := hit.Material.PDF(wo, sample.Direction, hit.Normal)
		weight = core.PowerHeuristic(1, sample.PDF, 1, materialPDF)
	}

	return brdf.MultiplyVec(sample.Emission).Multiply(cosTheta * weight / sample.PDF).Sanitize()
}
