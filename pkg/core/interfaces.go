package core

// Shape is the interface for objects that can be hit by rays.
// The shape set is closed: sphere, triangle and triangle mesh (plus the
// quad used by area lights); the scene builder rejects anything else.
type Shape interface {
	// Hit returns the closest intersection in [tMin, tMax], if any
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal at intersection, facing the ray
	UV        Vec2     // Texture coordinates at the intersection
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
	Primitive int      // Index of the hit primitive within the scene (set by the BVH)
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Material is the interface for surface scattering. Implementations form a
// closed set: Lambertian, Metal, Dielectric and Emissive.
type Material interface {
	// Scatter generates an importance-sampled outgoing direction.
	// A ScatterResult with PDF 0 marks a specular (delta) event.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the BRDF for a specific direction pair.
	// wo points away from the surface toward the viewer, wi toward the light.
	EvaluateBRDF(wo, wi, normal Vec3) Vec3

	// PDF returns the density with which Scatter would generate wi.
	// A return of 0 means the direction cannot be sampled; callers must
	// treat the corresponding contribution as zero, never divide by it.
	PDF(wo, wi, normal Vec3) float64
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emit(rayIn Ray, hit HitRecord) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray     // The scattered ray
	Attenuation Vec3    // BRDF value (diffuse) or reflectance (specular)
	PDF         float64 // Sample density; 0 for specular materials
}

// IsSpecular returns true if this is specular scattering (no PDF)
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}

// LightType distinguishes delta lights from sampleable-area lights
type LightType int

const (
	// LightTypeDelta marks point/distant lights: a single direction with
	// probability one, never reachable by BSDF sampling
	LightTypeDelta LightType = iota
	// LightTypeArea marks lights with physical surface area
	LightTypeArea
)

// Light is the interface for direct light sampling. The light set is
// closed: point, distant, sphere area and quad area.
type Light interface {
	Type() LightType

	// Sample picks an incident direction from the reference point toward
	// the light. The returned PDF is with respect to solid angle; delta
	// lights report PDF 1. ok is false when the light cannot illuminate
	// the point at all.
	Sample(point Vec3, sample Vec2) (LightSample, bool)

	// PDF returns the solid-angle density of sampling the given direction
	// from the reference point. Delta lights always return 0.
	PDF(point Vec3, direction Vec3) float64
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     Vec3    // Point on the light source (undefined for distant lights)
	Normal    Vec3    // Surface normal at the light sample point
	Direction Vec3    // Unit direction from shading point to light
	Distance  float64 // Distance to light (Inf for distant lights)
	Emission  Vec3    // Incident radiance from the light
	PDF       float64 // Solid-angle probability density of this sample
}

// Camera maps film-plane samples to world-space rays
type Camera interface {
	// GetRay generates the ray for pixel (i, j). filmSample jitters the
	// position within the pixel, lensSample drives depth of field.
	GetRay(i, j int, filmSample, lensSample Vec2) Ray
}

// Scene is the read-only world accessed by integrators during rendering
type Scene interface {
	GetBVH() *BVH
	GetLights() []Light
	GetCamera() Camera
	GetSamplingConfig() SamplingConfig
	// GetBackgroundColors returns the environment gradient; rays that
	// escape the scene pick up this radiance
	GetBackgroundColors() (topColor, bottomColor Vec3)
}

// SamplingConfig contains integration and sampling parameters
type SamplingConfig struct {
	SamplesPerPixel           int   // Number of rays per pixel
	MaxDepth                  int   // Maximum indirect bounces; 0 means direct light only, negative selects the default
	RussianRouletteMinBounces int   // Bounces before roulette termination starts
	Seed                      int64 // Global seed for the deterministic sampler
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:           64,
		MaxDepth:                  10,
		RussianRouletteMinBounces: 3,
		Seed:                      42,
	}
}

// Logger is the logging interface the render core writes to. The leveled
// loggers from pkg/log satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
