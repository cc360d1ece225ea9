package core

import "math/rand"

// Sampler provides the sample stream consumed by cameras and integrators.
// For a given pixel and sample index the stream is consumed in a fixed,
// documented order: film jitter (2D), lens position (2D), then per bounce
// BSDF direction (2D), light selection (1D), light position (2D) and
// Russian roulette (1D).
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// PixelSampler is a deterministic per-pixel sampler. Its stream depends
// only on (seed, pixel x, pixel y, sample index): the same tuple always
// reproduces the same sequence regardless of which worker runs it, which
// makes the whole render independent of thread count and tile order.
// Per-pixel decorrelation comes from hash-mixing the tuple into the seed.
type PixelSampler struct {
	rng       *rand.Rand
	dimension int
}

// NewPixelSampler creates a sampler for the given pixel and sample index
func NewPixelSampler(seed int64, x, y, sampleIndex int) *PixelSampler {
	state := mixSeed(seed, x, y, sampleIndex)
	return &PixelSampler{rng: rand.New(rand.NewSource(state))}
}

// Reset re-seeds the sampler for a new pixel/sample pair, reusing the
// generator allocation. Workers keep one sampler per tile and reset it
// per sample to avoid per-sample heap churn.
func (p *PixelSampler) Reset(seed int64, x, y, sampleIndex int) {
	p.rng.Seed(mixSeed(seed, x, y, sampleIndex))
	p.dimension = 0
}

// Get1D returns the next sample dimension in [0, 1)
func (p *PixelSampler) Get1D() float64 {
	p.dimension++
	return p.rng.Float64()
}

// Get2D returns the next two sample dimensions in [0, 1)
func (p *PixelSampler) Get2D() Vec2 {
	p.dimension += 2
	return NewVec2(p.rng.Float64(), p.rng.Float64())
}

// Dimension returns the number of dimensions consumed so far
func (p *PixelSampler) Dimension() int {
	return p.dimension
}

// mixSeed hashes (seed, x, y, sampleIndex) into a generator seed using
// splitmix64 finalization steps, so neighboring pixels and consecutive
// sample indices land in decorrelated parts of the sequence space.
func mixSeed(seed int64, x, y, sampleIndex int) int64 {
	h := uint64(seed)
	h = splitmix64(h + uint64(uint32(x))*0x9E3779B97F4A7C15)
	h = splitmix64(h + uint64(uint32(y))*0xBF58476D1CE4E5B9)
	h = splitmix64(h + uint64(uint32(sampleIndex))*0x94D049BB133111EB)
	return int64(h >> 1) // rand.NewSource requires a non-negative seed value range
}

func splitmix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// RandomSampler wraps a standard Go random generator. It is used by tests
// and anywhere determinism across runs is not required.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}
