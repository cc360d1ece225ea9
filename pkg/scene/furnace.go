package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/material"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// NewFurnaceScene creates the furnace test: a perfectly white diffuse
// sphere inside a uniformly emitting enclosure. Every path keeps unit
// throughput, so each pixel covering the inner sphere must converge to
// exactly the enclosure radiance. The enclosure is intentionally not
// registered as a sampled light: the test exercises the BSDF sampling
// path and Russian roulette on their own.
func NewFurnaceScene(width, height int) *Scene {
	s := &Scene{
		CameraConfig: renderer.CameraConfig{
			Width:    width,
			Height:   height,
			LookFrom: core.NewVec3(0, 0, 3),
			LookAt:   core.NewVec3(0, 0, 0),
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     30.0,
		},
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           128,
			MaxDepth:                  10,
			RussianRouletteMinBounces: 3,
			Seed:                      42,
		},
		TopColor:    core.Vec3{},
		BottomColor: core.Vec3{},
	}

	white := material.NewLambertian(core.NewVec3(1.0, 1.0, 1.0))
	enclosure := material.NewEmissive(core.NewVec3(1.0, 1.0, 1.0))

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, white),
		geometry.NewSphere(core.NewVec3(0, 0, 0), 100.0, enclosure),
	)

	return s
}
