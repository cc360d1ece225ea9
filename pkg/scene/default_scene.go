package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/material"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// NewDefaultScene creates a small showcase scene: three spheres with
// different materials on a ground quad, lit by a spherical area light and
// a sky gradient.
func NewDefaultScene(width, height int) *Scene {
	s := &Scene{
		CameraConfig: renderer.CameraConfig{
			Width:         width,
			Height:        height,
			LookFrom:      core.NewVec3(0, 0.75, 2),
			LookAt:        core.NewVec3(0, 0.5, -1),
			VUp:           core.NewVec3(0, 1, 0),
			VFov:          40.0,
			Aperture:      0.02,
			FocusDistance: 0.0, // focus on the center sphere
		},
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           64,
			MaxDepth:                  10,
			RussianRouletteMinBounces: 3,
			Seed:                      42,
		},
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	blue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	silver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	glass := material.NewDielectric(1.5)

	// Large ground quad centered under the spheres
	groundSize := 50.0
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(-groundSize/2, 0, -groundSize/2),
		core.NewVec3(groundSize, 0, 0),
		core.NewVec3(0, 0, groundSize),
		ground,
	))

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, blue),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, silver),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, glass),
	)

	emissive := material.NewEmissive(core.NewVec3(12, 11, 10))
	light := lights.NewSphereLight(core.NewVec3(2, 3, 1), 0.5, emissive)
	s.Shapes = append(s.Shapes, light.Sphere)
	s.Lights = append(s.Lights, light)

	return s
}
