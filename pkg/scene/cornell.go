package scene

import (
	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/material"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// NewCornellScene creates the classic Cornell box: five colored walls, two
// blocks and a quad light in the ceiling.
func NewCornellScene(width, height int) *Scene {
	s := &Scene{
		CameraConfig: renderer.CameraConfig{
			Width:    width,
			Height:   height,
			LookFrom: core.NewVec3(278, 278, -800),
			LookAt:   core.NewVec3(278, 278, 0),
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     40.0,
		},
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           128,
			MaxDepth:                  10,
			RussianRouletteMinBounces: 3,
			Seed:                      42,
		},
		// Closed box, no environment contribution
		TopColor:    core.Vec3{},
		BottomColor: core.Vec3{},
	}

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := 555.0

	// Floor
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Ceiling
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	))

	// Back wall
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	))

	// Left wall (red)
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	))

	// Right wall (green)
	s.Shapes = append(s.Shapes, geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	))

	// Two spheres instead of the traditional rotated blocks
	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewMetal(core.NewVec3(0.8, 0.85, 0.88), 0.0)),
	)

	// Ceiling light, slightly below the ceiling so it faces down
	emissive := material.NewEmissive(core.NewVec3(15, 15, 15))
	light := lights.NewQuadLight(
		core.NewVec3(213, boxSize-1, 227),
		core.NewVec3(130, 0, 0),
		core.NewVec3(0, 0, 105),
		emissive,
	)
	s.Shapes = append(s.Shapes, light.Quad)
	s.Lights = append(s.Lights, light)

	return s
}
