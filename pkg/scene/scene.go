package scene

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// Scene holds everything needed to render an image: geometry, lights,
// camera placement and sampling configuration. Populate the exported
// fields, then call Prepare before rendering.
type Scene struct {
	CameraConfig   renderer.CameraConfig
	Projection     string // "perspective" (default) or "orthographic"
	Shapes         []core.Shape
	Lights         []core.Light
	TopColor       core.Vec3
	BottomColor    core.Vec3
	SamplingConfig core.SamplingConfig

	camera core.Camera
	bvh    *core.BVH
}

// Prepare validates the scene, applies sampling defaults, builds the
// camera and constructs the acceleration structure. It must be called
// before the scene is handed to a renderer, and again after any geometry
// change. MaxDepth 0 is a valid setting (emission and direct light only);
// a negative MaxDepth selects the default.
func (s *Scene) Prepare() error {
	if len(s.Shapes) == 0 {
		return fmt.Errorf("scene contains no shapes")
	}

	if s.SamplingConfig.SamplesPerPixel <= 0 {
		s.SamplingConfig.SamplesPerPixel = 64
	}
	if s.SamplingConfig.MaxDepth < 0 {
		s.SamplingConfig.MaxDepth = 10
	}
	if s.SamplingConfig.RussianRouletteMinBounces <= 0 {
		s.SamplingConfig.RussianRouletteMinBounces = 3
	}
	if s.SamplingConfig.Seed == 0 {
		s.SamplingConfig.Seed = 42
	}

	switch s.Projection {
	case "", "perspective":
		s.camera = renderer.NewPerspectiveCamera(s.CameraConfig)
	case "orthographic":
		s.camera = renderer.NewOrthographicCamera(s.CameraConfig)
	default:
		return fmt.Errorf("camera projection %q is not supported", s.Projection)
	}

	bvh, err := core.NewBVH(s.Shapes)
	if err != nil {
		return fmt.Errorf("building acceleration structure: %w", err)
	}
	s.bvh = bvh

	return nil
}

// GetBVH returns the acceleration structure built by Prepare
func (s *Scene) GetBVH() *core.BVH {
	return s.bvh
}

// GetLights returns the sampled light list
func (s *Scene) GetLights() []core.Light {
	return s.Lights
}

// GetCamera returns the camera built by Prepare
func (s *Scene) GetCamera() core.Camera {
	return s.camera
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetBackgroundColors returns the environment gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// PrimitiveCount returns the number of top-level shapes in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}
