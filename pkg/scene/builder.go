package scene

import (
	"fmt"

	"github.com/lumen-render/lumen/pkg/core"
	"github.com/lumen-render/lumen/pkg/geometry"
	"github.com/lumen-render/lumen/pkg/lights"
	"github.com/lumen-render/lumen/pkg/loaders"
	"github.com/lumen-render/lumen/pkg/material"
	"github.com/lumen-render/lumen/pkg/renderer"
)

// ParamSet is a loosely typed parameter bag used by scene descriptions.
// Lookups fall back to a default when the key is absent; values of the
// wrong type are treated as absent.
type ParamSet map[string]interface{}

// Float returns a numeric parameter, accepting float64 or int values
func (p ParamSet) Float(name string, def float64) float64 {
	switch v := p[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Int returns an integer parameter, accepting int or float64 values
func (p ParamSet) Int(name string, def int) int {
	switch v := p[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

// String returns a string parameter
func (p ParamSet) String(name, def string) string {
	if v, ok := p[name].(string); ok {
		return v
	}
	return def
}

// Vec3 returns a vector parameter given as core.Vec3 or []float64 of
// length three
func (p ParamSet) Vec3(name string, def core.Vec3) core.Vec3 {
	switch v := p[name].(type) {
	case core.Vec3:
		return v
	case []float64:
		if len(v) == 3 {
			return core.NewVec3(v[0], v[1], v[2])
		}
	}
	return def
}

// Description is a declarative scene: camera, sampling, materials by name,
// and parameter sets for every shape and light. Build resolves it into a
// prepared Scene, failing on any name it does not recognize.
type Description struct {
	Camera     ParamSet
	Sampling   ParamSet
	Background ParamSet
	Materials  map[string]ParamSet
	Shapes     []ParamSet
	Lights     []ParamSet
}

// Build resolves a description into a prepared scene. Unknown material,
// shape, light or projection names are reported as errors rather than
// silently skipped.
func Build(desc Description) (*Scene, error) {
	s := &Scene{
		SamplingConfig: core.SamplingConfig{
			SamplesPerPixel:           desc.Sampling.Int("pixelsamples", 64),
			MaxDepth:                  desc.Sampling.Int("maxdepth", 10),
			RussianRouletteMinBounces: desc.Sampling.Int("rrminbounces", 3),
			Seed:                      int64(desc.Sampling.Int("seed", 42)),
		},
		Projection: desc.Camera.String("type", "perspective"),
		CameraConfig: renderer.CameraConfig{
			Width:         desc.Camera.Int("width", 400),
			Height:        desc.Camera.Int("height", 225),
			LookFrom:      desc.Camera.Vec3("lookfrom", core.NewVec3(0, 1, 3)),
			LookAt:        desc.Camera.Vec3("lookat", core.NewVec3(0, 0, 0)),
			VUp:           desc.Camera.Vec3("vup", core.NewVec3(0, 1, 0)),
			VFov:          desc.Camera.Float("fov", 40.0),
			Aperture:      desc.Camera.Float("aperture", 0.0),
			FocusDistance: desc.Camera.Float("focusdistance", 0.0),
		},
		TopColor:    desc.Background.Vec3("top", core.Vec3{}),
		BottomColor: desc.Background.Vec3("bottom", core.Vec3{}),
	}

	materials := make(map[string]core.Material, len(desc.Materials))
	for name, params := range desc.Materials {
		mat, err := buildMaterial(params)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, params := range desc.Shapes {
		shapes, err := buildShape(params, materials)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		s.Shapes = append(s.Shapes, shapes...)
	}

	for i, params := range desc.Lights {
		if err := buildLight(s, params); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	if err := s.Prepare(); err != nil {
		return nil, err
	}
	return s, nil
}

func buildMaterial(params ParamSet) (core.Material, error) {
	switch kind := params.String("type", ""); kind {
	case "lambertian":
		return material.NewLambertian(params.Vec3("albedo", core.NewVec3(0.5, 0.5, 0.5))), nil
	case "metal":
		return material.NewMetal(params.Vec3("albedo", core.NewVec3(0.8, 0.8, 0.8)), params.Float("fuzz", 0.0)), nil
	case "dielectric":
		return material.NewDielectric(params.Float("ior", 1.5)), nil
	case "emissive":
		return material.NewEmissive(params.Vec3("emit", core.NewVec3(1, 1, 1))), nil
	default:
		return nil, fmt.Errorf("material type %q is not supported", kind)
	}
}

func resolveMaterial(params ParamSet, materials map[string]core.Material) (core.Material, error) {
	name := params.String("material", "")
	mat, ok := materials[name]
	if !ok {
		return nil, fmt.Errorf("references undefined material %q", name)
	}
	return mat, nil
}

func buildShape(params ParamSet, materials map[string]core.Material) ([]core.Shape, error) {
	mat, err := resolveMaterial(params, materials)
	if err != nil {
		return nil, err
	}

	switch kind := params.String("type", ""); kind {
	case "sphere":
		sphere := geometry.NewSphere(params.Vec3("center", core.Vec3{}), params.Float("radius", 1.0), mat)
		return []core.Shape{sphere}, nil

	case "quad":
		quad := geometry.NewQuad(
			params.Vec3("corner", core.Vec3{}),
			params.Vec3("u", core.NewVec3(1, 0, 0)),
			params.Vec3("v", core.NewVec3(0, 0, 1)),
			mat,
		)
		return []core.Shape{quad}, nil

	case "triangle":
		triangle := geometry.NewTriangle(
			params.Vec3("v0", core.Vec3{}),
			params.Vec3("v1", core.NewVec3(1, 0, 0)),
			params.Vec3("v2", core.NewVec3(0, 1, 0)),
			mat,
		)
		return []core.Shape{triangle}, nil

	case "ply":
		path := params.String("file", "")
		if path == "" {
			return nil, fmt.Errorf("ply shape requires a \"file\" parameter")
		}
		data, err := loaders.LoadPLYFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Indices, data.Normals, data.UVs, mat)
		if err != nil {
			return nil, fmt.Errorf("mesh from %s: %w", path, err)
		}
		return mesh.Faces(), nil

	default:
		return nil, fmt.Errorf("shape type %q is not supported", kind)
	}
}

// buildLight constructs a light and, for area lights, the emissive
// geometry that represents it in the intersection structure.
func buildLight(s *Scene, params ParamSet) error {
	switch kind := params.String("type", ""); kind {
	case "point":
		s.Lights = append(s.Lights, lights.NewPointLight(
			params.Vec3("position", core.NewVec3(0, 5, 0)),
			params.Vec3("intensity", core.NewVec3(10, 10, 10)),
		))
		return nil

	case "distant":
		s.Lights = append(s.Lights, lights.NewDistantLight(
			params.Vec3("radiance", core.NewVec3(1, 1, 1)),
			params.Vec3("direction", core.NewVec3(0, -1, 0)),
		))
		return nil

	case "sphere":
		emissive := material.NewEmissive(params.Vec3("emit", core.NewVec3(5, 5, 5)))
		light := lights.NewSphereLight(params.Vec3("center", core.Vec3{}), params.Float("radius", 1.0), emissive)
		s.Shapes = append(s.Shapes, light.Sphere)
		s.Lights = append(s.Lights, light)
		return nil

	case "quad":
		emissive := material.NewEmissive(params.Vec3("emit", core.NewVec3(5, 5, 5)))
		light := lights.NewQuadLight(
			params.Vec3("corner", core.Vec3{}),
			params.Vec3("u", core.NewVec3(1, 0, 0)),
			params.Vec3("v", core.NewVec3(0, 0, 1)),
			emissive,
		)
		s.Shapes = append(s.Shapes, light.Quad)
		s.Lights = append(s.Lights, light)
		return nil

	default:
		return fmt.Errorf("light type %q is not supported", kind)
	}
}
