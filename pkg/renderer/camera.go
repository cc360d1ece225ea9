package renderer

import (
	"math"

	"github.com/lumen-render/lumen/pkg/core"
)

// CameraConfig describes a camera placement and projection. FocusDistance
// of zero means "focus on LookAt"; Aperture of zero gives a pinhole camera
// with everything in focus.
type CameraConfig struct {
	Width         int
	Height        int
	LookFrom      core.Vec3
	LookAt        core.Vec3
	VUp           core.Vec3
	VFov          float64 // vertical field of view in degrees
	Aperture      float64 // lens diameter in world units
	FocusDistance float64
}

// PerspectiveCamera is a thin lens camera. With a non-zero aperture the
// ray origin is jittered across the lens disk and directions converge on
// the focal plane, producing depth of field.
type PerspectiveCamera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // lens basis
	lensRadius      float64
	width           int
	height          int
}

// NewPerspectiveCamera creates a perspective camera from a configuration
func NewPerspectiveCamera(config CameraConfig) *PerspectiveCamera {
	aspectRatio := float64(config.Width) / float64(config.Height)

	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2.0)
	viewportHeight := 2.0 * halfHeight
	viewportWidth := aspectRatio * viewportHeight

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookAt.Subtract(config.LookFrom).Length()
	}

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &PerspectiveCamera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2.0,
		width:           config.Width,
		height:          config.Height,
	}
}

// GetRay generates the ray through pixel (i, j) for the given film jitter
// and lens samples. Pixel (0, 0) is the top-left corner of the image.
func (c *PerspectiveCamera) GetRay(i, j int, filmSample, lensSample core.Vec2) core.Ray {
	s := (float64(i) + filmSample.X) / float64(c.width)
	t := 1.0 - (float64(j)+filmSample.Y)/float64(c.height)

	origin := c.origin
	if c.lensRadius > 0 {
		disk := core.SamplePointInUnitDisk(lensSample)
		offset := c.u.Multiply(disk.X * c.lensRadius).Add(c.v.Multiply(disk.Y * c.lensRadius))
		origin = origin.Add(offset)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// OrthographicCamera projects parallel rays along the view direction. The
// VFov field of the configuration is reinterpreted as the viewport height
// in world units; aperture and focus distance are ignored.
type OrthographicCamera struct {
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	direction       core.Vec3
	width           int
	height          int
}

// NewOrthographicCamera creates an orthographic camera from a configuration
func NewOrthographicCamera(config CameraConfig) *OrthographicCamera {
	aspectRatio := float64(config.Width) / float64(config.Height)

	viewportHeight := config.VFov
	viewportWidth := aspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5))

	return &OrthographicCamera{
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		direction:       w.Negate(),
		width:           config.Width,
		height:          config.Height,
	}
}

// GetRay generates a parallel ray through pixel (i, j). The lens sample is
// accepted but unused so the sample stream layout matches the perspective
// camera.
func (c *OrthographicCamera) GetRay(i, j int, filmSample, lensSample core.Vec2) core.Ray {
	s := (float64(i) + filmSample.X) / float64(c.width)
	t := 1.0 - (float64(j)+filmSample.Y)/float64(c.height)

	origin := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, c.direction)
}
