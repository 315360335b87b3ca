package preview

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Camera is a perspective camera looking at Target with Y up.
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Position v3.Vec
	Target   v3.Vec
}

// DefaultPosition is where a fresh camera sits before any mesh is framed.
var DefaultPosition = v3.Vec{X: 50, Y: 50, Z: 50}

// NewCamera returns a camera with the viewport's aspect ratio.
func NewCamera(fov float64, width, height int) *Camera {
	c := &Camera{
		FOV:      fov,
		Near:     0.1,
		Far:      1000,
		Position: DefaultPosition,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect recomputes the aspect ratio. Degenerate sizes keep the old value.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		if c.Aspect == 0 {
			c.Aspect = 1
		}
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// Fit frames a bounding box: the target moves to the box centre and the
// camera sits one max-dimension away from it along every axis.
func (c *Camera) Fit(bb sdf.Box3) {
	center := bb.Center()
	size := bb.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	c.Target = center
	c.Position = center.Add(v3.Vec{X: maxDim, Y: maxDim, Z: maxDim})
}

// Scale multiplies the camera position by k. Values below 1 move the camera
// toward the origin.
func (c *Camera) Scale(k float64) {
	c.Position = c.Position.MulScalar(k)
}
