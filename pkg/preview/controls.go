package preview

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// DefaultDampingFactor is the share of pending orbit motion applied per update.
	DefaultDampingFactor = 0.05
	// DefaultAutoRotateSpeed completes an orbit in 30s at 60fps.
	DefaultAutoRotateSpeed = 2.0

	polarEpsilon = 1e-6
	restEpsilon  = 1e-9
)

// OrbitControls rotates the camera around its target on a sphere, Y up.
type OrbitControls struct {
	camera *Camera

	EnableDamping   bool
	DampingFactor   float64
	AutoRotate      bool
	AutoRotateSpeed float64

	deltaTheta float64
	deltaPhi   float64
}

// NewOrbitControls attaches damped controls to camera.
func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{
		camera:          camera,
		EnableDamping:   true,
		DampingFactor:   DefaultDampingFactor,
		AutoRotateSpeed: DefaultAutoRotateSpeed,
	}
}

// Rotate queues an orbit by dTheta (around Y) and dPhi (polar), radians.
func (o *OrbitControls) Rotate(dTheta, dPhi float64) {
	o.deltaTheta += dTheta
	o.deltaPhi += dPhi
}

// Stop discards pending orbit motion.
func (o *OrbitControls) Stop() {
	o.deltaTheta, o.deltaPhi = 0, 0
}

func (o *OrbitControls) autoRotationAngle() float64 {
	return 2 * math.Pi / 60 / 60 * o.AutoRotateSpeed
}

// Update applies one frame of orbit motion and reports whether the camera
// moved.
func (o *OrbitControls) Update() bool {
	c := o.camera
	offset := c.Position.Sub(c.Target)
	radius := offset.Length()
	if radius == 0 {
		return false
	}

	if o.AutoRotate {
		o.deltaTheta -= o.autoRotationAngle()
	}
	if o.deltaTheta == 0 && o.deltaPhi == 0 {
		return false
	}

	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Acos(clamp(offset.Y/radius, -1, 1))

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
		o.deltaTheta = settle(o.deltaTheta * (1 - o.DampingFactor))
		o.deltaPhi = settle(o.deltaPhi * (1 - o.DampingFactor))
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
		o.Stop()
	}
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	sinPhi := math.Sin(phi)
	c.Position = c.Target.Add(v3.Vec{
		X: radius * sinPhi * math.Sin(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Cos(theta),
	})
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// settle snaps residual damped motion to zero.
func settle(d float64) float64 {
	if math.Abs(d) < restEpsilon {
		return 0
	}
	return d
}
