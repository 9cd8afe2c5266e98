package renderer

import (
	"spheretracer/pkg/core"
)

// CameraConfig describes the camera; the kernel consumes it as a pair of
// matrices built here.
type CameraConfig struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // vertical field of view in degrees
	Near     float64 // projection depth range; zero selects defaults
	Far      float64
}

// withDefaults fills in zero-valued fields
func (c CameraConfig) withDefaults() CameraConfig {
	if c.Up.IsZero() {
		c.Up = core.NewVec3(0, 1, 0)
	}
	if c.VFov == 0 {
		c.VFov = 45
	}
	if c.Near == 0 {
		c.Near = 0.1
	}
	if c.Far == 0 {
		c.Far = 1000
	}
	return c
}

// CameraToWorld returns the camera-to-world transform
func (c CameraConfig) CameraToWorld() core.Mat4 {
	c = c.withDefaults()
	return core.LookAt(c.Position, c.LookAt, c.Up)
}

// InverseProjection returns the inverse of the perspective projection for the
// given aspect ratio
func (c CameraConfig) InverseProjection(aspect float64) core.Mat4 {
	c = c.withDefaults()
	return core.Perspective(c.VFov, aspect, c.Near, c.Far).Inverse()
}
