package tracer

import (
	"math"

	"spheretracer/pkg/core"
)

// Environment is an equirectangular sky image sampled for rays that escape
// the scene. Read-only during a dispatch.
type Environment struct {
	Width     int
	Height    int
	Pixels    []core.Vec3 // row-major, Pixels[y*Width+x]
	Intensity float64
}

// NewEnvironment creates an environment from a decoded image
func NewEnvironment(width, height int, pixels []core.Vec3, intensity float64) *Environment {
	return &Environment{
		Width:     width,
		Height:    height,
		Pixels:    pixels,
		Intensity: intensity,
	}
}

// SampleDirection maps a unit direction to equirectangular coordinates and
// returns the filtered sky radiance scaled by the intensity factor.
func (e *Environment) SampleDirection(dir core.Vec3) core.Vec3 {
	y := max(-1.0, min(1.0, dir.Y))
	theta := math.Acos(y) / -math.Pi
	phi := math.Atan2(dir.X, -dir.Z) / -math.Pi / 2
	return e.Sample(phi, theta).Multiply(e.Intensity)
}

// Sample returns the bilinearly filtered color at texture coordinates (u, v).
// Both axes wrap, matching a GPU repeat sampler, so the negative coordinates
// produced by the equirectangular mapping address the image correctly.
func (e *Environment) Sample(u, v float64) core.Vec3 {
	if e.Width == 0 || e.Height == 0 {
		return core.Vec3{}
	}

	x := u*float64(e.Width) - 0.5
	y := v*float64(e.Height) - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	c00 := e.texel(int(x0), int(y0))
	c10 := e.texel(int(x0)+1, int(y0))
	c01 := e.texel(int(x0), int(y0)+1)
	c11 := e.texel(int(x0)+1, int(y0)+1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// texel fetches a pixel with repeat addressing on both axes
func (e *Environment) texel(x, y int) core.Vec3 {
	x %= e.Width
	if x < 0 {
		x += e.Width
	}
	y %= e.Height
	if y < 0 {
		y += e.Height
	}
	return e.Pixels[y*e.Width+x]
}
