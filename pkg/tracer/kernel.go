package tracer

import (
	"spheretracer/pkg/core"
)

// maxBounces bounds the intersect/shade loop per pixel
const maxBounces = 8

// DirectionalLight is a per-dispatch input. It is part of the kernel's
// interface but is not consumed by the shading computation.
type DirectionalLight struct {
	Direction core.Vec3
	Intensity float64
}

// Uniforms are the read-only per-dispatch inputs shared by every invocation
// of a frame. Nothing in the kernel mutates them.
type Uniforms struct {
	CameraToWorld           core.Mat4
	CameraInverseProjection core.Mat4
	PixelOffset             core.Vec2 // sub-pixel jitter in [0,1)^2
	Env                     *Environment
	Light                   DirectionalLight
	Spheres                 []Sphere
	Seed                    float64 // frame-level seed, combined with pixel coords
	Width, Height           int
}

// CameraRay builds the primary ray for normalized device coordinates in
// [-1,1]: the view-space direction (ndc, 0, 1) goes through the inverse
// projection, then the camera-to-world transform, and is normalized. The
// origin is the camera position in world space.
func CameraRay(u *Uniforms, ndc core.Vec2) Ray {
	origin := u.CameraToWorld.MulPoint(core.Vec3{})
	direction := u.CameraInverseProjection.MulPoint(core.NewVec3(ndc.X, ndc.Y, 0))
	direction = u.CameraToWorld.MulDirection(direction).Normalize()
	return NewRay(origin, direction)
}

// TracePixel computes one radiance sample for the given pixel: it generates
// the jittered camera ray and runs the bounded bounce loop, accumulating
// throughput-weighted emission. The loop ends early once the ray's energy is
// exactly zero, since no further light can be gathered.
func TracePixel(u *Uniforms, x, y int) core.Vec3 {
	result, _ := tracePixel(u, x, y)
	return result
}

// tracePixel additionally reports how many intersect/shade iterations ran,
// so tests can pin the loop's termination behavior.
func tracePixel(u *Uniforms, x, y int) (core.Vec3, int) {
	seq := core.NewSequence(x, y, u.Seed)

	ndc := core.NewVec2(
		(float64(x)+u.PixelOffset.X)/float64(u.Width)*2-1,
		(float64(y)+u.PixelOffset.Y)/float64(u.Height)*2-1,
	)
	ray := CameraRay(u, ndc)

	var result core.Vec3
	bounces := 0
	for i := 0; i < maxBounces; i++ {
		bounces++
		hit := Trace(ray, u.Spheres)
		energy := ray.Energy
		result = result.Add(energy.MultiplyVec(Shade(&ray, hit, u.Env, seq)))
		if ray.Energy.IsZero() {
			break
		}
	}
	return result, bounces
}
