// Package tracer implements the per-pixel path tracing kernel: camera ray
// generation, ray/scene intersection, hemisphere sampling, shading with
// throughput attenuation, and environment lookup for escaped rays.
//
// Each invocation of the kernel is a straight-line sequential program over
// invocation-local state; all per-dispatch inputs are read-only, so millions
// of invocations can run in parallel without synchronization.
package tracer

import (
	"math"

	"spheretracer/pkg/core"
)

// Ray is a ray in flight. Energy is the component-wise fraction of light that
// would still reach the camera through this ray; it starts at (1,1,1) and only
// ever decreases as the ray bounces.
type Ray struct {
	Origin    core.Vec3
	Direction core.Vec3 // unit length
	Energy    core.Vec3
}

// NewRay creates a ray with full energy
func NewRay(origin, direction core.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Energy: core.One()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) core.Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Sphere is a scene primitive. The sphere list is owned by the scene setup
// collaborator and is immutable for the duration of a dispatch.
type Sphere struct {
	Position core.Vec3
	Radius   float64
	Albedo   core.Vec3
	Specular core.Vec3
}

// Hit is the nearest surface found so far while tracing a ray. A Distance of
// +Inf means no surface was hit and the environment should be sampled instead.
type Hit struct {
	Position core.Vec3
	Distance float64
	Normal   core.Vec3
	Albedo   core.Vec3
	Specular core.Vec3
}

// NewMiss returns a hit record initialized to the no-hit sentinel
func NewMiss() Hit {
	return Hit{Distance: math.Inf(1)}
}

// IsMiss reports whether no surface was found
func (h Hit) IsMiss() bool {
	return math.IsInf(h.Distance, 1)
}
