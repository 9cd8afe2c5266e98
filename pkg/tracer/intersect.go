package tracer

import (
	"math"

	"spheretracer/pkg/core"
)

// Ground material constants for the implicit y=0 plane.
var (
	groundAlbedo   = core.NewVec3(0.5, 0.5, 0.5)
	groundSpecular = core.NewVec3(0.03, 0.03, 0.03)
)

// IntersectGroundPlane tests the ray against the infinite plane y=0 and
// overwrites best when a strictly closer hit is found.
//
// A ray parallel to the plane divides by zero, producing a non-finite t.
// IEEE comparisons against NaN are false and +Inf is never below
// best.Distance, so both degenerate cases fall through the accept test
// without an explicit guard.
func IntersectGroundPlane(ray Ray, best *Hit) {
	t := -ray.Origin.Y / ray.Direction.Y
	if t > 0 && t < best.Distance {
		best.Distance = t
		best.Position = ray.At(t)
		best.Normal = core.NewVec3(0, 1, 0)
		best.Albedo = groundAlbedo
		best.Specular = groundSpecular
	}
}

// IntersectSphere tests the ray against a sphere and overwrites best when a
// strictly closer hit is found. The near root is preferred; when the ray
// starts inside the sphere the near root is negative and the far root is
// used, so interior viewpoints still get a valid hit.
func IntersectSphere(ray Ray, best *Hit, sphere *Sphere) {
	d := ray.Origin.Subtract(sphere.Position)
	p1 := -ray.Direction.Dot(d)
	disc := p1*p1 - d.Dot(d) + sphere.Radius*sphere.Radius
	if disc < 0 {
		return
	}

	p2 := math.Sqrt(disc)
	t := p1 + p2
	if p1-p2 > 0 {
		t = p1 - p2
	}

	if t > 0 && t < best.Distance {
		best.Distance = t
		best.Position = ray.At(t)
		best.Normal = best.Position.Subtract(sphere.Position).Normalize()
		best.Albedo = sphere.Albedo
		best.Specular = sphere.Specular
	}
}

// Trace returns the globally nearest intersection of the ray with the ground
// plane and every sphere in the list, or the +Inf miss sentinel. The scan is
// linear and order-independent; an acceleration structure could replace it
// behind the same signature without changing callers.
func Trace(ray Ray, spheres []Sphere) Hit {
	best := NewMiss()
	IntersectGroundPlane(ray, &best)
	for i := range spheres {
		IntersectSphere(ray, &best, &spheres[i])
	}
	return best
}
