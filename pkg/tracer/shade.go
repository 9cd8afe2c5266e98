package tracer

import (
	"math"

	"spheretracer/pkg/core"
)

const (
	// Offset applied along the normal to the next bounce origin so the ray
	// cannot immediately re-intersect the surface it just left.
	selfIntersectEpsilon = 0.001

	// Phong exponent shared by all surfaces.
	phongAlpha = 15.0
)

// sdot is the dot product clamped to [0, 1]
func sdot(a, b core.Vec3) float64 {
	return max(0.0, min(1.0, a.Dot(b)))
}

// Shade advances the ray one bounce and returns the radiance emitted toward
// it at this vertex.
//
// On a surface hit the ray is mutated in place for the next bounce: the
// origin is nudged off the surface, the direction is redrawn from the
// hemisphere, and the energy is attenuated by the combined diffuse and
// specular response. Surfaces are non-emissive, so the returned radiance is
// zero; their contribution arrives through the attenuated throughput of
// later bounces.
//
// On a miss the ray is spent (energy zeroed) and the environment supplies
// the emitted radiance.
func Shade(ray *Ray, hit Hit, env *Environment, seq *core.Sequence) core.Vec3 {
	if hit.IsMiss() {
		ray.Energy = core.Vec3{}
		return env.SampleDirection(ray.Direction)
	}

	ray.Origin = hit.Position.Add(hit.Normal.Multiply(selfIntersectEpsilon))
	reflected := ray.Direction.Reflect(hit.Normal)
	ray.Direction = SampleHemisphere(hit.Normal, seq)

	// 1-specular keeps the diffuse and specular lobes from reflecting more
	// energy than arrived.
	diffuse := core.One().Subtract(hit.Specular).Min(hit.Albedo).Multiply(2)
	specular := hit.Specular.Multiply((phongAlpha + 2) * math.Pow(sdot(ray.Direction, reflected), phongAlpha))

	ray.Energy = ray.Energy.MultiplyVec(diffuse.Add(specular).Multiply(sdot(hit.Normal, ray.Direction)))
	return core.Vec3{}
}
