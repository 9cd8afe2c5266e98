package tracer

import (
	"math"

	"spheretracer/pkg/core"
)

// TangentFrame builds an orthonormal basis (tangent, binormal) around a unit
// normal. The helper axis is world-X unless the normal is nearly parallel to
// it, in which case world-Z keeps the cross product well conditioned.
func TangentFrame(normal core.Vec3) (tangent, binormal core.Vec3) {
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(normal.X) > 0.99 {
		helper = core.NewVec3(0, 0, 1)
	}
	tangent = normal.Cross(helper).Normalize()
	binormal = normal.Cross(tangent).Normalize()
	return tangent, binormal
}

// SampleHemisphere draws a direction from the hemisphere around the normal,
// with the cosine of the polar angle itself uniform on [0,1). The shading
// weights are tuned to exactly this parameterization; do not swap in a
// cosine-weighted or uniform-solid-angle sampler.
func SampleHemisphere(normal core.Vec3, seq *core.Sequence) core.Vec3 {
	cosTheta := seq.Draw()
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * seq.Draw()

	local := core.NewVec3(math.Cos(phi)*sinTheta, math.Sin(phi)*sinTheta, cosTheta)

	tangent, binormal := TangentFrame(normal)
	return tangent.Multiply(local.X).
		Add(binormal.Multiply(local.Y)).
		Add(normal.Multiply(local.Z))
}
