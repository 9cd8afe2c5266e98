// Package scene owns scene authoring: random non-overlapping sphere
// placement, material assignment, the directional light, and sky generation.
// The tracing kernel treats everything produced here as read-only.
package scene

import (
	"math/rand"

	"spheretracer/pkg/core"
	"spheretracer/pkg/renderer"
	"spheretracer/pkg/tracer"
)

// Config contains sphere placement parameters
type Config struct {
	SphereCount      int     // upper bound; rejected placements reduce the actual count
	RadiusMin        float64 // sphere radius range
	RadiusMax        float64
	PlacementRadius  float64 // spheres are placed within this disc around the origin
	MetalProbability float64 // chance a sphere takes the metal branch
	MaxAttempts      int     // placement attempts per sphere before giving up
	Seed             int64   // generator seed; same seed, same scene
}

// DefaultConfig returns the standard sphere field
func DefaultConfig() Config {
	return Config{
		SphereCount:      60,
		RadiusMin:        0.3,
		RadiusMax:        1.5,
		PlacementRadius:  12.0,
		MetalProbability: 1.0,
		MaxAttempts:      100,
		Seed:             2,
	}
}

// Scene bundles the per-dispatch inputs the renderer needs
type Scene struct {
	CameraConfig renderer.CameraConfig
	SphereList   []tracer.Sphere
	Env          *tracer.Environment
	Sun          tracer.DirectionalLight
}

// Camera implements renderer.Scene
func (s *Scene) Camera() renderer.CameraConfig { return s.CameraConfig }

// Spheres implements renderer.Scene
func (s *Scene) Spheres() []tracer.Sphere { return s.SphereList }

// Environment implements renderer.Scene
func (s *Scene) Environment() *tracer.Environment { return s.Env }

// Light implements renderer.Scene
func (s *Scene) Light() tracer.DirectionalLight { return s.Sun }

// NewRandomScene builds the default scene: a random sphere field on the
// ground plane under the given environment.
func NewRandomScene(cfg Config, env *tracer.Environment) *Scene {
	return &Scene{
		CameraConfig: renderer.CameraConfig{
			Position: core.NewVec3(0, 3.5, 16),
			LookAt:   core.NewVec3(0, 1.5, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		SphereList: GenerateSpheres(cfg),
		Env:        env,
		Sun: tracer.DirectionalLight{
			Direction: core.NewVec3(-0.45, -0.8, -0.4).Normalize(),
			Intensity: 1.0,
		},
	}
}

// GenerateSpheres places up to cfg.SphereCount spheres of random radius in a
// disc around the origin, resting on the ground plane. A candidate that
// overlaps an already placed sphere is re-drawn; after MaxAttempts the
// candidate is dropped, so dense configurations yield fewer spheres rather
// than overlapping ones.
func GenerateSpheres(cfg Config) []tracer.Sphere {
	random := rand.New(rand.NewSource(cfg.Seed))
	spheres := make([]tracer.Sphere, 0, cfg.SphereCount)

	for i := 0; i < cfg.SphereCount; i++ {
		if sphere, ok := placeSphere(cfg, random, spheres); ok {
			spheres = append(spheres, sphere)
		}
	}
	return spheres
}

func placeSphere(cfg Config, random *rand.Rand, placed []tracer.Sphere) (tracer.Sphere, bool) {
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		radius := cfg.RadiusMin + random.Float64()*(cfg.RadiusMax-cfg.RadiusMin)

		// Uniform position in the placement disc, sphere resting on y=0.
		x := (random.Float64()*2 - 1) * cfg.PlacementRadius
		z := (random.Float64()*2 - 1) * cfg.PlacementRadius
		candidate := tracer.Sphere{
			Position: core.NewVec3(x, radius, z),
			Radius:   radius,
		}

		if overlapsAny(candidate, placed) {
			continue
		}

		color := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
		if random.Float64() < cfg.MetalProbability {
			// Metal: all reflectance in the specular lobe.
			candidate.Albedo = core.Vec3{}
			candidate.Specular = color
		} else {
			candidate.Albedo = color
			candidate.Specular = core.NewVec3(0.04, 0.04, 0.04)
		}
		return candidate, true
	}
	return tracer.Sphere{}, false
}

func overlapsAny(candidate tracer.Sphere, placed []tracer.Sphere) bool {
	for _, other := range placed {
		minDist := candidate.Radius + other.Radius
		if candidate.Position.Subtract(other.Position).LengthSquared() < minDist*minDist {
			return true
		}
	}
	return false
}
