package renderer

import (
	"math"
	"testing"

	"spheretracer/pkg/core"
)

func TestCameraToWorldPlacesCameraAtPosition(t *testing.T) {
	camera := CameraConfig{
		Position: core.NewVec3(3, 2, 7),
		LookAt:   core.NewVec3(0, 1, 0),
	}

	m := camera.CameraToWorld()

	origin := m.MulPoint(core.Vec3{})
	if origin.Subtract(camera.Position).Length() > 1e-12 {
		t.Errorf("Expected camera-space origin to map to %v, got %v", camera.Position, origin)
	}
}

func TestCameraToWorldForwardPointsAtTarget(t *testing.T) {
	camera := CameraConfig{
		Position: core.NewVec3(0, 2, 8),
		LookAt:   core.NewVec3(0, 1, 0),
	}

	m := camera.CameraToWorld()

	// Camera space looks down -Z
	forward := m.MulDirection(core.NewVec3(0, 0, -1))
	want := camera.LookAt.Subtract(camera.Position).Normalize()

	if forward.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected forward %v, got %v", want, forward)
	}
}

func TestCameraDefaultUpIsWorldY(t *testing.T) {
	camera := CameraConfig{
		Position: core.NewVec3(0, 0, 5),
		LookAt:   core.NewVec3(0, 0, 0),
	}

	m := camera.CameraToWorld()

	up := m.MulDirection(core.NewVec3(0, 1, 0))
	if up.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Errorf("Expected camera up to stay world Y for a level camera, got %v", up)
	}
}

func TestInverseProjectionFieldOfView(t *testing.T) {
	camera := CameraConfig{
		Position: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		VFov:     90,
	}

	invProj := camera.InverseProjection(1.0)

	// Unprojecting the top edge of the screen at 90 degrees vertical fov
	// gives a direction 45 degrees above the view axis.
	d := invProj.MulPoint(core.NewVec3(0, 1, 0)).Normalize()
	angle := math.Atan2(d.Y, -d.Z) * 180 / math.Pi
	if math.Abs(angle-45) > 1e-9 {
		t.Errorf("Expected 45 degree edge ray, got %v degrees", angle)
	}

	// The screen center unprojects straight down the view axis
	c := invProj.MulPoint(core.NewVec3(0, 0, 0)).Normalize()
	if math.Abs(c.X) > 1e-12 || math.Abs(c.Y) > 1e-12 || c.Z >= 0 {
		t.Errorf("Expected center ray along -Z, got %v", c)
	}
}

func TestInverseProjectionAspectScalesHorizontal(t *testing.T) {
	camera := CameraConfig{VFov: 60}

	invProj := camera.InverseProjection(2.0)

	left := invProj.MulPoint(core.NewVec3(-1, 0, 0))
	up := invProj.MulPoint(core.NewVec3(0, 1, 0))

	ratio := math.Abs(left.X) / math.Abs(up.Y)
	if math.Abs(ratio-2.0) > 1e-9 {
		t.Errorf("Expected horizontal extent twice the vertical at aspect 2, got ratio %v", ratio)
	}
}
