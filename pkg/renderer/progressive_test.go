package renderer

import (
	"context"
	"math"
	"testing"

	"spheretracer/pkg/core"
	"spheretracer/pkg/tracer"
)

// testScene is a minimal Scene: one metallic sphere over the ground plane
// under a solid warm environment.
type testScene struct {
	env *tracer.Environment
}

func newTestScene() *testScene {
	pixels := make([]core.Vec3, 8*4)
	for i := range pixels {
		pixels[i] = core.Vec3{X: 1, Y: 0.8, Z: 0.6}
	}
	return &testScene{env: tracer.NewEnvironment(8, 4, pixels, 1.0)}
}

func (s *testScene) Camera() CameraConfig {
	return CameraConfig{
		Position: core.NewVec3(0, 2, 8),
		LookAt:   core.NewVec3(0, 1, 0),
		VFov:     40,
	}
}

func (s *testScene) Spheres() []tracer.Sphere {
	return []tracer.Sphere{
		{Position: core.NewVec3(0, 1, 0), Radius: 1, Specular: core.NewVec3(0.8, 0.8, 0.8)},
	}
}

func (s *testScene) Environment() *tracer.Environment {
	return s.env
}

func (s *testScene) Light() tracer.DirectionalLight {
	return tracer.DirectionalLight{
		Direction: core.NewVec3(0, -1, 0),
		Intensity: 1,
	}
}

func newTestProgressive(t *testing.T, width, height int) *Progressive {
	t.Helper()
	config := ProgressiveConfig{MaxFrames: 4, NumWorkers: 2, Seed: 7}
	return NewProgressive(newTestScene(), width, height, config, NewDefaultLogger())
}

func TestRenderFrameAccumulates(t *testing.T) {
	p := newTestProgressive(t, 16, 12)
	defer p.Stop()

	for want := 1; want <= 3; want++ {
		n, err := p.RenderFrame(context.Background())
		if err != nil {
			t.Fatalf("RenderFrame failed: %v", err)
		}
		if n != want {
			t.Errorf("Expected frame number %d, got %d", want, n)
		}
	}

	acc := p.Accumulator()
	for y := 0; y < acc.Height; y++ {
		for x := 0; x < acc.Width; x++ {
			c := acc.At(x, y)
			if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsNaN(c.Z) ||
				math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) || math.IsInf(c.Z, 0) {
				t.Fatalf("Pixel (%d,%d) is not finite: %v", x, y, c)
			}
			if c.X < 0 || c.Y < 0 || c.Z < 0 {
				t.Fatalf("Pixel (%d,%d) has negative radiance: %v", x, y, c)
			}
		}
	}
}

func TestFramesDifferBetweenDispatches(t *testing.T) {
	p := newTestProgressive(t, 16, 12)
	defer p.Stop()

	if _, err := p.RenderFrame(context.Background()); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	first := p.Accumulator().At(8, 6)

	p.Accumulator().Reset()
	if _, err := p.RenderFrame(context.Background()); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	second := p.Accumulator().At(8, 6)

	// Jitter and seed advance every frame, so two single-frame renders of
	// the same scene should not be byte-identical.
	if first == second {
		t.Errorf("Expected distinct samples across frames, both were %v", first)
	}
}

func TestSetCameraResetsAccumulation(t *testing.T) {
	p := newTestProgressive(t, 8, 8)
	defer p.Stop()

	if _, err := p.RenderFrame(context.Background()); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if p.Accumulator().Frames() != 1 {
		t.Fatalf("Expected 1 accumulated frame, got %d", p.Accumulator().Frames())
	}

	camera := p.Camera()
	camera.Position = core.NewVec3(4, 2, 8)
	p.SetCamera(camera)

	if p.Accumulator().Frames() != 0 {
		t.Errorf("Expected accumulation reset after camera move, got %d frames", p.Accumulator().Frames())
	}
	if p.Camera().Position != (core.NewVec3(4, 2, 8)) {
		t.Errorf("Expected camera position to update, got %v", p.Camera().Position)
	}
}

func TestResizeReallocatesBuffers(t *testing.T) {
	p := newTestProgressive(t, 8, 8)
	defer p.Stop()

	if _, err := p.RenderFrame(context.Background()); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	p.Resize(12, 6)

	if p.Accumulator().Width != 12 || p.Accumulator().Height != 6 {
		t.Fatalf("Expected 12x6 accumulator after resize, got %dx%d",
			p.Accumulator().Width, p.Accumulator().Height)
	}
	if p.Accumulator().Frames() != 0 {
		t.Errorf("Expected accumulation reset after resize, got %d frames", p.Accumulator().Frames())
	}

	if _, err := p.RenderFrame(context.Background()); err != nil {
		t.Fatalf("RenderFrame after resize failed: %v", err)
	}
	img := p.Accumulator().Image()
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 6 {
		t.Errorf("Expected 12x6 image, got %v", img.Bounds())
	}
}

func TestRenderProgressiveChannels(t *testing.T) {
	p := newTestProgressive(t, 8, 8)

	frameChan, errChan := p.RenderProgressive(context.Background(), RenderOptions{})

	var frames []FrameResult
	for result := range frameChan {
		frames = append(frames, result)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("RenderProgressive failed: %v", err)
	}

	if len(frames) != 4 {
		t.Fatalf("Expected 4 frame results, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Frame != i+1 {
			t.Errorf("Result %d: expected frame number %d, got %d", i, i+1, f.Frame)
		}
		if f.Image == nil {
			t.Errorf("Result %d: missing image", i)
		}
		wantLast := i == len(frames)-1
		if f.IsLast != wantLast {
			t.Errorf("Result %d: expected IsLast=%v, got %v", i, wantLast, f.IsLast)
		}
	}
}

func TestRenderProgressiveImageInterval(t *testing.T) {
	p := newTestProgressive(t, 8, 8)

	frameChan, errChan := p.RenderProgressive(context.Background(), RenderOptions{ImageInterval: 3})

	var got []int
	for result := range frameChan {
		got = append(got, result.Frame)
	}
	if err := <-errChan; err != nil {
		t.Fatalf("RenderProgressive failed: %v", err)
	}

	// Frames 3 and the final frame 4 are emitted; 1 and 2 are skipped
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("Expected frames [3 4], got %v", got)
	}
}

func TestRenderProgressiveCancellation(t *testing.T) {
	p := newTestProgressive(t, 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frameChan, errChan := p.RenderProgressive(ctx, RenderOptions{})

	for range frameChan {
	}
	if err := <-errChan; err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
