// Interactive viewer: renders the scene progressively and displays the
// accumulated image in an OpenGL window. Moving the camera restarts
// accumulation.
package main

import (
	"context"
	"flag"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"spheretracer/internal/display"
	"spheretracer/internal/logger"
	"spheretracer/pkg/config"
	"spheretracer/pkg/core"
	"spheretracer/pkg/renderer"
	"spheretracer/pkg/scene"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

// orbitCamera keeps the camera on a sphere around a target point
type orbitCamera struct {
	target   core.Vec3
	yaw      float64 // radians around world Y
	pitch    float64 // radians above the horizon
	distance float64
	vfov     float64
}

// newOrbitCamera derives orbit angles from a camera position and target
func newOrbitCamera(cfg renderer.CameraConfig) *orbitCamera {
	offset := cfg.Position.Subtract(cfg.LookAt)
	distance := offset.Length()
	return &orbitCamera{
		target:   cfg.LookAt,
		yaw:      math.Atan2(offset.X, offset.Z),
		pitch:    math.Asin(offset.Y / distance),
		distance: distance,
		vfov:     cfg.VFov,
	}
}

func (o *orbitCamera) config() renderer.CameraConfig {
	offset := core.NewVec3(
		math.Cos(o.pitch)*math.Sin(o.yaw),
		math.Sin(o.pitch),
		math.Cos(o.pitch)*math.Cos(o.yaw),
	).Multiply(o.distance)
	return renderer.CameraConfig{
		Position: o.target.Add(offset),
		LookAt:   o.target,
		VFov:     o.vfov,
	}
}

// handleInput applies keyboard controls. Returns true if the camera moved.
func (o *orbitCamera) handleInput(win *display.Window, dt float64) bool {
	const (
		rotateSpeed = 1.5 // radians per second
		dollySpeed  = 6.0 // units per second
		maxPitch    = 1.5
	)

	moved := false
	turn := func(key glfw.Key, dYaw, dPitch, dDist float64) {
		if win.KeyPressed(key) {
			o.yaw += dYaw * dt
			o.pitch += dPitch * dt
			o.distance += dDist * dt
			moved = true
		}
	}

	turn(glfw.KeyLeft, -rotateSpeed, 0, 0)
	turn(glfw.KeyA, -rotateSpeed, 0, 0)
	turn(glfw.KeyRight, rotateSpeed, 0, 0)
	turn(glfw.KeyD, rotateSpeed, 0, 0)
	turn(glfw.KeyUp, 0, rotateSpeed, 0)
	turn(glfw.KeyW, 0, rotateSpeed, 0)
	turn(glfw.KeyDown, 0, -rotateSpeed, 0)
	turn(glfw.KeyS, 0, -rotateSpeed, 0)
	turn(glfw.KeyQ, 0, 0, dollySpeed)
	turn(glfw.KeyE, 0, 0, -dollySpeed)

	o.pitch = math.Max(-maxPitch, math.Min(maxPitch, o.pitch))
	o.distance = math.Max(1, o.distance)
	return moved
}

func main() {
	log := logger.New("info")

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Warnf("%v", err)
	}

	env, err := scene.LoadSky(cfg.Sky.Path, cfg.Sky.Intensity)
	if err != nil {
		log.Errorf("Failed to load sky: %v", err)
		os.Exit(1)
	}

	sc := scene.NewRandomScene(cfg.SceneSettings(), env)
	sc.CameraConfig = cfg.RendererCamera()

	width, height := cfg.Render.Width, cfg.Render.Height
	settings := cfg.ProgressiveSettings()
	settings.MaxFrames = 0 // accumulate for as long as the window is open

	prog := renderer.NewProgressive(sc, width, height, settings, log)
	defer prog.Stop()

	win, err := display.New("spheretracer", width, height)
	if err != nil {
		log.Errorf("Failed to create window: %v", err)
		os.Exit(1)
	}
	defer win.Destroy()

	log.Infof("Rendering %dx%d with %d spheres; arrows/WASD orbit, Q/E dolly, Esc quits",
		width, height, len(sc.SphereList))

	camera := newOrbitCamera(prog.Camera())
	frame := make([]byte, width*height*4)
	ctx := context.Background()
	lastTime := glfw.GetTime()

	for !win.ShouldClose() {
		now := glfw.GetTime()
		dt := now - lastTime
		lastTime = now

		if w, h := win.Size(); (w != width || h != height) && w > 0 && h > 0 {
			width, height = w, h
			prog.Resize(width, height)
			frame = make([]byte, width*height*4)
		}

		if camera.handleInput(win, dt) {
			prog.SetCamera(camera.config())
		}

		if _, err := prog.RenderFrame(ctx); err != nil {
			log.Errorf("Render failed: %v", err)
			return
		}

		prog.Accumulator().RGBA(frame)
		win.Present(width, height, frame)
	}
}
