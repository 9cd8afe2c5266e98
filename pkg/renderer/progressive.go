package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"spheretracer/pkg/core"
	"spheretracer/pkg/tracer"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene supplies everything a frame needs: the camera, the sphere list, the
// environment map and the directional light.
type Scene interface {
	Camera() CameraConfig
	Spheres() []tracer.Sphere
	Environment() *tracer.Environment
	Light() tracer.DirectionalLight
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	MaxFrames  int   // Maximum number of accumulated frames (0 = unlimited)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Seed for the per-frame jitter stream
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		MaxFrames:  256,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       1,
	}
}

// Progressive renders one-sample frames and accumulates them into a running
// average that converges over time. Frames are numbered from 1; changing the
// camera or the resolution restarts accumulation at frame 1.
type Progressive struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	camera        CameraConfig
	dispatcher    *Dispatcher
	framebuffer   *Framebuffer
	accumulator   *Accumulator
	jitter        *rand.Rand
	logger        core.Logger
}

// NewProgressive creates a progressive renderer for the scene
func NewProgressive(scene Scene, width, height int, config ProgressiveConfig, logger core.Logger) *Progressive {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Progressive{
		scene:       scene,
		width:       width,
		height:      height,
		config:      config,
		camera:      scene.Camera(),
		dispatcher:  NewDispatcher(config.NumWorkers),
		framebuffer: NewFramebuffer(width, height),
		accumulator: NewAccumulator(width, height),
		jitter:      rand.New(rand.NewSource(config.Seed)),
		logger:      logger,
	}
}

// Accumulator exposes the running average for display
func (p *Progressive) Accumulator() *Accumulator {
	return p.accumulator
}

// SetCamera replaces the camera and restarts accumulation
func (p *Progressive) SetCamera(camera CameraConfig) {
	p.camera = camera
	p.accumulator.Reset()
}

// Camera returns the camera currently being rendered
func (p *Progressive) Camera() CameraConfig {
	return p.camera
}

// Resize changes the output resolution and restarts accumulation
func (p *Progressive) Resize(width, height int) {
	if width == p.width && height == p.height {
		return
	}
	p.width = width
	p.height = height
	p.framebuffer = NewFramebuffer(width, height)
	p.accumulator = NewAccumulator(width, height)
}

// Stop shuts down the worker pool
func (p *Progressive) Stop() {
	p.dispatcher.Stop()
}

// buildUniforms assembles the per-frame kernel inputs. Each frame gets a
// fresh sub-pixel jitter offset and a fresh noise seed so consecutive frames
// draw independent samples.
func (p *Progressive) buildUniforms() *tracer.Uniforms {
	aspect := float64(p.width) / float64(p.height)
	return &tracer.Uniforms{
		CameraToWorld:           p.camera.CameraToWorld(),
		CameraInverseProjection: p.camera.InverseProjection(aspect),
		PixelOffset:             core.Vec2{X: p.jitter.Float64(), Y: p.jitter.Float64()},
		Env:                     p.scene.Environment(),
		Light:                   p.scene.Light(),
		Spheres:                 p.scene.Spheres(),
		Seed:                    p.jitter.Float64() * 1000,
		Width:                   p.width,
		Height:                  p.height,
	}
}

// RenderFrame renders one frame and folds it into the accumulated average.
// Returns the frame number (1-based) of the frame just accumulated.
func (p *Progressive) RenderFrame(ctx context.Context) (int, error) {
	uniforms := p.buildUniforms()
	if err := p.dispatcher.Dispatch(ctx, uniforms, p.framebuffer); err != nil {
		return p.accumulator.Frames(), err
	}
	p.accumulator.Add(p.framebuffer)
	return p.accumulator.Frames(), nil
}

// FrameResult contains the result of one accumulated frame
type FrameResult struct {
	Frame   int // 1-based frame number
	Image   *image.RGBA
	Elapsed time.Duration
	IsLast  bool
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	ImageInterval int // Emit an image every N frames (0 = every frame)
}

// RenderProgressive renders with channel-based communication (idiomatic Go).
// Returns channels for events. The caller should read from these channels in
// separate goroutines. Rendering runs until MaxFrames is reached or the
// context is cancelled.
func (p *Progressive) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	interval := options.ImageInterval
	if interval <= 0 {
		interval = 1
	}

	go func() {
		defer close(frameChan)
		defer close(errChan)
		defer p.Stop()

		p.logger.Printf("Starting progressive rendering with %d frames (%d workers)...\n",
			p.config.MaxFrames, p.dispatcher.NumWorkers())

		for frame := 1; p.config.MaxFrames == 0 || frame <= p.config.MaxFrames; frame++ {
			// Check if the caller gave up before starting this frame
			select {
			case <-ctx.Done():
				p.logger.Printf("Rendering cancelled before frame %d\n", frame)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			n, err := p.RenderFrame(ctx)
			if err != nil {
				errChan <- err
				return
			}

			isLast := p.config.MaxFrames != 0 && frame == p.config.MaxFrames
			if frame%interval != 0 && !isLast {
				continue
			}

			result := FrameResult{
				Frame:   n,
				Image:   p.accumulator.Image(),
				Elapsed: time.Since(startTime),
				IsLast:  isLast,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameChan, errChan
}
