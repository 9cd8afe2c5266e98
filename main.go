package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"spheretracer/internal/logger"
	"spheretracer/pkg/config"
	"spheretracer/pkg/renderer"
	"spheretracer/pkg/scene"
)

// buildScene assembles the sphere field, sky and camera described by the
// configuration
func buildScene(cfg *config.Config) (*scene.Scene, error) {
	env, err := scene.LoadSky(cfg.Sky.Path, cfg.Sky.Intensity)
	if err != nil {
		return nil, fmt.Errorf("failed to load sky: %w", err)
	}
	sc := scene.NewRandomScene(cfg.SceneSettings(), env)
	sc.CameraConfig = cfg.RendererCamera()
	return sc, nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	frames := flag.Int("frames", 0, "Override number of accumulated frames")
	output := flag.String("output", "", "Override output PNG path")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn, error")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("spheretracer - progressive sphere path tracer")
		fmt.Println("Usage: spheretracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	log := logger.New(*logLevel)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Warnf("%v", err)
	}
	if *frames > 0 {
		cfg.Render.MaxFrames = *frames
	}
	if *output != "" {
		cfg.Render.Output = *output
	}

	sc, err := buildScene(cfg)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	log.Infof("Rendering %dx%d, %d spheres, %d frames",
		cfg.Render.Width, cfg.Render.Height, len(sc.SphereList), cfg.Render.MaxFrames)

	prog := renderer.NewProgressive(sc, cfg.Render.Width, cfg.Render.Height,
		cfg.ProgressiveSettings(), log)

	// Ctrl-C stops accumulation and saves whatever has converged so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frameChan, errChan := prog.RenderProgressive(ctx, renderer.RenderOptions{
		ImageInterval: cfg.Render.ImageInterval,
	})

	var final renderer.FrameResult
	for result := range frameChan {
		log.Infof("Frame %d accumulated in %v", result.Frame, result.Elapsed)
		final = result
	}
	if err := <-errChan; err != nil && final.Image == nil {
		log.Errorf("Render failed: %v", err)
		os.Exit(1)
	}

	file, err := os.Create(cfg.Render.Output)
	if err != nil {
		log.Errorf("Error creating file: %v", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, final.Image); err != nil {
		log.Errorf("Error saving PNG: %v", err)
		os.Exit(1)
	}

	log.Infof("Render saved as %s (%d frames)", cfg.Render.Output, final.Frame)
}
