// Package config loads renderer settings from YAML files, falling back to
// built-in defaults for anything the file omits.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"spheretracer/pkg/core"
	"spheretracer/pkg/renderer"
	"spheretracer/pkg/scene"
)

// Config represents the main configuration
type Config struct {
	Render RenderConfig `yaml:"render"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
	Sky    SkyConfig    `yaml:"sky"`
}

// RenderConfig contains output and accumulation settings
type RenderConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	MaxFrames     int    `yaml:"max_frames"`
	NumWorkers    int    `yaml:"num_workers"` // 0 = CPU count
	Seed          int64  `yaml:"seed"`
	ImageInterval int    `yaml:"image_interval"`
	Output        string `yaml:"output"`
}

// CameraConfig contains the camera placement
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	VFov     float64    `yaml:"vfov"`
}

// SceneConfig contains random sphere placement settings
type SceneConfig struct {
	SphereCount      int     `yaml:"sphere_count"`
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	PlacementRadius  float64 `yaml:"placement_radius"`
	MetalProbability float64 `yaml:"metal_probability"`
	Seed             int64   `yaml:"seed"`
}

// SkyConfig selects the environment map: an equirectangular image file, or a
// built-in gradient when no path is given.
type SkyConfig struct {
	Path      string  `yaml:"path"`
	Intensity float64 `yaml:"intensity"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	sceneDefaults := scene.DefaultConfig()
	return &Config{
		Render: RenderConfig{
			Width:         1280,
			Height:        720,
			MaxFrames:     256,
			NumWorkers:    0,
			Seed:          1,
			ImageInterval: 16,
			Output:        "render.png",
		},
		Camera: CameraConfig{
			Position: [3]float64{0, 3.5, 16},
			LookAt:   [3]float64{0, 1.5, 0},
			VFov:     40,
		},
		Scene: SceneConfig{
			SphereCount:      sceneDefaults.SphereCount,
			RadiusMin:        sceneDefaults.RadiusMin,
			RadiusMax:        sceneDefaults.RadiusMax,
			PlacementRadius:  sceneDefaults.PlacementRadius,
			MetalProbability: sceneDefaults.MetalProbability,
			Seed:             sceneDefaults.Seed,
		},
		Sky: SkyConfig{
			Path:      "",
			Intensity: 1.0,
		},
	}
}

// LoadConfig loads the configuration from a file, merging it over defaults
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %v", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %v", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}

	return nil
}

// RendererCamera converts the camera section to the renderer's camera type
func (c *Config) RendererCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Position: vec3(c.Camera.Position),
		LookAt:   vec3(c.Camera.LookAt),
		VFov:     c.Camera.VFov,
	}
}

// SceneSettings converts the scene section to the scene generator's type
func (c *Config) SceneSettings() scene.Config {
	return scene.Config{
		SphereCount:      c.Scene.SphereCount,
		RadiusMin:        c.Scene.RadiusMin,
		RadiusMax:        c.Scene.RadiusMax,
		PlacementRadius:  c.Scene.PlacementRadius,
		MetalProbability: c.Scene.MetalProbability,
		MaxAttempts:      scene.DefaultConfig().MaxAttempts,
		Seed:             c.Scene.Seed,
	}
}

// ProgressiveSettings converts the render section to the progressive
// renderer's config
func (c *Config) ProgressiveSettings() renderer.ProgressiveConfig {
	return renderer.ProgressiveConfig{
		MaxFrames:  c.Render.MaxFrames,
		NumWorkers: c.Render.NumWorkers,
		Seed:       c.Render.Seed,
	}
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
