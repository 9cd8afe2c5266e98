package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Render.Width != 1280 || cfg.Render.Height != 720 {
		t.Errorf("Expected 1280x720 default resolution, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.MaxFrames != 256 {
		t.Errorf("Expected 256 default frames, got %d", cfg.Render.MaxFrames)
	}
	if cfg.Camera.VFov != 40 {
		t.Errorf("Expected 40 degree default fov, got %v", cfg.Camera.VFov)
	}
	if cfg.Scene.SphereCount <= 0 {
		t.Errorf("Expected positive default sphere count, got %d", cfg.Scene.SphereCount)
	}
	if cfg.Sky.Intensity != 1.0 {
		t.Errorf("Expected sky intensity 1.0, got %v", cfg.Sky.Intensity)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
render:
  width: 640
  height: 360
camera:
  position: [2, 4, 10]
  vfov: 55
scene:
  sphere_count: 12
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Render.Width != 640 || cfg.Render.Height != 360 {
		t.Errorf("Expected 640x360 from file, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Camera.VFov != 55 {
		t.Errorf("Expected fov 55 from file, got %v", cfg.Camera.VFov)
	}
	if cfg.Scene.SphereCount != 12 {
		t.Errorf("Expected 12 spheres from file, got %d", cfg.Scene.SphereCount)
	}

	// Fields absent from the file keep their defaults
	if cfg.Render.MaxFrames != 256 {
		t.Errorf("Expected default max_frames 256, got %d", cfg.Render.MaxFrames)
	}
	if cfg.Render.Output != "render.png" {
		t.Errorf("Expected default output name, got %q", cfg.Render.Output)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing config file")
	}
	if cfg == nil {
		t.Fatal("Expected defaults even when the file is missing")
	}
	if cfg.Render.Width != 1280 {
		t.Errorf("Expected default width 1280, got %d", cfg.Render.Width)
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render: [not a map"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected a parse error for malformed YAML")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Render.Width = 320
	cfg.Scene.MetalProbability = 0.25

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Render.Width != 320 {
		t.Errorf("Expected width 320 after round trip, got %d", loaded.Render.Width)
	}
	if loaded.Scene.MetalProbability != 0.25 {
		t.Errorf("Expected metal probability 0.25 after round trip, got %v", loaded.Scene.MetalProbability)
	}
}

func TestConversionHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Position = [3]float64{1, 2, 3}

	camera := cfg.RendererCamera()
	if camera.Position.X != 1 || camera.Position.Y != 2 || camera.Position.Z != 3 {
		t.Errorf("Expected camera position (1,2,3), got %v", camera.Position)
	}

	sceneCfg := cfg.SceneSettings()
	if sceneCfg.SphereCount != cfg.Scene.SphereCount {
		t.Errorf("Expected sphere count %d, got %d", cfg.Scene.SphereCount, sceneCfg.SphereCount)
	}
	if sceneCfg.MaxAttempts <= 0 {
		t.Errorf("Expected positive placement attempt limit, got %d", sceneCfg.MaxAttempts)
	}

	prog := cfg.ProgressiveSettings()
	if prog.MaxFrames != cfg.Render.MaxFrames {
		t.Errorf("Expected max frames %d, got %d", cfg.Render.MaxFrames, prog.MaxFrames)
	}
}
