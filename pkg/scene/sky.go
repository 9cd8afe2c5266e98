package scene

import (
	"spheretracer/pkg/core"
	"spheretracer/pkg/loaders"
	"spheretracer/pkg/tracer"
)

// GradientSky builds a procedural equirectangular environment that fades from
// a horizon color to a zenith color, for running without a sky image on disk.
//
// The equirectangular mapping wraps its negative vertical coordinate, so image
// rows run from nadir (row 0) to zenith (last row).
func GradientSky(width, height int, horizon, zenith core.Vec3, intensity float64) *tracer.Environment {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		// Rows below the horizon stay flat; above it the color fades to zenith.
		t := max(0.0, float64(y)/float64(max(height-1, 1))*2-1)
		color := horizon.Lerp(zenith, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}
	return tracer.NewEnvironment(width, height, pixels, intensity)
}

// DefaultSky is the gradient used when no environment image is configured
func DefaultSky(intensity float64) *tracer.Environment {
	return GradientSky(64, 32, core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0), intensity)
}

// SkyFromImage converts an equirectangular image to an environment map.
// Images store the zenith in row 0, the environment stores the nadir first,
// so rows are flipped during the copy.
func SkyFromImage(img *loaders.ImageData, intensity float64) *tracer.Environment {
	pixels := make([]core.Vec3, len(img.Pixels))
	for y := 0; y < img.Height; y++ {
		copy(pixels[(img.Height-1-y)*img.Width:(img.Height-y)*img.Width],
			img.Pixels[y*img.Width:(y+1)*img.Width])
	}
	return tracer.NewEnvironment(img.Width, img.Height, pixels, intensity)
}

// LoadSky loads the environment image at path, or builds the default gradient
// when path is empty
func LoadSky(path string, intensity float64) (*tracer.Environment, error) {
	if path == "" {
		return DefaultSky(intensity), nil
	}
	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return SkyFromImage(img, intensity), nil
}
