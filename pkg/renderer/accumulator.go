package renderer

import (
	"image"
	"image/color"
	"math"

	"spheretracer/pkg/core"
)

// Accumulator keeps the running average of the radiance samples rendered so
// far. After n frames every pixel holds the mean of its n samples; Add folds
// frame n+1 in with weight 1/(n+1), so the average never needs the full
// sample history.
type Accumulator struct {
	Width, Height int
	frames        int
	pix           []core.Vec3
}

// NewAccumulator creates an empty accumulator for the given resolution
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		Width:  width,
		Height: height,
		pix:    make([]core.Vec3, width*height),
	}
}

// Frames returns the number of frames accumulated since the last reset
func (a *Accumulator) Frames() int {
	return a.frames
}

// Add blends one rendered frame into the running average
func (a *Accumulator) Add(fb *Framebuffer) {
	weight := 1.0 / float64(a.frames+1)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			i := y*a.Width + x
			a.pix[i] = a.pix[i].Lerp(fb.At(x, y), weight)
		}
	}
	a.frames++
}

// Reset discards the accumulated average, e.g. after a camera move
func (a *Accumulator) Reset() {
	for i := range a.pix {
		a.pix[i] = core.Vec3{}
	}
	a.frames = 0
}

// At returns the averaged linear radiance at (x, y), row 0 at the bottom
func (a *Accumulator) At(x, y int) core.Vec3 {
	return a.pix[y*a.Width+x]
}

// Image converts the averaged radiance to a display image: gamma 2.0,
// clamped to [0,1], flipped so row 0 is at the top.
func (a *Accumulator) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, a.Width, a.Height))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			img.Set(x, a.Height-1-y, vec3ToColor(a.pix[y*a.Width+x]))
		}
	}
	return img
}

// RGBA writes the averaged radiance into a tightly packed RGBA byte buffer
// with row 0 at the bottom, ready for texture upload. The buffer must hold
// Width*Height*4 bytes.
func (a *Accumulator) RGBA(dst []byte) {
	for i, p := range a.pix {
		c := vec3ToColor(p)
		dst[i*4+0] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}

// vec3ToColor converts linear radiance to a display color with gamma 2.0
func vec3ToColor(v core.Vec3) color.RGBA {
	r := math.Sqrt(math.Max(0, math.Min(1, v.X)))
	g := math.Sqrt(math.Max(0, math.Min(1, v.Y)))
	b := math.Sqrt(math.Max(0, math.Min(1, v.Z)))
	return color.RGBA{
		R: uint8(r * 255.999),
		G: uint8(g * 255.999),
		B: uint8(b * 255.999),
		A: 255,
	}
}
