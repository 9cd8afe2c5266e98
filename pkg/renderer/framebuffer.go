package renderer

import (
	"spheretracer/pkg/core"
)

// Framebuffer is the floating-point RGBA output of one dispatch: one radiance
// sample plus alpha=1 per pixel, overwritten every frame. Row 0 is the bottom
// of the image, matching the kernel's normalized device coordinates.
//
// Tiles write disjoint pixel ranges, so workers share a Framebuffer without
// locking.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []float64 // RGBA, stride 4
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*4),
	}
}

// SetPixel writes one radiance sample with alpha 1
func (fb *Framebuffer) SetPixel(x, y int, c core.Vec3) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.X
	fb.Pix[i+1] = c.Y
	fb.Pix[i+2] = c.Z
	fb.Pix[i+3] = 1
}

// At returns the radiance stored for a pixel
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	i := (y*fb.Width + x) * 4
	return core.NewVec3(fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2])
}

// Alpha returns the alpha stored for a pixel
func (fb *Framebuffer) Alpha(x, y int) float64 {
	return fb.Pix[(y*fb.Width+x)*4+3]
}
