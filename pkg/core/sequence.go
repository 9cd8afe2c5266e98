package core

import "math"

// Sequence generates a reproducible stream of floats for one pixel of one
// frame. Adjacent pixels are decorrelated by hashing the pixel coordinate
// together with a counter that advances by exactly one per draw, so the same
// (pixel, seed) pair always yields the same stream.
//
// A Sequence is invocation-local state and must not be shared across pixels.
type Sequence struct {
	pixel Vec2
	seed  float64
}

// NewSequence creates a sequence for the given pixel coordinate and frame seed
func NewSequence(x, y int, seed float64) *Sequence {
	return &Sequence{
		pixel: Vec2{X: float64(x), Y: float64(y)},
		seed:  seed,
	}
}

// Draw returns the next value in [0, 1) and advances the sequence by one
func (s *Sequence) Draw() float64 {
	v := math.Sin(s.seed/100.0*s.pixel.Dot(Vec2{X: 12.9898, Y: 78.233})) * 43758.5453
	s.seed += 1.0
	return v - math.Floor(v)
}

// Draw2 returns the next two values in [0, 1)
func (s *Sequence) Draw2() Vec2 {
	return Vec2{X: s.Draw(), Y: s.Draw()}
}

// Seed returns the current counter value, mostly useful in tests
func (s *Sequence) Seed() float64 {
	return s.seed
}
