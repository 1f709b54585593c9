package asciimask

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Jitter is the placement perturbation of one cell: a pixel offset for
// the glyph origin and a scale factor for its size.
type Jitter struct {
	DX    int
	DY    int
	Scale float64
}

// SizePx converts the scale factor into a concrete rasterization size,
// never below one pixel.
func (j Jitter) SizePx(fontSize int) int {
	size := int(math.Round(float64(fontSize) * j.Scale))
	if size < 1 {
		size = 1
	}
	return size
}

// JitterEngine draws per-cell placement noise. Offsets are uniform over
// [-PositionJitter*FontSize, +PositionJitter*FontSize] on each axis and
// scales are uniform over [SizeJitterMin, SizeJitterMax].
//
// Samples are consumed in row-major cell order, X offset before Y before
// scale, so a fixed seed reproduces a layout exactly.
type JitterEngine struct {
	enabled bool
	offset  distuv.Uniform
	scale   distuv.Uniform
}

// NewJitterEngine builds an engine for the given configuration. src may
// be nil, in which case the shared global generator is used and layouts
// are not reproducible.
func NewJitterEngine(cfg Config, src rand.Source) *JitterEngine {
	maxOffset := cfg.PositionJitter * float64(cfg.FontSize)
	return &JitterEngine{
		enabled: cfg.Randomize,
		offset:  distuv.Uniform{Min: -maxOffset, Max: maxOffset, Src: src},
		scale:   distuv.Uniform{Min: cfg.SizeJitterMin, Max: cfg.SizeJitterMax, Src: src},
	}
}

// Sample draws the jitter for the next cell. With randomization disabled
// it returns the identity jitter and consumes no randomness.
func (e *JitterEngine) Sample() Jitter {
	if !e.enabled {
		return Jitter{Scale: 1}
	}
	return Jitter{
		DX:    int(math.Round(e.offset.Rand())),
		DY:    int(math.Round(e.offset.Rand())),
		Scale: e.scale.Rand(),
	}
}
