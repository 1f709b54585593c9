// Package asciimask renders photos as ASCII photo masks: images where
// the photo is visible only through brightness-matched character glyphs
// stamped over a solid background.
//
// The pipeline divides the photo into a character grid, measures the
// mean brightness of each cell, picks a ramp character whose ink density
// matches, and composites the photo through each glyph's silhouette.
// Dark regions get large dense glyphs and reveal more of the photo,
// bright regions get sparse punctuation and stay near the background.
package asciimask

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"runtime"
	"sync"

	"github.com/0x0ndra/ascii-photo-mask/imageutil"
	"github.com/cenkalti/dominantcolor"
)

// Renderer generates ASCII photo masks from source images. Create one
// with NewRenderer, adjust it through options or by assigning fields,
// and call Generate.
//
// A Renderer keeps its glyph mask cache across calls, so rendering many
// images with the same settings gets faster after the first. Generate is
// not safe for concurrent use on the same Renderer.
type Renderer struct {
	// Config holds the rendering parameters. It is validated at the
	// start of every Generate and GenerateText call.
	Config Config

	// Workers bounds the goroutines used to pre-render glyph masks.
	// Zero or negative means GOMAXPROCS. The worker count never changes
	// the output, only how fast the mask cache warms up.
	Workers int

	// Progress, when set, is called after each completed row with the
	// number of rows done and the total row count.
	Progress func(done, total int)

	fontSrc FontSource
	randSrc rand.Source
	rast    *GlyphRasterizer
}

// RendererOption configures a Renderer during construction.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with default configuration. A nil font
// falls back to the embedded Go Mono source.
func NewRenderer(font FontSource, opts ...RendererOption) *Renderer {
	if font == nil {
		font = DefaultFontSource()
	}
	r := &Renderer{
		Config:  DefaultConfig(),
		fontSrc: font,
		rast:    NewGlyphRasterizer(font),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithConfig replaces the entire configuration.
func WithConfig(cfg Config) RendererOption {
	return func(r *Renderer) { r.Config = cfg }
}

// WithWidth sets the number of character columns.
func WithWidth(cols int) RendererOption {
	return func(r *Renderer) { r.Config.Width = cols }
}

// WithFontSize sets the cell edge length in pixels.
func WithFontSize(px int) RendererOption {
	return func(r *Renderer) { r.Config.FontSize = px }
}

// WithRamp sets the character ramp, ordered dense to sparse.
func WithRamp(ramp string) RendererOption {
	return func(r *Renderer) { r.Config.Ramp = ramp }
}

// WithBrightness sets the photo brightness multiplier.
func WithBrightness(factor float64) RendererOption {
	return func(r *Renderer) { r.Config.Brightness = factor }
}

// WithContrast sets the photo contrast multiplier.
func WithContrast(factor float64) RendererOption {
	return func(r *Renderer) { r.Config.Contrast = factor }
}

// WithRandomize toggles per-cell position and size jitter.
func WithRandomize(enabled bool) RendererOption {
	return func(r *Renderer) { r.Config.Randomize = enabled }
}

// WithBold toggles bold glyph rendering.
func WithBold(enabled bool) RendererOption {
	return func(r *Renderer) { r.Config.Bold = enabled }
}

// WithPositionJitter sets the maximum glyph offset as a fraction of the
// font size.
func WithPositionJitter(fraction float64) RendererOption {
	return func(r *Renderer) { r.Config.PositionJitter = fraction }
}

// WithSizeJitter sets the glyph scale factor bounds.
func WithSizeJitter(min, max float64) RendererOption {
	return func(r *Renderer) {
		r.Config.SizeJitterMin = min
		r.Config.SizeJitterMax = max
	}
}

// WithBackground sets the canvas color: a hex string such as "#1a1a2e",
// BackgroundAuto, or empty for black.
func WithBackground(background string) RendererOption {
	return func(r *Renderer) { r.Config.Background = background }
}

// WithRandSource sets the random source driving jitter. A fixed seed
// makes layouts reproducible.
func WithRandSource(src rand.Source) RendererOption {
	return func(r *Renderer) { r.randSrc = src }
}

// WithWorkers bounds the mask pre-render goroutines.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) { r.Workers = n }
}

// WithProgress sets the per-row progress callback.
func WithProgress(fn func(done, total int)) RendererOption {
	return func(r *Renderer) { r.Progress = fn }
}

// cellStamp is one placed glyph: the chosen character, its jittered
// rasterization size, and its jittered cell origin.
type cellStamp struct {
	ch   rune
	size int
	x, y int
}

// prepare validates the configuration, sizes the grid, and produces the
// enhanced photo together with its per-cell brightness. Both the
// brightness sampler and the compositor consume the same prepared
// buffer, so the characters always describe the pixels that end up on
// the canvas.
func (r *Renderer) prepare(src image.Image) (*imageutil.RGBAImage, Grid, [][]float64, *CharacterMapper, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, Grid{}, nil, nil, err
	}
	if src == nil {
		return nil, Grid{}, nil, nil, errors.New("render: source image is nil")
	}
	bounds := src.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, Grid{}, nil, nil, fmt.Errorf("render: source image is empty (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	grid := GridFor(bounds, r.Config.Width)
	prepared := imageutil.Prepare(src,
		grid.Cols*r.Config.FontSize, grid.Rows*r.Config.FontSize,
		r.Config.Brightness, r.Config.Contrast)
	brightness := SampleBrightness(prepared, grid)

	mapper, err := NewCharacterMapper(r.Config.Ramp)
	if err != nil {
		return nil, Grid{}, nil, nil, err
	}
	return prepared, grid, brightness, mapper, nil
}

// layout runs preparation and character selection, then draws jitter for
// every cell in row-major order. The returned stamps are final: applying
// them to a canvas is pure arithmetic with no further randomness.
func (r *Renderer) layout(src image.Image) (*imageutil.RGBAImage, Grid, []cellStamp, error) {
	prepared, grid, brightness, mapper, err := r.prepare(src)
	if err != nil {
		return nil, Grid{}, nil, err
	}

	jitter := NewJitterEngine(r.Config, r.randSrc)
	cells := make([]cellStamp, 0, grid.Rows*grid.Cols)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			_, ch := mapper.Map(brightness[row][col])
			j := jitter.Sample()
			cells = append(cells, cellStamp{
				ch:   ch,
				size: j.SizePx(r.Config.FontSize),
				x:    col*r.Config.FontSize + j.DX,
				y:    row*r.Config.FontSize + j.DY,
			})
		}
	}
	return prepared, grid, cells, nil
}

// Generate renders src as an ASCII photo mask.
//
// The pipeline:
//  1. Validate the configuration and the source image.
//  2. Derive the character grid from the configured width and the
//     source aspect ratio.
//  3. Resize the photo to the output dimensions and apply brightness
//     and contrast enhancement, once.
//  4. Measure mean cell brightness on the enhanced photo.
//  5. Map each cell to a ramp character and draw its jitter.
//  6. Pre-render the distinct glyph masks across Workers goroutines.
//  7. Fill the canvas with the background color.
//  8. Stamp every cell in row-major order, blending enhanced photo
//     pixels through each glyph silhouette.
//
// The output is grid.Cols*FontSize by grid.Rows*FontSize pixels and
// fully opaque. For a fixed configuration, font and random source the
// output is byte-for-byte deterministic regardless of Workers.
func (r *Renderer) Generate(src image.Image) (*image.RGBA, error) {
	prepared, grid, cells, err := r.layout(src)
	if err != nil {
		return nil, err
	}
	background, err := r.resolveBackground(prepared)
	if err != nil {
		return nil, err
	}

	r.prerenderMasks(cells)

	comp := NewCompositor(prepared, background)
	for i, cell := range cells {
		comp.Stamp(r.rast.Mask(cell.ch, cell.size, r.Config.Bold), image.Pt(cell.x, cell.y))
		if r.Progress != nil && (i+1)%grid.Cols == 0 {
			r.Progress((i+1)/grid.Cols, grid.Rows)
		}
	}
	return comp.Canvas(), nil
}

// resolveBackground turns the configured background into a concrete
// color, sampling the prepared photo when set to BackgroundAuto.
func (r *Renderer) resolveBackground(prepared *imageutil.RGBAImage) (color.Color, error) {
	if r.Config.Background == BackgroundAuto {
		c := dominantcolor.Find(prepared.RGBA)
		c.A = 255
		return c, nil
	}
	return r.Config.backgroundColor()
}

// prerenderMasks warms the glyph cache for every distinct character,
// size and boldness the stamps will need. Rendering masks is the
// expensive part of a generate and each distinct mask is independent,
// so the work spreads across a worker pool. Stamping itself stays
// serial.
func (r *Renderer) prerenderMasks(cells []cellStamp) {
	seen := make(map[maskKey]struct{}, len(cells))
	keys := make([]maskKey, 0, len(cells))
	for _, cell := range cells {
		key := maskKey{ch: cell.ch, size: cell.size, bold: r.Config.Bold}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(keys) {
		workers = len(keys)
	}
	if workers < 2 {
		return
	}

	work := make(chan maskKey)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range work {
				r.rast.Mask(key.ch, key.size, key.bold)
			}
		}()
	}
	for _, key := range keys {
		work <- key
	}
	close(work)
	wg.Wait()
}

// CacheStats returns the glyph cache hit and miss counts and the hit
// rate. The rate is 0 before any lookups.
func (r *Renderer) CacheStats() (hits, misses int64, hitRate float64) {
	hits, misses = r.rast.Stats()
	total := hits + misses
	if total == 0 {
		return hits, misses, 0
	}
	return hits, misses, float64(hits) / float64(total)
}

// ResetStats clears the glyph cache counters without dropping cached
// masks.
func (r *Renderer) ResetStats() {
	r.rast.ResetStats()
}
