package asciimask

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// GlyphMask is a rasterized character silhouette. Alpha coverage drives
// compositing: 255 shows the photo, 0 keeps the background, partial
// values blend for antialiased edges.
//
// The mask's Rect is cell-relative: it already carries the glyph's
// bearing and baseline offset, so stamping at a cell origin places the
// glyph as a text renderer would.
type GlyphMask struct {
	Alpha *image.Alpha
}

// Empty reports whether the mask has no coverage at all. Whitespace and
// unrenderable characters produce empty masks.
func (m GlyphMask) Empty() bool {
	return m.Alpha == nil || m.Alpha.Rect.Empty()
}

type maskKey struct {
	ch   rune
	size int
	bold bool
}

// GlyphRasterizer renders character masks and caches them by rune, pixel
// size and boldness. Size jitter reuses a small set of distinct sizes, so
// the cache turns most cell renders into lookups.
//
// All methods are safe for concurrent use.
type GlyphRasterizer struct {
	src FontSource

	mu    sync.RWMutex
	masks map[maskKey]GlyphMask

	hits   atomic.Int64
	misses atomic.Int64
}

// NewGlyphRasterizer creates a rasterizer over the given font source.
func NewGlyphRasterizer(src FontSource) *GlyphRasterizer {
	return &GlyphRasterizer{
		src:   src,
		masks: make(map[maskKey]GlyphMask),
	}
}

// Mask returns the cached mask for a character at a pixel size, rendering
// it on first use.
func (g *GlyphRasterizer) Mask(ch rune, sizePx int, bold bool) GlyphMask {
	key := maskKey{ch: ch, size: sizePx, bold: bold}

	g.mu.RLock()
	mask, ok := g.masks[key]
	g.mu.RUnlock()
	if ok {
		g.hits.Add(1)
		return mask
	}

	g.misses.Add(1)
	mask = g.render(key)

	g.mu.Lock()
	if cached, ok := g.masks[key]; ok {
		// Concurrent renders of the same key produce identical masks
		// and the first insert wins.
		mask = cached
	} else {
		g.masks[key] = mask
	}
	g.mu.Unlock()
	return mask
}

// Stats returns the cache hit and miss counters.
func (g *GlyphRasterizer) Stats() (hits, misses int64) {
	return g.hits.Load(), g.misses.Load()
}

// ResetStats clears the hit and miss counters. Cached masks stay.
func (g *GlyphRasterizer) ResetStats() {
	g.hits.Store(0)
	g.misses.Store(0)
}

// render rasterizes one mask. Characters the font cannot draw, and sizes
// below one pixel, come back empty rather than failing the render.
func (g *GlyphRasterizer) render(key maskKey) GlyphMask {
	if key.size < 1 || !g.src.HasGlyph(key.ch) {
		return GlyphMask{}
	}

	face, nativeBold := g.src.Face(key.size, key.bold)
	defer face.Close()

	bounds, _, ok := face.GlyphBounds(key.ch)
	if !ok {
		return GlyphMask{}
	}
	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		// Whitespace: advance but no ink.
		return GlyphMask{}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, maxX-minX, maxY-minY))
	drawer := font.Drawer{
		Dst:  alpha,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(key.ch))

	// Anchor the mask inside its cell. Glyph bounds are baseline
	// relative, so shifting by the ascent puts the baseline where a text
	// renderer drawing at the cell origin would put it.
	ascent := face.Metrics().Ascent.Round()
	alpha.Rect = alpha.Rect.Add(image.Pt(minX, ascent+minY))

	if key.bold && !nativeBold {
		alpha = embolden(alpha)
	}
	return GlyphMask{Alpha: alpha}
}

// embolden thickens a mask by one pixel in every direction, taking the
// maximum coverage over each 3x3 neighborhood. It substitutes for a
// missing native bold face.
func embolden(src *image.Alpha) *image.Alpha {
	dst := image.NewAlpha(src.Rect.Inset(-1))
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			var best uint8
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					p := image.Pt(x+dx, y+dy)
					if !p.In(src.Rect) {
						continue
					}
					if a := src.AlphaAt(p.X, p.Y).A; a > best {
						best = a
					}
				}
			}
			dst.SetAlpha(x, y, color.Alpha{A: best})
		}
	}
	return dst
}
