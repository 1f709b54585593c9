package asciimask

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// FontSource supplies font faces at arbitrary pixel sizes for glyph
// rasterization.
type FontSource interface {
	// Face returns a face sized to sizePx pixels and reports whether a
	// native bold face was available when bold was requested. Each call
	// returns a fresh face owned by the caller; faces are not safe for
	// concurrent use.
	Face(sizePx int, bold bool) (font.Face, bool)

	// HasGlyph reports whether the font contains an outline for r.
	HasGlyph(r rune) bool
}

// TrueTypeSource serves faces from parsed TrueType fonts. The bold font
// is optional; without one, bold requests fall back to the regular face
// and the caller applies a synthetic dilation.
type TrueTypeSource struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// NewTrueTypeSource wraps a regular font and an optional bold companion.
// bold may be nil.
func NewTrueTypeSource(regular, bold *truetype.Font) *TrueTypeSource {
	return &TrueTypeSource{regular: regular, bold: bold}
}

// ParseTrueType parses raw TTF data into a font usable with
// NewTrueTypeSource.
func ParseTrueType(data []byte) (*truetype.Font, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parsing TrueType data: %w", err)
	}
	return f, nil
}

// Face returns a hinted face at the requested pixel size. With 72 DPI
// the point size equals the pixel size, so sizePx maps directly onto
// cell geometry.
func (s *TrueTypeSource) Face(sizePx int, bold bool) (font.Face, bool) {
	f := s.regular
	native := false
	if bold && s.bold != nil {
		f = s.bold
		native = true
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, native
}

// HasGlyph reports whether the regular font maps r to a real glyph.
// Index 0 is the TrueType missing-glyph slot.
func (s *TrueTypeSource) HasGlyph(r rune) bool {
	return s.regular.Index(r) != 0
}

var (
	defaultFontOnce sync.Once
	defaultFont     *TrueTypeSource
)

// DefaultFontSource returns a shared source over the embedded Go Mono
// fonts, regular and bold.
func DefaultFontSource() FontSource {
	defaultFontOnce.Do(func() {
		regular, err := truetype.Parse(gomono.TTF)
		if err != nil {
			panic(fmt.Sprintf("asciimask: parsing embedded gomono: %v", err))
		}
		bold, err := truetype.Parse(gomonobold.TTF)
		if err != nil {
			panic(fmt.Sprintf("asciimask: parsing embedded gomonobold: %v", err))
		}
		defaultFont = NewTrueTypeSource(regular, bold)
	})
	return defaultFont
}
