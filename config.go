package asciimask

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultRamp is the character ramp used when none is configured. It is
// ordered from densest ink to lightest: index 0 ('$') covers most of its
// cell, the trailing space covers none. Brightness 0 maps to the first
// rune and brightness 1 to the last, so dark photo regions punch through
// large solid glyphs while bright regions stay near the background.
const DefaultRamp = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. "

// BackgroundAuto selects the canvas color from the dominant color of the
// prepared photo instead of a fixed hex value.
const BackgroundAuto = "auto"

// Config holds all rendering parameters for an ASCII photo mask.
//
// The zero value is not usable; start from DefaultConfig and override
// fields, or decode JSON over the defaults with ConfigFromJSON.
type Config struct {
	// Width is the number of character columns. The row count is derived
	// from the source image aspect ratio.
	Width int `json:"width"`

	// FontSize is the cell edge length in pixels. Output dimensions are
	// Width*FontSize by rows*FontSize.
	FontSize int `json:"font_size"`

	// Brightness multiplies every channel during photo preparation.
	// 1.0 leaves the image unchanged.
	Brightness float64 `json:"brightness"`

	// Contrast scales channel distance from mid-gray (128) during photo
	// preparation. 1.0 leaves the image unchanged.
	Contrast float64 `json:"contrast"`

	// Randomize enables per-cell position and size jitter.
	Randomize bool `json:"randomize"`

	// Bold renders glyphs with a bold face, or a synthetic dilation when
	// the font source has no native bold.
	Bold bool `json:"bold"`

	// Ramp is the character set ordered dense to sparse.
	Ramp string `json:"ramp"`

	// PositionJitter is the maximum glyph offset on each axis as a
	// fraction of FontSize. Only used when Randomize is true.
	PositionJitter float64 `json:"position_jitter"`

	// SizeJitterMin and SizeJitterMax bound the per-cell glyph scale
	// factor. Only used when Randomize is true.
	SizeJitterMin float64 `json:"size_jitter_min"`
	SizeJitterMax float64 `json:"size_jitter_max"`

	// Background is the canvas color as a hex string such as "#000000",
	// BackgroundAuto for the photo's dominant color, or empty for black.
	Background string `json:"background"`
}

// DefaultConfig returns the standard mask settings: 80 columns, 25px
// cells, a brightened high-contrast photo, jittered bold glyphs over a
// black canvas.
func DefaultConfig() Config {
	return Config{
		Width:          80,
		FontSize:       25,
		Brightness:     1.8,
		Contrast:       1.3,
		Randomize:      true,
		Bold:           true,
		Ramp:           DefaultRamp,
		PositionJitter: 0.15,
		SizeJitterMin:  0.6,
		SizeJitterMax:  1.4,
		Background:     "#000000",
	}
}

// Validate reports the first invalid field, or nil if the configuration
// can drive a render.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("config: width must be positive, got %d", c.Width)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("config: font size must be positive, got %d", c.FontSize)
	}
	if len(c.Ramp) == 0 {
		return fmt.Errorf("config: ramp must contain at least one character")
	}
	if c.Brightness <= 0 {
		return fmt.Errorf("config: brightness must be positive, got %g", c.Brightness)
	}
	if c.Contrast <= 0 {
		return fmt.Errorf("config: contrast must be positive, got %g", c.Contrast)
	}
	if c.PositionJitter < 0 {
		return fmt.Errorf("config: position jitter must not be negative, got %g", c.PositionJitter)
	}
	if c.SizeJitterMin <= 0 {
		return fmt.Errorf("config: size jitter minimum must be positive, got %g", c.SizeJitterMin)
	}
	if c.SizeJitterMax < c.SizeJitterMin {
		return fmt.Errorf("config: size jitter maximum %g is below minimum %g", c.SizeJitterMax, c.SizeJitterMin)
	}
	if _, err := c.backgroundColor(); err != nil {
		return err
	}
	return nil
}

// ConfigFromJSON decodes a JSON document over DefaultConfig, so absent
// fields keep their default values, and validates the result.
func ConfigFromJSON(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// backgroundColor resolves the Background field to a concrete color.
// BackgroundAuto is resolved later against the prepared photo and maps
// to black here so validation accepts it.
func (c Config) backgroundColor() (color.Color, error) {
	if c.Background == "" || c.Background == BackgroundAuto {
		return color.RGBA{A: 255}, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, fmt.Errorf("config: background %q: %w", c.Background, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
