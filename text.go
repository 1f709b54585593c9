package asciimask

import (
	"image"
	"strings"
)

// GenerateText renders src as plain ASCII art text: one line per grid
// row, one ramp character per cell, rows separated by newlines.
//
// The characters are exactly the ones Generate would stamp for the same
// configuration. No rasterization or jitter is involved, so the text
// form is deterministic even with randomization enabled.
func (r *Renderer) GenerateText(src image.Image) (string, error) {
	_, grid, brightness, mapper, err := r.prepare(src)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(grid.Rows * (grid.Cols + 1))
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			_, ch := mapper.Map(brightness[row][col])
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
