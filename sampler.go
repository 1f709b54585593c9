package asciimask

import (
	"image"
	"math"

	"github.com/0x0ndra/ascii-photo-mask/imageutil"
)

// Grid is the character layout of a render: Cols by Rows cells.
type Grid struct {
	Cols int
	Rows int
}

// GridFor derives the grid shape for an image. Columns come from the
// configuration; rows follow the image aspect ratio so the mask keeps
// the photo's proportions:
//
//	rows = cols * height / width
//
// The row count is truncated and clamped to at least 1, so extreme
// panoramas still produce one row of characters.
func GridFor(bounds image.Rectangle, cols int) Grid {
	w := bounds.Dx()
	h := bounds.Dy()
	rows := 1
	if w > 0 {
		rows = cols * h / w
		if rows < 1 {
			rows = 1
		}
	}
	return Grid{Cols: cols, Rows: rows}
}

// SampleBrightness measures the mean luminance of every grid cell and
// returns it as rows of values in [0, 1], indexed [row][col].
//
// The image is partitioned by pixel centers: pixel x belongs to column c
// when x+0.5 falls inside [c*cellWidth, (c+1)*cellWidth). Every pixel
// lands in exactly one cell, and together the cells cover the image.
func SampleBrightness(img *imageutil.RGBAImage, grid Grid) [][]float64 {
	cellW := float64(img.Width()) / float64(grid.Cols)
	cellH := float64(img.Height()) / float64(grid.Rows)

	out := make([][]float64, grid.Rows)
	for row := range out {
		out[row] = make([]float64, grid.Cols)
		y0, y1 := cellSpan(row, cellH, img.Height())
		for col := 0; col < grid.Cols; col++ {
			x0, x1 := cellSpan(col, cellW, img.Width())
			sum := 0.0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += img.LuminanceAt(x, y)
				}
			}
			n := float64((y1 - y0) * (x1 - x0))
			out[row][col] = sum / n / 255
		}
	}
	return out
}

// cellSpan returns the half-open pixel range [lo, hi) of cell i along an
// axis whose cells are cell wide and whose image extent is limit pixels.
// When more cells than pixels leave a cell without any pixel center, the
// span collapses to the single pixel nearest the cell midpoint so every
// cell still samples something.
func cellSpan(i int, cell float64, limit int) (lo, hi int) {
	lo = int(math.Ceil(float64(i)*cell - 0.5))
	hi = int(math.Ceil(float64(i+1)*cell - 0.5))
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	if lo >= hi {
		lo = int(float64(i)*cell + cell/2)
		if lo < 0 {
			lo = 0
		}
		if lo >= limit {
			lo = limit - 1
		}
		hi = lo + 1
	}
	return lo, hi
}
