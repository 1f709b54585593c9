package asciimask

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/0x0ndra/ascii-photo-mask/imageutil"
)

// Compositor stamps glyph masks onto a canvas, revealing the source
// photo wherever the masks have coverage. The canvas starts as a solid
// background color and the photo only shows through stamped glyphs.
type Compositor struct {
	src    *imageutil.RGBAImage
	canvas *image.RGBA
}

// NewCompositor creates a canvas matching the source image, filled with
// the background color. The background is forced opaque.
func NewCompositor(src *imageutil.RGBAImage, background color.Color) *Compositor {
	canvas := image.NewRGBA(src.Bounds())
	r, g, b, _ := background.RGBA()
	bg := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Compositor{src: src, canvas: canvas}
}

// Stamp blends source pixels into the canvas through a mask placed at
// the given cell origin. Mask regions outside the canvas clip silently,
// so jittered glyphs may run off any edge. Overlapping stamps compose ink
// over ink; full coverage from a later stamp replaces whatever an earlier
// one left.
func (c *Compositor) Stamp(mask GlyphMask, at image.Point) {
	if mask.Empty() {
		return
	}
	rect := mask.Alpha.Rect.Add(at).Intersect(c.canvas.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			a := mask.Alpha.AlphaAt(x-at.X, y-at.Y).A
			if a == 0 {
				continue
			}
			s := c.src.GetRGB(x, y)
			o := c.canvas.PixOffset(x, y)
			if a == 255 {
				c.canvas.Pix[o] = s.R
				c.canvas.Pix[o+1] = s.G
				c.canvas.Pix[o+2] = s.B
			} else {
				c.canvas.Pix[o] = blendChannel(s.R, c.canvas.Pix[o], a)
				c.canvas.Pix[o+1] = blendChannel(s.G, c.canvas.Pix[o+1], a)
				c.canvas.Pix[o+2] = blendChannel(s.B, c.canvas.Pix[o+2], a)
			}
			c.canvas.Pix[o+3] = 255
		}
	}
}

// blendChannel mixes one channel of a source pixel over a destination
// pixel by mask coverage, rounding to nearest.
func blendChannel(src, dst, a uint8) uint8 {
	return uint8((uint32(src)*uint32(a) + uint32(dst)*uint32(255-a) + 127) / 255)
}

// Canvas returns the composited image. The compositor keeps writing to
// the same buffer, so copy it if stamping continues.
func (c *Compositor) Canvas() *image.RGBA {
	return c.canvas
}
