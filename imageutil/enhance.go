package imageutil

import "math"

// Brighten scales every color channel by factor, clamping to [0, 255].
// A factor of 1.0 returns an unchanged copy, factors above 1.0 lighten
// the image, factors below 1.0 darken it. The alpha channel is not
// touched.
func Brighten(img *RGBAImage, factor float64) *RGBAImage {
	return applyLUT(img, brightnessLUT(factor))
}

// AdjustContrast scales the distance of every color channel from
// mid-gray (128), clamping to [0, 255]. A factor of 1.0 returns an
// unchanged copy, factors above 1.0 push values away from 128, factors
// below 1.0 pull them toward it. The alpha channel is not touched.
func AdjustContrast(img *RGBAImage, factor float64) *RGBAImage {
	return applyLUT(img, contrastLUT(factor))
}

// Enhance applies brightness and then contrast in a single pass over
// the pixels. The two adjustments are composed into one lookup table,
// so Enhance(img, b, c) equals AdjustContrast(Brighten(img, b), c)
// without the intermediate copy.
func Enhance(img *RGBAImage, brightness, contrast float64) *RGBAImage {
	bl := brightnessLUT(brightness)
	cl := contrastLUT(contrast)

	var lut [256]uint8
	for i := range lut {
		lut[i] = cl[bl[i]]
	}
	return applyLUT(img, lut)
}

// brightnessLUT builds the channel mapping v -> v*factor.
func brightnessLUT(factor float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = clampChannel(math.Round(float64(i) * factor))
	}
	return lut
}

// contrastLUT builds the channel mapping v -> 128 + (v-128)*factor.
// The pivot is fixed mid-gray, not the image mean, so the mapping is
// independent of image content.
func contrastLUT(factor float64) [256]uint8 {
	var lut [256]uint8
	for i := range lut {
		lut[i] = clampChannel(math.Round(128 + (float64(i)-128)*factor))
	}
	return lut
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// applyLUT maps the R, G and B bytes of every pixel through lut,
// returning a new image.
func applyLUT(img *RGBAImage, lut [256]uint8) *RGBAImage {
	out := img.Clone()
	pix := out.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = lut[pix[i]]
		pix[i+1] = lut[pix[i+1]]
		pix[i+2] = lut[pix[i+2]]
	}
	return out
}
