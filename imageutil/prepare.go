package imageutil

import "image"

// Prepare converts a source image into the pipeline's working buffer.
//
// The function:
// 1. Converts the source to an RGBA buffer anchored at (0, 0)
// 2. Resizes to the output dimensions using area interpolation
// 3. Enhances the result (brightness first, then contrast)
//
// Enhancement runs exactly once here; the brightness sampler and the
// compositor both read the returned buffer, so the characters that are
// chosen and the photo that shows through them always agree.
//
// Parameters:
//   - src: The input image
//   - width: Output width in pixels (grid columns times cell size)
//   - height: Output height in pixels (grid rows times cell size)
//   - brightness: Brightness factor, 1.0 is unchanged
//   - contrast: Contrast factor around mid-gray, 1.0 is unchanged
//
// Returns:
//   - The enhanced working buffer at (width x height)
func Prepare(src image.Image, width, height int, brightness, contrast float64) *RGBAImage {
	rgba := RGBAImageFromImage(src)
	resized := Resize(rgba, width, height, InterpolationArea)
	return Enhance(resized, brightness, contrast)
}
