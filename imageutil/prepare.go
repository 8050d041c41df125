package imageutil

// Prescale downsamples src before the filter chain so that large inputs are
// not blurred at full resolution. The target width is columns*factor; src is
// returned unchanged when it is already that narrow or when factor is not
// positive.
//
// Parameters:
//   - src: The input image
//   - columns: Width of the glyph grid that will be sampled from the result
//   - factor: Source pixels kept per glyph column (2 is a good default)
func Prescale(src *PixelBuffer, columns, factor int) (*PixelBuffer, error) {
	if factor <= 0 || columns <= 0 {
		return src, nil
	}
	target := columns * factor
	if target >= src.Width() {
		return src, nil
	}
	return ResizeToWidth(src, target, InterpolationArea)
}
