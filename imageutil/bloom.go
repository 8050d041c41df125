package imageutil

// Default bloom parameters used by the conversion pipeline.
const (
	DefaultBloomThreshold = 0.7
	DefaultBloomIntensity = 0.3
)

// ExtractGlow returns a 1-channel buffer holding the mean intensity of each
// pixel of img where that intensity is strictly above threshold, and 0
// elsewhere.
func ExtractGlow(img *PixelBuffer, threshold float32) *PixelBuffer {
	width, height := img.Width(), img.Height()
	glow := newLike(img, 1)

	parallelRows(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				if v := img.Intensity(x, y); v > threshold {
					glow.Set(x, y, 0, v)
				}
			}
		}
	})

	return glow
}

// BlurGlow spreads the glow with the default Gaussian kernel.
func BlurGlow(glow *PixelBuffer) (*PixelBuffer, error) {
	return GaussianBlur(glow, DefaultKernelSize, DefaultSigma)
}

// Composite adds glow*intensity to every channel of img. Sums above 1 are
// clamped when stored.
func Composite(img, glow *PixelBuffer, intensity float32) *PixelBuffer {
	width, height, channels := img.Width(), img.Height(), img.Channels()
	out := newLike(img, channels)

	parallelRows(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				add := glow.Get(x, y, 0) * intensity
				for c := 0; c < channels; c++ {
					out.Set(x, y, c, img.Get(x, y, c)+add)
				}
			}
		}
	})

	return out
}

// Bloom extracts, blurs and composites the glow of img.
func Bloom(img *PixelBuffer, threshold, intensity float32) (*PixelBuffer, error) {
	glow := ExtractGlow(img, threshold)
	blurred, err := BlurGlow(glow)
	if err != nil {
		return nil, err
	}
	return Composite(img, blurred, intensity), nil
}
