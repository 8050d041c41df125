package imageutil

import (
	"fmt"
	"math"
)

// Axis selects the direction of a 1D convolution pass.
type Axis int

const (
	// AxisX convolves along rows (horizontal pass).
	AxisX Axis = iota
	// AxisY convolves along columns (vertical pass).
	AxisY
)

// Default blur parameters used by the conversion pipeline.
const (
	DefaultKernelSize = 5
	DefaultSigma      = 1.0
)

// GaussianKernel1D builds a normalized 1D Gaussian kernel of the given size,
// centered at size/2. The weights sum to 1. size is expected to be odd; even
// sizes are accepted and are simply off-center by half a sample.
func GaussianKernel1D(size int, sigma float64) ([]float32, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: kernel size %d", ErrInvalidDimensions, size)
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, fmt.Errorf("%w: sigma %v", ErrInvalidDimensions, sigma)
	}

	weights := make([]float64, size)
	half := size / 2
	norm := sigma * math.Sqrt(2*math.Pi)
	var sum float64
	for i := range weights {
		x := float64(i - half)
		weights[i] = math.Exp(-(x*x)/(2*sigma*sigma)) / norm
		sum += weights[i]
	}

	kernel := make([]float32, size)
	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel, nil
}

// Convolve1D applies a 1D kernel along axis to every channel of src.
// Border pixels are handled by replicating edge values.
func Convolve1D(src *PixelBuffer, kernel []float32, axis Axis) *PixelBuffer {
	width, height, channels := src.Width(), src.Height(), src.Channels()
	dst := newLike(src, channels)
	half := len(kernel) / 2

	parallelRows(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				for c := 0; c < channels; c++ {
					var sum float32
					for i, k := range kernel {
						sx, sy := x, y
						if axis == AxisX {
							sx = clampInt(x+i-half, 0, width-1)
						} else {
							sy = clampInt(y+i-half, 0, height-1)
						}
						sum += k * src.Get(sx, sy, c)
					}
					dst.Set(x, y, c, sum)
				}
			}
		}
	})

	return dst
}

// GaussianBlur applies a separable Gaussian blur: a horizontal pass followed
// by a vertical pass. The intermediate buffer is dropped on return.
func GaussianBlur(src *PixelBuffer, size int, sigma float64) (*PixelBuffer, error) {
	kernel, err := GaussianKernel1D(size, sigma)
	if err != nil {
		return nil, err
	}
	horizontal := Convolve1D(src, kernel, AxisX)
	return Convolve1D(horizontal, kernel, AxisY), nil
}

// GaussianBlurDefault blurs with the pipeline defaults (5, 1.0).
func GaussianBlurDefault(src *PixelBuffer) *PixelBuffer {
	blurred, err := GaussianBlur(src, DefaultKernelSize, DefaultSigma)
	if err != nil {
		// The defaults are valid constants.
		panic(err)
	}
	return blurred
}
