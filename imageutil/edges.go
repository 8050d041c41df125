package imageutil

import (
	"math"
)

// Default Difference-of-Gaussians parameters used by the conversion pipeline.
const (
	DefaultDoGSigmaScale = 1.6
	DefaultDoGTau        = 0.99
	DefaultDoGThreshold  = 0.1
)

// Direction buckets produced by QuantizeDirection.
const (
	DirVertical = iota
	DirHorizontal
	DirDiagonal1
	DirDiagonal2
)

var (
	sobelX = [3][3]float32{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float32{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// EdgeInfo holds the Sobel gradient of an image. Magnitude is the raw
// gradient length and may exceed 1; Direction is atan2(gy, gx) in radians.
// Both planes have the dimensions of the source image and are zero on the
// one pixel border.
type EdgeInfo struct {
	Magnitude *FloatPlane
	Direction *FloatPlane
}

// DifferenceOfGaussians computes a binary edge mask. src is blurred at sigma
// and at sigma*sigmaScale; a pixel is an edge (1) when the channel average
// of blur1 - tau*blur2 is at least threshold, otherwise 0.
func DifferenceOfGaussians(
	src *PixelBuffer,
	size int,
	sigma, sigmaScale, tau, threshold float64,
) (*PixelBuffer, error) {
	blur1, err := GaussianBlur(src, size, sigma)
	if err != nil {
		return nil, err
	}
	blur2, err := GaussianBlur(src, size, sigma*sigmaScale)
	if err != nil {
		return nil, err
	}

	width, height, channels := src.Width(), src.Height(), src.Channels()
	dog := newLike(src, 1)
	t := float32(tau)
	th := float32(threshold)

	parallelRows(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				var diff float32
				for c := 0; c < channels; c++ {
					diff += blur1.Get(x, y, c) - t*blur2.Get(x, y, c)
				}
				diff /= float32(channels)
				if diff >= th {
					dog.Set(x, y, 0, 1)
				}
			}
		}
	})

	return dog, nil
}

// Sobel computes gradient magnitude and direction on channel 0 of src.
// Only interior pixels are computed; the border stays zero, meaning no edge.
func Sobel(src *PixelBuffer) *EdgeInfo {
	width, height := src.Width(), src.Height()
	info := &EdgeInfo{
		Magnitude: newPlaneLike(src),
		Direction: newPlaneLike(src),
	}

	parallelRows(height, func(start, end int) {
		for y := max(start, 1); y < min(end, height-1); y++ {
			for x := 1; x < width-1; x++ {
				var gx, gy float32
				for i := -1; i <= 1; i++ {
					for j := -1; j <= 1; j++ {
						p := src.Get(x+j, y+i, 0)
						gx += p * sobelX[i+1][j+1]
						gy += p * sobelY[i+1][j+1]
					}
				}
				info.Magnitude.Set(x, y, float32(math.Hypot(float64(gx), float64(gy))))
				info.Direction.Set(x, y, float32(math.Atan2(float64(gy), float64(gx))))
			}
		}
	})

	return info
}

// directionBounds holds the bucket boundaries 0.05, 0.45, 0.55 and 0.95
// times pi, in radians.
type directionBounds [4]float64

var (
	bounds64 = directionBounds{0.05 * math.Pi, 0.45 * math.Pi, 0.55 * math.Pi, 0.95 * math.Pi}
	// bounds32 are the same boundaries rounded to float32, so angles read
	// back from a FloatPlane land on the boundaries exactly.
	bounds32 = directionBounds{
		float64(float32(bounds64[0])), float64(float32(bounds64[1])),
		float64(float32(bounds64[2])), float64(float32(bounds64[3])),
	}
)

// DirectionBucket maps a gradient angle in radians to one of the four
// direction buckets. Angles beyond +-pi count as +-pi.
func DirectionBucket(angle float64) int {
	return bounds64.bucket(angle)
}

// bucket compares |angle| against the boundaries, using the sign of angle
// for the two diagonal classes.
func (b directionBounds) bucket(angle float64) int {
	a := math.Abs(angle)
	switch {
	case a <= b[0] || a > b[3]:
		return DirVertical
	case a > b[1] && a < b[2]:
		return DirHorizontal
	case (a > b[0] && a < b[1] && angle > 0) || (a > b[2] && a < b[3] && angle < 0):
		return DirDiagonal1
	default:
		return DirDiagonal2
	}
}

// QuantizeDirection converts a direction plane into a 1-channel buffer
// holding bucket/3 for every pixel. Use BucketFromValue to recover the
// bucket from a stored value.
func QuantizeDirection(direction *FloatPlane) *PixelBuffer {
	width, height := direction.Width(), direction.Height()
	quantized := newLike(direction, 1)

	parallelRows(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				bucket := bounds32.bucket(float64(direction.Get(x, y)))
				quantized.Set(x, y, 0, float32(bucket)/3)
			}
		}
	})

	return quantized
}

// BucketFromValue recovers a direction bucket from a quantized sample.
func BucketFromValue(v float32) int {
	return int(math.Round(float64(v) * 3))
}

// GateEdges keeps quantized directions only where mask is non-zero.
// Both buffers must share dimensions; pixels outside mask read as no edge.
func GateEdges(quantized, mask *PixelBuffer) *PixelBuffer {
	width, height := quantized.Width(), quantized.Height()
	gated := newLike(quantized, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Get(x, y, 0) != 0 {
				gated.Set8(x, y, 0, quantized.At8(x, y, 0))
			}
		}
	}
	return gated
}
