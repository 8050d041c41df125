package imageutil

import (
	"math"
)

func mustBuffer(width, height, channels int) *PixelBuffer {
	buf, err := NewPixelBuffer(width, height, channels)
	if err != nil {
		panic(err)
	}
	return buf
}

// CreateSolidImage creates a 3-channel image filled with a single color.
func CreateSolidImage(width, height int, r, g, b uint8) *PixelBuffer {
	img := mustBuffer(width, height, 3)
	for i := 0; i < len(img.pix); i += 3 {
		img.pix[i], img.pix[i+1], img.pix[i+2] = r, g, b
	}
	return img
}

// CreateGradientImage creates a horizontal grayscale gradient, 3 channels.
func CreateGradientImage(width, height int) *PixelBuffer {
	img := mustBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / max(width-1, 1))
			for c := 0; c < 3; c++ {
				img.Set8(x, y, c, v)
			}
		}
	}
	return img
}

// CreateStepImage creates a 1-channel image that is black left of column
// edgeX and white from edgeX on.
func CreateStepImage(width, height, edgeX int) *PixelBuffer {
	img := mustBuffer(width, height, 1)
	for y := 0; y < height; y++ {
		for x := edgeX; x < width; x++ {
			img.Set8(x, y, 0, 255)
		}
	}
	return img
}

// CreateCheckerboardImage creates a checkerboard pattern for edge testing.
func CreateCheckerboardImage(width, height, squareSize int) *PixelBuffer {
	img := mustBuffer(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				for c := 0; c < 3; c++ {
					img.Set8(x, y, c, 255)
				}
			}
		}
	}
	return img
}

// CreateEdgeImage creates a gray image with a white rectangle in the center.
func CreateEdgeImage(width, height int) *PixelBuffer {
	img := CreateSolidImage(width, height, 128, 128, 128)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			for c := 0; c < 3; c++ {
				img.Set8(x, y, c, 255)
			}
		}
	}
	return img
}

// CalculateMSE calculates the mean squared error between two buffers in
// 8-bit units. Mismatched shapes return math.MaxFloat64.
func CalculateMSE(a, b *PixelBuffer) float64 {
	if a.width != b.width || a.height != b.height || a.channels != b.channels {
		return math.MaxFloat64
	}
	var sumSq float64
	for i := range a.pix {
		d := float64(a.pix[i]) - float64(b.pix[i])
		sumSq += d * d
	}
	return sumSq / float64(len(a.pix))
}

// CalculateMaxDiff returns the largest per-sample difference between two
// buffers, or 256 when their shapes differ.
func CalculateMaxDiff(a, b *PixelBuffer) int {
	if a.width != b.width || a.height != b.height || a.channels != b.channels {
		return 256
	}
	maxDiff := 0
	for i := range a.pix {
		maxDiff = max(maxDiff, abs(int(a.pix[i])-int(b.pix[i])))
	}
	return maxDiff
}

// CalculateJaccardIndex calculates the Jaccard similarity between the
// non-zero pixels of two 1-channel masks. Returns a value between 0 (no
// overlap) and 1 (perfect overlap).
func CalculateJaccardIndex(a, b *PixelBuffer) float64 {
	if a.width != b.width || a.height != b.height {
		return 0
	}
	var intersection, union int
	for y := 0; y < a.height; y++ {
		for x := 0; x < a.width; x++ {
			e1 := a.At8(x, y, 0) != 0
			e2 := b.At8(x, y, 0) != 0
			if e1 && e2 {
				intersection++
			}
			if e1 || e2 {
				union++
			}
		}
	}
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
