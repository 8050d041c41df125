package imageutil

import "fmt"

// FloatPlane is a single-channel grid of unclamped float32 values, used for
// quantities that do not fit the [0,1] range of a PixelBuffer, such as
// gradient magnitudes and angles in radians.
type FloatPlane struct {
	width  int
	height int
	data   []float32
}

// NewFloatPlane creates a zero-filled FloatPlane.
func NewFloatPlane(width, height int) (*FloatPlane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxSamples/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrBufferTooLarge, width, height)
	}
	return newPlaneLike(&FloatPlane{width: width, height: height}), nil
}

func newPlaneLike(src dims) *FloatPlane {
	w, h := src.Width(), src.Height()
	return &FloatPlane{width: w, height: h, data: make([]float32, w*h)}
}

// Width returns the plane width.
func (p *FloatPlane) Width() int {
	return p.width
}

// Height returns the plane height.
func (p *FloatPlane) Height() int {
	return p.height
}

// Get returns the value at (x, y), or 0 when out of range.
func (p *FloatPlane) Get(x, y int) float32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.data[y*p.width+x]
}

// Set stores v at (x, y). Out-of-range coordinates are ignored.
func (p *FloatPlane) Set(x, y int, v float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.data[y*p.width+x] = v
}

// Max returns the largest value in the plane.
func (p *FloatPlane) Max() float32 {
	var m float32
	for i, v := range p.data {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Normalized converts the plane to a 1-channel PixelBuffer, scaling values
// so that max maps to 1. Values are clamped by PixelBuffer.Set.
func (p *FloatPlane) Normalized(max float32) *PixelBuffer {
	out := newLike(p, 1)
	if max <= 0 {
		return out
	}
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			out.Set(x, y, 0, p.Get(x, y)/max)
		}
	}
	return out
}
