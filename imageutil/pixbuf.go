// Package imageutil provides the pure Go image processing stages used to
// turn a raster image into glyph art: an 8-bit pixel buffer with normalized
// float accessors, separable Gaussian blur, Difference-of-Gaussians and
// Sobel edge detection, and bloom compositing.
package imageutil

import (
	"fmt"
	"hash/fnv"
	"math"
)

// MaxSamples bounds the number of samples a single PixelBuffer may hold.
// 1<<30 samples is a 16k x 16k RGBA image.
const MaxSamples = 1 << 30

// quantGuard absorbs float round-off when converting a normalized value back
// to an 8-bit sample, so Set(Get(x)) stores exactly x.
const quantGuard = 1e-3

// PixelBuffer is an owned 2D grid of 8-bit samples, row-major, with
// Channels samples per pixel. Accessors work in normalized [0,1] floats and
// never panic on out-of-range coordinates.
type PixelBuffer struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// NewPixelBuffer creates a zero-filled PixelBuffer with the specified
// dimensions. channels must be 1, 3 or 4.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, channels)
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels)
	}
	if width > MaxSamples/height || width*height > MaxSamples/channels {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrBufferTooLarge, width, height, channels)
	}
	return &PixelBuffer{
		width:    width,
		height:   height,
		channels: channels,
		pix:      make([]uint8, width*height*channels),
	}, nil
}

// newLike allocates a buffer with the same width and height as src. The
// dimensions were already validated when src was created.
func newLike(src dims, channels int) *PixelBuffer {
	w, h := src.Width(), src.Height()
	return &PixelBuffer{
		width:    w,
		height:   h,
		channels: channels,
		pix:      make([]uint8, w*h*channels),
	}
}

// dims is implemented by PixelBuffer and FloatPlane.
type dims interface {
	Width() int
	Height() int
}

// Width returns the image width.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the image height.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Channels returns the number of samples per pixel.
func (b *PixelBuffer) Channels() int {
	return b.channels
}

// Pix returns the backing samples. Callers must treat it as read-only.
func (b *PixelBuffer) Pix() []uint8 {
	return b.pix
}

func (b *PixelBuffer) index(x, y, c int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || c < 0 || c >= b.channels {
		return -1
	}
	return (y*b.width+x)*b.channels + c
}

// Get returns the sample at (x, y, c) normalized to [0,1]. Out-of-range
// coordinates return 0.
func (b *PixelBuffer) Get(x, y, c int) float32 {
	i := b.index(x, y, c)
	if i < 0 {
		return 0
	}
	return float32(b.pix[i]) / 255
}

// Set stores v at (x, y, c). v is clamped to [0,1] and truncated to an
// 8-bit sample; values within 1e-3 below an integer step round up to it.
// Out-of-range coordinates are ignored.
func (b *PixelBuffer) Set(x, y, c int, v float32) {
	i := b.index(x, y, c)
	if i < 0 {
		return
	}
	b.pix[i] = quantize(v)
}

// At8 returns the raw sample at (x, y, c), or 0 when out of range.
func (b *PixelBuffer) At8(x, y, c int) uint8 {
	i := b.index(x, y, c)
	if i < 0 {
		return 0
	}
	return b.pix[i]
}

// Set8 stores a raw sample at (x, y, c). Out-of-range coordinates are ignored.
func (b *PixelBuffer) Set8(x, y, c int, v uint8) {
	i := b.index(x, y, c)
	if i < 0 {
		return
	}
	b.pix[i] = v
}

// Intensity returns the mean of all channels at (x, y).
func (b *PixelBuffer) Intensity(x, y int) float32 {
	var sum float32
	for c := 0; c < b.channels; c++ {
		sum += b.Get(x, y, c)
	}
	return sum / float32(b.channels)
}

// Clone creates a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	clone := newLike(b, b.channels)
	copy(clone.pix, b.pix)
	return clone
}

// Checksum returns the FNV-1a hash of the dimensions and samples.
func (b *PixelBuffer) Checksum() uint64 {
	h := fnv.New64a()
	h.Write([]byte{
		byte(b.width), byte(b.width >> 8), byte(b.width >> 16), byte(b.width >> 24),
		byte(b.height), byte(b.height >> 8), byte(b.height >> 16), byte(b.height >> 24),
		byte(b.channels),
	})
	h.Write(b.pix)
	return h.Sum64()
}

// quantize clamps v to [0,1] and converts it to an 8-bit sample by
// truncation.
func quantize(v float32) uint8 {
	f := float64(v)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + quantGuard)
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
