package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// FromImage copies img into a PixelBuffer. Grayscale images produce one
// channel, opaque images three, and anything else four (straight alpha).
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	channels := 4
	switch src := img.(type) {
	case *image.Gray, *image.Gray16:
		channels = 1
	case interface{ Opaque() bool }:
		if src.Opaque() {
			channels = 3
		}
	}

	buf, err := NewPixelBuffer(width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate pixel buffer: %w", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if channels == 1 {
				buf.Set8(x, y, 0, color.GrayModel.Convert(c).(color.Gray).Y)
				continue
			}
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			buf.Set8(x, y, 0, n.R)
			buf.Set8(x, y, 1, n.G)
			buf.Set8(x, y, 2, n.B)
			if channels == 4 {
				buf.Set8(x, y, 3, n.A)
			}
		}
	}

	return buf, nil
}

// Image converts the buffer to a standard library image: *image.Gray for
// one channel, *image.NRGBA otherwise.
func (b *PixelBuffer) Image() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)
	if b.channels == 1 {
		gray := image.NewGray(rect)
		copy(gray.Pix, b.pix)
		return gray
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			a := uint8(255)
			if b.channels == 4 {
				a = b.At8(x, y, 3)
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: b.At8(x, y, 0),
				G: b.At8(x, y, 1),
				B: b.At8(x, y, 2),
				A: a,
			})
		}
	}
	return out
}

// Luminance returns a 1-channel buffer using the BT.601 weights
// Y = 0.299*R + 0.587*G + 0.114*B. Single-channel input is cloned.
func Luminance(b *PixelBuffer) *PixelBuffer {
	if b.channels == 1 {
		return b.Clone()
	}
	gray := newLike(b, 1)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			// Integer math, scaled by 1000
			lum := (299*int(b.At8(x, y, 0)) + 587*int(b.At8(x, y, 1)) + 114*int(b.At8(x, y, 2)) + 500) / 1000
			gray.Set8(x, y, 0, uint8(min(lum, 255)))
		}
	}
	return gray
}
