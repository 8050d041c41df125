package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	InterpolationNearest
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize scales src to width x height, keeping its channel count.
func Resize(src *PixelBuffer, width, height int, interp Interpolation) (*PixelBuffer, error) {
	dst, err := NewPixelBuffer(width, height, src.Channels())
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, width, height)
	srcImg := src.Image()
	if src.Channels() == 1 {
		gray := image.NewGray(rect)
		interp.scaler().Scale(gray, rect, srcImg, srcImg.Bounds(), draw.Src, nil)
		copy(dst.pix, gray.Pix)
		return dst, nil
	}

	scaled := image.NewNRGBA(rect)
	interp.scaler().Scale(scaled, rect, srcImg, srcImg.Bounds(), draw.Src, nil)
	for y := 0; y < height; y++ {
		row := scaled.Pix[y*scaled.Stride:]
		for x := 0; x < width; x++ {
			for c := 0; c < dst.channels; c++ {
				dst.Set8(x, y, c, row[x*4+c])
			}
		}
	}
	return dst, nil
}

// ResizeToWidth resizes src to the given width while maintaining aspect
// ratio. The height is at least 1.
func ResizeToWidth(src *PixelBuffer, width int, interp Interpolation) (*PixelBuffer, error) {
	aspectRatio := float64(src.Width()) / float64(src.Height())
	height := max(int(float64(width)/aspectRatio), 1)
	return Resize(src, width, height, interp)
}
