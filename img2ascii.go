// Package img2ascii converts raster images into glyph art: plain text for
// saving and ANSI-colored text for terminals.
//
// The pipeline runs on imageutil.PixelBuffer values: a separable Gaussian
// blur, optional Sobel edge detection with direction quantization, optional
// bloom, and finally glyph sampling onto a character grid. Use NewConverter
// with functional options to configure it:
//
//	conv := img2ascii.NewConverter(img2ascii.WithWidth(120))
//	art, err := conv.ConvertFile("photo.jpg")
//	if err != nil {
//		return err
//	}
//	fmt.Print(art.Colored)
package img2ascii

const (
	ESC = "\u001b"

	// Reset ends a colored glyph.
	Reset = ESC + "[0m"
)

// Ramp lists glyphs from darkest to brightest. The last entry is a solid
// block.
var Ramp = []rune(" .:coP0?@■")

// EdgeGlyphs are indexed by round(v*4) mod 4 of the quantized edge value v.
var EdgeGlyphs = []rune{'|', '-', '\\', '/'}

// CharAspect compensates for terminal cells being about twice as tall as
// they are wide.
const CharAspect = 0.5

// DefaultWidth is the glyph grid width used when none is configured.
const DefaultWidth = 100
