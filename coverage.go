package img2ascii

import (
	"image"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// GlyphCoverage renders each glyph in its own monospace cell and returns
// the fraction of the cell covered by ink, in [0,1]. fontPath selects a
// TrueType font; empty uses Go Mono. A good ramp has increasing coverage.
func GlyphCoverage(fontPath string, size float64, glyphs []rune) ([]float64, error) {
	ttf, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 12
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	cw, ch, baseline := cellSize(face)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	coverage := make([]float64, len(glyphs))
	for i, r := range glyphs {
		img := image.NewAlpha(image.Rect(0, 0, cw, ch))
		ctx.SetClip(img.Bounds())
		ctx.SetDst(img)
		if _, err := ctx.DrawString(string(r), freetype.Pt(0, baseline)); err != nil {
			return nil, err
		}

		var ink int
		for _, a := range img.Pix {
			ink += int(a)
		}
		coverage[i] = float64(ink) / float64(255*cw*ch)
	}
	return coverage, nil
}
