package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/img2ascii/imageutil"
)

// PNGOptions controls RenderPNG.
type PNGOptions struct {
	// FontPath is a TrueType font file; empty uses Go Mono.
	FontPath string
	// FontSize in points at 72 DPI. Zero means 12.
	FontSize float64
	// Background fills the canvas; glyphs are drawn in their cell color.
	Background RGB
	// Foreground is used for cells without color, e.g. loaded plain art.
	// Zero means light gray.
	Foreground RGB
}

func (o PNGOptions) withDefaults() PNGOptions {
	if o.FontSize <= 0 {
		o.FontSize = 12
	}
	if o.Foreground == (RGB{}) {
		o.Foreground = RGB{R: 204, G: 204, B: 204}
	}
	return o
}

// loadFont parses the TrueType font at path, or Go Mono when path is empty.
func loadFont(path string) (*truetype.Font, error) {
	fontBytes := gomono.TTF
	if path != "" {
		var err error
		fontBytes, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
	}

	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// cellSize returns the pixel size of one monospace cell and the baseline
// offset from the top of the cell.
func cellSize(face font.Face) (width, height, baseline int) {
	metrics := face.Metrics()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = metrics.Height / 2
	}
	return adv.Ceil(), metrics.Height.Ceil(), metrics.Ascent.Ceil()
}

// RenderPNG draws the glyph grid onto an image, one monospace cell per
// glyph, each in its sampled color.
func (a *Art) RenderPNG(opts PNGOptions) (*image.RGBA, error) {
	opts = opts.withDefaults()
	ttf, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	cw, ch, baseline := cellSize(face)

	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("%w: empty art", imageutil.ErrInvalidDimensions)
	}
	img := image.NewRGBA(image.Rect(0, 0, a.Width*cw, a.Height*ch))
	bg := opts.Background
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{bg.R, bg.G, bg.B, 255}), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetHinting(font.HintingFull)

	for y, row := range a.Cells {
		for x, cell := range row {
			if cell.Blank || cell.Glyph == ' ' {
				continue
			}
			c := cell.Color
			if c == (RGB{}) {
				c = opts.Foreground
			}
			ctx.SetSrc(image.NewUniform(color.RGBA{c.R, c.G, c.B, 255}))
			if _, err := ctx.DrawString(string(cell.Glyph), freetype.Pt(x*cw, y*ch+baseline)); err != nil {
				return nil, fmt.Errorf("failed to draw glyph %q: %w", cell.Glyph, err)
			}
		}
	}

	return img, nil
}

// SavePNG renders the art with RenderPNG and writes it to path.
func (a *Art) SavePNG(path string, opts PNGOptions) error {
	img, err := a.RenderPNG(opts)
	if err != nil {
		return err
	}
	return imageutil.SaveImage(img, path)
}
