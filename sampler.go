package img2ascii

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/img2ascii/imageutil"
)

// Cell is one position of the glyph grid.
type Cell struct {
	Glyph rune
	Color RGB
	// Blank cells had no source pixel and are written without color.
	Blank bool
}

// GridHeight returns the number of glyph rows for an image of w x h pixels
// rendered glyphWidth columns wide: round(h/w * glyphWidth * CharAspect),
// at least 1.
func GridHeight(w, h, glyphWidth int) int {
	rows := int(math.Round(float64(h) / float64(w) * float64(glyphWidth) * CharAspect))
	return max(rows, 1)
}

// RampGlyph returns the ramp glyph for a normalized intensity.
func RampGlyph(intensity float32) rune {
	idx := int(math.Floor(float64(intensity) * float64(len(Ramp)-1)))
	return Ramp[min(max(idx, 0), len(Ramp)-1)]
}

// EdgeGlyph returns the glyph for a non-zero quantized edge value.
func EdgeGlyph(v float32) rune {
	idx := int(math.Round(float64(v)*4)) % len(EdgeGlyphs)
	return EdgeGlyphs[idx]
}

// sampleCell maps grid position (gx, gy) of a gw x gh grid onto img by
// nearest-neighbor sampling. edges may be nil.
func sampleCell(img, edges *imageutil.PixelBuffer, gx, gy, gw, gh int) Cell {
	w, h := img.Width(), img.Height()
	sx := gx * w / gw
	sy := gy * h / gh
	if sx < 0 || sx >= w || sy < 0 || sy >= h {
		return Cell{Glyph: ' ', Blank: true}
	}

	var glyph rune
	if v := edgeValue(edges, sx, sy); v != 0 {
		glyph = EdgeGlyph(v)
	} else {
		glyph = RampGlyph(img.Intensity(sx, sy))
	}

	return Cell{
		Glyph: glyph,
		Color: sampleColor(img.Get(sx, sy, 0), img.Get(sx, sy, 1), img.Get(sx, sy, 2)),
	}
}

func edgeValue(edges *imageutil.PixelBuffer, x, y int) float32 {
	if edges == nil {
		return 0
	}
	return edges.Get(x, y, 0)
}

// Sample builds the glyph grid for img, glyphWidth columns wide. Non-zero
// samples in channel 0 of edges select edge glyphs; edges may be nil. The
// colored rendering uses f, or equals the plain rendering when f is nil.
func Sample(img, edges *imageutil.PixelBuffer, glyphWidth int, f CellFormatter) (*Art, error) {
	if glyphWidth <= 0 {
		return nil, fmt.Errorf("%w: glyph width %d", imageutil.ErrInvalidDimensions, glyphWidth)
	}
	gw := glyphWidth
	gh := GridHeight(img.Width(), img.Height(), gw)

	cells := make([][]Cell, gh)
	plainRows := make([]string, gh)
	coloredRows := make([]string, gh)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for gy := 0; gy < gh; gy++ {
		g.Go(func() error {
			row := make([]Cell, gw)
			for gx := range row {
				row[gx] = sampleCell(img, edges, gx, gy, gw, gh)
			}
			cells[gy] = row
			plainRows[gy] = renderRow(row, PlainText{})
			if f != nil {
				coloredRows[gy] = renderRow(row, f)
			}
			return nil
		})
	}
	_ = g.Wait()

	art := &Art{
		Width:  gw,
		Height: gh,
		Plain:  strings.Join(plainRows, ""),
		Cells:  cells,
	}
	if f != nil {
		art.Colored = strings.Join(coloredRows, "")
		if doc, ok := f.(documentFormatter); ok {
			art.Colored = doc.Header() + art.Colored + doc.Footer()
		}
	} else {
		art.Colored = art.Plain
	}
	return art, nil
}

// renderRow formats one row of cells followed by a newline.
func renderRow(row []Cell, f CellFormatter) string {
	var b strings.Builder
	for _, cell := range row {
		if cell.Blank {
			f.FormatBlank(&b)
			continue
		}
		f.FormatCell(&b, cell.Glyph, cell.Color)
	}
	b.WriteByte('\n')
	return b.String()
}
