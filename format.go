package img2ascii

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// CellFormatter writes one glyph cell of a rendering. Implementations must
// not write newlines; row breaks are added by the caller.
type CellFormatter interface {
	// FormatCell writes glyph in color c.
	FormatCell(b *strings.Builder, glyph rune, c RGB)
	// FormatBlank writes a cell that has no source pixel.
	FormatBlank(b *strings.Builder)
}

// documentFormatter is implemented by formatters whose output needs an
// enclosing header and footer.
type documentFormatter interface {
	Header() string
	Footer() string
}

// PlainText writes bare glyphs.
type PlainText struct{}

func (PlainText) FormatCell(b *strings.Builder, glyph rune, _ RGB) {
	b.WriteRune(glyph)
}

func (PlainText) FormatBlank(b *strings.Builder) {
	b.WriteByte(' ')
}

// TrueColor wraps each glyph in a 24-bit foreground escape:
// ESC[38;2;R;G;Bm glyph ESC[0m.
type TrueColor struct{}

func (TrueColor) FormatCell(b *strings.Builder, glyph rune, c RGB) {
	b.WriteString(ESC + "[38;2;")
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.B)))
	b.WriteByte('m')
	b.WriteRune(glyph)
	b.WriteString(Reset)
}

func (TrueColor) FormatBlank(b *strings.Builder) {
	b.WriteByte(' ')
}

// ANSI256 maps each color to the nearest entry of the xterm 256-color
// palette (6x6x6 cube or 24-step gray ramp) and writes ESC[38;5;Nm.
type ANSI256 struct{}

func (ANSI256) FormatCell(b *strings.Builder, glyph rune, c RGB) {
	b.WriteString(ESC + "[38;5;")
	b.WriteString(strconv.Itoa(xtermIndex(c)))
	b.WriteByte('m')
	b.WriteRune(glyph)
	b.WriteString(Reset)
}

func (ANSI256) FormatBlank(b *strings.Builder) {
	b.WriteByte(' ')
}

// cubeLevels are the channel intensities of the xterm color cube: 0, then
// 95 and steps of 40.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func cubeStep(v uint8) int {
	if v < 48 {
		return 0
	}
	if v < 115 {
		return 1
	}
	return int(v-35) / 40
}

// xtermIndex returns the palette index closest to c, comparing the best
// cube color against the best gray ramp entry.
func xtermIndex(c RGB) int {
	ri, gi, bi := cubeStep(c.R), cubeStep(c.G), cubeStep(c.B)
	cube := RGB{cubeLevels[ri], cubeLevels[gi], cubeLevels[bi]}
	cubeIdx := 16 + 36*ri + 6*gi + bi

	// Gray ramp 232..255 covers 8, 18, ..., 238
	avg := (int(c.R) + int(c.G) + int(c.B)) / 3
	grayStep := 0
	if avg > 8 {
		grayStep = min((avg-3)/10, 23)
	}
	gv := uint8(8 + 10*grayStep)
	gray := RGB{gv, gv, gv}

	if c.colorDistance(gray) < c.colorDistance(cube) {
		return 232 + grayStep
	}
	return cubeIdx
}

// HTML writes each glyph as a colored span. The document header opens a
// <pre> block so rows keep their newlines.
type HTML struct {
	// Background is the page background; zero means black.
	Background RGB
}

func (HTML) FormatCell(b *strings.Builder, glyph rune, c RGB) {
	b.WriteString(`<span style="color:`)
	b.WriteString(c.Hex())
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(string(glyph)))
	b.WriteString("</span>")
}

func (HTML) FormatBlank(b *strings.Builder) {
	b.WriteByte(' ')
}

func (h HTML) Header() string {
	return fmt.Sprintf(`<pre style="background:%s;font-family:monospace;line-height:1">`+"\n",
		h.Background.Hex())
}

func (HTML) Footer() string {
	return "</pre>\n"
}

// FormatterByName returns the formatter registered under name: "plain",
// "truecolor", "256" or "html".
func FormatterByName(name string) (CellFormatter, error) {
	switch strings.ToLower(name) {
	case "plain", "none":
		return PlainText{}, nil
	case "truecolor", "24bit", "":
		return TrueColor{}, nil
	case "256", "ansi256", "8bit":
		return ANSI256{}, nil
	case "html":
		return HTML{}, nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
