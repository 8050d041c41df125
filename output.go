package img2ascii

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Art is the result of a conversion: a glyph grid of Width x Height cells
// rendered as plain text and as colored text. Plain is what gets saved;
// Colored is for display only.
type Art struct {
	Width   int
	Height  int
	Plain   string
	Colored string
	Cells   [][]Cell
}

// String returns the plain rendering.
func (a *Art) String() string {
	return a.Plain
}

// WriteTo writes the plain rendering to w.
func (a *Art) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, a.Plain)
	return int64(n), err
}

// Save writes the plain rendering to path verbatim.
func (a *Art) Save(path string) error {
	if err := os.WriteFile(path, []byte(a.Plain), 0644); err != nil {
		return fmt.Errorf("failed to save art: %w", err)
	}
	return nil
}

// LoadArt reads a plain rendering saved by Save. Only Plain, Width and
// Height are restored; Cells carry no color.
func LoadArt(path string) (*Art, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load art: %w", err)
	}
	plain := string(data)

	art := &Art{Plain: plain, Colored: plain}
	for _, line := range strings.SplitAfter(plain, "\n") {
		if line == "" {
			continue
		}
		row := []rune(strings.TrimSuffix(line, "\n"))
		cells := make([]Cell, len(row))
		for i, r := range row {
			cells[i] = Cell{Glyph: r}
		}
		art.Cells = append(art.Cells, cells)
		art.Width = max(art.Width, len(row))
	}
	art.Height = len(art.Cells)
	return art, nil
}

// Reformat renders the cells again with f, without resampling.
func (a *Art) Reformat(f CellFormatter) string {
	var b strings.Builder
	doc, isDoc := f.(documentFormatter)
	if isDoc {
		b.WriteString(doc.Header())
	}
	for _, row := range a.Cells {
		b.WriteString(renderRow(row, f))
	}
	if isDoc {
		b.WriteString(doc.Footer())
	}
	return b.String()
}
