package img2ascii

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/wbrown/img2ascii/imageutil"
)

func TestCompressANSIMergesRuns(t *testing.T) {
	red := ESC + "[38;2;255;0;0m"
	blue := ESC + "[38;2;0;0;255m"
	in := red + "a" + Reset + red + "b" + Reset + " " + red + "c" + Reset + blue + "d" + Reset + "\n" +
		" " + blue + "e" + Reset + "\n"

	want := red + "ab c" + Reset + blue + "d" + Reset + "\n" +
		" " + blue + "e" + Reset + "\n"

	if diff := cmp.Diff(want, CompressANSI(in)); diff != "" {
		t.Errorf("CompressANSI mismatch (-want +got):\n%s", diff)
	}
}

func TestCompressANSIKeepsVisibleText(t *testing.T) {
	img := imageutil.CreateEdgeImage(96, 64)
	for _, f := range []CellFormatter{TrueColor{}, ANSI256{}} {
		art, err := NewConverter(WithWidth(48), WithFormatter(f)).Convert(img)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}

		compressed := CompressANSI(art.Colored)
		if diff := cmp.Diff(ansi.Strip(art.Colored), ansi.Strip(compressed)); diff != "" {
			t.Errorf("%T: visible text changed (-original +compressed):\n%s", f, diff)
		}
		if len(compressed) > len(art.Colored) {
			t.Errorf("%T: compressed output grew from %d to %d bytes", f, len(art.Colored), len(compressed))
		}
		for i, line := range strings.Split(strings.TrimSuffix(compressed, "\n"), "\n") {
			if w := utf8.RuneCountInString(ansi.Strip(line)); w != art.Width {
				t.Errorf("%T: line %d has width %d, expected %d", f, i, w, art.Width)
			}
		}
	}
}

func TestCompressANSIPlainInput(t *testing.T) {
	in := "abc\n def\n"
	if got := CompressANSI(in); got != in {
		t.Errorf("Expected plain input unchanged, got %q", got)
	}
}
