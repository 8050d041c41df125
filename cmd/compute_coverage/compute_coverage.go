package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/wbrown/img2ascii"
)

type glyphInk struct {
	glyph    rune
	coverage float64
}

func main() {
	fontPath := flag.String("font", "", "Path to a TTF font (default: Go Mono)")
	size := flag.Float64("size", 16, "Font size in points")
	glyphs := flag.String("glyphs", string(img2ascii.Ramp), "Glyphs to measure, darkest first")
	suggest := flag.Bool("suggest", false, "Print the glyphs reordered by coverage")
	flag.Parse()

	runes := []rune(*glyphs)
	if len(runes) == 0 {
		fmt.Println("Please provide glyphs using the -glyphs flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	coverage, err := img2ascii.GlyphCoverage(*fontPath, *size, runes)
	if err != nil {
		log.Fatalf("Failed to measure glyphs: %v", err)
	}

	inversions := 0
	measured := make([]glyphInk, len(runes))
	for i, r := range runes {
		measured[i] = glyphInk{glyph: r, coverage: coverage[i]}
		marker := ""
		if i > 0 && coverage[i] < coverage[i-1] {
			marker = "  <- less ink than previous"
			inversions++
		}
		fmt.Printf("%2d  %q  %6.2f%%%s\n", i, r, coverage[i]*100, marker)
	}
	log.Printf("Measured %d glyphs, %d out of order", len(runes), inversions)

	if *suggest {
		sort.SliceStable(measured, func(i, j int) bool {
			return measured[i].coverage < measured[j].coverage
		})
		suggested := make([]rune, len(measured))
		for i, m := range measured {
			suggested[i] = m.glyph
		}
		fmt.Printf("Suggested ramp: %q\n", string(suggested))
	}
}
