package img2ascii

import (
	"strings"
	"unicode/utf8"
)

// CompressANSI shortens a colored rendering by merging adjacent glyphs that
// share a foreground escape into one escape/reset pair. Spaces show no
// foreground, so they join whatever run is open or are written bare. The
// visible text is unchanged.
func CompressANSI(ansiImage string) string {
	var compressed strings.Builder
	compressed.Grow(len(ansiImage) / 2)

	lines := strings.SplitAfter(ansiImage, "\n")
	for _, line := range lines {
		var run strings.Builder
		var runCode, current string

		flush := func() {
			if run.Len() == 0 {
				return
			}
			compressed.WriteString(formatANSICode(runCode, run.String()))
			run.Reset()
		}

		for i := 0; i < len(line); {
			if strings.HasPrefix(line[i:], ESC+"[") {
				end := strings.IndexByte(line[i:], 'm')
				if end < 0 {
					// Truncated escape, keep as is
					flush()
					compressed.WriteString(line[i:])
					break
				}
				code := line[i+2 : i+end]
				if code == "0" {
					code = ""
				}
				current = code
				i += end + 1
				continue
			}

			r, size := utf8.DecodeRuneInString(line[i:])
			i += size
			code := current
			switch {
			case r == '\n':
				code = ""
			case r == ' ':
				code = runCode
			}
			if code != runCode {
				flush()
				runCode = code
			}
			run.WriteRune(r)
		}
		flush()
	}

	return compressed.String()
}

// formatANSICode wraps text in the SGR sequence code and a reset. An empty
// code writes text bare.
func formatANSICode(code, text string) string {
	if code == "" {
		return text
	}
	return ESC + "[" + code + "m" + text + Reset
}
