package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeGrayPNG writes a w x h image filled with gray level v.
func writeGrayPNG(t *testing.T, dir string, w, h int, v uint8) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	path := filepath.Join(dir, "gray.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunPositional(t *testing.T) {
	dir := t.TempDir()
	input := writeGrayPNG(t, dir, 4, 4, 128)

	code, stdout, stderr := runCLI(t, input, "4")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr)
	}

	output := input + "_ascii.txt"
	if !strings.Contains(stdout, "ASCII art saved to "+output) {
		t.Errorf("Expected save message, got %q", stdout)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Output not written: %v", err)
	}
	if string(data) != "oooo\noooo\n" {
		t.Errorf("Expected %q, got %q", "oooo\noooo\n", string(data))
	}
}

func TestRunFlagsAndExtras(t *testing.T) {
	dir := t.TempDir()
	input := writeGrayPNG(t, dir, 16, 8, 200)
	output := filepath.Join(dir, "out.txt")
	pngOut := filepath.Join(dir, "preview.png")
	htmlOut := filepath.Join(dir, "art.html")
	stages := filepath.Join(dir, "stages")

	code, stdout, stderr := runCLI(t,
		"-input", input,
		"-output", output,
		"-width", "8",
		"-format", "256",
		"-png", pngOut,
		"-html", htmlOut,
		"-print",
		"-stats",
		"-debug-dir", stages,
	)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr)
	}

	for _, path := range []string{output, pngOut, htmlOut, filepath.Join(stages, "blur.png")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
	if !strings.Contains(stdout, "Grid: 8x2") {
		t.Errorf("Expected grid stats, got %q", stdout)
	}
	// stdout is not a terminal and -color was not given, so printed art is plain
	if strings.Contains(stdout, "\x1b[38;5;") {
		t.Error("Expected plain printed art when stdout is not a terminal")
	}

	html, _ := os.ReadFile(htmlOut)
	if !strings.HasPrefix(string(html), "<pre") {
		t.Errorf("Expected HTML document, got %q", html)
	}
}

func TestRunPrintColorForced(t *testing.T) {
	dir := t.TempDir()
	input := writeGrayPNG(t, dir, 4, 4, 128)

	code, stdout, stderr := runCLI(t, "-input", input, "-width", "4", "-print", "-color=true", "-compress")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr)
	}
	want := "\x1b[38;2;128;128;128moooo\x1b[0m\n"
	if !strings.Contains(stdout, want+want) {
		t.Errorf("Expected compressed colored rows in %q", stdout)
	}
}

func TestRunConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	input := writeGrayPNG(t, dir, 8, 8, 128)
	config := filepath.Join(dir, "asciify.toml")
	if err := os.WriteFile(config, []byte("output_width = 2\nuse_color = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "-input", input, "-config", config)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr)
	}
	data, _ := os.ReadFile(input + "_ascii.txt")
	if string(data) != "oo\n" {
		t.Errorf("Expected config width 2, got %q", string(data))
	}

	code, _, stderr = runCLI(t, "-input", input, "-config", config, "-width", "6")
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d: %s", code, stderr)
	}
	data, _ = os.ReadFile(input + "_ascii.txt")
	if string(data) != "oooooo\noooooo\noooooo\n" {
		t.Errorf("Expected -width to override config, got %q", string(data))
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeGrayPNG(t, dir, 4, 4, 128)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", nil, "Please provide the image"},
		{"bad positional width", []string{input, "zero"}, "Invalid output width"},
		{"negative width", []string{"-input", input, "-width", "-5"}, "Invalid output width"},
		{"missing file", []string{filepath.Join(dir, "missing.png")}, "Error: converting"},
		{"bad format", []string{"-input", input, "-format", "sixel"}, "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("Expected exit 1, got %d", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("Expected stderr to contain %q, got %q", tt.want, stderr)
			}
		})
	}
}
