package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/wbrown/img2ascii"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("asciify", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inputFile := fs.String("input", "",
		"Path to the input image file (or first argument)")
	outputFile := fs.String("output", "",
		"Path to save the plain text art (default: <input>_ascii.txt)")
	configFile := fs.String("config", "",
		"Path to a TOML or YAML config file "+
			"(default: $XDG_CONFIG_HOME/asciify/config.{toml,yaml})")
	width := fs.Int("width", img2ascii.DefaultWidth,
		"Width of the output in characters, 0 for terminal width")
	useColor := fs.Bool("color", true,
		"Produce the colored rendering")
	format := fs.String("format", "truecolor",
		"Colored output format: truecolor, 256, html or plain")
	edges := fs.Bool("edges", true,
		"Draw strong edges with directional glyphs")
	edgeGating := fs.Bool("edge-gating", false,
		"Only draw edges where the Difference-of-Gaussians mask is set")
	lumaEdges := fs.Bool("luma-edges", false,
		"Detect edges on luminance instead of the red channel")
	bloom := fs.Bool("bloom", true,
		"Add a glow around bright regions")
	bloomThreshold := fs.Float64("bloom-threshold", 0.7,
		"Intensity above which pixels glow")
	bloomIntensity := fs.Float64("bloom-intensity", 0.3,
		"Strength of the glow")
	prescale := fs.Int("prescale", 0,
		"Downsample the source to width*N columns first, 0 to disable")
	maxChars := fs.Int("maxchars", 1048576,
		"Maximum number of characters in the output")
	compress := fs.Bool("compress", false,
		"Merge runs of equal color in printed ANSI output")
	printArt := fs.Bool("print", false,
		"Print the art to stdout")
	pngFile := fs.String("png", "",
		"Also render a PNG preview to this path")
	htmlFile := fs.String("html", "",
		"Also write an HTML rendering to this path")
	fontPath := fs.String("font", "",
		"TTF font for the PNG preview (default: Go Mono)")
	fontSize := fs.Float64("fontsize", 12,
		"Font size in points for the PNG preview")
	stats := fs.Bool("stats", false,
		"Print output statistics")
	debugDir := fs.String("debug-dir", "",
		"Write a PNG of every pipeline stage into this directory")
	verbose := fs.Bool("verbose", false,
		"Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	img2ascii.SetLogger(logger)
	defer img2ascii.SetLogger(nil)

	fail := func(msg string, err error) int {
		logger.Error(msg, slog.Any("err", err))
		fmt.Fprintf(stderr, "Error: %s: %v\n", msg, err)
		return 1
	}

	// Positional form: asciify <image> [width]
	if *inputFile == "" && fs.NArg() > 0 {
		*inputFile = fs.Arg(0)
	}
	widthFromArgs := false
	if fs.NArg() > 1 {
		n, err := strconv.Atoi(fs.Arg(1))
		if err != nil || n <= 0 {
			fmt.Fprintln(stderr, "Error: Invalid output width")
			return 1
		}
		*width = n
		widthFromArgs = true
	}

	if *inputFile == "" {
		fmt.Fprintln(stderr, "Please provide the image using the -input flag")
		fs.PrintDefaults()
		return 1
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return fail("loading config", err)
	}

	// Flags given on the command line take precedence over config and env
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "color":
			cfg.UseColor = *useColor
		case "format":
			cfg.Format = *format
		case "edges":
			cfg.EdgeDetection = *edges
		case "edge-gating":
			cfg.EdgeGating = *edgeGating
		case "luma-edges":
			cfg.LuminanceEdges = *lumaEdges
		case "bloom":
			cfg.Bloom = *bloom
		case "bloom-threshold":
			cfg.BloomThreshold = *bloomThreshold
		case "bloom-intensity":
			cfg.BloomIntensity = *bloomIntensity
		case "prescale":
			cfg.Prescale = *prescale
		case "maxchars":
			cfg.MaxChars = *maxChars
		case "compress":
			cfg.Compress = *compress
		}
	})
	if widthFromArgs {
		cfg.Width = *width
	}

	out, _ := stdout.(*os.File)
	gridWidth := cfg.Width
	if gridWidth == 0 {
		gridWidth = img2ascii.DefaultWidth
		if out != nil {
			gridWidth = terminalWidth(out, img2ascii.DefaultWidth)
		}
	}
	if gridWidth < 0 {
		fmt.Fprintln(stderr, "Error: Invalid output width")
		return 1
	}

	opts, err := cfg.options(gridWidth)
	if err != nil {
		return fail("configuring converter", err)
	}
	if *debugDir != "" {
		opts = append(opts, img2ascii.WithDebugDir(*debugDir))
	}

	start := time.Now()
	art, err := img2ascii.NewConverter(opts...).ConvertFile(*inputFile)
	if err != nil {
		return fail("converting "+*inputFile, err)
	}
	elapsed := time.Since(start)

	if *outputFile == "" {
		*outputFile = *inputFile + "_ascii.txt"
	}
	if err := art.Save(*outputFile); err != nil {
		return fail("saving art", err)
	}
	fmt.Fprintf(stdout, "ASCII art saved to %s\n", *outputFile)

	if *pngFile != "" {
		if err := art.SavePNG(*pngFile, img2ascii.PNGOptions{FontPath: *fontPath, FontSize: *fontSize}); err != nil {
			return fail("writing PNG", err)
		}
		fmt.Fprintf(stdout, "PNG preview written to %s\n", *pngFile)
	}

	if *htmlFile != "" {
		if err := os.WriteFile(*htmlFile, []byte(art.Reformat(img2ascii.HTML{})), 0644); err != nil {
			return fail("writing HTML", err)
		}
		fmt.Fprintf(stdout, "HTML written to %s\n", *htmlFile)
	}

	printed := art.Colored
	if cfg.Compress {
		printed = img2ascii.CompressANSI(printed)
	}
	if *printArt {
		// Escape codes only go to terminals unless color was asked for explicitly
		colorSet := false
		fs.Visit(func(f *flag.Flag) { colorSet = colorSet || f.Name == "color" })
		if out != nil && !isTerminal(out) && !colorSet {
			printed = art.Plain
		}
		fmt.Fprint(stdout, printed)
	}

	if *stats {
		firstLine, _, _ := strings.Cut(art.Colored, "\n")
		fmt.Fprintf(stdout, "Grid: %dx%d\n", art.Width, art.Height)
		fmt.Fprintf(stdout, "Visible line width: %d\n", ansi.StringWidth(firstLine))
		fmt.Fprintf(stdout, "Plain string length: %d\n", len(art.Plain))
		fmt.Fprintf(stdout, "Colored string length: %d\n", len(art.Colored))
		fmt.Fprintf(stdout, "Compressed string length: %d\n", len(img2ascii.CompressANSI(art.Colored)))
		fmt.Fprintf(stdout, "Computation time: %v\n", elapsed)
	}

	return 0
}
