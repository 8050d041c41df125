package img2ascii

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// ErrInvalidConfig is returned by Convert when the Converter's settings
// cannot produce output. It always wraps imageutil.ErrInvalidDimensions.
var ErrInvalidConfig = errors.New("invalid converter config")

// Converter runs the glyph art pipeline. Its fields are set through
// options and must not be changed after NewConverter returns, which makes
// a Converter safe for concurrent use.
type Converter struct {
	// Output grid
	Width     int
	MaxChars  int
	Color     bool
	Formatter CellFormatter

	// Blur applied before every other stage
	BlurSize  int
	BlurSigma float64

	// Edge detection
	EdgeDetection  bool
	EdgeGating     bool
	LuminanceEdges bool
	DoGSigmaScale  float64
	DoGTau         float64
	DoGThreshold   float64

	// Bloom
	Bloom          bool
	BloomThreshold float32
	BloomIntensity float32

	// PrescaleFactor > 0 downsamples the source to Width*PrescaleFactor
	// columns before filtering.
	PrescaleFactor int

	// DebugDir, when set, receives a PNG of every stage buffer.
	DebugDir string
}

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// NewConverter creates a new Converter with the given options.
// Default values: Width=100, MaxChars=1048576, Color=true, EdgeDetection=true,
// Bloom=true with threshold 0.7 and intensity 0.3, blur 5/1.0, DoG
// 1.6/0.99/0.1, Formatter=TrueColor, no prescaling.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		Width:          DefaultWidth,
		MaxChars:       1048576,
		Color:          true,
		Formatter:      TrueColor{},
		BlurSize:       imageutil.DefaultKernelSize,
		BlurSigma:      imageutil.DefaultSigma,
		EdgeDetection:  true,
		DoGSigmaScale:  imageutil.DefaultDoGSigmaScale,
		DoGTau:         imageutil.DefaultDoGTau,
		DoGThreshold:   imageutil.DefaultDoGThreshold,
		Bloom:          true,
		BloomThreshold: imageutil.DefaultBloomThreshold,
		BloomIntensity: imageutil.DefaultBloomIntensity,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithWidth sets the glyph grid width in characters.
func WithWidth(width int) Option {
	return func(c *Converter) {
		c.Width = width
	}
}

// WithMaxChars caps the number of cells in the grid. Wider grids are
// narrowed until they fit. Zero disables the cap.
func WithMaxChars(max int) Option {
	return func(c *Converter) {
		c.MaxChars = max
	}
}

// WithColor enables or disables the colored rendering.
func WithColor(enabled bool) Option {
	return func(c *Converter) {
		c.Color = enabled
	}
}

// WithFormatter sets the formatter for the colored rendering.
func WithFormatter(f CellFormatter) Option {
	return func(c *Converter) {
		c.Formatter = f
	}
}

// WithEdgeDetection enables or disables directional edge glyphs.
func WithEdgeDetection(enabled bool) Option {
	return func(c *Converter) {
		c.EdgeDetection = enabled
	}
}

// WithEdgeGating keeps edge glyphs only where the Difference-of-Gaussians
// mask is set.
func WithEdgeGating(enabled bool) Option {
	return func(c *Converter) {
		c.EdgeGating = enabled
	}
}

// WithLuminanceEdges runs Sobel on BT.601 luminance instead of the first
// channel.
func WithLuminanceEdges(enabled bool) Option {
	return func(c *Converter) {
		c.LuminanceEdges = enabled
	}
}

// WithDoG sets the Difference-of-Gaussians parameters used for gating.
func WithDoG(sigmaScale, tau, threshold float64) Option {
	return func(c *Converter) {
		c.DoGSigmaScale = sigmaScale
		c.DoGTau = tau
		c.DoGThreshold = threshold
	}
}

// WithBloom enables bloom with the given threshold and intensity.
func WithBloom(threshold, intensity float32) Option {
	return func(c *Converter) {
		c.Bloom = true
		c.BloomThreshold = threshold
		c.BloomIntensity = intensity
	}
}

// WithoutBloom disables bloom.
func WithoutBloom() Option {
	return func(c *Converter) {
		c.Bloom = false
	}
}

// WithBlur sets the Gaussian kernel size and sigma of the initial blur.
func WithBlur(size int, sigma float64) Option {
	return func(c *Converter) {
		c.BlurSize = size
		c.BlurSigma = sigma
	}
}

// WithPrescale downsamples large sources to width*factor columns before
// filtering. Zero disables prescaling.
func WithPrescale(factor int) Option {
	return func(c *Converter) {
		c.PrescaleFactor = factor
	}
}

// WithDebugDir writes each stage buffer as a PNG into dir: blur, Sobel
// magnitude, quantized edges, the DoG mask when gating, and bloom.
func WithDebugDir(dir string) Option {
	return func(c *Converter) {
		c.DebugDir = dir
	}
}

// dump saves a stage buffer into DebugDir. It is a no-op without one.
func (c *Converter) dump(name string, b *imageutil.PixelBuffer) error {
	if c.DebugDir == "" {
		return nil
	}
	if err := os.MkdirAll(c.DebugDir, 0755); err != nil {
		return fmt.Errorf("debug dump: %w", err)
	}
	path := filepath.Join(c.DebugDir, name+".png")
	if err := imageutil.SaveBuffer(b, path); err != nil {
		return fmt.Errorf("debug dump: %w", err)
	}
	Logger().Debug("stage saved", slog.String("path", path))
	return nil
}

func (c *Converter) validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: %w: width %d", ErrInvalidConfig, imageutil.ErrInvalidDimensions, c.Width)
	case c.BlurSize <= 0:
		return fmt.Errorf("%w: %w: blur size %d", ErrInvalidConfig, imageutil.ErrInvalidDimensions, c.BlurSize)
	case !(c.BlurSigma > 0):
		return fmt.Errorf("%w: %w: blur sigma %v", ErrInvalidConfig, imageutil.ErrInvalidDimensions, c.BlurSigma)
	case c.MaxChars < 0:
		return fmt.Errorf("%w: %w: max chars %d", ErrInvalidConfig, imageutil.ErrInvalidDimensions, c.MaxChars)
	}
	return nil
}

// gridWidth narrows the configured width until the grid fits MaxChars.
func (c *Converter) gridWidth(w, h int) int {
	width := c.Width
	if c.MaxChars == 0 {
		return width
	}
	for width > 1 && width*GridHeight(w, h, width) > c.MaxChars {
		width--
	}
	return width
}

// Convert runs the pipeline on img: blur, edge detection, bloom, then glyph
// sampling. The first failing stage aborts the conversion.
func (c *Converter) Convert(img *imageutil.PixelBuffer) (*Art, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	log := Logger()
	begin := time.Now()

	src := img
	if c.PrescaleFactor > 0 {
		var err error
		start := time.Now()
		src, err = imageutil.Prescale(img, c.Width, c.PrescaleFactor)
		if err != nil {
			return nil, fmt.Errorf("prescale: %w", err)
		}
		log.Debug("prescale", slog.Int("width", src.Width()), slog.Int("height", src.Height()),
			slog.Duration("elapsed", time.Since(start)))
	}

	start := time.Now()
	blurred, err := imageutil.GaussianBlur(src, c.BlurSize, c.BlurSigma)
	if err != nil {
		return nil, fmt.Errorf("blur: %w", err)
	}
	log.Debug("blur", slog.Duration("elapsed", time.Since(start)))
	if err := c.dump("blur", blurred); err != nil {
		return nil, err
	}

	var edges *imageutil.PixelBuffer
	if c.EdgeDetection {
		start = time.Now()
		edges, err = c.detectEdges(blurred)
		if err != nil {
			return nil, fmt.Errorf("edge detection: %w", err)
		}
		log.Debug("edges", slog.Bool("gated", c.EdgeGating), slog.Duration("elapsed", time.Since(start)))
	}

	sampled := blurred
	if c.Bloom {
		start = time.Now()
		sampled, err = imageutil.Bloom(blurred, c.BloomThreshold, c.BloomIntensity)
		if err != nil {
			return nil, fmt.Errorf("bloom: %w", err)
		}
		log.Debug("bloom", slog.Duration("elapsed", time.Since(start)))
		if err := c.dump("bloom", sampled); err != nil {
			return nil, err
		}
	}

	var f CellFormatter
	if c.Color {
		f = c.Formatter
		if f == nil {
			f = TrueColor{}
		}
	}

	start = time.Now()
	art, err := Sample(sampled, edges, c.gridWidth(sampled.Width(), sampled.Height()), f)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	log.Debug("sample", slog.Int("columns", art.Width), slog.Int("rows", art.Height),
		slog.Duration("elapsed", time.Since(start)))

	log.Info("converted",
		slog.Int("src_width", img.Width()), slog.Int("src_height", img.Height()),
		slog.Int("columns", art.Width), slog.Int("rows", art.Height),
		slog.Duration("elapsed", time.Since(begin)))
	return art, nil
}

// detectEdges returns the quantized Sobel direction of blurred, gated by
// the Difference-of-Gaussians mask when EdgeGating is set.
func (c *Converter) detectEdges(blurred *imageutil.PixelBuffer) (*imageutil.PixelBuffer, error) {
	edgeSrc := blurred
	if c.LuminanceEdges {
		edgeSrc = imageutil.Luminance(blurred)
	}
	info := imageutil.Sobel(edgeSrc)
	quantized := imageutil.QuantizeDirection(info.Direction)
	if c.DebugDir != "" {
		magnitude := info.Magnitude.Normalized(info.Magnitude.Max())
		if err := c.dump("sobel_magnitude", magnitude); err != nil {
			return nil, err
		}
		if err := c.dump("edges", quantized); err != nil {
			return nil, err
		}
	}
	if !c.EdgeGating {
		return quantized, nil
	}

	mask, err := imageutil.DifferenceOfGaussians(blurred, c.BlurSize, c.BlurSigma,
		c.DoGSigmaScale, c.DoGTau, c.DoGThreshold)
	if err != nil {
		return nil, err
	}
	if err := c.dump("dog", mask); err != nil {
		return nil, err
	}
	return imageutil.GateEdges(quantized, mask), nil
}

// ConvertImage converts a decoded image.
func (c *Converter) ConvertImage(img image.Image) (*Art, error) {
	buf, err := imageutil.FromImage(img)
	if err != nil {
		return nil, err
	}
	return c.Convert(buf)
}

// ConvertFile loads and converts the image at path.
func (c *Converter) ConvertFile(path string) (*Art, error) {
	buf, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return c.Convert(buf)
}
