package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

// Config holds every setting the CLI can take from a config file or the
// environment. Flags given on the command line override both.
type Config struct {
	// Width of the glyph grid; 0 uses the terminal width.
	Width          int     `toml:"output_width" yaml:"output_width"`
	UseColor       bool    `toml:"use_color" yaml:"use_color"`
	EdgeDetection  bool    `toml:"use_edge_detection" yaml:"use_edge_detection"`
	EdgeGating     bool    `toml:"edge_gating" yaml:"edge_gating"`
	LuminanceEdges bool    `toml:"luminance_edges" yaml:"luminance_edges"`
	Bloom          bool    `toml:"bloom" yaml:"bloom"`
	BloomThreshold float64 `toml:"bloom_threshold" yaml:"bloom_threshold"`
	BloomIntensity float64 `toml:"bloom_intensity" yaml:"bloom_intensity"`
	Format         string  `toml:"format" yaml:"format"`
	Prescale       int     `toml:"prescale" yaml:"prescale"`
	MaxChars       int     `toml:"max_chars" yaml:"max_chars"`
	Compress       bool    `toml:"compress" yaml:"compress"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Width:          img2ascii.DefaultWidth,
		UseColor:       true,
		EdgeDetection:  true,
		Bloom:          true,
		BloomThreshold: imageutil.DefaultBloomThreshold,
		BloomIntensity: imageutil.DefaultBloomIntensity,
		Format:         "truecolor",
		MaxChars:       1048576,
	}
}

// LoadConfig reads path, or the first config file found on the search path
// when path is empty, and applies ASCIIFY_* environment overrides. A
// missing default file yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		for _, p := range configSearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	cfg := DefaultConfig()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config: %w", err)
		}
		defer f.Close()
		if err := decodeConfig(f, filepath.Ext(path), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeConfig decodes r into cfg; ext selects YAML (.yaml, .yml) or TOML.
func decodeConfig(r io.Reader, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return err
		}
		return nil
	default:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	ints := map[string]*int{
		"ASCIIFY_WIDTH":     &cfg.Width,
		"ASCIIFY_PRESCALE":  &cfg.Prescale,
		"ASCIIFY_MAX_CHARS": &cfg.MaxChars,
	}
	bools := map[string]*bool{
		"ASCIIFY_COLOR":       &cfg.UseColor,
		"ASCIIFY_EDGES":       &cfg.EdgeDetection,
		"ASCIIFY_EDGE_GATING": &cfg.EdgeGating,
		"ASCIIFY_BLOOM":       &cfg.Bloom,
		"ASCIIFY_COMPRESS":    &cfg.Compress,
	}
	floats := map[string]*float64{
		"ASCIIFY_BLOOM_THRESHOLD": &cfg.BloomThreshold,
		"ASCIIFY_BLOOM_INTENSITY": &cfg.BloomIntensity,
	}

	for name, dst := range ints {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = n
		}
	}
	for name, dst := range bools {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = b
		}
	}
	for name, dst := range floats {
		if v := os.Getenv(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = f
		}
	}
	if v := os.Getenv("ASCIIFY_FORMAT"); v != "" {
		cfg.Format = v
	}
	return nil
}

// options converts the config to converter options. width is the resolved
// grid width.
func (c *Config) options(width int) ([]img2ascii.Option, error) {
	formatter, err := img2ascii.FormatterByName(c.Format)
	if err != nil {
		return nil, err
	}
	opts := []img2ascii.Option{
		img2ascii.WithWidth(width),
		img2ascii.WithColor(c.UseColor),
		img2ascii.WithFormatter(formatter),
		img2ascii.WithEdgeDetection(c.EdgeDetection),
		img2ascii.WithEdgeGating(c.EdgeGating),
		img2ascii.WithLuminanceEdges(c.LuminanceEdges),
		img2ascii.WithPrescale(c.Prescale),
		img2ascii.WithMaxChars(c.MaxChars),
	}
	if c.Bloom {
		opts = append(opts, img2ascii.WithBloom(float32(c.BloomThreshold), float32(c.BloomIntensity)))
	} else {
		opts = append(opts, img2ascii.WithoutBloom())
	}
	return opts, nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}
	dir := filepath.Join(xdg, "asciify")
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}
