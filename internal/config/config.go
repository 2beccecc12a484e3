// Package config holds the settings for the preview tools: output format
// and size, frame rate, and encoder worker count. Layering order, lowest
// to highest: YAML file, SKELPOSE_* environment variables, CLI flags,
// then a defaults pass for anything still unset.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configurable render settings for the preview tools.
type Config struct {
	OutputDir   string `koanf:"output_dir"`
	Format      string `koanf:"format"` // "webp" or "tga"
	RenderSize  int    `koanf:"render_size"`
	Supersample int    `koanf:"supersample"`
	FPS         int    `koanf:"fps"`
	Workers     int    `koanf:"workers"`
	Camera      string `koanf:"camera"` // "front", "iso" or "side"
}

// Flags holds CLI flag values that override file and env settings.
type Flags struct {
	OutputDir string
	Format    string
	Size      int
	FPS       int
	Workers   int
	Camera    string
}

var ErrBadFormat = errors.New("config: format must be webp or tga")

// Load layers an optional YAML file and SKELPOSE_* env vars into a Config.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	// SKELPOSE_RENDER_SIZE -> render_size, underscores preserved to match
	// the koanf tags above.
	envProvider := env.Provider("SKELPOSE_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "skelpose_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides and fills remaining zero fields with
// defaults. Returns ErrBadFormat for an unknown output format.
func (c *Config) Resolve(flags Flags) error {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Camera != "" {
		c.Camera = flags.Camera
	}

	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Camera == "" {
		c.Camera = "iso"
	}

	if c.Format != "webp" && c.Format != "tga" {
		return fmt.Errorf("%w: %q", ErrBadFormat, c.Format)
	}
	return nil
}
