package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/input"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/Carmen-Shannon/oxy-card/engine/resize"
)

// Snapshot output formats.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// Backend names accepted in the config file and on the command line.
const (
	BackendWGPU     = "wgpu"
	BackendSoftware = "software"
)

// Config holds the viewer and snapshot settings.
type Config struct {
	// Viewport
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	FrameRate int    `json:"frame_rate"`
	Backend   string `json:"backend"`

	// Input and resize
	TiltFactor        float64 `json:"tilt_factor"`
	InvertPitch       bool    `json:"invert_pitch"`
	PointerThrottleMS int     `json:"pointer_throttle_ms"`
	ResizeThrottleMS  int     `json:"resize_throttle_ms"`

	// Scene
	AssetDir       string `json:"asset_dir"`
	CardTexture    string `json:"card_texture"`
	OverlayTexture string `json:"overlay_texture"`
	AuroraCount    int    `json:"aurora_count"`
	ParticleCount  int    `json:"particle_count"`
	Seed           uint64 `json:"seed"`

	// Snapshot
	Output      string `json:"output"`
	Format      string `json:"format"`
	Supersample int    `json:"supersample"`
	SnapshotMS  int    `json:"snapshot_ms"`

	Profile bool `json:"profile"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width    int
	Height   int
	Backend  string
	AssetDir string
	Output   string
	Seed     uint64
	Profile  bool
}

// Load reads a JSON config file. Fields not set in the file keep their zero values;
// relative asset and output paths are resolved against the file's directory.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the parsed settings
//   - error: a wrapped read or parse error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.AssetDir != "" && !filepath.IsAbs(cfg.AssetDir) {
		cfg.AssetDir = filepath.Join(dir, cfg.AssetDir)
	}
	if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(dir, cfg.Output)
	}
	return cfg, nil
}

// Default returns a Config with every field resolved.
func Default() Config {
	var c Config
	c.Resolve(Flags{})
	return c
}

// Resolve fills in empty fields with defaults. CLI flags take priority when non-zero.
//
// Parameters:
//   - flags: command line overrides
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Backend != "" {
		c.Backend = flags.Backend
	}
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Profile {
		c.Profile = true
	}

	if c.Width <= 0 {
		c.Width = int(resize.ReferenceWidth)
	}
	if c.Height <= 0 {
		c.Height = int(resize.ReferenceHeight)
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
	c.Backend = strings.ToLower(c.Backend)
	if c.Backend == "" {
		c.Backend = BackendWGPU
	}

	if c.TiltFactor <= 0 {
		c.TiltFactor = input.DefaultTiltFactor
	}
	if c.PointerThrottleMS <= 0 {
		c.PointerThrottleMS = int(input.DefaultThrottleWindow / time.Millisecond)
	}
	if c.ResizeThrottleMS < 0 {
		c.ResizeThrottleMS = 0
	}

	if c.CardTexture == "" {
		c.CardTexture = card.DefaultCardTexture
	}
	if c.OverlayTexture == "" {
		c.OverlayTexture = card.DefaultOverlayTexture
	}
	if c.AuroraCount <= 0 {
		c.AuroraCount = card.DefaultAuroraCount
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = card.DefaultParticleCount
	}

	if c.Output == "" {
		c.Output = "card.webp"
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		if strings.EqualFold(filepath.Ext(c.Output), ".png") {
			c.Format = FormatPNG
		} else {
			c.Format = FormatWebP
		}
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.SnapshotMS <= 0 {
		c.SnapshotMS = 1000
	}
}

// Validate reports settings Resolve cannot repair.
//
// Returns:
//   - error: the first invalid setting, or nil
func (c Config) Validate() error {
	if c.Backend != BackendWGPU && c.Backend != BackendSoftware {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Format != FormatWebP && c.Format != FormatPNG {
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	if float64(c.Supersample) > resize.MaxPixelRatio {
		return fmt.Errorf("config: supersample %d exceeds the pixel ratio cap %v", c.Supersample, resize.MaxPixelRatio)
	}
	return nil
}

// BackendType maps the backend name to the renderer's type.
func (c Config) BackendType() renderer.RendererBackendType {
	if c.Backend == BackendSoftware {
		return renderer.BackendTypeSoftware
	}
	return renderer.BackendTypeWGPU
}

// PointerThrottle returns the pointer sampling window.
func (c Config) PointerThrottle() time.Duration {
	return time.Duration(c.PointerThrottleMS) * time.Millisecond
}

// ResizeThrottle returns the resize sampling window. Zero applies every resize.
func (c Config) ResizeThrottle() time.Duration {
	return time.Duration(c.ResizeThrottleMS) * time.Millisecond
}

// SnapshotTime returns the animation timestamp a snapshot is taken at.
func (c Config) SnapshotTime() time.Duration {
	return time.Duration(c.SnapshotMS) * time.Millisecond
}

// SceneOptions returns the scene builder options these settings select.
//
// Returns:
//   - []card.SceneBuilderOption: texture names, population counts and seed
func (c Config) SceneOptions() []card.SceneBuilderOption {
	opts := []card.SceneBuilderOption{
		card.WithCardTexture(c.CardTexture),
		card.WithOverlayTexture(c.OverlayTexture),
		card.WithAuroraCount(c.AuroraCount),
		card.WithParticleCount(c.ParticleCount),
	}
	if c.Seed != 0 {
		opts = append(opts, card.WithSeed(c.Seed))
	}
	return opts
}

// InputOptions returns the pointer controller options these settings select.
func (c Config) InputOptions() []input.ControllerBuilderOption {
	return []input.ControllerBuilderOption{
		input.WithTiltFactor(c.TiltFactor),
		input.WithInvertPitch(c.InvertPitch),
		input.WithThrottleWindow(c.PointerThrottle()),
	}
}
