package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Width != 900 || c.Height != 600 {
		t.Errorf("size = %dx%d, want 900x600", c.Width, c.Height)
	}
	if c.Backend != BackendWGPU || c.BackendType() != renderer.BackendTypeWGPU {
		t.Errorf("Backend = %q", c.Backend)
	}
	if c.PointerThrottle() != 16*time.Millisecond {
		t.Errorf("PointerThrottle() = %v", c.PointerThrottle())
	}
	if c.ResizeThrottle() != 0 {
		t.Errorf("ResizeThrottle() = %v, want 0", c.ResizeThrottle())
	}
	if c.CardTexture != card.DefaultCardTexture || c.OverlayTexture != card.DefaultOverlayTexture {
		t.Errorf("textures = %q, %q", c.CardTexture, c.OverlayTexture)
	}
	if c.Format != FormatWebP || c.Supersample != 2 || c.SnapshotTime() != time.Second {
		t.Errorf("snapshot settings = %q x%d at %v", c.Format, c.Supersample, c.SnapshotTime())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.json")
	body := `{"width": 1200, "backend": "Software", "asset_dir": "assets", "output": "out/card.png", "seed": 42}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	c.Resolve(Flags{})

	if c.Width != 1200 || c.Height != 600 {
		t.Errorf("size = %dx%d, want 1200x600", c.Width, c.Height)
	}
	if c.BackendType() != renderer.BackendTypeSoftware {
		t.Errorf("Backend = %q, want software", c.Backend)
	}
	if c.AssetDir != filepath.Join(dir, "assets") {
		t.Errorf("AssetDir = %q", c.AssetDir)
	}
	if c.Format != FormatPNG {
		t.Errorf("Format = %q, want png from the output extension", c.Format)
	}
	if c.Seed != 42 {
		t.Errorf("Seed = %d", c.Seed)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	c := Config{Width: 1200, Backend: BackendSoftware, Seed: 1}
	c.Resolve(Flags{Width: 640, Height: 480, Backend: BackendWGPU, Seed: 9, Profile: true})
	if c.Width != 640 || c.Height != 480 || c.Backend != BackendWGPU || c.Seed != 9 || !c.Profile {
		t.Errorf("Resolve() = %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed JSON succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"backend", Config{Backend: "vulkan"}, false},
		{"format", Config{Format: "gif"}, false},
		{"supersample", Config{Supersample: 16}, false},
		{"valid", Config{Backend: BackendSoftware, Format: FormatPNG}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			c.Resolve(Flags{})
			if err := c.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSceneOptionsBuild(t *testing.T) {
	c := Config{AuroraCount: 2, ParticleCount: 3, Seed: 5}
	c.Resolve(Flags{})
	comp, err := card.NewSceneBuilder(c.SceneOptions()...).Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	defer comp.Dispose()
	if len(comp.Aurora) != 2 || len(comp.Particles) != 3 {
		t.Errorf("populations = %d aurora, %d particles", len(comp.Aurora), len(comp.Particles))
	}
	if len(c.InputOptions()) != 3 {
		t.Errorf("InputOptions() = %d options", len(c.InputOptions()))
	}
}
