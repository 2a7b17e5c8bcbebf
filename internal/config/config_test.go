package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/css-player/internal/player"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Player.SpeedMs != 25 {
		t.Errorf("expected default speed_ms 25, got %d", cfg.Player.SpeedMs)
	}
	if cfg.Player.Background != "#161616" {
		t.Errorf("expected default background %q, got %q", "#161616", cfg.Player.Background)
	}
	if cfg.Player.Example != "bounce" {
		t.Errorf("expected default example %q, got %q", "bounce", cfg.Player.Example)
	}
	if cfg.Highlight.Style != "github" {
		t.Errorf("expected default style %q, got %q", "github", cfg.Highlight.Style)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cssplayer.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Player.SpeedMs = 60
	original.Player.Background = "#ffffff"
	original.Player.SanitizeHTML = true
	original.Highlight.Style = "monokai"
	original.ExamplesDir = dir

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Player.SpeedMs != original.Player.SpeedMs {
		t.Errorf("speed_ms: got %d, want %d", loaded.Player.SpeedMs, original.Player.SpeedMs)
	}
	if loaded.Player.Background != original.Player.Background {
		t.Errorf("background: got %q, want %q", loaded.Player.Background, original.Player.Background)
	}
	if !loaded.Player.SanitizeHTML {
		t.Error("sanitize_html: got false, want true")
	}
	if loaded.Highlight.Style != original.Highlight.Style {
		t.Errorf("style: got %q, want %q", loaded.Highlight.Style, original.Highlight.Style)
	}
	if loaded.ExamplesDir != original.ExamplesDir {
		t.Errorf("examples_dir: got %q, want %q", loaded.ExamplesDir, original.ExamplesDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Player.SpeedMs != 25 {
		t.Errorf("expected default speed, got %d", cfg.Player.SpeedMs)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("player:\n  speed_ms: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Player.SpeedMs != 5 {
		t.Errorf("speed_ms: got %d, want 5", cfg.Player.SpeedMs)
	}
	if cfg.Player.Background != "#161616" || cfg.Server.Port != 8080 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CSSPLAYER_PLAYER__SPEED_MS", "40")
	t.Setenv("CSSPLAYER_SERVER__PORT", "3000")
	t.Setenv("CSSPLAYER_EXAMPLES_DIR", dir)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Player.SpeedMs != 40 {
		t.Errorf("env override failed: speed_ms = %d, want 40", loaded.Player.SpeedMs)
	}
	if loaded.Server.Port != 3000 {
		t.Errorf("env override failed: port = %d, want 3000", loaded.Server.Port)
	}
	if loaded.ExamplesDir != dir {
		t.Errorf("env override failed: examples_dir = %q", loaded.ExamplesDir)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative port", func(c *Config) { c.Server.Port = -1 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative speed", func(c *Config) { c.Player.SpeedMs = -5 }},
		{"speed too large", func(c *Config) { c.Player.SpeedMs = player.MaxSpeedMs + 1 }},
		{"named colour", func(c *Config) { c.Player.Background = "red" }},
		{"unknown style", func(c *Config) { c.Highlight.Style = "no-such-style" }},
		{"missing examples dir", func(c *Config) { c.ExamplesDir = filepath.Join(os.TempDir(), "does-not-exist-cssplayer") }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateExamplesDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.ExamplesDir = path
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for a file examples_dir")
	}
}

func TestWizardValidators(t *testing.T) {
	if validateSpeed("25") != nil || validateSpeed("0") != nil {
		t.Error("valid speeds rejected")
	}
	if validateSpeed("-1") == nil || validateSpeed("fast") == nil || validateSpeed("9999999999999") == nil || validateSpeed("") == nil {
		t.Error("invalid speeds accepted")
	}
	if validateColor("#abc") != nil || validateColor("blue") == nil {
		t.Error("colour validation wrong")
	}
	if validatePort("8080") != nil || validatePort("0") == nil || validatePort("65536") == nil {
		t.Error("port validation wrong")
	}
}
