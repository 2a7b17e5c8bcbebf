package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/player"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: CSSPLAYER_PLAYER__SPEED_MS -> player.speed_ms.
const EnvPrefix = "CSSPLAYER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CSSPLAYER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Player.SpeedMs < 0 || c.Player.SpeedMs > player.MaxSpeedMs {
		return fmt.Errorf("player.speed_ms must be between 0 and %d", player.MaxSpeedMs)
	}

	if _, err := colorful.Hex(c.Player.Background); err != nil {
		return fmt.Errorf("invalid player.background %q: must be #rgb or #rrggbb", c.Player.Background)
	}

	if c.Highlight.Style != "" && !highlight.KnownStyle(c.Highlight.Style) {
		return fmt.Errorf("invalid highlight.style %q", c.Highlight.Style)
	}

	if c.ExamplesDir != "" {
		info, err := os.Stat(c.ExamplesDir)
		if err != nil {
			return fmt.Errorf("examples_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("examples_dir %s is not a directory", c.ExamplesDir)
		}
	}

	return nil
}
