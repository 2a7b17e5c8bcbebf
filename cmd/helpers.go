package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/css-player/internal/config"
	"github.com/ziadkadry99/css-player/internal/examples"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `css-player init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadLibrary returns the built-in examples plus any found in the
// configured examples directory. Directory examples replace built-ins of the
// same name.
func loadLibrary(cfg *config.Config) (*examples.Library, error) {
	lib, err := examples.Builtin(cfg.Highlight.Style)
	if err != nil {
		return nil, fmt.Errorf("loading built-in examples: %w", err)
	}
	if cfg.ExamplesDir != "" {
		if err := lib.LoadDir(cfg.ExamplesDir); err != nil {
			return nil, fmt.Errorf("loading examples from %s: %w", cfg.ExamplesDir, err)
		}
		slog.Debug("loaded examples", "dir", cfg.ExamplesDir, "count", len(lib.Names()))
	}
	return lib, nil
}
