package config

// Config is the top-level css-player configuration, corresponding to
// .cssplayer.yml.
type Config struct {
	Server      ServerConfig    `yaml:"server" koanf:"server"`
	Player      PlayerConfig    `yaml:"player" koanf:"player"`
	Highlight   HighlightConfig `yaml:"highlight" koanf:"highlight"`
	ExamplesDir string          `yaml:"examples_dir" koanf:"examples_dir"`
}

// ServerConfig holds settings for the studio web server.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// PlayerConfig holds the defaults each new playback session starts with.
type PlayerConfig struct {
	SpeedMs      int    `yaml:"speed_ms" koanf:"speed_ms"`
	Background   string `yaml:"background" koanf:"background"`
	Example      string `yaml:"example" koanf:"example"`
	SanitizeHTML bool   `yaml:"sanitize_html" koanf:"sanitize_html"`
}

// HighlightConfig selects the syntax highlighting theme.
type HighlightConfig struct {
	Style string `yaml:"style" koanf:"style"`
}
