package config

// DefaultPath is where the config file is looked up unless --config is given.
const DefaultPath = ".cssplayer.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: true,
		},
		Player: PlayerConfig{
			SpeedMs:    25,
			Background: "#161616",
			Example:    "bounce",
		},
		Highlight: HighlightConfig{
			Style: "github",
		},
	}
}
