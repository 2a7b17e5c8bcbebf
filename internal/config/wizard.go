package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/css-player/internal/player"
)

// styleChoices are the highlight themes offered by the wizard. Any chroma
// style name is accepted in the config file.
var styleChoices = []string{"github", "monokai", "dracula", "solarized-dark", "solarized-light", "nord"}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it. examples lists the example names to choose from.
func RunWizard(path string, examples []string) (*Config, error) {
	fmt.Println("Welcome to css-player! Let's set up your studio.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Typing speed.
	speedPrompt := promptui.Prompt{
		Label:    "Delay between typed characters (ms)",
		Default:  strconv.Itoa(cfg.Player.SpeedMs),
		Validate: validateSpeed,
	}
	speedStr, err := speedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("speed: %w", err)
	}
	cfg.Player.SpeedMs, _ = strconv.Atoi(strings.TrimSpace(speedStr))

	// 2. Preview background.
	bgPrompt := promptui.Prompt{
		Label:    "Preview background colour",
		Default:  cfg.Player.Background,
		Validate: validateColor,
	}
	bg, err := bgPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	c, _ := colorful.Hex(strings.TrimSpace(bg))
	cfg.Player.Background = c.Hex()

	// 3. Starting example.
	if len(examples) > 0 {
		examplePrompt := promptui.Select{
			Label: "Example loaded when the studio opens",
			Items: examples,
		}
		_, cfg.Player.Example, err = examplePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("example selection: %w", err)
		}
	}

	// 4. Highlight theme.
	stylePrompt := promptui.Select{
		Label: "Syntax highlighting theme",
		Items: styleChoices,
	}
	_, cfg.Highlight.Style, err = stylePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("style selection: %w", err)
	}

	// 5. Port.
	portPrompt := promptui.Prompt{
		Label:    "Studio port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateSpeed(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter a non-negative whole number")
	}
	if _, err := player.ParseSpeed(s); err != nil {
		return fmt.Errorf("enter a whole number between 0 and %d", player.MaxSpeedMs)
	}
	return nil
}

func validateColor(s string) error {
	if _, err := colorful.Hex(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a colour like #161616")
	}
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}
