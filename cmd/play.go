package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/player"
	"github.com/ziadkadry99/css-player/internal/progress"
	"github.com/ziadkadry99/css-player/internal/terminal"
)

var (
	playExample    string
	playCSSFile    string
	playHTMLFile   string
	playSpeed      string
	playBackground string
	playOut        string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Type CSS into the terminal",
	Long: `Plays an example or your own files in the terminal, highlighting each
prefix as it is typed. Use --out to save the finished preview page.
Press Ctrl+C to stop early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cssSource, htmlSource := "", ""
		if playCSSFile == "" {
			lib, err := loadLibrary(cfg)
			if err != nil {
				return err
			}
			name := playExample
			if name == "" {
				name = cfg.Player.Example
			}
			ex, ok := lib.Get(name)
			if !ok {
				return fmt.Errorf("example %q not found; available: %v", name, lib.Names())
			}
			cssSource, htmlSource = ex.CSS, ex.HTML
		} else {
			if cssSource, err = readFile(playCSSFile); err != nil {
				return err
			}
			if playHTMLFile != "" {
				if htmlSource, err = readFile(playHTMLFile); err != nil {
					return err
				}
			}
		}

		speed := cfg.Player.SpeedMs
		if cmd.Flags().Changed("speed") {
			if speed, err = player.ParseSpeed(playSpeed); err != nil {
				return err
			}
		}
		background := cfg.Player.Background
		if playBackground != "" {
			if background, err = player.NormalizeColor(playBackground); err != nil {
				return err
			}
		}

		hl, err := highlight.NewTerminal(cfg.Highlight.Style)
		if err != nil {
			return fmt.Errorf("creating highlighter: %w", err)
		}

		live := progress.IsTerminal(os.Stdout)
		rows := 24
		if live {
			if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 2 {
				rows = h - 1
			}
		}
		var reporter progress.Reporter
		if !live {
			reporter = progress.NewReporter(os.Stderr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := terminal.Play(ctx, terminal.Playback{
			CSS:         cssSource,
			HTML:        htmlSource,
			SpeedMs:     speed,
			Background:  background,
			Sanitize:    cfg.Player.SanitizeHTML,
			Screen:      terminal.NewScreen(os.Stdout, rows, live),
			Highlighter: hl,
			Status:      terminal.NewStatusLine(os.Stderr, progress.IsTerminal(os.Stderr)),
			Reporter:    reporter,
		})
		if err != nil {
			return err
		}

		if live {
			fmt.Fprintln(os.Stdout)
		} else {
			fmt.Fprintln(os.Stdout, res.CSS)
		}
		if res.Interrupted {
			return nil
		}

		if playOut != "" {
			page, err := res.Document.Render()
			if err != nil {
				return fmt.Errorf("rendering preview: %w", err)
			}
			if err := os.WriteFile(playOut, []byte(page), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", playOut, err)
			}
			fmt.Fprintf(os.Stderr, "Preview written to %s\n", playOut)
		}
		return nil
	},
}

func readFile(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func init() {
	playCmd.Flags().StringVarP(&playExample, "example", "e", "", "example to play (default from player.example)")
	playCmd.Flags().StringVar(&playCSSFile, "css", "", "CSS file to play, or - for stdin")
	playCmd.Flags().StringVar(&playHTMLFile, "html", "", "HTML body for the preview")
	playCmd.Flags().StringVarP(&playSpeed, "speed", "s", "", "delay between characters in ms")
	playCmd.Flags().StringVar(&playBackground, "background", "", "preview background colour")
	playCmd.Flags().StringVarP(&playOut, "out", "o", "", "write the finished preview page to this file")
	rootCmd.AddCommand(playCmd)
}
