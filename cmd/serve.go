package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/css-player/internal/highlight"
	"github.com/ziadkadry99/css-player/internal/server"
	"github.com/ziadkadry99/css-player/internal/studio"
)

var (
	servePort int
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the browser studio",
	Long: `Starts a local web server hosting the player. Each browser tab gets its
own playback session driven over a WebSocket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}
		if _, ok := lib.Get(cfg.Player.Example); cfg.Player.Example != "" && !ok {
			return fmt.Errorf("player.example %q not found; available: %v", cfg.Player.Example, lib.Names())
		}

		hl, err := highlight.NewHTML(cfg.Highlight.Style)
		if err != nil {
			return fmt.Errorf("creating highlighter: %w", err)
		}

		st := studio.New(lib, hl, studio.Options{
			SpeedMs:      cfg.Player.SpeedMs,
			Background:   cfg.Player.Background,
			Example:      cfg.Player.Example,
			SanitizeHTML: cfg.Player.SanitizeHTML,
		}, slog.Default())

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, slog.Default(), st)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		url := fmt.Sprintf("http://localhost:%d/", cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "css-player studio v%s starting on %s\n", Version, url)
		fmt.Fprintf(os.Stderr, "  Examples: %d\n", len(lib.Names()))
		fmt.Fprintf(os.Stderr, "  Highlight style: %s\n", cfg.Highlight.Style)

		if serveOpen {
			if err := openBrowser(url); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
			}
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the studio in the default browser")
	rootCmd.AddCommand(serveCmd)
}
