package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/css-player/internal/config"
	"github.com/ziadkadry99/css-player/internal/examples"
	"github.com/ziadkadry99/css-player/internal/highlight"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize css-player configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the player and generates a .cssplayer.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := examples.Builtin(highlight.DefaultStyle)
		if err != nil {
			return err
		}
		cfg, err := config.RunWizard(cfgFile, lib.Names())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run `css-player serve` and open http://localhost:%d/\n", cfg.Server.Port)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
