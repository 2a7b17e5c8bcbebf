package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var examplesShowCSS bool

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List the available examples, or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			ex, ok := lib.Get(args[0])
			if !ok {
				return fmt.Errorf("example %q not found; available: %v", args[0], lib.Names())
			}
			if examplesShowCSS {
				fmt.Print(ex.CSS)
				return nil
			}
			fmt.Printf("%s\n\n%s\n", ex.Title, ex.Description)
			fmt.Printf("--- index.html ---\n%s\n--- style.css ---\n%s\n", ex.HTML, ex.CSS)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTITLE")
		for _, ex := range lib.List() {
			fmt.Fprintf(w, "%s\t%s\n", ex.Name, ex.Title)
		}
		return w.Flush()
	},
}

func init() {
	examplesCmd.Flags().BoolVar(&examplesShowCSS, "css", false, "print only the example's CSS")
	rootCmd.AddCommand(examplesCmd)
}
