package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/docstruct/docstruct/config"
	"github.com/docstruct/docstruct/internal/logging"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// set by PersistentPreRunE
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docstruct",
	Short: "Reconstruct the logical structure of PDF documents",
	Long: `docstruct extracts the elements of a PDF, classifies them, assembles a
per-page hierarchy with stable IDs and derives sections, headings and
continued tables across the whole document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			color.NoColor = true
		}
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		log = logging.New(logging.Config{
			Level:   level,
			Format:  cfg.Log.Format,
			Output:  os.Stderr,
			Service: "docstruct",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
	}
	return err
}
