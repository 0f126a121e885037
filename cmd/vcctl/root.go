package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openretro/vckit/pkg/vc"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	strict  bool
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "vcctl",
	Short: "Inspect and edit virtual console title containers and databases",
	Long: `vcctl is a tool for inspecting and editing SFROM title containers and
virtual console title databases. It parses the reverse-engineered container
layouts, lets you edit the known metadata fields, and re-serializes with the
trailing checksum recomputed. Unknown regions are always preserved verbatim.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyConfig(cmd, loadConfig())
		log.SetOutput(os.Stderr)
		switch {
		case quiet:
			log.SetLevel(logrus.ErrorLevel)
		case verbose:
			log.SetLevel(logrus.DebugLevel)
		default:
			log.SetLevel(logrus.InfoLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		BoolVar(&strict, "strict", false, "Treat a checksum mismatch as a parse error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseOpts() *vc.ParseOptions {
	return &vc.ParseOptions{Strict: strict}
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
