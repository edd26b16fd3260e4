package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"limsrules/internal/core"
)

var (
	cfg    *core.Config
	logger core.Logger

	csvDelim string
)

// rootCmd is the base command; all tooling hangs off subcommands.
var rootCmd = &cobra.Command{
	Use:   "limsrules",
	Short: "Generate, convert and edit LIMS rating rule payloads",
	Long: `limsrules generates acceptance rules for laboratory specifications,
converts legacy CSV exports to import payloads, and applies bulk edits
to existing rules JSON files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = core.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = core.NewLogger(cfg.LogLevel)
		if !cmd.Flags().Changed("delim") {
			csvDelim = cfg.CSVDelimiter
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&csvDelim, "delim", ",", "CSV delimiter for inputs (e.g. ',' or ';')")
}

// delimRune converts the delimiter flag to the rune the CSV reader
// needs. Multi-rune values are rejected.
func delimRune() (rune, error) {
	runes := []rune(csvDelim)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", csvDelim)
	}
	return runes[0], nil
}

// warnAll logs each warning line.
func warnAll(warnings []string) {
	for _, w := range warnings {
		logger.Warn(w)
	}
}

// resolveOutPath applies the in-place/out/default precedence shared by
// the mutation commands.
func resolveOutPath(inPath, outFlag string, inPlace bool, defaultPath string) (string, error) {
	if inPlace && outFlag != "" {
		return "", fmt.Errorf("use either --inplace or --out, not both")
	}
	if inPlace {
		return inPath, nil
	}
	if outFlag != "" {
		return outFlag, nil
	}
	return defaultPath, nil
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input not found: %s", path)
	}
	return nil
}
