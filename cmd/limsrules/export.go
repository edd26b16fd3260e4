package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"limsrules/internal/repository"
)

var (
	exportSpecsCSVs []string
	exportRulesCSVs []string
	exportOutSpecs  string
	exportOutRules  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Merge specs/rules CSVs into import payloads",
	Long: `Read one or more specs and/or rules CSV files and export merged
import JSON files. All CSVs of the same kind must share a column set;
rows are deduplicated across files. Existing output files are never
overwritten, a numbered sibling is written instead.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringArrayVar(&exportSpecsCSVs, "specs", nil, "specs CSV path(s)")
	exportCmd.Flags().StringArrayVar(&exportRulesCSVs, "rules", nil, "rules CSV path(s)")
	exportCmd.Flags().StringVar(&exportOutSpecs, "out-specs", "", "merged specs JSON output path")
	exportCmd.Flags().StringVar(&exportOutRules, "out-rules", "", "merged rules JSON output path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(exportSpecsCSVs) == 0 && len(exportRulesCSVs) == 0 {
		return fmt.Errorf("provide at least one of --specs or --rules")
	}
	if len(exportSpecsCSVs) > 0 && exportOutSpecs == "" {
		return fmt.Errorf("--out-specs is required when --specs is provided")
	}
	if len(exportRulesCSVs) > 0 && exportOutRules == "" {
		return fmt.Errorf("--out-rules is required when --rules is provided")
	}

	delim, err := delimRune()
	if err != nil {
		return err
	}

	if len(exportSpecsCSVs) > 0 {
		rows, warnings, err := repository.MergeCSVs(exportSpecsCSVs, delim, "specs")
		if err != nil {
			return err
		}
		warnAll(warnings)

		out := repository.UniqueOutPath(exportOutSpecs)
		if err := repository.SaveJSON(out, repository.BuildSpecsExport(rows)); err != nil {
			return err
		}
		logger.Info("wrote merged specs JSON", "path", out, "specs", len(rows))
	}

	if len(exportRulesCSVs) > 0 {
		rows, warnings, err := repository.MergeCSVs(exportRulesCSVs, delim, "rules")
		if err != nil {
			return err
		}
		warnAll(warnings)

		out := repository.UniqueOutPath(exportOutRules)
		if err := repository.SaveJSON(out, repository.BuildRulesExport(rows)); err != nil {
			return err
		}
		logger.Info("wrote merged rules JSON", "path", out, "rules", len(rows))
	}

	return nil
}
