package main

import (
	"github.com/spf13/cobra"

	"limsrules/internal/repository"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert legacy CSV exports to import payloads",
}

var convertRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Convert a rules CSV to the rules import JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert("rules", repository.ConvertRulesLegacy)
	},
}

var convertSpecsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Convert a specs CSV to the specs import JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert("specs", repository.ConvertSpecsLegacy)
	},
}

var convertParamsCmd = &cobra.Command{
	Use:   "params",
	Short: "Convert a parameters CSV to the parametertypes import JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert("params", repository.ConvertParams)
	},
}

var convertPackagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Convert a packages CSV to the templatefields import JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert("packages", repository.ConvertPackages)
	},
}

func init() {
	convertCmd.PersistentFlags().StringVar(&convertFrom, "from", "", "input CSV path")
	convertCmd.PersistentFlags().StringVar(&convertTo, "to", "", "output JSON path")
	_ = convertCmd.MarkPersistentFlagRequired("from")
	_ = convertCmd.MarkPersistentFlagRequired("to")
	convertCmd.AddCommand(convertRulesCmd, convertSpecsCmd, convertParamsCmd, convertPackagesCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(kind string, build func([]repository.Row) map[string]any) error {
	delim, err := delimRune()
	if err != nil {
		return err
	}
	if err := requireFile(convertFrom); err != nil {
		return err
	}

	table, err := repository.ReadCSV(convertFrom, delim)
	if err != nil {
		return err
	}

	payload := build(table.Rows)
	if err := repository.SaveJSON(convertTo, payload); err != nil {
		return err
	}
	logger.Info("converted CSV", "kind", kind, "from", convertFrom, "to", convertTo, "rows", len(table.Rows))
	return nil
}
