package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"limsrules/internal/numparse"
	"limsrules/internal/repository"
	"limsrules/internal/rules"
)

var (
	nutritionSpecID int64
	nutritionIn     string
	nutritionParams []string
	nutritionPrefix string
	nutritionOut    string
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Generate nutrition rules for the fixed parameter table",
	Long: `Generate perfect/not-OK rule pairs for the nutrition parameter set.
Each --param takes "ID;TARGET;UNIT;DEVIATION%" where the trailing
fields may be empty; --in reads the same data from a CSV with columns
parametertype_id, target, unit, deviation_percent. Parameters not
listed get a single always-perfect rule. Targets accept EU and US
number formats and tolerate unit text like "200mg".`,
	RunE: runNutrition,
}

func init() {
	nutritionCmd.Flags().Int64Var(&nutritionSpecID, "spec-id", 0, "spec_id to stamp on every rule")
	nutritionCmd.Flags().StringVar(&nutritionIn, "in", "", "targets CSV path (columns: parametertype_id, target, unit, deviation_percent)")
	nutritionCmd.Flags().StringArrayVar(&nutritionParams, "param", nil, `parameter as "ID;TARGET;UNIT;DEVIATION%" (repeatable)`)
	nutritionCmd.Flags().StringVar(&nutritionPrefix, "prefix", "Rules_Nutrition", "filename prefix for the default output name")
	nutritionCmd.Flags().StringVar(&nutritionOut, "out", "", "output JSON path (default: <prefix>_<spec>_<timestamp>.json)")
	_ = nutritionCmd.MarkFlagRequired("spec-id")
	rootCmd.AddCommand(nutritionCmd)
}

func runNutrition(cmd *cobra.Command, args []string) error {
	in := rules.NutritionInput{
		SpecID:  nutritionSpecID,
		Entries: make(map[int64]rules.NutritionEntry),
	}

	if nutritionIn != "" {
		if err := readNutritionCSV(nutritionIn, in.Entries); err != nil {
			return err
		}
	}
	for _, raw := range nutritionParams {
		id, entry, err := parseNutritionEntry(raw)
		if err != nil {
			return err
		}
		in.Entries[id] = entry
	}

	payload, warnings, err := rules.BuildNutrition(in)
	if err != nil {
		return err
	}
	warnAll(warnings)

	out := nutritionOut
	if out == "" {
		out = repository.TimestampedName(nutritionPrefix, nutritionSpecID, time.Now())
	}
	if err := repository.SaveJSON(out, payload); err != nil {
		return err
	}
	logger.Info("wrote nutrition rules JSON", "path", out, "rules", len(payload.Rules))
	return nil
}

// readNutritionCSV fills entries from a targets CSV. Rows with a blank
// parametertype_id are skipped.
func readNutritionCSV(path string, entries map[int64]rules.NutritionEntry) error {
	delim, err := delimRune()
	if err != nil {
		return err
	}
	if err := requireFile(path); err != nil {
		return err
	}
	table, err := repository.ReadCSV(path, delim)
	if err != nil {
		return err
	}

	for _, row := range table.Rows {
		if row["parametertype_id"] == "" {
			continue
		}
		id, entry, err := rowToNutritionEntry(row)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries[id] = entry
	}
	return nil
}

func rowToNutritionEntry(row repository.Row) (int64, rules.NutritionEntry, error) {
	id, err := strconv.ParseInt(row["parametertype_id"], 10, 64)
	if err != nil {
		return 0, rules.NutritionEntry{}, fmt.Errorf("invalid parametertype_id %q", row["parametertype_id"])
	}

	var entry rules.NutritionEntry
	if target := row["target"]; !strings.EqualFold(target, "null") {
		parsed, err := numparse.Parse(target)
		if err != nil {
			return 0, rules.NutritionEntry{}, fmt.Errorf("parameter %d: %w", id, err)
		}
		entry.Target = parsed.Value
		if parsed.HadUnitText {
			logger.Warn("unit text was removed from target", "param", id, "unit", parsed.Unit)
		}
	}
	entry.Unit = row["unit"]

	if dev := row["deviation_percent"]; dev != "" {
		pct, err := decimal.NewFromString(dev)
		if err != nil {
			return 0, rules.NutritionEntry{}, fmt.Errorf("parameter %d: invalid deviation%% %q", id, dev)
		}
		entry.DeviationPercent = &pct
	}
	return id, entry, nil
}

// parseNutritionEntry reads one --param value: up to four
// semicolon-separated fields ID;TARGET;UNIT;DEVIATION%.
func parseNutritionEntry(raw string) (int64, rules.NutritionEntry, error) {
	fields := strings.SplitN(raw, ";", 4)
	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return 0, rules.NutritionEntry{}, fmt.Errorf("param %q: invalid parametertype_id %q", raw, fields[0])
	}

	var entry rules.NutritionEntry
	if len(fields) > 1 {
		parsed, err := numparse.Parse(fields[1])
		if err != nil {
			return 0, rules.NutritionEntry{}, fmt.Errorf("param %q: %w", raw, err)
		}
		entry.Target = parsed.Value
		if parsed.HadUnitText {
			logger.Warn("unit text was removed from target", "param", id, "unit", parsed.Unit)
		}
	}
	if len(fields) > 2 {
		entry.Unit = strings.TrimSpace(fields[2])
	}
	if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
		pct, err := decimal.NewFromString(strings.TrimSpace(fields[3]))
		if err != nil {
			return 0, rules.NutritionEntry{}, fmt.Errorf("param %q: invalid deviation%% %q", raw, fields[3])
		}
		entry.DeviationPercent = &pct
	}
	return id, entry, nil
}
