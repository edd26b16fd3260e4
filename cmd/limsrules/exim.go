package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"limsrules/internal/repository"
	"limsrules/internal/rules"
)

var (
	eximSpecID int64
	eximIn     string
	eximParams []string
	eximPrefix string
	eximOut    string
)

var eximCmd = &cobra.Command{
	Use:   "exim",
	Short: "Generate export-lab rules (densities, moisture, mesh sizes)",
	Long: `Generate rules for the export-lab parameter set. Each --param takes
"ID;MODE;LOWER;UPPER;UNIT" where MODE is lower, dummy or lower_upper;
--in reads the same data from a CSV with columns parametertype_id,
mode, lower, upper, unit. Upper bounds apply to density parameters
only. Negative bounds are clamped to 0 and an inverted bound pair is
swapped, with warnings.`,
	RunE: runExim,
}

func init() {
	eximCmd.Flags().Int64Var(&eximSpecID, "spec-id", 0, "spec_id to stamp on every rule")
	eximCmd.Flags().StringVar(&eximIn, "in", "", "rows CSV path (columns: parametertype_id, mode, lower, upper, unit)")
	eximCmd.Flags().StringArrayVar(&eximParams, "param", nil, `parameter as "ID;MODE;LOWER;UPPER;UNIT" (repeatable)`)
	eximCmd.Flags().StringVar(&eximPrefix, "prefix", "Rules_Exim", "filename prefix for the default output name")
	eximCmd.Flags().StringVar(&eximOut, "out", "", "output JSON path (default: <prefix>_<spec>_<timestamp>.json)")
	_ = eximCmd.MarkFlagRequired("spec-id")
	rootCmd.AddCommand(eximCmd)
}

func runExim(cmd *cobra.Command, args []string) error {
	if eximIn == "" && len(eximParams) == 0 {
		return fmt.Errorf("provide --in or at least one --param")
	}

	in := rules.EximInput{
		SpecID:  eximSpecID,
		Entries: make(map[int64]rules.EximEntry),
	}

	if eximIn != "" {
		if err := readEximCSV(eximIn, in.Entries); err != nil {
			return err
		}
	}
	for _, raw := range eximParams {
		id, entry, err := parseEximEntry(raw)
		if err != nil {
			return err
		}
		in.Entries[id] = entry
	}

	payload, warnings, err := rules.BuildExim(in)
	if err != nil {
		return err
	}
	warnAll(warnings)

	out := eximOut
	if out == "" {
		out = repository.TimestampedName(eximPrefix, eximSpecID, time.Now())
	}
	if err := repository.SaveJSON(out, payload); err != nil {
		return err
	}
	logger.Info("wrote export-lab rules JSON", "path", out, "rules", len(payload.Rules))
	return nil
}

// readEximCSV fills entries from a rows CSV. Rows with a blank
// parametertype_id are skipped.
func readEximCSV(path string, entries map[int64]rules.EximEntry) error {
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
		id, entry, err := rowToEximEntry(row)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries[id] = entry
	}
	return nil
}

func rowToEximEntry(row repository.Row) (int64, rules.EximEntry, error) {
	id, err := strconv.ParseInt(row["parametertype_id"], 10, 64)
	if err != nil {
		return 0, rules.EximEntry{}, fmt.Errorf("invalid parametertype_id %q", row["parametertype_id"])
	}
	if _, known := rules.LookupEximParameter(id); !known {
		return 0, rules.EximEntry{}, fmt.Errorf("%d is not an export-lab parameter", id)
	}

	entry := rules.EximEntry{
		Mode: rules.EximMode(strings.ToLower(row["mode"])),
		Unit: row["unit"],
	}
	if entry.Lower, err = optionalDecimal(row["lower"]); err != nil {
		return 0, rules.EximEntry{}, fmt.Errorf("parameter %d: invalid lower %q", id, row["lower"])
	}
	if entry.Upper, err = optionalDecimal(row["upper"]); err != nil {
		return 0, rules.EximEntry{}, fmt.Errorf("parameter %d: invalid upper %q", id, row["upper"])
	}
	return id, entry, nil
}

// parseEximEntry reads one --param value: up to five
// semicolon-separated fields ID;MODE;LOWER;UPPER;UNIT.
func parseEximEntry(raw string) (int64, rules.EximEntry, error) {
	fields := strings.SplitN(raw, ";", 5)
	if len(fields) < 2 {
		return 0, rules.EximEntry{}, fmt.Errorf("param %q: expected at least \"ID;MODE\"", raw)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
	if err != nil {
		return 0, rules.EximEntry{}, fmt.Errorf("param %q: invalid parametertype_id %q", raw, fields[0])
	}
	if _, known := rules.LookupEximParameter(id); !known {
		return 0, rules.EximEntry{}, fmt.Errorf("param %q: %d is not an export-lab parameter", raw, id)
	}

	entry := rules.EximEntry{Mode: rules.EximMode(strings.ToLower(strings.TrimSpace(fields[1])))}
	if len(fields) > 2 {
		if entry.Lower, err = optionalDecimal(fields[2]); err != nil {
			return 0, rules.EximEntry{}, fmt.Errorf("param %q: invalid lower %q", raw, fields[2])
		}
	}
	if len(fields) > 3 {
		if entry.Upper, err = optionalDecimal(fields[3]); err != nil {
			return 0, rules.EximEntry{}, fmt.Errorf("param %q: invalid upper %q", raw, fields[3])
		}
	}
	if len(fields) > 4 {
		entry.Unit = strings.TrimSpace(fields[4])
	}
	return id, entry, nil
}

// optionalDecimal parses a bound; blank and the literal null yield nil.
func optionalDecimal(raw string) (*decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "null") {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
