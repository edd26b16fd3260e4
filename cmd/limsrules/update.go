package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"limsrules/internal/repository"
	"limsrules/internal/rules"
	"limsrules/pkg/schema"
)

var (
	updateIn      string
	updateOut     string
	updateInPlace bool

	updateSpecIDIns []string
	updateSpecID    int64

	updateUnitValue string
	updateUnitClear bool

	updateKeyPath  string
	updateKeyValue string
	updateKeyAs    string

	updateOnlyMissing bool
	updateParamIDs    []int64
)

var updateSpecIDCmd = &cobra.Command{
	Use:   "update-spec-id",
	Short: "Set data.spec_id on every rule of one or more rules JSONs",
	Long: `Set data.spec_id on every rule. With a single --in the file is
rewritten to --out, --inplace, or a _spec<id>.json sibling. With
several --in files and --out, all rules are merged into one output;
without --out each file gets its own suffixed sibling.`,
	RunE: runUpdateSpecID,
}

var updateUnitCmd = &cobra.Command{
	Use:   "update-unit",
	Short: "Set data.DDF_unit on every (or targeted) rule",
	RunE:  runUpdateUnit,
}

var updateKeyCmd = &cobra.Command{
	Use:   "update-key",
	Short: "Set any key (dot-path) on every (or targeted) rule",
	Long: `Set an arbitrary key in each rule of a rules JSON. Dot-paths reach
into nested objects, e.g. "action" or "data.spec_id". The --as flag
controls how --value is typed: auto, str, int, float, bool, null or
json.`,
	RunE: runUpdateKey,
}

func init() {
	for _, c := range []*cobra.Command{updateUnitCmd, updateKeyCmd} {
		c.Flags().StringVar(&updateIn, "in", "", "input rules JSON path")
		c.Flags().StringVar(&updateOut, "out", "", "output JSON path (default: suffixed sibling of input)")
		c.Flags().BoolVar(&updateInPlace, "inplace", false, "overwrite the input file")
		_ = c.MarkFlagRequired("in")
	}

	updateSpecIDCmd.Flags().StringArrayVar(&updateSpecIDIns, "in", nil, "input rules JSON path(s)")
	updateSpecIDCmd.Flags().StringVar(&updateOut, "out", "", "output JSON path (merged output with several inputs)")
	updateSpecIDCmd.Flags().BoolVar(&updateInPlace, "inplace", false, "overwrite each input file")
	updateSpecIDCmd.Flags().Int64Var(&updateSpecID, "spec-id", 0, "new spec_id")
	_ = updateSpecIDCmd.MarkFlagRequired("in")
	_ = updateSpecIDCmd.MarkFlagRequired("spec-id")

	updateUnitCmd.Flags().StringVar(&updateUnitValue, "unit", "", "new DDF_unit value")
	updateUnitCmd.Flags().BoolVar(&updateUnitClear, "clear", false, "clear DDF_unit to null")
	updateUnitCmd.Flags().BoolVar(&updateOnlyMissing, "only-missing", false, "only update rules where the field is missing/empty/null")
	updateUnitCmd.Flags().Int64SliceVar(&updateParamIDs, "parametertype-id", nil, "restrict to these parametertype_id values")

	updateKeyCmd.Flags().StringVar(&updateKeyPath, "key", "", "key to update (dot-path allowed)")
	updateKeyCmd.Flags().StringVar(&updateKeyValue, "value", "", "new value")
	updateKeyCmd.Flags().StringVar(&updateKeyAs, "as", "auto", "how to interpret --value: auto|str|int|float|bool|null|json")
	updateKeyCmd.Flags().BoolVar(&updateOnlyMissing, "only-missing", false, "only update rules where the key is missing/empty/null")
	updateKeyCmd.Flags().Int64SliceVar(&updateParamIDs, "parametertype-id", nil, "restrict to these parametertype_id values")
	_ = updateKeyCmd.MarkFlagRequired("key")
	_ = updateKeyCmd.MarkFlagRequired("value")

	rootCmd.AddCommand(updateSpecIDCmd, updateUnitCmd, updateKeyCmd)
}

func runUpdateSpecID(cmd *cobra.Command, args []string) error {
	if err := schema.ValidateSpecID(updateSpecID); err != nil {
		return err
	}
	if updateInPlace && updateOut != "" {
		return fmt.Errorf("use either --inplace or --out, not both")
	}
	for _, in := range updateSpecIDIns {
		if err := requireFile(in); err != nil {
			return err
		}
	}

	if len(updateSpecIDIns) > 1 && updateOut != "" {
		return runUpdateSpecIDMerged()
	}

	for _, in := range updateSpecIDIns {
		doc, err := repository.LoadRulesDocument(in)
		if err != nil {
			return err
		}
		res, err := rules.UpdateSpecID(doc, updateSpecID)
		if err != nil {
			return err
		}

		outFlag := updateOut
		if len(updateSpecIDIns) > 1 {
			outFlag = ""
		}
		out, err := resolveOutPath(in, outFlag, updateInPlace,
			repository.DefaultSpecIDOutPath(in, updateSpecID))
		if err != nil {
			return err
		}
		if err := repository.SaveJSON(out, doc); err != nil {
			return err
		}
		logger.Info("updated spec_id", "path", out, "updated", res.Updated, "total", res.Total)
	}
	return nil
}

// runUpdateSpecIDMerged handles several inputs with one --out: every
// file is updated and all rules land in a single merged document.
func runUpdateSpecIDMerged() error {
	var (
		combined []any
		updated  int
		total    int
	)
	for _, in := range updateSpecIDIns {
		doc, err := repository.LoadRulesDocument(in)
		if err != nil {
			return err
		}
		res, err := rules.UpdateSpecID(doc, updateSpecID)
		if err != nil {
			return err
		}
		items, err := doc.Items()
		if err != nil {
			return err
		}
		combined = append(combined, items...)
		updated += res.Updated
		total += res.Total
	}

	merged := rules.Document{"rules": combined}
	if err := repository.SaveJSON(updateOut, merged); err != nil {
		return err
	}
	logger.Info("merged and updated spec_id", "path", updateOut,
		"files", len(updateSpecIDIns), "updated", updated, "total", total)
	return nil
}

func runUpdateUnit(cmd *cobra.Command, args []string) error {
	if updateUnitClear && updateUnitValue != "" {
		return fmt.Errorf("use either --unit or --clear, not both")
	}
	if !updateUnitClear && updateUnitValue == "" {
		return fmt.Errorf("provide --unit or --clear")
	}
	if err := requireFile(updateIn); err != nil {
		return err
	}

	var unit any
	label := "null"
	if !updateUnitClear {
		unit = updateUnitValue
		label = updateUnitValue
	}

	doc, err := repository.LoadRulesDocument(updateIn)
	if err != nil {
		return err
	}
	res, err := rules.UpdateUnit(doc, unit, updateOpts())
	if err != nil {
		return err
	}

	out, err := resolveOutPath(updateIn, updateOut, updateInPlace,
		repository.DefaultUnitOutPath(updateIn, label))
	if err != nil {
		return err
	}
	if err := repository.SaveJSON(out, doc); err != nil {
		return err
	}
	logger.Info("updated DDF_unit", "path", out, "updated", res.Updated, "total", res.Total)
	return nil
}

func runUpdateKey(cmd *cobra.Command, args []string) error {
	if err := requireFile(updateIn); err != nil {
		return err
	}

	path, err := rules.SplitPath(updateKeyPath)
	if err != nil {
		return err
	}
	value, err := rules.ParseTypedValue(updateKeyValue, rules.ValueType(updateKeyAs))
	if err != nil {
		return err
	}

	doc, err := repository.LoadRulesDocument(updateIn)
	if err != nil {
		return err
	}
	res, err := rules.UpdateKey(doc, path, value, updateOpts())
	if err != nil {
		return err
	}

	out, err := resolveOutPath(updateIn, updateOut, updateInPlace,
		repository.DefaultKeyOutPath(updateIn, updateKeyPath, updateKeyValue))
	if err != nil {
		return err
	}
	if err := repository.SaveJSON(out, doc); err != nil {
		return err
	}
	logger.Info("updated key", "path", out, "key", updateKeyPath, "updated", res.Updated, "total", res.Total)
	return nil
}

func updateOpts() rules.UpdateOptions {
	opts := rules.UpdateOptions{OnlyMissing: updateOnlyMissing}
	if len(updateParamIDs) > 0 {
		opts.RestrictParamIDs = make(map[int64]struct{}, len(updateParamIDs))
		for _, id := range updateParamIDs {
			opts.RestrictParamIDs[id] = struct{}{}
		}
	}
	return opts
}
