package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"limsrules/internal/repository"
	"limsrules/internal/rules"
	"limsrules/pkg/schema"
)

var (
	generateSpecID int64
	generateParams []string
	generateQualEN string
	generateQualDE string
	generateOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate standalone rating rules for one or more parameters",
	Long: `Generate the rules JSON for standalone parameters (no package
template). Each --param takes four fields "ID TARGET UNIT MODE" where
TARGET and UNIT may be the literal null.

Modes: active, mineral, limit3, limit2, qualitative, dummy.

Example:
  limsrules generate --spec-id 1029 --param "5587 null null dummy" --out Dummy_Rules_1029.json`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int64Var(&generateSpecID, "spec-id", 0, "spec_id to stamp on every rule")
	generateCmd.Flags().StringArrayVar(&generateParams, "param", nil, `parameter as "ID TARGET UNIT MODE" (repeatable)`)
	generateCmd.Flags().StringVar(&generateQualEN, "qual-en", "", "english match text for qualitative mode")
	generateCmd.Flags().StringVar(&generateQualDE, "qual-de", "", "german match text for qualitative mode")
	generateCmd.Flags().StringVar(&generateOut, "out", "", "output JSON path")
	_ = generateCmd.MarkFlagRequired("spec-id")
	_ = generateCmd.MarkFlagRequired("param")
	_ = generateCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	builder, err := rules.NewBuilder(generateSpecID)
	if err != nil {
		return err
	}

	var payload schema.RulesPayload
	for _, raw := range generateParams {
		paramID, mode, err := parseParamSpec(raw)
		if err != nil {
			return err
		}
		generated, err := builder.Build(paramID, mode)
		if err != nil {
			return err
		}
		payload.Rules = append(payload.Rules, generated...)
	}

	if err := repository.SaveJSON(generateOut, payload); err != nil {
		return err
	}
	logger.Info("wrote rules JSON", "path", generateOut, "rules", len(payload.Rules))
	return nil
}

// parseParamSpec reads one --param value: four whitespace-separated
// fields ID TARGET UNIT MODE.
func parseParamSpec(raw string) (int64, schema.Mode, error) {
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return 0, nil, fmt.Errorf("param %q: expected 4 fields \"ID TARGET UNIT MODE\"", raw)
	}

	paramID, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("param %q: invalid parametertype_id %q", raw, fields[0])
	}

	var target *decimal.Decimal
	if !strings.EqualFold(fields[1], "null") {
		// tolerate a decimal comma in the target
		t, err := decimal.NewFromString(strings.ReplaceAll(fields[1], ",", "."))
		if err != nil {
			return 0, nil, fmt.Errorf("param %q: invalid target %q", raw, fields[1])
		}
		target = &t
	}

	unit := fields[2]
	if strings.EqualFold(unit, "null") {
		unit = ""
	}

	mode, err := schema.ParseMode(fields[3], target, unit, generateQualEN, generateQualDE)
	if err != nil {
		return 0, nil, fmt.Errorf("param %q: %w", raw, err)
	}
	return paramID, mode, nil
}
