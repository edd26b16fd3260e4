package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"limsrules/internal/bands"
	"limsrules/pkg/schema"
)

// NutritionEntry is the operator input for one nutrition parameter.
type NutritionEntry struct {
	// Target is nil when no target was provided; the parameter then
	// gets a single always-perfect rule.
	Target *decimal.Decimal
	// Unit as entered. Locked-group parameters ignore this and report
	// in the locked unit.
	Unit string
	// DeviationPercent applies to percent-policy parameters and to
	// sodium-like parameters measured outside the locked unit.
	DeviationPercent *decimal.Decimal
}

// NutritionInput collects the per-parameter entries for one spec.
// Parameters absent from Entries are treated as having no target.
type NutritionInput struct {
	SpecID  int64
	Entries map[int64]NutritionEntry
}

// BuildNutrition generates the rules payload for the fixed nutrition
// parameter set, in registry display order. Returned warnings note
// defaulted deviations; they do not prevent output.
func BuildNutrition(in NutritionInput) (schema.RulesPayload, []string, error) {
	if err := schema.ValidateSpecID(in.SpecID); err != nil {
		return schema.RulesPayload{}, nil, err
	}

	var (
		payload  schema.RulesPayload
		warnings []string
	)
	b := &Builder{SpecID: in.SpecID}

	for _, p := range bands.NutritionParameters() {
		entry := in.Entries[p.ID]

		if entry.Target == nil {
			r := b.dummyRule(p.ID)
			r.Data.DDFUnit = schema.OptStr(nutritionUnit(p, entry.Unit))
			payload.Rules = append(payload.Rules, r)
			continue
		}

		target := *entry.Target
		if target.IsNegative() {
			return schema.RulesPayload{}, nil, fmt.Errorf("%s: target must not be negative", p.Name)
		}
		if entry.DeviationPercent != nil {
			if err := schema.ValidateDeviationPercent(*entry.DeviationPercent); err != nil {
				return schema.RulesPayload{}, nil, fmt.Errorf("%s: %w", p.Name, err)
			}
		}

		dev, warn := nutritionDeviation(p, target, entry)
		if warn != "" {
			warnings = append(warnings, warn)
		}

		lower, upper := bands.Bounds(target, dev)
		unit := nutritionUnit(p, entry.Unit)

		perfect := b.newRule(p.ID, &target, unit, schema.TypePerfect)
		perfect.DDFTargetValue = schema.Val(schema.NumberValue(bands.Quantize4(target)))
		perfect.Operator = schema.OpGreaterEqual
		perfect.Operator2 = schema.Op(schema.OpLessEqual)
		perfect.Linker = schema.Link(schema.LinkerAnd)
		perfect.Value = schema.Val(schema.NumberValue(lower))
		perfect.Value2 = schema.Val(schema.NumberValue(upper))

		notOK := b.newRule(p.ID, &target, unit, schema.TypeNotOK)
		notOK.DDFTargetValue = schema.Val(schema.NumberValue(bands.Quantize4(target)))
		notOK.Operator = schema.OpLess
		notOK.Operator2 = schema.Op(schema.OpGreater)
		notOK.Linker = schema.Link(schema.LinkerOr)
		notOK.Value = schema.Val(schema.NumberValue(lower))
		notOK.Value2 = schema.Val(schema.NumberValue(upper))

		payload.Rules = append(payload.Rules, create(perfect), create(notOK))
	}

	return payload, warnings, nil
}

// nutritionUnit resolves the unit emitted for a parameter: locked
// parameters always report in the locked unit.
func nutritionUnit(p bands.NutritionParameter, unit string) string {
	if p.Group == bands.GroupLocked {
		return bands.LockedUnit()
	}
	return strings.TrimSpace(unit)
}

// nutritionDeviation picks the tolerance for a parameter with a
// target, falling back to the default percent with a warning when a
// percent deviation is needed but missing.
func nutritionDeviation(p bands.NutritionParameter, target decimal.Decimal, entry NutritionEntry) (decimal.Decimal, string) {
	switch p.Group {
	case bands.GroupLocked:
		return p.FixedDeviation(target), ""
	case bands.GroupSodiumLike:
		if strings.TrimSpace(entry.Unit) == bands.LockedUnit() {
			return p.FixedDeviation(target), ""
		}
		return percentDeviation(target, entry.DeviationPercent,
			fmt.Sprintf("%s: unit is not %q, deviation%% is required; defaulted to %s%%",
				p.Name, bands.LockedUnit(), bands.DefaultDeviationPercent()))
	default:
		return percentDeviation(target, entry.DeviationPercent,
			fmt.Sprintf("%s: no deviation%% provided; defaulted to %s%%",
				p.Name, bands.DefaultDeviationPercent()))
	}
}

func percentDeviation(target decimal.Decimal, pct *decimal.Decimal, missingWarn string) (decimal.Decimal, string) {
	if pct == nil {
		return bands.PercentDeviation(target, bands.DefaultDeviationPercent()), missingWarn
	}
	return bands.PercentDeviation(target, *pct), ""
}
