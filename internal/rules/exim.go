package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"limsrules/internal/bands"
	"limsrules/pkg/schema"
)

// EximMode selects how one export-lab parameter is rated.
type EximMode string

const (
	// EximLower rates against a single lower threshold. Moisture
	// parameters use the reversed reading of the threshold.
	EximLower EximMode = "lower"
	// EximDummy emits a single always-perfect rule.
	EximDummy EximMode = "dummy"
	// EximLowerUpper rates against a lower and an upper bound. Only
	// density parameters support it.
	EximLowerUpper EximMode = "lower_upper"
)

// EximKind classifies the export-lab parameters.
type EximKind string

const (
	KindDensity  EximKind = "density"
	KindMoisture EximKind = "moisture"
	KindMesh     EximKind = "mesh"
)

// EximParameter is one row of the fixed export-lab parameter set.
type EximParameter struct {
	ID          int64
	Name        string
	Kind        EximKind
	DefaultUnit string
}

// EximParameters lists the export-lab parameters in display order.
func EximParameters() []EximParameter {
	return []EximParameter{
		{ID: 11194, Name: "Bulk Density", Kind: KindDensity, DefaultUnit: "g/cm3"},
		{ID: 11196, Name: "Moisture content analysis", Kind: KindMoisture, DefaultUnit: "%"},
		{ID: 11974, Name: "Tapped Density", Kind: KindDensity, DefaultUnit: "g/cm3"},
		{ID: 11975, Name: "Mesh Size", Kind: KindMesh, DefaultUnit: "%"},
		{ID: 12029, Name: "Mesh Size 20", Kind: KindMesh, DefaultUnit: "%"},
		{ID: 12030, Name: "Mesh Size 40", Kind: KindMesh, DefaultUnit: "%"},
		{ID: 12031, Name: "Mesh Size 60", Kind: KindMesh, DefaultUnit: "%"},
		{ID: 12032, Name: "Mesh Size 80", Kind: KindMesh, DefaultUnit: "%"},
		{ID: 12033, Name: "Mesh Size 100", Kind: KindMesh, DefaultUnit: "%"},
	}
}

// LookupEximParameter finds an export-lab parameter by id.
func LookupEximParameter(id int64) (EximParameter, bool) {
	for _, p := range EximParameters() {
		if p.ID == id {
			return p, true
		}
	}
	return EximParameter{}, false
}

// EximEntry is the operator input for one export-lab parameter.
type EximEntry struct {
	Mode EximMode
	// Lower is the threshold (lower mode) or lower bound. Rows in a
	// threshold mode with a nil Lower are skipped.
	Lower *decimal.Decimal
	Upper *decimal.Decimal
	// Unit overrides the parameter's default unit when non-empty.
	Unit string
}

// EximInput collects the per-parameter entries for one spec.
// Parameters absent from Entries are skipped.
type EximInput struct {
	SpecID  int64
	Entries map[int64]EximEntry
}

// BuildExim generates the export-lab rules payload in display order.
// Negative bounds are clamped to zero and an inverted bound pair is
// swapped; both produce warnings rather than errors.
func BuildExim(in EximInput) (schema.RulesPayload, []string, error) {
	if err := schema.ValidateSpecID(in.SpecID); err != nil {
		return schema.RulesPayload{}, nil, err
	}

	var (
		payload  schema.RulesPayload
		warnings []string
	)
	b := &Builder{SpecID: in.SpecID}

	for _, p := range EximParameters() {
		entry, ok := in.Entries[p.ID]
		if !ok {
			continue
		}

		unit := entry.Unit
		if unit == "" {
			unit = p.DefaultUnit
		}

		lower := entry.Lower
		upper := entry.Upper
		if lower != nil && lower.IsNegative() {
			z := decimal.Zero
			lower = &z
			warnings = append(warnings, fmt.Sprintf("%s: lower/target was negative and was clamped to 0", p.Name))
		}
		if upper != nil && upper.IsNegative() {
			z := decimal.Zero
			upper = &z
			warnings = append(warnings, fmt.Sprintf("%s: upper bound was negative and was clamped to 0", p.Name))
		}

		switch entry.Mode {
		case EximDummy:
			r := b.dummyRule(p.ID)
			r.Data.DDFUnit = schema.OptStr(unit)
			payload.Rules = append(payload.Rules, r)

		case EximLower:
			if lower == nil {
				continue
			}
			t := bands.Quantize4(*lower)
			perfectOp, notOKOp := schema.OpGreaterEqual, schema.OpLessEqual
			if p.Kind == KindMoisture {
				perfectOp, notOKOp = schema.OpLessEqual, schema.OpGreaterEqual
			}

			perfect := b.newRule(p.ID, &t, unit, schema.TypePerfect)
			perfect.DDFTargetValue = schema.Val(schema.NumberValue(t))
			perfect.Operator = perfectOp
			perfect.Value = schema.Val(schema.NumberValue(t))

			notOK := b.newRule(p.ID, &t, unit, schema.TypeNotOK)
			notOK.DDFTargetValue = schema.Val(schema.NumberValue(t))
			notOK.Operator = notOKOp
			notOK.Value = schema.Val(schema.NumberValue(t))

			payload.Rules = append(payload.Rules, create(perfect), create(notOK))

		case EximLowerUpper:
			if p.Kind != KindDensity {
				return schema.RulesPayload{}, nil, fmt.Errorf("%s: lower/upper mode is only valid for density parameters", p.Name)
			}
			if lower == nil || upper == nil {
				continue
			}
			if lower.GreaterThanOrEqual(*upper) {
				lower, upper = upper, lower
				warnings = append(warnings, fmt.Sprintf("%s: lower >= upper, values were auto-swapped", p.Name))
			}
			lo := bands.Quantize4(*lower)
			hi := bands.Quantize4(*upper)

			perfect := b.newRule(p.ID, &lo, unit, schema.TypePerfect)
			perfect.DDFTargetValue = schema.Val(schema.NumberValue(lo))
			perfect.Operator = schema.OpGreaterEqual
			perfect.Operator2 = schema.Op(schema.OpLessEqual)
			perfect.Linker = schema.Link(schema.LinkerAnd)
			perfect.Value = schema.Val(schema.NumberValue(lo))
			perfect.Value2 = schema.Val(schema.NumberValue(hi))

			notOK := b.newRule(p.ID, &lo, unit, schema.TypeNotOK)
			notOK.DDFTargetValue = schema.Val(schema.NumberValue(lo))
			notOK.Operator = schema.OpLessEqual
			notOK.Operator2 = schema.Op(schema.OpGreaterEqual)
			notOK.Linker = schema.Link(schema.LinkerOr)
			notOK.Value = schema.Val(schema.NumberValue(lo))
			notOK.Value2 = schema.Val(schema.NumberValue(hi))

			payload.Rules = append(payload.Rules, create(perfect), create(notOK))

		default:
			return schema.RulesPayload{}, nil, fmt.Errorf("%s: unknown mode %q", p.Name, entry.Mode)
		}
	}

	return payload, warnings, nil
}
