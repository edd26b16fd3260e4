// Package rules turns parameter targets into rating rule payloads and
// applies bulk mutations to existing rule documents.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"limsrules/internal/bands"
	"limsrules/pkg/schema"
)

// Builder generates standalone rating rules for one spec.
type Builder struct {
	SpecID int64
}

// NewBuilder validates the spec id and returns a Builder.
func NewBuilder(specID int64) (*Builder, error) {
	if err := schema.ValidateSpecID(specID); err != nil {
		return nil, err
	}
	return &Builder{SpecID: specID}, nil
}

// Build produces the rules for one parameter in its banding mode. The
// returned rules are ordered perfect first, not OK last.
func (b *Builder) Build(paramID int64, mode schema.Mode) ([]schema.ActionRule, error) {
	if err := schema.ValidateParameterID(paramID); err != nil {
		return nil, err
	}

	switch m := mode.(type) {
	case schema.ActiveMode:
		return b.bandedRules(paramID, m.Target, m.Unit, bands.Active), nil
	case schema.MineralMode:
		return b.bandedRules(paramID, m.Target, m.Unit, bands.Mineral), nil
	case schema.Limit3Mode:
		return b.limit3Rules(paramID, m.Target, m.Unit), nil
	case schema.Limit2Mode:
		return b.limit2Rules(paramID, m.Target, m.Unit), nil
	case schema.QualitativeMode:
		return b.qualitativeRules(paramID, m), nil
	case schema.DummyMode:
		return []schema.ActionRule{b.dummyRule(paramID)}, nil
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode.Name())
	}
}

// newRule fills in the constant fields every rule carries.
func (b *Builder) newRule(paramID int64, target *decimal.Decimal, unit string, typ schema.DDFType) schema.Rule {
	var targetVal *schema.Value
	if target != nil {
		v := schema.NumberValue(bands.Quantize2(*target))
		targetVal = &v
	}
	return schema.Rule{
		Color:           typ.Color(),
		Column:          schema.Int64(0),
		DDFTargetValue:  targetVal,
		DDFType:         typ,
		DDFUnit:         schema.OptStr(unit),
		Inverse:         schema.Int64(0),
		ParametertypeID: schema.Int64(paramID),
		Show:            schema.Int64(1),
		SpecID:          schema.Int64(b.SpecID),
	}
}

func create(r schema.Rule) schema.ActionRule {
	return schema.ActionRule{Action: schema.ActionCreate, Data: r}
}

// zeroTargetRules covers the degenerate target of exactly zero: any
// reading above zero fails outright, there is no tolerance band.
func (b *Builder) zeroTargetRules(paramID int64, target decimal.Decimal, unit string) []schema.ActionRule {
	perfect := b.newRule(paramID, &target, unit, schema.TypePerfect)
	perfect.Operator = schema.OpLessEqual
	perfect.Value = schema.Val(schema.NumberValue(decimal.Zero))

	notOK := b.newRule(paramID, &target, unit, schema.TypeNotOK)
	notOK.Operator = schema.OpGreater
	notOK.Value = schema.Val(schema.NumberValue(decimal.Zero))

	return []schema.ActionRule{create(perfect), create(notOK)}
}

func (b *Builder) bandedRules(paramID int64, target decimal.Decimal, unit string, compute func(decimal.Decimal) bands.Bands) []schema.ActionRule {
	if target.IsZero() {
		return b.zeroTargetRules(paramID, target, unit)
	}

	bd := compute(target)

	perfect := b.newRule(paramID, &target, unit, schema.TypePerfect)
	perfect.Operator = schema.OpGreaterEqual
	perfect.Operator2 = schema.Op(schema.OpLessEqual)
	perfect.Linker = schema.Link(schema.LinkerAnd)
	perfect.Value = schema.Val(schema.NumberValue(bd.LowPerfect))
	perfect.Value2 = schema.Val(schema.NumberValue(bd.HighPerfect))

	okLow := b.newRule(paramID, &target, unit, schema.TypeOK)
	okLow.Operator = schema.OpGreaterEqual
	okLow.Operator2 = schema.Op(schema.OpLess)
	okLow.Linker = schema.Link(schema.LinkerAnd)
	okLow.Value = schema.Val(schema.NumberValue(bd.LowOK))
	okLow.Value2 = schema.Val(schema.NumberValue(bd.LowPerfect))

	okHigh := b.newRule(paramID, &target, unit, schema.TypeOK)
	okHigh.Operator = schema.OpGreater
	okHigh.Operator2 = schema.Op(schema.OpLessEqual)
	okHigh.Linker = schema.Link(schema.LinkerAnd)
	okHigh.Value = schema.Val(schema.NumberValue(bd.HighPerfect))
	okHigh.Value2 = schema.Val(schema.NumberValue(bd.HighOK))

	notOK := b.newRule(paramID, &target, unit, schema.TypeNotOK)
	notOK.Operator = schema.OpLess
	notOK.Operator2 = schema.Op(schema.OpGreater)
	notOK.Linker = schema.Link(schema.LinkerOr)
	notOK.Value = schema.Val(schema.NumberValue(bd.LowOK))
	notOK.Value2 = schema.Val(schema.NumberValue(bd.HighOK))

	return []schema.ActionRule{create(perfect), create(okLow), create(okHigh), create(notOK)}
}

func (b *Builder) limit3Rules(paramID int64, target decimal.Decimal, unit string) []schema.ActionRule {
	if target.IsZero() {
		return b.zeroTargetRules(paramID, target, unit)
	}

	threshold := bands.Limit3Threshold(target)
	ceiling := bands.Quantize2(target)

	perfect := b.newRule(paramID, &target, unit, schema.TypePerfect)
	perfect.Operator = schema.OpLessEqual
	perfect.Value = schema.Val(schema.NumberValue(threshold))

	ok := b.newRule(paramID, &target, unit, schema.TypeOK)
	ok.Operator = schema.OpGreaterEqual
	ok.Operator2 = schema.Op(schema.OpLessEqual)
	ok.Linker = schema.Link(schema.LinkerAnd)
	ok.Value = schema.Val(schema.NumberValue(threshold))
	ok.Value2 = schema.Val(schema.NumberValue(ceiling))

	notOK := b.newRule(paramID, &target, unit, schema.TypeNotOK)
	notOK.Operator = schema.OpGreater
	notOK.Value = schema.Val(schema.NumberValue(ceiling))

	return []schema.ActionRule{create(perfect), create(ok), create(notOK)}
}

func (b *Builder) limit2Rules(paramID int64, target decimal.Decimal, unit string) []schema.ActionRule {
	ceiling := bands.Quantize2(target)

	perfect := b.newRule(paramID, &target, unit, schema.TypePerfect)
	perfect.Operator = schema.OpLessEqual
	perfect.Value = schema.Val(schema.NumberValue(ceiling))

	notOK := b.newRule(paramID, &target, unit, schema.TypeNotOK)
	notOK.Operator = schema.OpGreater
	notOK.Value = schema.Val(schema.NumberValue(ceiling))

	return []schema.ActionRule{create(perfect), create(notOK)}
}

func (b *Builder) qualitativeRules(paramID int64, m schema.QualitativeMode) []schema.ActionRule {
	perfect := b.newRule(paramID, &m.Target, m.Unit, schema.TypePerfect)
	perfect.Operator = schema.OpEqual
	perfect.Operator2 = schema.Op(schema.OpEqual)
	perfect.Linker = schema.Link(schema.LinkerOr)
	perfect.Value = schema.Val(schema.StringValue(m.TextEN))
	perfect.Value2 = schema.Val(schema.StringValue(m.TextDE))

	notOK := b.newRule(paramID, &m.Target, m.Unit, schema.TypeNotOK)
	notOK.Operator = schema.OpGreater
	notOK.Value = schema.Val(schema.NumberValue(bands.Quantize2(m.Target)))

	return []schema.ActionRule{create(perfect), create(notOK)}
}

// dummyRule always rates perfect when any value was reported at all.
func (b *Builder) dummyRule(paramID int64) schema.ActionRule {
	r := b.newRule(paramID, nil, "", schema.TypePerfect)
	r.Operator = schema.OpNotEqual
	r.Value = schema.Val(schema.StringValue(schema.DummyValue))
	return create(r)
}
