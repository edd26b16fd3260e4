package schema

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode is the closed set of banding modes a parameter can use. Each
// variant carries exactly the inputs its band formula needs, so a
// qualitative mode cannot exist without its match texts and a dummy
// mode carries neither target nor unit.
type Mode interface {
	// Name returns the mode keyword as used in CLI input and CSVs.
	Name() string
	isMode()
}

// ActiveMode is the 4-band active-ingredient target mode
// (0.80T / 0.90T / 1.25T / 1.50T).
type ActiveMode struct {
	Target decimal.Decimal
	Unit   string
}

// MineralMode matches ActiveMode except the upper OK ceiling is 1.45T.
type MineralMode struct {
	Target decimal.Decimal
	Unit   string
}

// Limit3Mode is the 3-band limit mode (perfect <= 0.30T, OK up to T,
// not OK above T).
type Limit3Mode struct {
	Target decimal.Decimal
	Unit   string
}

// Limit2Mode is the 2-band limit mode (perfect <= T, not OK > T).
type Limit2Mode struct {
	Target decimal.Decimal
	Unit   string
}

// QualitativeMode matches one of two language-specific literal texts
// for the perfect band and falls back to a numeric threshold for the
// not-OK band.
type QualitativeMode struct {
	Target decimal.Decimal
	Unit   string
	TextEN string
	TextDE string
}

// DummyMode emits the single always-pass rule against the literal
// empty-string sentinel. It uses no target and no unit.
type DummyMode struct{}

func (ActiveMode) Name() string      { return "active" }
func (MineralMode) Name() string     { return "mineral" }
func (Limit3Mode) Name() string      { return "limit3" }
func (Limit2Mode) Name() string      { return "limit2" }
func (QualitativeMode) Name() string { return "qualitative" }
func (DummyMode) Name() string       { return "dummy" }

func (ActiveMode) isMode()      {}
func (MineralMode) isMode()     {}
func (Limit3Mode) isMode()      {}
func (Limit2Mode) isMode()      {}
func (QualitativeMode) isMode() {}
func (DummyMode) isMode()       {}

// ParseMode maps a mode keyword plus its raw inputs onto a Mode
// variant. target is nil when the input was blank or the literal
// "null". Modes that need a numeric target fail without one; the
// qualitative mode additionally requires both match texts.
func ParseMode(name string, target *decimal.Decimal, unit, qualEN, qualDE string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	requireTarget := func() (decimal.Decimal, error) {
		if target == nil {
			return decimal.Decimal{}, fmt.Errorf("mode %q requires a numeric target", key)
		}
		if target.IsNegative() {
			return decimal.Decimal{}, fmt.Errorf("mode %q: target must not be negative, got %s", key, target)
		}
		return *target, nil
	}

	switch key {
	case "active":
		t, err := requireTarget()
		if err != nil {
			return nil, err
		}
		return ActiveMode{Target: t, Unit: unit}, nil
	case "mineral":
		t, err := requireTarget()
		if err != nil {
			return nil, err
		}
		return MineralMode{Target: t, Unit: unit}, nil
	case "limit3":
		t, err := requireTarget()
		if err != nil {
			return nil, err
		}
		return Limit3Mode{Target: t, Unit: unit}, nil
	case "limit2":
		t, err := requireTarget()
		if err != nil {
			return nil, err
		}
		return Limit2Mode{Target: t, Unit: unit}, nil
	case "qualitative":
		t, err := requireTarget()
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(qualEN) == "" || strings.TrimSpace(qualDE) == "" {
			return nil, fmt.Errorf("mode %q requires both qualitative match texts", key)
		}
		return QualitativeMode{Target: t, Unit: unit, TextEN: qualEN, TextDE: qualDE}, nil
	case "dummy":
		return DummyMode{}, nil
	}
	return nil, fmt.Errorf("invalid mode %q", name)
}
