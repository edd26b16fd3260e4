package bands

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ParameterGroup determines how a nutrition parameter's unit and
// deviation are handled.
type ParameterGroup string

const (
	// GroupLocked parameters always report in the locked unit and use
	// their fixed deviation policy.
	GroupLocked ParameterGroup = "locked"
	// GroupSodiumLike parameters use their fixed policy only when the
	// unit matches the locked unit, otherwise a percent deviation.
	GroupSodiumLike ParameterGroup = "sodium_like"
	// GroupOther parameters always use a percent deviation.
	GroupOther ParameterGroup = "other"
)

// DeviationPolicy names the tolerance formula of a parameter.
type DeviationPolicy string

const (
	PolicyEnergy    DeviationPolicy = "energy"
	PolicyPiecewise DeviationPolicy = "piecewise"
	PolicyThreshold DeviationPolicy = "threshold"
	PolicyPercent   DeviationPolicy = "percent"
)

// NutritionParameter is one row of the nutrition parameter registry.
type NutritionParameter struct {
	ID     int64
	Name   string
	Group  ParameterGroup
	Policy DeviationPolicy

	// Policy constants. Threshold is set for threshold policies,
	// LowAbs/HighAbs for piecewise, LowAbs alone for threshold.
	Threshold decimal.Decimal
	LowAbs    decimal.Decimal
	HighAbs   decimal.Decimal
}

//go:embed nutrition.yaml
var nutritionYAML []byte

type registryFile struct {
	LockedUnit              string `yaml:"locked_unit"`
	DefaultDeviationPercent string `yaml:"default_deviation_percent"`
	Parameters              []struct {
		ID        int64  `yaml:"id"`
		Name      string `yaml:"name"`
		Group     string `yaml:"group"`
		Policy    string `yaml:"policy"`
		Threshold string `yaml:"threshold"`
		LowAbs    string `yaml:"low_abs"`
		HighAbs   string `yaml:"high_abs"`
	} `yaml:"parameters"`
}

var (
	registryOnce sync.Once

	lockedUnit     string
	defaultPercent decimal.Decimal
	parameters     []NutritionParameter
	parametersByID map[int64]NutritionParameter
)

func loadRegistry() {
	var f registryFile
	if err := yaml.Unmarshal(nutritionYAML, &f); err != nil {
		panic(fmt.Sprintf("nutrition registry: %v", err))
	}

	lockedUnit = f.LockedUnit
	defaultPercent = decimal.RequireFromString(f.DefaultDeviationPercent)

	parametersByID = make(map[int64]NutritionParameter, len(f.Parameters))
	for _, row := range f.Parameters {
		p := NutritionParameter{
			ID:     row.ID,
			Name:   row.Name,
			Group:  ParameterGroup(row.Group),
			Policy: DeviationPolicy(row.Policy),
		}
		if row.Threshold != "" {
			p.Threshold = decimal.RequireFromString(row.Threshold)
		}
		if row.LowAbs != "" {
			p.LowAbs = decimal.RequireFromString(row.LowAbs)
		}
		if row.HighAbs != "" {
			p.HighAbs = decimal.RequireFromString(row.HighAbs)
		}
		parameters = append(parameters, p)
		parametersByID[p.ID] = p
	}
}

// LockedUnit is the unit locked-group parameters always report in.
func LockedUnit() string {
	registryOnce.Do(loadRegistry)
	return lockedUnit
}

// DefaultDeviationPercent is the fallback relative tolerance applied
// when a percent-policy parameter has no explicit deviation.
func DefaultDeviationPercent() decimal.Decimal {
	registryOnce.Do(loadRegistry)
	return defaultPercent
}

// NutritionParameters returns the registry rows in display order.
func NutritionParameters() []NutritionParameter {
	registryOnce.Do(loadRegistry)
	out := make([]NutritionParameter, len(parameters))
	copy(out, parameters)
	return out
}

// LookupNutritionParameter finds a registry row by parametertype id.
func LookupNutritionParameter(id int64) (NutritionParameter, bool) {
	registryOnce.Do(loadRegistry)
	p, ok := parametersByID[id]
	return p, ok
}

// FixedDeviation computes the parameter's registry-defined tolerance
// for a target. Only meaningful for energy, piecewise and threshold
// policies; percent policies need a caller-supplied percentage.
func (p NutritionParameter) FixedDeviation(target decimal.Decimal) decimal.Decimal {
	switch p.Policy {
	case PolicyEnergy:
		return EnergyDeviation(target)
	case PolicyPiecewise:
		return PiecewiseDeviation(target, p.LowAbs, p.HighAbs)
	case PolicyThreshold:
		return ThresholdDeviation(target, p.Threshold, p.LowAbs)
	default:
		return EnergyDeviation(target)
	}
}
