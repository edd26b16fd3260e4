package schema

import (
	"fmt"

	"github.com/shopspring/decimal"

	"limsrules/internal/core"
)

// ValidateParameterID validates a parametertype id.
func ValidateParameterID(id int64) error {
	if id <= 0 {
		return &core.ValidationError{
			Field:   "parametertype_id",
			Message: fmt.Sprintf("must be positive, got %d", id),
		}
	}
	return nil
}

// ValidateSpecID validates a spec id.
func ValidateSpecID(id int64) error {
	if id <= 0 {
		return &core.ValidationError{
			Field:   "spec_id",
			Message: fmt.Sprintf("must be positive, got %d", id),
		}
	}
	return nil
}

// ValidateDeviationPercent validates a nutrition deviation percentage.
func ValidateDeviationPercent(pct decimal.Decimal) error {
	if pct.LessThan(decimal.NewFromInt(DeviationPercentMin)) ||
		pct.GreaterThan(decimal.NewFromInt(DeviationPercentMax)) {
		return &core.ValidationError{
			Field: "deviation_percent",
			Message: fmt.Sprintf("must be between %d and %d, got %s",
				DeviationPercentMin, DeviationPercentMax, pct),
		}
	}
	return nil
}
