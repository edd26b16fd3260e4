// Package bands implements the numeric banding policies that map a
// parameter's target value onto threshold boundaries. All functions are
// pure; callers are expected to reject negative targets before calling.
package bands

import (
	"github.com/shopspring/decimal"
)

// Fixed band multipliers. Documented constants rather than inline
// literals so the formulas read like the lab's banding tables.
var (
	factorLowOK       = decimal.RequireFromString("0.80")
	factorLowPerfect  = decimal.RequireFromString("0.90")
	factorHighPerfect = decimal.RequireFromString("1.25")
	factorHighOK      = decimal.RequireFromString("1.50")
	factorHighMineral = decimal.RequireFromString("1.45")
	factorLimit3      = decimal.RequireFromString("0.30")
)

// Bands holds the four boundaries of an active-style band layout,
// ordered low to high.
type Bands struct {
	LowOK       decimal.Decimal
	LowPerfect  decimal.Decimal
	HighPerfect decimal.Decimal
	HighOK      decimal.Decimal
}

// Active computes the 4-band active-ingredient boundaries
// 0.80T / 0.90T / 1.25T / 1.50T, quantized to 2 decimal places.
func Active(target decimal.Decimal) Bands {
	return Bands{
		LowOK:       Quantize2(target.Mul(factorLowOK)),
		LowPerfect:  Quantize2(target.Mul(factorLowPerfect)),
		HighPerfect: Quantize2(target.Mul(factorHighPerfect)),
		HighOK:      Quantize2(target.Mul(factorHighOK)),
	}
}

// Mineral computes the mineral boundaries: same as Active with the
// upper OK ceiling at 1.45T.
func Mineral(target decimal.Decimal) Bands {
	b := Active(target)
	b.HighOK = Quantize2(target.Mul(factorHighMineral))
	return b
}

// Limit3Threshold computes the perfect ceiling 0.30T of the 3-band
// limit mode, quantized to 2 decimal places.
func Limit3Threshold(target decimal.Decimal) decimal.Decimal {
	return Quantize2(target.Mul(factorLimit3))
}

// Quantize2 rounds to 2 decimal places with half-up semantics.
func Quantize2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Quantize4 rounds to 4 decimal places with half-up semantics. Used by
// the nutrition and internal-lab deviation policies.
func Quantize4(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// ClampZero raises negative bounds to exactly 0. Measured quantities
// cannot be negative, so a lower bound below zero is meaningless.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
