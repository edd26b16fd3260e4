package bands

import (
	"github.com/shopspring/decimal"
)

var (
	pctTwenty = decimal.RequireFromString("0.20")
	hundred   = decimal.RequireFromString("100")
	pieceLow  = decimal.RequireFromString("10")
	pieceHigh = decimal.RequireFromString("40")
)

// EnergyDeviation is the flat 20% tolerance applied to energy
// parameters regardless of magnitude.
func EnergyDeviation(target decimal.Decimal) decimal.Decimal {
	return target.Mul(pctTwenty)
}

// PiecewiseDeviation uses a fixed absolute tolerance at small targets,
// a relative 20% in the middle range, and a wider absolute tolerance at
// large targets: target < 10 yields lowAbs, target <= 40 yields 20% of
// target, anything above yields highAbs.
func PiecewiseDeviation(target, lowAbs, highAbs decimal.Decimal) decimal.Decimal {
	switch {
	case target.LessThan(pieceLow):
		return lowAbs
	case target.LessThanOrEqual(pieceHigh):
		return target.Mul(pctTwenty)
	default:
		return highAbs
	}
}

// ThresholdDeviation uses a fixed absolute tolerance below the
// threshold and 20% of target at or above it.
func ThresholdDeviation(target, threshold, lowAbs decimal.Decimal) decimal.Decimal {
	if target.LessThan(threshold) {
		return lowAbs
	}
	return target.Mul(pctTwenty)
}

// PercentDeviation is a simple relative tolerance: target * pct / 100.
func PercentDeviation(target, pct decimal.Decimal) decimal.Decimal {
	return target.Mul(pct).Div(hundred)
}

// Bounds turns a target and its deviation into the acceptance window
// [target-dev, target+dev], clamping the lower bound at zero and
// quantizing both ends to 4 decimal places.
func Bounds(target, deviation decimal.Decimal) (lower, upper decimal.Decimal) {
	lower = Quantize4(ClampZero(target.Sub(deviation)))
	upper = Quantize4(target.Add(deviation))
	return lower, upper
}
