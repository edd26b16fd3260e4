package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"limsrules/internal/bands"
)

// RangeKind selects which banding layout the range summary describes.
type RangeKind string

const (
	RangeActive RangeKind = "active"
	RangeLimit  RangeKind = "limit"
)

// DescribeRanges renders the acceptance ranges around a target as
// human-readable lines, two decimal places throughout. A zero target
// collapses to the degenerate perfect/not-OK pair.
func DescribeRanges(kind RangeKind, target decimal.Decimal) ([]string, error) {
	if target.IsNegative() {
		return nil, fmt.Errorf("target must not be negative, got %s", target)
	}
	if target.IsZero() {
		return []string{
			"perfect_range: 0.00",
			"not_okay_range: > 0.00",
		}, nil
	}

	switch kind {
	case RangeActive:
		b := bands.Active(target)
		return []string{
			fmt.Sprintf("perfect_range: %s - %s", fmt2(b.LowPerfect), fmt2(b.HighPerfect)),
			fmt.Sprintf("okay_range: %s - %s", fmt2(b.LowOK), fmt2(b.LowPerfect)),
			fmt.Sprintf("okay_range_2: %s - %s", fmt2(b.HighPerfect), fmt2(b.HighOK)),
			fmt.Sprintf("not_okay_range: <%s OR >%s", fmt2(b.LowOK), fmt2(b.HighOK)),
		}, nil
	case RangeLimit:
		threshold := bands.Limit3Threshold(target)
		return []string{
			fmt.Sprintf("perfect_range: <= %s", fmt2(threshold)),
			fmt.Sprintf("okay_range: %s - %s", fmt2(threshold), fmt2(target)),
			fmt.Sprintf("not_okay_range: > %s", fmt2(target)),
		}, nil
	}
	return nil, fmt.Errorf("unsupported range type %q, use %q or %q", kind, RangeActive, RangeLimit)
}

func fmt2(d decimal.Decimal) string {
	return d.StringFixed(2)
}
