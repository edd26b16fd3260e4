// Package numparse parses human-entered numeric strings that may carry
// EU or US thousands/decimal separators and a trailing unit suffix,
// e.g. "1.500,2", "1,500.2" or "200mg".
package numparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	inputRE      = regexp.MustCompile(`^\s*([+-]?[0-9][0-9.,\s]*)\s*([A-Za-zµ/%]+)?\s*$`)
	dotGroupRE   = regexp.MustCompile(`\.\d{3}$`)
	commaGroupRE = regexp.MustCompile(`,\d{3}$`)
)

// Parsed is the outcome of parsing one raw input cell.
type Parsed struct {
	// Value is nil when the input was blank.
	Value *decimal.Decimal
	// Unit is the stripped unit suffix, e.g. "mg", or "".
	Unit string
	// HadUnitText reports whether a unit suffix was removed.
	HadUnitText bool
}

// Parse reads a locale-tolerant number with an optional unit suffix.
// Blank input yields a Parsed with a nil Value and no error.
//
// When both separators appear, the earlier one is the thousands
// separator. A single separator followed by exactly three trailing
// digits is treated as a thousands separator; a lone comma otherwise
// is a decimal comma.
func Parse(raw string) (Parsed, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Parsed{}, nil
	}

	m := inputRE.FindStringSubmatch(s)
	if m == nil {
		return Parsed{}, fmt.Errorf("could not parse number format: %q", raw)
	}

	numPart := strings.ReplaceAll(m[1], " ", "")
	unitPart := strings.TrimSpace(m[2])
	hadUnit := unitPart != ""

	var normalized string
	dotIdx := strings.Index(numPart, ".")
	commaIdx := strings.Index(numPart, ",")
	switch {
	case dotIdx >= 0 && commaIdx >= 0:
		if dotIdx < commaIdx {
			normalized = strings.ReplaceAll(numPart, ".", "")
			normalized = strings.ReplaceAll(normalized, ",", ".")
		} else {
			normalized = strings.ReplaceAll(numPart, ",", "")
		}
	case dotIdx >= 0:
		if dotGroupRE.MatchString(numPart) {
			normalized = strings.ReplaceAll(numPart, ".", "")
		} else {
			normalized = numPart
		}
	case commaIdx >= 0:
		if commaGroupRE.MatchString(numPart) {
			normalized = strings.ReplaceAll(numPart, ",", "")
		} else {
			normalized = strings.ReplaceAll(numPart, ",", ".")
		}
	default:
		normalized = numPart
	}

	val, err := decimal.NewFromString(normalized)
	if err != nil {
		return Parsed{Unit: unitPart, HadUnitText: hadUnit}, fmt.Errorf("invalid numeric value: %q", raw)
	}

	return Parsed{Value: &val, Unit: unitPart, HadUnitText: hadUnit}, nil
}
