package repository

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NullIfBlankOrLiteralNull maps "", and "null" in any casing, to nil.
// Anything else comes back as the trimmed string.
func NullIfBlankOrLiteralNull(value string) *string {
	s := strings.TrimSpace(value)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	return &s
}

// ToInt parses a cell as an integer, tolerating float spellings like
// "3.0" by truncating. Blank, "null" and unparseable cells yield nil.
func ToInt(value string) *int64 {
	s := NullIfBlankOrLiteralNull(value)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	n := int64(f)
	return &n
}

// ToNumberOrKeep parses a cell as a number when it looks like one,
// keeping the original string otherwise. Blank and "null" yield nil.
// Numbers come back as json.Number so the literal survives encoding.
func ToNumberOrKeep(value string) any {
	s := NullIfBlankOrLiteralNull(value)
	if s == nil {
		return nil
	}
	if isIntegerLiteral(*s) {
		return json.Number(*s)
	}
	if f, err := strconv.ParseFloat(*s, 64); err == nil {
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return *s
}

// isIntegerLiteral reports whether s is all digits, with an optional
// leading minus sign.
func isIntegerLiteral(s string) bool {
	digits := strings.TrimPrefix(s, "-")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
