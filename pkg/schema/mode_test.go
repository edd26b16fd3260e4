package schema

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return &d
}

func TestParseModeKeywords(t *testing.T) {
	target := dec(t, "12")

	for keyword, want := range map[string]string{
		"active":    "active",
		" Mineral ": "mineral",
		"LIMIT3":    "limit3",
		"limit2":    "limit2",
	} {
		m, err := ParseMode(keyword, target, "mg/kg", "", "")
		require.NoError(t, err, keyword)
		assert.Equal(t, want, m.Name())
	}
}

func TestParseModeDummyNeedsNothing(t *testing.T) {
	m, err := ParseMode("dummy", nil, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "dummy", m.Name())
}

func TestParseModeRequiresTarget(t *testing.T) {
	for _, keyword := range []string{"active", "mineral", "limit3", "limit2", "qualitative"} {
		_, err := ParseMode(keyword, nil, "", "en", "de")
		assert.Error(t, err, keyword)
	}
}

func TestParseModeRejectsNegativeTarget(t *testing.T) {
	_, err := ParseMode("active", dec(t, "-1"), "", "", "")
	assert.Error(t, err)
}

func TestParseModeQualitativeNeedsTexts(t *testing.T) {
	target := dec(t, "1")

	_, err := ParseMode("qualitative", target, "", "negative", "")
	assert.Error(t, err)
	_, err = ParseMode("qualitative", target, "", "", "negativ")
	assert.Error(t, err)

	m, err := ParseMode("qualitative", target, "", "negative", "negativ")
	require.NoError(t, err)
	q, ok := m.(QualitativeMode)
	require.True(t, ok)
	assert.Equal(t, "negative", q.TextEN)
	assert.Equal(t, "negativ", q.TextDE)
}

func TestParseModeUnknown(t *testing.T) {
	_, err := ParseMode("banded", dec(t, "1"), "", "", "")
	assert.Error(t, err)
}
