package numparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocaleFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.500,2", "1500.2"}, // EU thousands + decimal comma
		{"1,500.2", "1500.2"}, // US thousands + decimal point
		{"1.500", "1500"},     // dot + 3 digits is thousands
		{"1,500", "1500"},     // comma + 3 digits is thousands
		{"1,5", "1.5"},        // decimal comma
		{"1.25", "1.25"},      // plain decimal point
		{"12", "12"},
		{"-3,5", "-3.5"},
		{"+7", "7"},
		{"1 500,25", "1500.25"}, // embedded spaces stripped
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.NotNil(t, got.Value, tc.in)
		assert.Equal(t, tc.want, got.Value.String(), tc.in)
	}
}

func TestParseUnitSuffix(t *testing.T) {
	got, err := Parse("200mg")
	require.NoError(t, err)
	require.NotNil(t, got.Value)
	assert.Equal(t, "200", got.Value.String())
	assert.Equal(t, "mg", got.Unit)
	assert.True(t, got.HadUnitText)

	got, err = Parse("1,5 g/kg")
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.Value.String())
	assert.Equal(t, "g/kg", got.Unit)

	// Units containing digits are not recognized as unit suffixes.
	_, err = Parse("1,5 g/100g")
	assert.Error(t, err)

	got, err = Parse("95 %")
	require.NoError(t, err)
	assert.Equal(t, "95", got.Value.String())
	assert.Equal(t, "%", got.Unit)
}

func TestParseBlankIsNil(t *testing.T) {
	got, err := Parse("")
	require.NoError(t, err)
	assert.Nil(t, got.Value)
	assert.False(t, got.HadUnitText)

	got, err = Parse("   ")
	require.NoError(t, err)
	assert.Nil(t, got.Value)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("abc")
	assert.Error(t, err)

	_, err = Parse("12..3,,4.")
	assert.Error(t, err)
}
