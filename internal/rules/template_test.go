package rules

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillInternalLabTemplate(t *testing.T) {
	doc := decodeDoc(t, `{"rules": [
		{"action": "create", "data": {"parametertype_id": 11194, "spec_id": 1, "value": 0, "DDF_target_value": 0}},
		{"action": "create", "data": {"parametertype_id": 11194, "spec_id": 1, "value": 0, "DDF_target_value": 0}},
		{"action": "create", "data": {"parametertype_id": 11196, "spec_id": 1, "value": 0, "DDF_target_value": 0}},
		{"action": "create", "data": {"parametertype_id": 11196, "spec_id": 1, "value": 0, "DDF_target_value": 0}}
	]}`)

	targets := []decimal.Decimal{d(t, "0.55"), d(t, "8")}
	require.NoError(t, FillInternalLabTemplate(doc, 3001, targets))

	// Both rules of a pair carry the pair's target.
	for i, want := range []string{"0.55", "0.55", "8", "8"} {
		data := ruleData(t, doc, i)
		assert.Equal(t, json.Number("3001"), data["spec_id"], "rule %d", i)
		assert.Equal(t, json.Number(want), data["value"], "rule %d", i)
		assert.Equal(t, json.Number(want), data["DDF_target_value"], "rule %d", i)
	}
}

func TestFillInternalLabTemplateErrors(t *testing.T) {
	odd := decodeDoc(t, `{"rules": [{"data": {}}]}`)
	err := FillInternalLabTemplate(odd, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pairs")

	even := decodeDoc(t, `{"rules": [{"data": {}}, {"data": {}}]}`)
	err = FillInternalLabTemplate(even, 1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match parameter count")

	err = FillInternalLabTemplate(even, 0, []decimal.Decimal{d(t, "1")})
	assert.Error(t, err)

	noRules := Document{"specs": []any{}}
	err = FillInternalLabTemplate(noRules, 1, nil)
	assert.Error(t, err)
}

func TestParseTargetList(t *testing.T) {
	got, err := ParseTargetList("[0.55, 2, 0.85, 90]")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.True(t, got[0].Equal(d(t, "0.55")))
	assert.True(t, got[3].Equal(d(t, "90")))

	// Brackets are optional, stray commas are ignored.
	got, err = ParseTargetList("1, 2,")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = ParseTargetList("[]")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseTargetList("[1, two]")
	assert.Error(t, err)
}
