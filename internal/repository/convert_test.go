package repository

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limsrules/pkg/schema"
)

func TestBuildRulesExport(t *testing.T) {
	rows := []Row{{
		"color":            "green",
		"column":           "0.0",
		"DDF_target_value": "12",
		"DDF_type":         "perfect",
		"DDF_unit":         "null",
		"inverse":          "0",
		"linker":           "AND",
		"operator":         ">=",
		"operator2":        "<=",
		"parametertype_id": "5587",
		"regex_filter":     "",
		"show":             "1",
		"spec_id":          "1029",
		"text":             "",
		"translations":     "NULL",
		"value":            "10.8",
		"value2":           "15",
	}}

	payload := BuildRulesExport(rows)
	require.Len(t, payload.Rules, 1)
	r := payload.Rules[0].Data

	assert.Equal(t, schema.ColorGreen, r.Color)
	require.NotNil(t, r.Column)
	assert.EqualValues(t, 0, *r.Column)
	require.NotNil(t, r.ParametertypeID)
	assert.EqualValues(t, 5587, *r.ParametertypeID)
	assert.Nil(t, r.DDFUnit)
	assert.Nil(t, r.RegexFilter)
	assert.Nil(t, r.Text)
	assert.Nil(t, r.Translations)
	require.NotNil(t, r.Linker)
	assert.Equal(t, schema.LinkerAnd, *r.Linker)
	require.NotNil(t, r.Operator2)
	assert.Equal(t, schema.OpLessEqual, *r.Operator2)

	// value is typed as a number, value2 and the target stay strings.
	require.NotNil(t, r.Value)
	n, ok := r.Value.Number()
	require.True(t, ok)
	assert.Equal(t, json.Number("10.8"), n)
	require.NotNil(t, r.Value2)
	assert.True(t, r.Value2.IsString())
	require.NotNil(t, r.DDFTargetValue)
	assert.True(t, r.DDFTargetValue.IsString())
}

func TestBuildRulesExportKeepsTextValue(t *testing.T) {
	payload := BuildRulesExport([]Row{{"value": "negative"}})
	require.Len(t, payload.Rules, 1)
	v := payload.Rules[0].Data.Value
	require.NotNil(t, v)
	s, ok := v.String()
	require.True(t, ok)
	assert.Equal(t, "negative", s)
}

func TestBuildSpecsExport(t *testing.T) {
	payload := BuildSpecsExport([]Row{{
		"name":       "Magnesium Citrate Powder",
		"type":       "1",
		"status":     "1",
		"archiviert": "0",
		"order":      "",
	}})
	require.Len(t, payload.Specs, 1)
	s := payload.Specs[0].Data

	assert.Equal(t, schema.ActionCreate, payload.Specs[0].Action)
	assert.Nil(t, s.Order)
	require.NotNil(t, s.Translations)

	// Translations is a JSON string embedding the spec name.
	tr, err := schema.DecodeSpecTranslations(*s.Translations)
	require.NoError(t, err)
	en, ok := tr["en"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Magnesium Citrate Powder", en["name"])
}

func TestConvertRulesLegacyKeyOrder(t *testing.T) {
	out := ConvertRulesLegacy([]Row{{
		"spec_id":          "100",
		"show":             "1",
		"column":           "0",
		"inverse":          "0",
		"parametertype_id": "5239",
		"value":            "1.5",
		"value2":           "negative",
		"DDF_type":         "perfect",
		"color":            "green",
		"operator":         "<=",
	}})

	raw, err := EncodeJSON(out)
	require.NoError(t, err)
	text := string(raw)

	// The older converter writes spec_id first and value before the DDF
	// columns.
	require.Contains(t, text, `"spec_id"`)
	assert.Less(t, strings.Index(text, `"spec_id"`), strings.Index(text, `"show"`))
	assert.Less(t, strings.Index(text, `"value"`), strings.Index(text, `"DDF_unit"`))
	assert.Less(t, strings.Index(text, `"color"`), strings.Index(text, `"operator"`))

	assert.Contains(t, text, `"value": 1.5`)
	assert.Contains(t, text, `"value2": "negative"`)
	assert.Contains(t, text, `"DDF_unit": null`)
}

func TestConvertSpecsLegacy(t *testing.T) {
	out := ConvertSpecsLegacy([]Row{{
		"name":       "Spec A",
		"type":       "1",
		"status":     "active",
		"archiviert": "",
	}})

	raw, err := EncodeJSON(out)
	require.NoError(t, err)
	text := string(raw)

	assert.Contains(t, text, `"type": 1`)
	assert.Contains(t, text, `"status": "active"`)
	assert.Contains(t, text, `"archiviert": null`)
	assert.Contains(t, text, `"translations": null`)
}

func TestConvertParamsSkipsExisting(t *testing.T) {
	out := ConvertParams([]Row{
		{"name": "New Param", "einheit": "mg", "translations_en_name": "New Param EN"},
		{"name": "Old Param", "existing": "yes"},
		{"name": "Also Old", "existing": " YES "},
	})

	items, ok := out["parametertypes"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	raw, err := EncodeJSON(items[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "New Param EN"`)
}

func TestConvertPackages(t *testing.T) {
	out := ConvertPackages([]Row{
		{"template_id": "12", "field": "5239"},
		{"template_id": "12", "field": "5444"},
	})

	items, ok := out["templatefields"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)

	raw, err := EncodeJSON(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"template_id": "12"`)
}
