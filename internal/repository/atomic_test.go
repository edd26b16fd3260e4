package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limsrules/pkg/schema"
)

func TestSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rules.json")

	payload := map[string]any{"rules": []any{
		map[string]any{"action": "create", "data": map[string]any{"operator": "<=", "spec_id": 7}},
	}}
	require.NoError(t, SaveJSON(path, payload))

	doc, err := LoadRulesDocument(path)
	require.NoError(t, err)
	items, err := doc.Items()
	require.NoError(t, err)
	assert.Len(t, items, 1)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Operators survive unescaped and the file is pretty printed with a
	// trailing newline.
	assert.Contains(t, string(raw), `"operator": "<="`)
	assert.NotContains(t, string(raw), `\u003c`)
	assert.True(t, len(raw) > 0 && raw[len(raw)-1] == '\n')

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadRulesDocumentErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRulesDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{broken"), 0644))
	_, err = LoadRulesDocument(bad)
	assert.Error(t, err)

	noList := filepath.Join(dir, "nolist.json")
	require.NoError(t, os.WriteFile(noList, []byte(`{"specs": []}`), 0644))
	_, err = LoadRulesDocument(noList)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'rules' list")

	_, err = LoadSpecsDocument(noList)
	assert.NoError(t, err)
}

func TestSaveJSONSchemaPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")

	r := schema.Rule{
		Color:           schema.ColorGreen,
		Column:          schema.Int64(0),
		DDFType:         schema.TypePerfect,
		Inverse:         schema.Int64(0),
		Operator:        schema.OpLessEqual,
		ParametertypeID: schema.Int64(5239),
		Show:            schema.Int64(1),
		SpecID:          schema.Int64(7),
		Value:           schema.Val(schema.IntValue(3)),
	}
	payload := schema.RulesPayload{Rules: []schema.ActionRule{{Action: schema.ActionCreate, Data: r}}}
	require.NoError(t, SaveJSON(path, payload))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// Nullable fields are written as explicit nulls.
	assert.Contains(t, string(raw), `"regex_filter": null`)
	assert.Contains(t, string(raw), `"DDF_target_value": null`)
}

func TestUniqueOutPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")

	assert.Equal(t, path, UniqueOutPath(path))

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	first := UniqueOutPath(path)
	assert.Equal(t, filepath.Join(dir, "rules_1.json"), first)

	require.NoError(t, os.WriteFile(first, []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, "rules_2.json"), UniqueOutPath(path))
}

func TestDefaultOutPaths(t *testing.T) {
	assert.Equal(t, filepath.Join("x", "Rules_spec789.json"),
		DefaultSpecIDOutPath(filepath.Join("x", "Rules.json"), 789))
	assert.Equal(t, filepath.Join("x", "Rules_unit_g100g.json"),
		DefaultUnitOutPath(filepath.Join("x", "Rules.json"), "g/100g"))
	assert.Equal(t, filepath.Join("x", "Rules_data_show_1.json"),
		DefaultKeyOutPath(filepath.Join("x", "Rules.json"), "data.show", "1"))
}

func TestTimestampedName(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 12, 59, 0, time.UTC)
	assert.Equal(t, "Rules_Exim_4906_20260831_1412.json", TimestampedName("Rules_Exim", 4906, now))
}
