package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "rules.csv", "\ufeffspec_id; value ;DDF_unit\n1029; 10.8 ;mg\n;;\n2048;9.6;\n")

	table, err := ReadCSV(path, ';')
	require.NoError(t, err)

	// BOM stripped, headers trimmed.
	assert.Equal(t, []string{"spec_id", "value", "DDF_unit"}, table.Headers)

	// Blank row skipped, cells trimmed, short rows padded with blanks.
	require.Len(t, table.Rows, 2)
	assert.Equal(t, Row{"spec_id": "1029", "value": "10.8", "DDF_unit": "mg"}, table.Rows[0])
	assert.Equal(t, Row{"spec_id": "2048", "value": "9.6", "DDF_unit": ""}, table.Rows[1])
}

func TestReadCSVEmptyFile(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")
	_, err := ReadCSV(path, ';')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), ';')
	assert.Error(t, err)
}

func TestMergeCSVsDeduplicates(t *testing.T) {
	a := writeCSV(t, "a.csv", "spec_id;value\n1;x\n2;y\n")
	b := writeCSV(t, "b.csv", "spec_id;value\n2;y\n3;z\n")

	rows, warnings, err := MergeCSVs([]string{a, b}, ';', "rules")
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[0]["spec_id"])
	assert.Equal(t, "2", rows[1]["spec_id"])
	assert.Equal(t, "3", rows[2]["spec_id"])
}

func TestMergeCSVsColumnOrderWarns(t *testing.T) {
	a := writeCSV(t, "a.csv", "spec_id;value\n1;x\n")
	b := writeCSV(t, "b.csv", "value;spec_id\ny;2\n")

	rows, warnings, err := MergeCSVs([]string{a, b}, ';', "rules")
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "column order differs")
	assert.Len(t, rows, 2)
}

func TestMergeCSVsColumnSetMismatchFails(t *testing.T) {
	a := writeCSV(t, "a.csv", "spec_id;value\n1;x\n")
	b := writeCSV(t, "b.csv", "spec_id;other\n2;y\n")

	_, _, err := MergeCSVs([]string{a, b}, ';', "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible columns")
}

func TestMergeCSVsCaseInsensitiveHeaders(t *testing.T) {
	a := writeCSV(t, "a.csv", "Spec_ID;Value\n1;x\n")
	b := writeCSV(t, "b.csv", "spec_id;value\n2;y\n")

	_, warnings, err := MergeCSVs([]string{a, b}, ';', "specs")
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestMergeCSVsNoPaths(t *testing.T) {
	rows, warnings, err := MergeCSVs(nil, ';', "rules")
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.Nil(t, warnings)
}
