package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	segs, err := SplitPath("data.spec_id")
	require.NoError(t, err)
	assert.Equal(t, []string{"data", "spec_id"}, segs)

	segs, err = SplitPath("action")
	require.NoError(t, err)
	assert.Equal(t, []string{"action"}, segs)

	// Empty segments are dropped.
	segs, err = SplitPath("data..DDF_unit")
	require.NoError(t, err)
	assert.Equal(t, []string{"data", "DDF_unit"}, segs)

	_, err = SplitPath("")
	assert.Error(t, err)
	_, err = SplitPath("...")
	assert.Error(t, err)
}

func TestGetByPath(t *testing.T) {
	obj := map[string]any{
		"data": map[string]any{"spec_id": int64(7), "DDF_unit": nil},
	}

	assert.Equal(t, int64(7), GetByPath(obj, []string{"data", "spec_id"}))
	assert.Nil(t, GetByPath(obj, []string{"data", "DDF_unit"}))
	assert.Nil(t, GetByPath(obj, []string{"data", "missing"}))
	assert.Nil(t, GetByPath(obj, []string{"data", "spec_id", "deeper"}))
	assert.Nil(t, GetByPath("scalar", []string{"data"}))
}

func TestSetByPath(t *testing.T) {
	obj := map[string]any{}

	SetByPath(obj, []string{"data", "meta", "source"}, "manual")
	data, ok := obj["data"].(map[string]any)
	require.True(t, ok)
	meta, ok := data["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "manual", meta["source"])

	// A scalar in the way is replaced by an object.
	obj["data"] = "scalar"
	SetByPath(obj, []string{"data", "spec_id"}, int64(9))
	data, ok = obj["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(9), data["spec_id"])
}
