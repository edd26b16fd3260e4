package schema

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueMarshalNumber(t *testing.T) {
	v := NumberValue(decimal.RequireFromString("10.80"))
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "10.8", string(data))
}

func TestValueMarshalString(t *testing.T) {
	v := StringValue("negative")
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"negative"`, string(data))
}

func TestValueDummySentinel(t *testing.T) {
	v := StringValue(DummyValue)
	require.True(t, v.IsDummy())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	// The sentinel is a string containing two quote characters.
	assert.Equal(t, `"\"\""`, string(data))

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.IsDummy())
}

func TestValueLiteralRoundTrip(t *testing.T) {
	// A literal like 1.50 must survive decode/encode unchanged.
	for _, literal := range []string{"1.50", "0", "-3.2", "1500.2", "1e3"} {
		var v Value
		require.NoError(t, json.Unmarshal([]byte(literal), &v))
		out, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, literal, string(out))
	}
}

func TestValueUnmarshalRejectsOther(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
}

func TestValueEqualSemantic(t *testing.T) {
	var a, b Value
	require.NoError(t, json.Unmarshal([]byte("1.50"), &a))
	require.NoError(t, json.Unmarshal([]byte("1.5"), &b))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(StringValue("1.50")))
}
