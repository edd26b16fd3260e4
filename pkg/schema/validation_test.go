package schema

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limsrules/internal/core"
)

func TestValidateIDs(t *testing.T) {
	assert.NoError(t, ValidateParameterID(5239))
	assert.NoError(t, ValidateSpecID(1029))

	var verr *core.ValidationError
	err := ValidateParameterID(0)
	require.Error(t, err)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "parametertype_id", verr.Field)

	err = ValidateSpecID(-3)
	require.Error(t, err)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "spec_id", verr.Field)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestValidateDeviationPercent(t *testing.T) {
	assert.NoError(t, ValidateDeviationPercent(decimal.NewFromInt(10)))
	assert.NoError(t, ValidateDeviationPercent(decimal.NewFromInt(50)))

	var verr *core.ValidationError
	err := ValidateDeviationPercent(decimal.NewFromInt(60))
	require.Error(t, err)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "deviation_percent", verr.Field)

	assert.Error(t, ValidateDeviationPercent(decimal.NewFromInt(-1)))
}
