package bands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestActiveBandsTarget12(t *testing.T) {
	b := Active(d(t, "12"))
	assert.True(t, b.LowOK.Equal(d(t, "9.6")), "low OK, got %s", b.LowOK)
	assert.True(t, b.LowPerfect.Equal(d(t, "10.8")), "low perfect, got %s", b.LowPerfect)
	assert.True(t, b.HighPerfect.Equal(d(t, "15")), "high perfect, got %s", b.HighPerfect)
	assert.True(t, b.HighOK.Equal(d(t, "18")), "high OK, got %s", b.HighOK)
}

func TestMineralBandsCeiling(t *testing.T) {
	b := Mineral(d(t, "12"))
	assert.True(t, b.HighOK.Equal(d(t, "17.4")), "got %s", b.HighOK)
	// Other bounds match the active layout.
	assert.True(t, b.LowOK.Equal(d(t, "9.6")))
	assert.True(t, b.LowPerfect.Equal(d(t, "10.8")))
	assert.True(t, b.HighPerfect.Equal(d(t, "15")))
}

func TestLimit3Threshold(t *testing.T) {
	assert.True(t, Limit3Threshold(d(t, "10")).Equal(d(t, "3")))
	// 0.30 * 0.125 = 0.0375 rounds half-up to 0.04.
	assert.True(t, Limit3Threshold(d(t, "0.125")).Equal(d(t, "0.04")))
}

func TestQuantizeHalfUp(t *testing.T) {
	assert.Equal(t, "0.05", Quantize2(d(t, "0.045")).String())
	assert.Equal(t, "1.2346", Quantize4(d(t, "1.23455")).String())
	assert.Equal(t, "2", Quantize2(d(t, "2.000")).String())
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(d(t, "-0.3")).IsZero())
	assert.True(t, ClampZero(d(t, "0.3")).Equal(d(t, "0.3")))
}

func TestDeviationPolicies(t *testing.T) {
	// Energy: flat 20%.
	assert.True(t, EnergyDeviation(d(t, "100")).Equal(d(t, "20")))

	// Piecewise 1.5/8: below 10, between, above 40.
	assert.True(t, PiecewiseDeviation(d(t, "5"), d(t, "1.5"), d(t, "8")).Equal(d(t, "1.5")))
	assert.True(t, PiecewiseDeviation(d(t, "20"), d(t, "1.5"), d(t, "8")).Equal(d(t, "4")))
	assert.True(t, PiecewiseDeviation(d(t, "40"), d(t, "1.5"), d(t, "8")).Equal(d(t, "8")))
	assert.True(t, PiecewiseDeviation(d(t, "41"), d(t, "1.5"), d(t, "8")).Equal(d(t, "8")))

	// Threshold 4/0.8: fixed below, 20% at and above.
	assert.True(t, ThresholdDeviation(d(t, "3"), d(t, "4"), d(t, "0.8")).Equal(d(t, "0.8")))
	assert.True(t, ThresholdDeviation(d(t, "4"), d(t, "4"), d(t, "0.8")).Equal(d(t, "0.8")))
	assert.True(t, ThresholdDeviation(d(t, "10"), d(t, "4"), d(t, "0.8")).Equal(d(t, "2")))

	// Percent.
	assert.True(t, PercentDeviation(d(t, "50"), d(t, "10")).Equal(d(t, "5")))
}

func TestBoundsClampAndQuantize(t *testing.T) {
	lower, upper := Bounds(d(t, "1"), d(t, "1.5"))
	assert.True(t, lower.IsZero(), "got %s", lower)
	assert.True(t, upper.Equal(d(t, "2.5")))

	lower, upper = Bounds(d(t, "0.33333"), d(t, "0.066666"))
	assert.Equal(t, "0.2667", lower.String())
	assert.Equal(t, "0.4", upper.String())
}
