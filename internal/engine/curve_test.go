package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurveBounds(t *testing.T) {
	c, err := NewCurve(DefaultAlpha)
	require.NoError(t, err)

	zero, err := c.Eval(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, zero)

	limit, err := c.Eval(math.Inf(1))
	require.NoError(t, err)
	require.InDelta(t, 1.0, limit, 1e-12)
}

func TestCurveStrictlyIncreasing(t *testing.T) {
	c, err := NewCurve(DefaultAlpha)
	require.NoError(t, err)

	samples := []float64{0, 1, 250, 999, 1000, 1001, 2000, 10000}
	prev := -1.0
	for _, x := range samples {
		y, err := c.Eval(x)
		require.NoError(t, err)
		require.Greater(t, y, prev, "curve must increase at x=%v", x)
		require.Less(t, y, 1.0)
		prev = y
	}
}

// Far past the knee the exponential term underflows and the curve reaches
// 1.0 exactly; saturation is the expected outcome, not an overshoot.
func TestCurveSaturatesToOne(t *testing.T) {
	c, err := NewCurve(DefaultAlpha)
	require.NoError(t, err)

	y, err := c.Eval(1e6)
	require.NoError(t, err)
	require.Equal(t, 1.0, y)

	for _, x := range []float64{1e6, 1e9, math.MaxFloat64} {
		y, err := c.Eval(x)
		require.NoError(t, err)
		require.LessOrEqual(t, y, 1.0, "curve must never exceed 1 at x=%v", x)
	}
}

func TestCurveContinuousAtKnee(t *testing.T) {
	c, err := NewCurve(DefaultAlpha)
	require.NoError(t, err)

	below, err := c.Eval(math.Nextafter(1000, 0))
	require.NoError(t, err)
	at, err := c.Eval(1000)
	require.NoError(t, err)
	require.InDelta(t, below, at, 1e-9)
	require.InDelta(t, DefaultAlpha, at, 1e-12)
}

func TestCurveNegativeInput(t *testing.T) {
	c, err := NewCurve(DefaultAlpha)
	require.NoError(t, err)

	_, err = c.Eval(-1)
	require.ErrorIs(t, err, ErrCurveDomain)
}

func TestNewCurveRejectsAlphaOutsideUnitInterval(t *testing.T) {
	for _, alpha := range []float64{-0.5, 0, 1, 1.5} {
		_, err := NewCurve(alpha)
		require.ErrorIs(t, err, ErrCurveDomain, "alpha=%v", alpha)
	}
}
