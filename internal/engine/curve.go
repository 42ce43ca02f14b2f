package engine

import (
	"errors"
	"fmt"
	"math"
)

// DefaultAlpha is the fixed operating constant of the desirability curve.
const DefaultAlpha = 0.7

const float64Epsilon = 2.220446049250313e-16

var (
	// ErrCurveDomain indicates the curve was evaluated or configured outside
	// its valid input range.
	ErrCurveDomain = errors.New("curve domain error")

	// ErrDegenerateCurve indicates the curve's denominator term evaluates to
	// zero for the chosen alpha. Unreachable with DefaultAlpha, but checked
	// once at construction rather than per call.
	ErrDegenerateCurve = errors.New("degenerate curve configuration")
)

// Curve maps a held quantity onto [0, 1] with diminishing marginal value: a
// linear ramp up to 1000, then exponential saturation toward 1. Large inputs
// reach 1.0 exactly once the exponential term underflows.
type Curve struct {
	alpha float64
	beta  float64
}

// NewCurve validates alpha and precomputes the saturation coefficient.
func NewCurve(alpha float64) (*Curve, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("alpha %v outside valid region (0, 1): %w", alpha, ErrCurveDomain)
	}
	a := 1000 * (1 - alpha)
	if math.Abs(a) < float64Epsilon {
		return nil, fmt.Errorf("1000 * (1 - alpha) is zero for alpha %v: %w", alpha, ErrDegenerateCurve)
	}
	return &Curve{alpha: alpha, beta: alpha / a}, nil
}

// Eval computes the curve at x. Negative inputs are a domain error; the
// curve is strictly increasing on x >= 0 with Eval(0) = 0 and a limit of 1
// as x grows without bound.
func (c *Curve) Eval(x float64) (float64, error) {
	if x < 0 {
		return 0, fmt.Errorf("input %v outside valid region [0, +inf): %w", x, ErrCurveDomain)
	}
	if x < 1000 {
		return c.alpha * x / 1000, nil
	}
	return c.alpha + (1-c.alpha)*(1-math.Exp(-c.beta*(x-1000))), nil
}
