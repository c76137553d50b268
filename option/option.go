// Package option values derivative contracts on a binomial lattice by
// backward induction. Three engines share the same recursion: European (no
// early exercise), American (early-exercise comparison at every node) and
// KnockOut (value extinguished outside a barrier interval). The European
// engine also extracts the self-financing replication strategy in the risky
// and risk-free instruments.
package option

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrPayoff reports a caller-supplied payoff function returning NaN.
	ErrPayoff = errors.New("option: payoff evaluation failed")
	// ErrArithmetic reports a degenerate denominator during strategy
	// extraction (coinciding successor values, u = d).
	ErrArithmetic = errors.New("option: degenerate lattice arithmetic")
)

// Payoff maps an underlying value to the amount the option pays.
type Payoff func(underlying float64) float64

// Call returns the payoff of a plain call, max(x-strike, 0).
func Call(strike float64) Payoff {
	return func(x float64) float64 { return math.Max(x-strike, 0) }
}

// Put returns the payoff of a plain put, max(strike-x, 0).
func Put(strike float64) Payoff {
	return func(x float64) float64 { return math.Max(strike-x, 0) }
}

// evalPayoff applies the payoff to every value, surfacing a NaN result as
// ErrPayoff since it indicates a defect in the caller-supplied function.
// A panic inside the payoff propagates untouched.
func evalPayoff(payoff Payoff, values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, s := range values {
		v := payoff(s)
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: NaN at underlying value %v", ErrPayoff, s)
		}
		out[i] = v
	}
	return out, nil
}

// Bound is an optional barrier level. The zero value is unbounded, so a
// missing bound never depends on a floating-point infinity comparison.
type Bound struct {
	value float64
	set   bool
}

// NoBound returns the unbounded Bound.
func NoBound() Bound { return Bound{} }

// BoundAt returns a Bound fixed at the given level.
func BoundAt(level float64) Bound { return Bound{value: level, set: true} }

// Barrier is an open interval outside of which a knock-out option is
// worthless. Either side may be unbounded.
type Barrier struct {
	Lower Bound
	Upper Bound
}

// NoBarrier returns the barrier that never knocks out, which reduces the
// knock-out engine to the plain European one.
func NoBarrier() Barrier { return Barrier{} }

// Contains reports whether x lies strictly inside the barrier interval.
func (b Barrier) Contains(x float64) bool {
	if b.Lower.set && x <= b.Lower.value {
		return false
	}
	if b.Upper.set && x >= b.Upper.value {
		return false
	}
	return true
}
