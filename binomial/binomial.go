// Package binomial models a discrete-time multiplicative price lattice.
//
// At every time step the underlying value is multiplied by an up factor u
// with risk-neutral probability q, or by a down factor d with probability
// 1-q, where q = ((1+rho)-d)/(u-d) and rho is the per-step risk-free rate.
// Two interchangeable constructions are provided: the exact combinatorial
// Lattice, which enumerates every reachable value with its analytic
// probability, and the MonteCarlo model, which simulates paths and serves
// as a cross-check of the exact method.
package binomial

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters reports a malformed lattice parameter set.
	ErrInvalidParameters = errors.New("binomial: invalid parameters")
	// ErrIndexOutOfRange reports a time index outside [0, Steps].
	ErrIndexOutOfRange = errors.New("binomial: time index out of range")
)

// Parameters holds the assumptions of the two-outcome multiplicative
// process. The risk-free asset grows by (1+InterestRate) per step.
type Parameters struct {
	InitialValue float64
	DownFactor   float64
	UpFactor     float64
	InterestRate float64
	Steps        int
}

// Validate rejects parameter sets that break the no-arbitrage ordering
// 0 < d < 1+rho < u, which is what keeps the risk-neutral probability
// inside [0, 1].
func (p Parameters) Validate() error {
	if p.InitialValue <= 0 {
		return fmt.Errorf("%w: initial value %v must be positive", ErrInvalidParameters, p.InitialValue)
	}
	if p.Steps < 1 {
		return fmt.Errorf("%w: number of time steps %d must be at least 1", ErrInvalidParameters, p.Steps)
	}
	growth := 1 + p.InterestRate
	if p.DownFactor <= 0 || p.DownFactor >= growth {
		return fmt.Errorf("%w: down factor %v must satisfy 0 < d < 1+rho = %v", ErrInvalidParameters, p.DownFactor, growth)
	}
	if p.UpFactor <= growth {
		return fmt.Errorf("%w: up factor %v must satisfy u > 1+rho = %v", ErrInvalidParameters, p.UpFactor, growth)
	}
	return nil
}

// RiskNeutralUpProbability returns q = ((1+rho)-d)/(u-d), the probability
// under which the discounted process is a martingale.
func (p Parameters) RiskNeutralUpProbability() float64 {
	return (1 + p.InterestRate - p.DownFactor) / (p.UpFactor - p.DownFactor)
}

// checkTimeIndex validates a time index against the final step.
func (p Parameters) checkTimeIndex(timeIndex int) error {
	if timeIndex < 0 || timeIndex > p.Steps {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, timeIndex, p.Steps)
	}
	return nil
}

// Model is the query surface shared by the combinatorial and the simulated
// lattice. A Model is immutable once constructed and safe for concurrent
// readers.
type Model interface {
	// Parameters returns the process assumptions.
	Parameters() Parameters

	// ValuesAt returns the realizations of the process at the given time,
	// ordered from all ups to all downs for the combinatorial lattice and
	// per simulated path for the Monte Carlo model.
	ValuesAt(timeIndex int) ([]float64, error)

	// ProbabilitiesAt returns the probability attached to each entry of
	// ValuesAt at the same time index.
	ProbabilitiesAt(timeIndex int) ([]float64, error)

	// DiscountedExpectationAt returns (1+rho)^(-timeIndex) times the
	// probability-weighted average of the supplied per-node values.
	DiscountedExpectationAt(timeIndex int, values []float64) (float64, error)

	// DiscountedAverageAt returns the discounted expected value of the
	// process itself at the given time.
	DiscountedAverageAt(timeIndex int) (float64, error)

	// GainProbabilityAt returns the percentage probability that the
	// discounted value of the process at the given time exceeds the
	// initial value.
	GainProbabilityAt(timeIndex int) (float64, error)
}
