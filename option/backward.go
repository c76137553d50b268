package option

import (
	"fmt"

	"numericalfinance/binomial"
)

// nodeRule maps a node's underlying value and discounted continuation value
// to the node's realized value. The three engine variants differ only in
// this step: plain assignment (European), max with the exercise value
// (American), or barrier masking (knock-out).
type nodeRule func(timeIndex, downs int, underlying, continuation float64) float64

// terminalRule maps a terminal node's underlying value and payoff to the
// terminal grid entry.
type terminalRule func(downs int, underlying, payoff float64) float64

// triangularValuesAt fetches the model's values at the given time and
// verifies the recombining shape the backward recursion relies on: exactly
// t+1 nodes ordered from all ups to all downs.
func triangularValuesAt(m binomial.Model, timeIndex int) ([]float64, error) {
	values, err := m.ValuesAt(timeIndex)
	if err != nil {
		return nil, err
	}
	if len(values) != timeIndex+1 {
		return nil, fmt.Errorf("%w: model is not a recombining lattice (%d values at time %d)",
			binomial.ErrInvalidParameters, len(values), timeIndex)
	}
	return values, nil
}

// backwardInduction runs the shared recursion: the terminal slice is the
// payoff at maturity (transformed by terminal), and each earlier node gets
// rule(t, j, S(t,j), (q V(t+1,j) + (1-q) V(t+1,j+1)) / (1+rho)). The
// returned grid holds, at (t, j), the option value at time t in time-t
// money; entry (0, 0) is the price.
func backwardInduction(m binomial.Model, payoff Payoff, maturity int, terminal terminalRule, rule nodeRule) (*binomial.Grid, error) {
	params := m.Parameters()
	if maturity < 0 || maturity > params.Steps {
		return nil, fmt.Errorf("%w: maturity %d not in [0, %d]", binomial.ErrIndexOutOfRange, maturity, params.Steps)
	}
	q := params.RiskNeutralUpProbability()
	growth := 1 + params.InterestRate

	grid := binomial.NewGrid(maturity)

	underlying, err := triangularValuesAt(m, maturity)
	if err != nil {
		return nil, err
	}
	payoffs, err := evalPayoff(payoff, underlying)
	if err != nil {
		return nil, err
	}
	for j := 0; j <= maturity; j++ {
		grid.Set(maturity, j, terminal(j, underlying[j], payoffs[j]))
	}

	for t := maturity - 1; t >= 0; t-- {
		underlying, err = triangularValuesAt(m, t)
		if err != nil {
			return nil, err
		}
		for j := 0; j <= t; j++ {
			continuation := (q*grid.At(t+1, j) + (1-q)*grid.At(t+1, j+1)) / growth
			grid.Set(t, j, rule(t, j, underlying[j], continuation))
		}
	}
	return grid, nil
}
