package option

import (
	"fmt"
	"math"

	"numericalfinance/binomial"
)

// European values options that can only be exercised at maturity. The
// engine shares its model read-only with any other engine built on it.
type European struct {
	model binomial.Model
}

// NewEuropean returns a European valuation engine on the given model.
func NewEuropean(m binomial.Model) *European { return &European{model: m} }

// Price returns the discounted risk-neutral expectation of the payoff at
// maturity. No recursion is needed: there is no path dependency, so a
// single probability-weighted average over the maturity slice suffices.
// Any Model prices this way, including the simulated lattice.
func (e *European) Price(payoff Payoff, maturity int) (float64, error) {
	underlying, err := e.model.ValuesAt(maturity)
	if err != nil {
		return 0, err
	}
	payoffs, err := evalPayoff(payoff, underlying)
	if err != nil {
		return 0, err
	}
	return e.model.DiscountedExpectationAt(maturity, payoffs)
}

// Values returns the full triangular grid of option values over
// 0 <= time <= maturity, computed by backward induction. Entry (0, 0)
// agrees with Price to numeric tolerance.
func (e *European) Values(payoff Payoff, maturity int) (*binomial.Grid, error) {
	return backwardInduction(e.model, payoff, maturity,
		func(_ int, _, payoff float64) float64 { return payoff },
		func(_, _ int, _, continuation float64) float64 { return continuation },
	)
}

// Strategy returns the self-financing replication strategy: the amounts to
// hold in the risky asset and in the risk-free asset at every node over
// 0 <= time < maturity. At node (t, j) the risky amount is the discrete
// delta (Vup - Vdown) / (Sup - Sdown) and the risk-free amount solves the
// remaining replication equation, so that
//
//	risky*S(t+1,j) + free*(1+rho) = V(t+1,j)
//
// at both successors. Coinciding successor values make the delta's
// denominator vanish and surface as ErrArithmetic.
func (e *European) Strategy(payoff Payoff, maturity int) (risky, riskFree *binomial.Grid, err error) {
	params := e.model.Parameters()
	if maturity < 1 || maturity > params.Steps {
		return nil, nil, fmt.Errorf("%w: maturity %d not in [1, %d]", binomial.ErrIndexOutOfRange, maturity, params.Steps)
	}
	values, err := e.Values(payoff, maturity)
	if err != nil {
		return nil, nil, err
	}
	growth := 1 + params.InterestRate

	risky = binomial.NewGrid(maturity - 1)
	riskFree = binomial.NewGrid(maturity - 1)
	for t := maturity - 1; t >= 0; t-- {
		next, err := triangularValuesAt(e.model, t+1)
		if err != nil {
			return nil, nil, err
		}
		for j := 0; j <= t; j++ {
			vUp, vDown := values.At(t+1, j), values.At(t+1, j+1)
			sUp, sDown := next[j], next[j+1]
			spread := sUp - sDown
			if spread == 0 || math.IsNaN(spread) {
				return nil, nil, fmt.Errorf("%w: equal successor values %v at time %d", ErrArithmetic, sUp, t+1)
			}
			delta := (vUp - vDown) / spread
			risky.Set(t, j, delta)
			riskFree.Set(t, j, (vUp-delta*sUp)/growth)
		}
	}
	return risky, riskFree, nil
}
