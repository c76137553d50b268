package option

import (
	"fmt"
	"math"

	"numericalfinance/binomial"
)

// American values options that may be exercised at any node. Each node
// compares the exercise value against the discounted continuation value and
// realizes the larger, with ties resolved in favor of exercise; exercise is
// forced at maturity.
type American struct {
	model binomial.Model
}

// NewAmerican returns an American valuation engine on the given model.
func NewAmerican(m binomial.Model) *American { return &American{model: m} }

// Price returns the option value at time 0. Only a rolling slice of the
// next time's values is kept, since the full grids are not needed for the
// price alone.
func (a *American) Price(payoff Payoff, maturity int) (float64, error) {
	params := a.model.Parameters()
	if maturity < 0 || maturity > params.Steps {
		return 0, fmt.Errorf("%w: maturity %d not in [0, %d]", binomial.ErrIndexOutOfRange, maturity, params.Steps)
	}
	q := params.RiskNeutralUpProbability()
	growth := 1 + params.InterestRate

	underlying, err := triangularValuesAt(a.model, maturity)
	if err != nil {
		return 0, err
	}
	values, err := evalPayoff(payoff, underlying)
	if err != nil {
		return 0, err
	}
	for t := maturity - 1; t >= 0; t-- {
		underlying, err = triangularValuesAt(a.model, t)
		if err != nil {
			return 0, err
		}
		exercise, err := evalPayoff(payoff, underlying)
		if err != nil {
			return 0, err
		}
		next := values
		values = values[:t+1]
		for j := 0; j <= t; j++ {
			continuation := (q*next[j] + (1-q)*next[j+1]) / growth
			if exercise[j] >= continuation {
				values[j] = exercise[j]
			} else {
				values[j] = continuation
			}
		}
	}
	return values[0], nil
}

// Analysis holds the full early-exercise picture over the triangular
// domain: the option value, the exercise value, the continuation value, and
// whether exercising won at each node. Inspecting Exercised row by row
// reveals the early-exercise boundary.
type Analysis struct {
	Value        *binomial.Grid
	Exercise     *binomial.Grid
	Continuation *binomial.Grid
	Exercised    *binomial.BoolGrid
}

// Analyse computes all four grids. Value(0, 0) equals Price for the same
// payoff and maturity.
func (a *American) Analyse(payoff Payoff, maturity int) (*Analysis, error) {
	if maturity < 0 || maturity > a.model.Parameters().Steps {
		return nil, fmt.Errorf("%w: maturity %d not in [0, %d]", binomial.ErrIndexOutOfRange, maturity, a.model.Parameters().Steps)
	}
	analysis := &Analysis{
		Exercise:     binomial.NewGrid(maturity),
		Continuation: binomial.NewGrid(maturity),
		Exercised:    binomial.NewBoolGrid(maturity),
	}
	var evalErr error
	value, err := backwardInduction(a.model, payoff, maturity,
		func(downs int, _, payoff float64) float64 {
			// Exercise is forced at maturity.
			analysis.Exercise.Set(maturity, downs, payoff)
			analysis.Continuation.Set(maturity, downs, payoff)
			analysis.Exercised.Set(maturity, downs, true)
			return payoff
		},
		func(timeIndex, downs int, underlying, continuation float64) float64 {
			exercise := payoff(underlying)
			if math.IsNaN(exercise) && evalErr == nil {
				evalErr = fmt.Errorf("%w: NaN at underlying value %v", ErrPayoff, underlying)
			}
			analysis.Exercise.Set(timeIndex, downs, exercise)
			analysis.Continuation.Set(timeIndex, downs, continuation)
			if exercise >= continuation {
				analysis.Exercised.Set(timeIndex, downs, true)
				return exercise
			}
			return continuation
		},
	)
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, evalErr
	}
	analysis.Value = value
	return analysis, nil
}
