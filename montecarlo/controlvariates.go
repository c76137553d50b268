package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"numericalfinance/analytic"
)

// ControlVariates prices a globally truncated Cliquet option using the
// untruncated sum of capped returns as the control: the control's exact
// price is a sum of Black-Scholes call spreads, and subtracting the
// control's Monte Carlo error, scaled by the optimal beta, from the target
// estimate removes the variance the two payoffs share.
type ControlVariates struct {
	Simulations int
	Intervals   int
	Maturity    float64
	LocalFloor  float64
	LocalCap    float64
	GlobalFloor float64
	GlobalCap   float64
	Sigma       float64
	Rate        float64
}

// AnalyticControlPrice returns the exact discounted price of the
// untruncated sum. Each period return contributes
// LocalFloor + call(1+LocalFloor) - call(1+LocalCap) in forward value, the
// calls being struck on a unit-spot asset over one period; the sum over all
// periods is then discounted from the Cliquet maturity.
func (cv ControlVariates) AnalyticControlPrice() float64 {
	periodMaturity := cv.Maturity / float64(cv.Intervals)
	periodDiscount := math.Exp(-cv.Rate * periodMaturity)
	lowerCall := analytic.CallPrice(1, cv.Rate, cv.Sigma, periodMaturity, 1+cv.LocalFloor) / periodDiscount
	upperCall := analytic.CallPrice(1, cv.Rate, cv.Sigma, periodMaturity, 1+cv.LocalCap) / periodDiscount
	forward := float64(cv.Intervals) * (cv.LocalFloor + lowerCall - upperCall)
	return math.Exp(-cv.Rate*cv.Maturity) * forward
}

// Price returns the control-variate estimate from one fresh set of
// simulated returns.
func (cv ControlVariates) Price(rng *rand.Rand) float64 {
	truncated := NewCliquet(cv.Maturity, cv.LocalFloor, cv.LocalCap).
		WithGlobalBounds(cv.GlobalFloor, cv.GlobalCap)
	control := NewCliquet(cv.Maturity, cv.LocalFloor, cv.LocalCap)

	generator := ReturnsGenerator{
		Simulations: cv.Simulations,
		Intervals:   cv.Intervals,
		Maturity:    cv.Maturity,
		Sigma:       cv.Sigma,
		Rate:        cv.Rate,
	}
	returns := generator.Returns(rng)

	targetPayoffs := truncated.Payoffs(returns)
	controlPayoffs := control.Payoffs(returns)

	discount := math.Exp(-cv.Rate * cv.Maturity)
	targetPrice := discount * stat.Mean(targetPayoffs, nil)
	controlPrice := discount * stat.Mean(controlPayoffs, nil)

	// beta = Cov(target, control) / Var(control), estimated on the same
	// draws that produced the two estimators.
	beta := stat.Covariance(targetPayoffs, controlPayoffs, nil) / stat.Variance(controlPayoffs, nil)

	return targetPrice - beta*(controlPrice-cv.AnalyticControlPrice())
}
