package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Cliquet is an option on the sum of locally floored and capped period
// returns: each period contributes min(max(R - 1, LocalFloor), LocalCap),
// and the sum is optionally clamped to a global floor and cap. The global
// truncation is what makes the payoff analytically intractable; without it
// the price decomposes into call spreads (see ControlVariates).
type Cliquet struct {
	Maturity   float64
	LocalFloor float64
	LocalCap   float64

	globalFloor float64
	globalCap   float64
	truncated   bool
}

// NewCliquet returns a Cliquet option without global truncation.
func NewCliquet(maturity, localFloor, localCap float64) Cliquet {
	return Cliquet{Maturity: maturity, LocalFloor: localFloor, LocalCap: localCap}
}

// WithGlobalBounds returns a copy of the option whose summed payoff is
// clamped to [floor, cap].
func (c Cliquet) WithGlobalBounds(floor, cap float64) Cliquet {
	c.globalFloor, c.globalCap, c.truncated = floor, cap, true
	return c
}

// Payoffs maps a matrix of per-interval gross returns (one row per
// trajectory) to the payoff realized along each trajectory.
func (c Cliquet) Payoffs(returns mat.Matrix) []float64 {
	rows, cols := returns.Dims()
	payoffs := make([]float64, rows)
	for run := 0; run < rows; run++ {
		sum := 0.0
		for interval := 0; interval < cols; interval++ {
			sum += math.Min(math.Max(returns.At(run, interval)-1, c.LocalFloor), c.LocalCap)
		}
		if c.truncated {
			sum = math.Min(math.Max(sum, c.globalFloor), c.globalCap)
		}
		payoffs[run] = sum
	}
	return payoffs
}

// Price returns the discounted Monte Carlo price of the option given the
// simulated returns and the continuously compounded rate.
func (c Cliquet) Price(returns mat.Matrix, rate float64) float64 {
	return math.Exp(-rate*c.Maturity) * stat.Mean(c.Payoffs(returns), nil)
}
