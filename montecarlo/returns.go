package montecarlo

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ReturnsGenerator draws per-interval gross returns of a Black-Scholes
// asset: each entry is exp((r - sigma^2/2) dt + sigma sqrt(dt) Z) with
// dt = Maturity/Intervals. Returns are laid out as a Simulations x
// Intervals matrix, one row per trajectory.
type ReturnsGenerator struct {
	Simulations int
	Intervals   int
	Maturity    float64
	Sigma       float64
	Rate        float64
}

// Returns draws the full matrix of independent gross returns.
func (g ReturnsGenerator) Returns(rng *rand.Rand) *mat.Dense {
	dt := g.Maturity / float64(g.Intervals)
	base := math.Exp((g.Rate - 0.5*g.Sigma*g.Sigma) * dt)
	scale := g.Sigma * math.Sqrt(dt)

	returns := mat.NewDense(g.Simulations, g.Intervals, nil)
	for run := 0; run < g.Simulations; run++ {
		for interval := 0; interval < g.Intervals; interval++ {
			returns.Set(run, interval, base*math.Exp(scale*rng.NormFloat64()))
		}
	}
	return returns
}

// AntitheticReturns draws normals for half the trajectories and mirrors
// them for the other half. Rows come in antithetic pairs: row i and row
// half+i share the same normals with opposite signs.
func (g ReturnsGenerator) AntitheticReturns(rng *rand.Rand) *mat.Dense {
	half := (g.Simulations + 1) / 2
	dt := g.Maturity / float64(g.Intervals)
	base := math.Exp((g.Rate - 0.5*g.Sigma*g.Sigma) * dt)
	scale := g.Sigma * math.Sqrt(dt)

	returns := mat.NewDense(2*half, g.Intervals, nil)
	for run := 0; run < half; run++ {
		for interval := 0; interval < g.Intervals; interval++ {
			z := rng.NormFloat64()
			returns.Set(run, interval, base*math.Exp(scale*z))
			returns.Set(half+run, interval, base*math.Exp(-scale*z))
		}
	}
	return returns
}
