// Package simulation discretizes continuous-time diffusions with the Euler
// scheme and prices path-dependent options on the simulated trajectories.
// It is the continuous-time counterpart of the binomial lattice: its
// knock-out pricer monitors the whole path, which is the honest
// first-passage comparison for the lattice engine's per-node rule.
package simulation

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// ErrInvalidScheme reports a malformed discretization setup.
var ErrInvalidScheme = errors.New("simulation: invalid scheme")

// CoefficientFunc evaluates a drift or diffusion coefficient at a time and
// state.
type CoefficientFunc func(t, x float64) float64

// Euler discretizes dX = mu(t, X) dt + sigma(t, X) dW on a uniform time
// grid. When Transform and Inverse are set the scheme is applied to the
// transformed process Inverse(X) and mapped back at the end, which is how
// the log scheme for geometric dynamics is expressed.
type Euler struct {
	TimeStep     float64
	FinalTime    float64
	InitialValue float64
	Drift        CoefficientFunc
	Diffusion    CoefficientFunc

	// Transform and Inverse are optional; nil means identity. Transform is
	// applied to the simulated values, Inverse to the initial value.
	Transform func(float64) float64
	Inverse   func(float64) float64
}

// BlackScholesLogEuler returns the scheme that simulates the logarithm of a
// geometric Brownian motion with drift mu and volatility sigma. The
// log-increments are exact in distribution for constant coefficients, so
// the only error left is statistical.
func BlackScholesLogEuler(timeStep, finalTime, initialValue, mu, sigma float64) Euler {
	return Euler{
		TimeStep:     timeStep,
		FinalTime:    finalTime,
		InitialValue: initialValue,
		Drift:        func(_, _ float64) float64 { return mu - 0.5*sigma*sigma },
		Diffusion:    func(_, _ float64) float64 { return sigma },
		Transform:    math.Exp,
		Inverse:      math.Log,
	}
}

// Paths holds simulated trajectories on a uniform time grid, one slice of
// per-path values for each grid time.
type Paths struct {
	timeStep float64
	// values[t][i] is the value of path i at grid time t.
	values [][]float64
}

// Simulate runs the scheme for the given number of trajectories, driven by
// the supplied generator.
func (e Euler) Simulate(simulations int, rng *rand.Rand) (*Paths, error) {
	if simulations < 1 {
		return nil, fmt.Errorf("%w: %d simulations", ErrInvalidScheme, simulations)
	}
	if e.TimeStep <= 0 || e.FinalTime <= 0 || e.TimeStep > e.FinalTime {
		return nil, fmt.Errorf("%w: time step %v over horizon %v", ErrInvalidScheme, e.TimeStep, e.FinalTime)
	}
	if e.Drift == nil || e.Diffusion == nil {
		return nil, fmt.Errorf("%w: nil coefficient function", ErrInvalidScheme)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random generator", ErrInvalidScheme)
	}
	transform, inverse := e.Transform, e.Inverse
	if transform == nil {
		transform = func(x float64) float64 { return x }
	}
	if inverse == nil {
		inverse = func(x float64) float64 { return x }
	}

	steps := int(math.Ceil(e.FinalTime / e.TimeStep))
	sqrtDt := math.Sqrt(e.TimeStep)

	values := make([][]float64, steps+1)
	current := make([]float64, simulations)
	start := inverse(e.InitialValue)
	row := make([]float64, simulations)
	for i := range current {
		current[i] = start
		row[i] = e.InitialValue
	}
	values[0] = row

	t := 0.0
	for step := 1; step <= steps; step++ {
		row := make([]float64, simulations)
		for i := range current {
			x := current[i]
			current[i] = x + e.Drift(t, x)*e.TimeStep + e.Diffusion(t, x)*sqrtDt*rng.NormFloat64()
			row[i] = transform(current[i])
		}
		values[step] = row
		t += e.TimeStep
	}
	return &Paths{timeStep: e.TimeStep, values: values}, nil
}

// Times returns the number of grid times, initial time included.
func (p *Paths) Times() int { return len(p.values) }

// Simulations returns the number of trajectories.
func (p *Paths) Simulations() int { return len(p.values[0]) }

// AtIndex returns the per-path values at the given grid index.
func (p *Paths) AtIndex(timeIndex int) ([]float64, error) {
	if timeIndex < 0 || timeIndex >= len(p.values) {
		return nil, fmt.Errorf("%w: time index %d not in [0, %d]", ErrInvalidScheme, timeIndex, len(p.values)-1)
	}
	out := make([]float64, len(p.values[timeIndex]))
	copy(out, p.values[timeIndex])
	return out, nil
}

// AtTime returns the per-path values at the grid time closest to t.
func (p *Paths) AtTime(t float64) ([]float64, error) {
	return p.AtIndex(int(math.Round(t / p.timeStep)))
}

// Path returns one full trajectory.
func (p *Paths) Path(pathIndex int) ([]float64, error) {
	if pathIndex < 0 || pathIndex >= p.Simulations() {
		return nil, fmt.Errorf("%w: path %d not in [0, %d)", ErrInvalidScheme, pathIndex, p.Simulations())
	}
	out := make([]float64, len(p.values))
	for t := range p.values {
		out[t] = p.values[t][pathIndex]
	}
	return out, nil
}
