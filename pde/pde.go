// Package pde prices options by finite differences on the Black-Scholes
// pricing equation, written in time to maturity tau:
//
//	v_tau = 0.5 sigma(x)^2 x^2 v_xx + r x v_x - r v
//
// with the payoff as initial condition and caller-supplied boundary values.
// Explicit and implicit Euler time stepping are provided; a knock-out
// option is priced by truncating the domain at the barrier with an
// absorbing boundary.
package pde

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProblem reports a malformed discretization setup.
var ErrInvalidProblem = errors.New("pde: invalid problem")

// Problem describes the pricing equation and its discretization. Boundary
// functions receive the boundary coordinate and the elapsed time to
// maturity.
type Problem struct {
	XMin, XMax float64
	Dx         float64
	TMax       float64
	Dt         float64

	Rate       float64
	Volatility func(x float64) float64

	Payoff        func(x float64) float64
	LeftBoundary  func(x, t float64) float64
	RightBoundary func(x, t float64) float64
}

func (p Problem) validate() error {
	if p.Dx <= 0 || p.Dt <= 0 {
		return fmt.Errorf("%w: non-positive step (dx=%v, dt=%v)", ErrInvalidProblem, p.Dx, p.Dt)
	}
	if p.XMax <= p.XMin {
		return fmt.Errorf("%w: empty space interval [%v, %v]", ErrInvalidProblem, p.XMin, p.XMax)
	}
	if p.TMax <= 0 {
		return fmt.Errorf("%w: non-positive horizon %v", ErrInvalidProblem, p.TMax)
	}
	if p.Volatility == nil || p.Payoff == nil || p.LeftBoundary == nil || p.RightBoundary == nil {
		return fmt.Errorf("%w: nil coefficient or boundary function", ErrInvalidProblem)
	}
	return nil
}

// spaceGrid returns the equi-spaced space points xmin, xmin+dx, ..., and
// the number of time steps.
func (p Problem) grids() (x []float64, timeSteps int) {
	spaceSteps := int(math.Ceil((p.XMax - p.XMin) / p.Dx))
	x = make([]float64, spaceSteps+1)
	for j := range x {
		x[j] = p.XMin + float64(j)*p.Dx
	}
	timeSteps = int(math.Ceil(p.TMax / p.Dt))
	return x, timeSteps
}

// Solution stores the solved surface over the time/space grid.
type Solution struct {
	x      []float64
	xMin   float64
	dx, dt float64
	// values[n][j] is the price with time to maturity n*dt at space point j.
	values [][]float64
}

// ValueAt returns the price at the grid point closest to time to maturity t
// and underlying value x.
func (s *Solution) ValueAt(t, x float64) (float64, error) {
	n := int(math.Round(t / s.dt))
	j := int(math.Round((x - s.xMin) / s.dx))
	if n < 0 || n >= len(s.values) {
		return 0, fmt.Errorf("%w: time %v outside solved horizon", ErrInvalidProblem, t)
	}
	if j < 0 || j >= len(s.x) {
		return 0, fmt.Errorf("%w: value %v outside space interval", ErrInvalidProblem, x)
	}
	return s.values[n][j], nil
}
