package pde

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numericalfinance/analytic"
)

// callProblem sets up the vanilla call on [0, xmax]: zero on the left
// boundary, the discounted forward on the right.
func callProblem(rate, sigma, maturity, strike, xmax float64) Problem {
	return Problem{
		XMin:       0,
		XMax:       xmax,
		TMax:       maturity,
		Rate:       rate,
		Volatility: func(float64) float64 { return sigma },
		Payoff: func(x float64) float64 {
			return math.Max(x-strike, 0)
		},
		LeftBoundary: func(float64, float64) float64 { return 0 },
		RightBoundary: func(x, t float64) float64 {
			return x - strike*math.Exp(-rate*t)
		},
	}
}

func TestExplicitCallMatchesBlackScholes(t *testing.T) {
	if testing.Short() {
		t.Skip("fine time grid")
	}
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 2.5e-4

	solution, err := SolveExplicit(problem)
	require.NoError(t, err)

	price, err := solution.ValueAt(1, 100)
	require.NoError(t, err)
	want := analytic.CallPrice(100, 0.05, 0.2, 1, 100)
	assert.InEpsilon(t, want, price, 0.02)
}

func TestExplicitRejectsUnstableStep(t *testing.T) {
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 0.01

	_, err := SolveExplicit(problem)
	assert.ErrorIs(t, err, ErrInvalidProblem)
}

func TestImplicitCallMatchesBlackScholes(t *testing.T) {
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 0.01

	solution, err := SolveImplicit(problem)
	require.NoError(t, err)

	price, err := solution.ValueAt(1, 100)
	require.NoError(t, err)
	want := analytic.CallPrice(100, 0.05, 0.2, 1, 100)
	assert.InEpsilon(t, want, price, 0.02)
}

// The implicit step is not tied to the space step, so a step size the
// explicit scheme rejects still solves cleanly.
func TestImplicitStableWhereExplicitIsNot(t *testing.T) {
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 0.01

	_, err := SolveExplicit(problem)
	require.ErrorIs(t, err, ErrInvalidProblem)
	_, err = SolveImplicit(problem)
	assert.NoError(t, err)
}

// A down-and-out call is priced by truncating the domain at the barrier
// with an absorbing left boundary.
func TestImplicitDownAndOutCall(t *testing.T) {
	if testing.Short() {
		t.Skip("fine space grid")
	}
	const (
		spot     = 2.0
		strike   = 2.0
		sigma    = 0.5
		maturity = 3.0
		barrier  = 1.1
	)
	problem := Problem{
		XMin:       barrier,
		XMax:       30,
		Dx:         0.05,
		TMax:       maturity,
		Dt:         0.01,
		Rate:       0,
		Volatility: func(float64) float64 { return sigma },
		Payoff: func(x float64) float64 {
			return math.Max(x-strike, 0)
		},
		LeftBoundary: func(float64, float64) float64 { return 0 },
		RightBoundary: func(x, t float64) float64 {
			return x - strike
		},
	}

	solution, err := SolveImplicit(problem)
	require.NoError(t, err)
	price, err := solution.ValueAt(maturity, spot)
	require.NoError(t, err)

	want := analytic.DownAndOutCallPrice(spot, 0, sigma, maturity, strike, barrier)
	assert.InEpsilon(t, want, price, 0.05)
}

func TestPayoffIsInitialCondition(t *testing.T) {
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 0.01

	solution, err := SolveImplicit(problem)
	require.NoError(t, err)

	for _, x := range []float64{50, 100, 150, 250} {
		v, err := solution.ValueAt(0, x)
		require.NoError(t, err)
		assert.Equal(t, math.Max(x-100, 0), v)
	}
}

func TestProblemValidation(t *testing.T) {
	base := callProblem(0.05, 0.2, 1, 100, 300)
	base.Dx = 1
	base.Dt = 0.01

	bad := base
	bad.Dt = 0
	_, err := SolveImplicit(bad)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	bad = base
	bad.XMax = bad.XMin
	_, err = SolveImplicit(bad)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	bad = base
	bad.Payoff = nil
	_, err = SolveExplicit(bad)
	assert.ErrorIs(t, err, ErrInvalidProblem)

	bad = base
	bad.TMax = -1
	_, err = SolveImplicit(bad)
	assert.ErrorIs(t, err, ErrInvalidProblem)
}

func TestValueAtRangeChecks(t *testing.T) {
	problem := callProblem(0.05, 0.2, 1, 100, 300)
	problem.Dx = 1
	problem.Dt = 0.01

	solution, err := SolveImplicit(problem)
	require.NoError(t, err)

	_, err = solution.ValueAt(2, 100)
	assert.ErrorIs(t, err, ErrInvalidProblem)
	_, err = solution.ValueAt(1, 400)
	assert.ErrorIs(t, err, ErrInvalidProblem)
	_, err = solution.ValueAt(1, -5)
	assert.ErrorIs(t, err, ErrInvalidProblem)
}
