package option

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numericalfinance/analytic"
	"numericalfinance/binomial"
)

func mustLattice(t *testing.T, params binomial.Parameters) *binomial.Lattice {
	t.Helper()
	lattice, err := binomial.NewLattice(params)
	require.NoError(t, err)
	return lattice
}

// The lattice used by the original option valuation examples: S0=100,
// d=0.5, u=2, rho=0.1, five steps.
func coarseParams() binomial.Parameters {
	return binomial.Parameters{
		InitialValue: 100,
		DownFactor:   0.5,
		UpFactor:     2,
		InterestRate: 0.1,
		Steps:        5,
	}
}

func TestEuropeanPriceAgreesWithGrid(t *testing.T) {
	lattice := mustLattice(t, coarseParams())
	engine := NewEuropean(lattice)
	payoff := Call(100)

	for maturity := 1; maturity <= 5; maturity++ {
		price, err := engine.Price(payoff, maturity)
		require.NoError(t, err)

		values, err := engine.Values(payoff, maturity)
		require.NoError(t, err)
		require.Equal(t, maturity, values.MaxTime())

		// Same recursion, two entry points.
		assert.InEpsilon(t, price, values.At(0, 0), 1e-10, "maturity %d", maturity)
	}
}

func TestEuropeanTerminalSliceIsPayoff(t *testing.T) {
	lattice := mustLattice(t, coarseParams())
	engine := NewEuropean(lattice)
	payoff := Call(100)
	maturity := 4

	values, err := engine.Values(payoff, maturity)
	require.NoError(t, err)
	underlying, err := lattice.ValuesAt(maturity)
	require.NoError(t, err)
	for j, s := range underlying {
		assert.Equal(t, payoff(s), values.At(maturity, j))
	}
}

func TestEuropeanReplicationExactness(t *testing.T) {
	params := coarseParams()
	lattice := mustLattice(t, params)
	engine := NewEuropean(lattice)
	payoff := Call(100)
	maturity := 4

	values, err := engine.Values(payoff, maturity)
	require.NoError(t, err)
	risky, riskFree, err := engine.Strategy(payoff, maturity)
	require.NoError(t, err)
	require.Equal(t, maturity-1, risky.MaxTime())
	require.Equal(t, maturity-1, riskFree.MaxTime())

	growth := 1 + params.InterestRate
	for timeIndex := 0; timeIndex < maturity; timeIndex++ {
		underlying, err := lattice.ValuesAt(timeIndex + 1)
		require.NoError(t, err)
		for j := 0; j <= timeIndex; j++ {
			a := risky.At(timeIndex, j)
			b := riskFree.At(timeIndex, j)
			// The portfolio reproduces the option value at both successors.
			up := a*underlying[j] + b*growth
			down := a*underlying[j+1] + b*growth
			assert.InDelta(t, values.At(timeIndex+1, j), up, 1e-9)
			assert.InDelta(t, values.At(timeIndex+1, j+1), down, 1e-9)
		}
	}

	// Self-financing: the portfolio's value at the node equals the option
	// value there.
	for timeIndex := 0; timeIndex < maturity; timeIndex++ {
		underlying, err := lattice.ValuesAt(timeIndex)
		require.NoError(t, err)
		for j := 0; j <= timeIndex; j++ {
			portfolio := risky.At(timeIndex, j)*underlying[j] + riskFree.At(timeIndex, j)
			assert.InDelta(t, values.At(timeIndex, j), portfolio, 1e-9)
		}
	}
}

func TestStrategyMaturityBounds(t *testing.T) {
	engine := NewEuropean(mustLattice(t, coarseParams()))
	_, _, err := engine.Strategy(Call(100), 0)
	assert.ErrorIs(t, err, binomial.ErrIndexOutOfRange)
	_, _, err = engine.Strategy(Call(100), 6)
	assert.ErrorIs(t, err, binomial.ErrIndexOutOfRange)
}

// TestEuropeanConvergesToBlackScholes calibrates the lattice the
// Cox-Ross-Rubinstein way and checks convergence of the call price to the
// closed form.
func TestEuropeanConvergesToBlackScholes(t *testing.T) {
	const (
		spot     = 100.0
		rate     = 0.05
		sigma    = 0.5
		maturity = 1.0
		strike   = 100.0
		steps    = 500
	)
	dt := maturity / steps
	up := math.Exp(sigma * math.Sqrt(dt))
	params := binomial.Parameters{
		InitialValue: spot,
		UpFactor:     up,
		DownFactor:   1 / up,
		InterestRate: math.Exp(rate*dt) - 1,
		Steps:        steps,
	}
	lattice := mustLattice(t, params)

	price, err := NewEuropean(lattice).Price(Call(strike), steps)
	require.NoError(t, err)

	want := analytic.CallPrice(spot, rate, sigma, maturity, strike)
	assert.InEpsilon(t, want, price, 0.01)
}

func TestEuropeanPayoffErrors(t *testing.T) {
	engine := NewEuropean(mustLattice(t, coarseParams()))
	nanPayoff := func(x float64) float64 { return math.NaN() }

	_, err := engine.Price(nanPayoff, 3)
	assert.ErrorIs(t, err, ErrPayoff)
	_, err = engine.Values(nanPayoff, 3)
	assert.ErrorIs(t, err, ErrPayoff)
	_, _, err = engine.Strategy(nanPayoff, 3)
	assert.ErrorIs(t, err, ErrPayoff)

	_, err = engine.Price(Call(100), 6)
	assert.ErrorIs(t, err, binomial.ErrIndexOutOfRange)
	_, err = engine.Values(Call(100), -1)
	assert.ErrorIs(t, err, binomial.ErrIndexOutOfRange)
}
