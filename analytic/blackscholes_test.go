package analytic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutCallParity(t *testing.T) {
	cases := []struct {
		spot, rate, sigma, maturity, strike float64
	}{
		{100, 0.05, 0.5, 1, 100},
		{100, 0.05, 0.2, 0.5, 110},
		{2, 0, 0.5, 3, 2},
		{50, 0.1, 0.3, 2, 45},
	}
	for _, c := range cases {
		call := CallPrice(c.spot, c.rate, c.sigma, c.maturity, c.strike)
		put := PutPrice(c.spot, c.rate, c.sigma, c.maturity, c.strike)
		forward := c.spot - c.strike*math.Exp(-c.rate*c.maturity)
		assert.InDelta(t, forward, call-put, 1e-10)
	}
}

func TestCallPriceKnownValue(t *testing.T) {
	// The standard textbook point: S=100, r=5%, sigma=20%, T=1, K=100.
	price := CallPrice(100, 0.05, 0.2, 1, 100)
	assert.InDelta(t, 10.4506, price, 1e-3)
}

func TestCallPriceBounds(t *testing.T) {
	price := CallPrice(100, 0.05, 0.5, 1, 100)
	// Above intrinsic on the discounted strike, below the spot.
	assert.Greater(t, price, 100-100*math.Exp(-0.05))
	assert.Less(t, price, 100.0)
}

func TestCallPriceMonotoneInVolatility(t *testing.T) {
	low := CallPrice(100, 0.05, 0.1, 1, 100)
	high := CallPrice(100, 0.05, 0.6, 1, 100)
	assert.Less(t, low, high)
}

func TestDownAndOutBelowVanilla(t *testing.T) {
	vanilla := CallPrice(2, 0, 0.5, 3, 2)
	knocked := DownAndOutCallPrice(2, 0, 0.5, 3, 2, 1.1)
	assert.Greater(t, knocked, 0.0)
	assert.Less(t, knocked, vanilla)
}

func TestDownAndOutApproachesVanilla(t *testing.T) {
	// A barrier far below the spot almost never knocks.
	vanilla := CallPrice(100, 0.05, 0.2, 1, 100)
	knocked := DownAndOutCallPrice(100, 0.05, 0.2, 1, 100, 10)
	assert.InDelta(t, vanilla, knocked, 1e-6)
}
