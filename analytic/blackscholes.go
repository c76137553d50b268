// Package analytic provides closed-form Black-Scholes prices. They serve as
// reference values for the lattice, Monte Carlo and finite-difference
// methods, which must converge to them under log-normal dynamics.
package analytic

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// local function aliases
var (
	exp  = math.Exp
	log  = math.Log
	sqrt = math.Sqrt
)

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 { return distuv.UnitNormal.CDF(x) }

// CallPrice returns the Black-Scholes price of a European call with the
// given spot, continuously compounded rate, volatility, maturity in years
// and strike.
func CallPrice(spot, rate, sigma, maturity, strike float64) float64 {
	d1 := (log(spot/strike) + (rate+0.5*sigma*sigma)*maturity) / (sigma * sqrt(maturity))
	d2 := d1 - sigma*sqrt(maturity)
	return spot*normCDF(d1) - strike*exp(-rate*maturity)*normCDF(d2)
}

// PutPrice returns the Black-Scholes price of a European put.
func PutPrice(spot, rate, sigma, maturity, strike float64) float64 {
	d1 := (log(spot/strike) + (rate+0.5*sigma*sigma)*maturity) / (sigma * sqrt(maturity))
	d2 := d1 - sigma*sqrt(maturity)
	return strike*exp(-rate*maturity)*normCDF(-d2) - spot*normCDF(-d1)
}

// DownAndOutCallPrice returns the price of a continuously monitored
// down-and-out call via the reflection principle: the vanilla call minus
// the reflected call struck at the barrier image of the spot.
func DownAndOutCallPrice(spot, rate, sigma, maturity, strike, barrier float64) float64 {
	reflection := math.Pow(spot/barrier, -(2*rate/(sigma*sigma) - 1))
	return CallPrice(spot, rate, sigma, maturity, strike) -
		reflection*CallPrice(barrier*barrier/spot, rate, sigma, maturity, strike)
}
