// Package main prices a set of equity options on a binomial lattice and
// compares the results against the Black-Scholes closed form and a
// simulated-lattice cross-check.
package main

import (
	"fmt"
	"log"
	"math"

	"github.com/leekchan/accounting"
	"golang.org/x/exp/rand"

	"numericalfinance/analytic"
	"numericalfinance/binomial"
	"numericalfinance/option"
)

// Market holds the continuous-time assumptions the lattice approximates.
type Market struct {
	Spot       float64
	Rate       float64
	Volatility float64
	Maturity   float64
}

// Contract holds the option terms.
type Contract struct {
	Strike       float64
	LowerBarrier float64
	UpperBarrier float64
}

func main() {
	market := Market{
		Spot:       100,
		Rate:       0.05,
		Volatility: 0.5,
		Maturity:   1,
	}
	contract := Contract{
		Strike:       100,
		LowerBarrier: 60,
		UpperBarrier: 160,
	}
	steps := 252

	// Cox-Ross-Rubinstein calibration: u = exp(sigma sqrt(dt)), d = 1/u,
	// per-step growth exp(r dt).
	dt := market.Maturity / float64(steps)
	up := math.Exp(market.Volatility * math.Sqrt(dt))
	params := binomial.Parameters{
		InitialValue: market.Spot,
		UpFactor:     up,
		DownFactor:   1 / up,
		InterestRate: math.Exp(market.Rate*dt) - 1,
		Steps:        steps,
	}

	lattice, err := binomial.NewLattice(params)
	if err != nil {
		log.Fatal(err)
	}

	call := option.Call(contract.Strike)
	put := option.Put(contract.Strike)

	europeanCall, err := option.NewEuropean(lattice).Price(call, steps)
	if err != nil {
		log.Fatal(err)
	}
	americanPut, err := option.NewAmerican(lattice).Price(put, steps)
	if err != nil {
		log.Fatal(err)
	}
	barrier := option.Barrier{
		Lower: option.BoundAt(contract.LowerBarrier),
		Upper: option.BoundAt(contract.UpperBarrier),
	}
	knockOutCall, err := option.NewKnockOut(lattice).Price(call, steps, barrier)
	if err != nil {
		log.Fatal(err)
	}

	analyticCall := analytic.CallPrice(market.Spot, market.Rate, market.Volatility, market.Maturity, contract.Strike)
	analyticPut := analytic.PutPrice(market.Spot, market.Rate, market.Volatility, market.Maturity, contract.Strike)

	// Simulated-lattice cross-check of the discounted average.
	simulated, err := binomial.NewMonteCarlo(params, 50_000, rand.NewSource(355))
	if err != nil {
		log.Fatal(err)
	}
	simulatedAverage, err := simulated.DiscountedAverageAt(steps)
	if err != nil {
		log.Fatal(err)
	}
	gain, err := lattice.GainProbabilityAt(steps)
	if err != nil {
		log.Fatal(err)
	}

	ac := accounting.Accounting{Symbol: "$", Precision: 2}
	fmt.Println("European call (lattice):   ", ac.FormatMoney(europeanCall))
	fmt.Println("European call (analytic):  ", ac.FormatMoney(analyticCall))
	fmt.Println("American put (lattice):    ", ac.FormatMoney(americanPut))
	fmt.Println("European put (analytic):   ", ac.FormatMoney(analyticPut))
	fmt.Println("Knock-out call (lattice):  ", ac.FormatMoney(knockOutCall))
	fmt.Println("Discounted average (sim):  ", ac.FormatMoney(simulatedAverage))
	fmt.Printf("Gain probability at expiry: %.2f%%\n", gain)
}
