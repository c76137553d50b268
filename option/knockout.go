package option

import (
	"fmt"

	"numericalfinance/binomial"
)

// KnockOut values barrier options whose payoff is extinguished once the
// underlying leaves the open barrier interval. During backward induction a
// node's continuation value is forced to zero whenever the lattice value at
// that node lies outside the barrier, and terminal payoffs are zeroed the
// same way.
//
// This tests each node's own value, not whether some path reaching the node
// crossed the barrier earlier. In a recombining lattice the two coincide at
// the lattice monitoring dates: any contribution flowing through an
// out-of-bounds node is removed by the recursion itself. It remains
// discrete monitoring, coarser than continuous first passage; the
// simulation package prices the path-monitored version.
type KnockOut struct {
	model binomial.Model
}

// NewKnockOut returns a knock-out valuation engine on the given model.
func NewKnockOut(m binomial.Model) *KnockOut { return &KnockOut{model: m} }

// Values returns the triangular grid of knock-out option values over
// 0 <= time <= maturity. With NoBarrier the result is exactly the European
// value grid.
func (k *KnockOut) Values(payoff Payoff, maturity int, barrier Barrier) (*binomial.Grid, error) {
	return backwardInduction(k.model, payoff, maturity,
		func(_ int, underlying, payoff float64) float64 {
			if !barrier.Contains(underlying) {
				return 0
			}
			return payoff
		},
		func(_, _ int, underlying, continuation float64) float64 {
			if !barrier.Contains(underlying) {
				return 0
			}
			return continuation
		},
	)
}

// Price returns the knock-out option value at time 0.
func (k *KnockOut) Price(payoff Payoff, maturity int, barrier Barrier) (float64, error) {
	values, err := k.Values(payoff, maturity, barrier)
	if err != nil {
		return 0, err
	}
	return values.At(0, 0), nil
}

// Alive returns, alongside the value grid, the flag grid marking the nodes
// whose lattice value lies inside the barrier interval.
func (k *KnockOut) Alive(payoff Payoff, maturity int, barrier Barrier) (*binomial.Grid, *binomial.BoolGrid, error) {
	if maturity < 0 || maturity > k.model.Parameters().Steps {
		return nil, nil, fmt.Errorf("%w: maturity %d not in [0, %d]", binomial.ErrIndexOutOfRange, maturity, k.model.Parameters().Steps)
	}
	alive := binomial.NewBoolGrid(maturity)
	values, err := backwardInduction(k.model, payoff, maturity,
		func(downs int, underlying, payoff float64) float64 {
			if !barrier.Contains(underlying) {
				return 0
			}
			alive.Set(maturity, downs, true)
			return payoff
		},
		func(timeIndex, downs int, underlying, continuation float64) float64 {
			if !barrier.Contains(underlying) {
				return 0
			}
			alive.Set(timeIndex, downs, true)
			return continuation
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return values, alive, nil
}
