package binomial

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// Lattice is the exact combinatorial lattice: at time t it holds all t+1
// reachable values of the process together with their analytic binomial
// probabilities. Construction costs O(N^2) time and storage with no
// sampling error, against O(N * paths) and statistical noise for the
// simulated alternative.
//
// The lattice is immutable once built and may be shared read-only by any
// number of valuation engines and goroutines.
type Lattice struct {
	params Parameters
	values *Grid
}

var _ Model = (*Lattice)(nil)

// NewLattice builds the full table of reachable values for the given
// parameters. It fails with ErrInvalidParameters when the no-arbitrage
// ordering 0 < d < 1+rho < u is violated or Steps < 1.
func NewLattice(params Parameters) (*Lattice, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	values := NewGrid(params.Steps)
	values.Set(0, 0, params.InitialValue)
	for t := 1; t <= params.Steps; t++ {
		// The all-ups entry is u times the previous all-ups entry; every
		// other entry at time t is d times the entry one down-move earlier
		// at time t-1.
		values.Set(t, 0, params.UpFactor*values.At(t-1, 0))
		for j := 1; j <= t; j++ {
			values.Set(t, j, params.DownFactor*values.At(t-1, j-1))
		}
	}
	return &Lattice{params: params, values: values}, nil
}

// Parameters returns the process assumptions.
func (l *Lattice) Parameters() Parameters { return l.params }

// Values returns the whole triangular table of reachable values. The grid
// is shared, not copied; it must be treated as read-only.
func (l *Lattice) Values() *Grid { return l.values }

// ValuesAt returns the t+1 reachable values at the given time, ordered from
// all ups to all downs.
func (l *Lattice) ValuesAt(timeIndex int) ([]float64, error) {
	if err := l.params.checkTimeIndex(timeIndex); err != nil {
		return nil, err
	}
	return l.values.RowCopy(timeIndex), nil
}

// ProbabilitiesAt returns the binomial mass of every node at the given
// time: C(t, j) q^(t-j) (1-q)^j for j down-moves. The masses are computed
// from the binomial-coefficient formula rather than by convolving the
// previous slice, so floating error does not accumulate across time steps.
// Time 0 returns the singleton probability 1.
func (l *Lattice) ProbabilitiesAt(timeIndex int) ([]float64, error) {
	if err := l.params.checkTimeIndex(timeIndex); err != nil {
		return nil, err
	}
	if timeIndex == 0 {
		return []float64{1}, nil
	}
	q := l.params.RiskNeutralUpProbability()
	probabilities := make([]float64, timeIndex+1)
	for downs := 0; downs <= timeIndex; downs++ {
		ups := timeIndex - downs
		probabilities[downs] = combin.GeneralizedBinomial(float64(timeIndex), float64(downs)) *
			math.Pow(q, float64(ups)) * math.Pow(1-q, float64(downs))
	}
	return probabilities, nil
}

// DiscountedExpectationAt returns (1+rho)^(-t) times the probability-
// weighted average of the supplied per-node values, which must have one
// entry per node at the given time.
func (l *Lattice) DiscountedExpectationAt(timeIndex int, values []float64) (float64, error) {
	probabilities, err := l.ProbabilitiesAt(timeIndex)
	if err != nil {
		return 0, err
	}
	if len(values) != len(probabilities) {
		return 0, errValueCount(len(values), len(probabilities))
	}
	discount := math.Pow(1+l.params.InterestRate, -float64(timeIndex))
	return discount * floats.Dot(probabilities, values), nil
}

// DiscountedAverageAt returns the discounted expected value of the process
// at the given time. For any valid parameter set this equals the initial
// value: the discounted process is a martingale under q.
func (l *Lattice) DiscountedAverageAt(timeIndex int) (float64, error) {
	if err := l.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	return l.DiscountedExpectationAt(timeIndex, l.values.Row(timeIndex))
}

// GainThresholdAt returns the smallest number of up moves k such that the
// node with k ups at the given time has discounted value strictly greater
// than the initial value. The node value is monotone in the number of ups,
// so a binary search over [0, t] suffices; if no node qualifies the result
// is timeIndex+1.
func (l *Lattice) GainThresholdAt(timeIndex int) (int, error) {
	if err := l.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	target := l.params.InitialValue * math.Pow(1+l.params.InterestRate, float64(timeIndex))
	k := sort.Search(timeIndex+1, func(ups int) bool {
		return l.values.At(timeIndex, timeIndex-ups) > target
	})
	return k, nil
}

// GainProbabilityAt returns the percentage probability that the discounted
// value of the process at the given time exceeds the initial value. The
// qualifying nodes are exactly those with at least GainThresholdAt up
// moves, so only their masses are summed.
func (l *Lattice) GainProbabilityAt(timeIndex int) (float64, error) {
	if err := l.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	threshold, err := l.GainThresholdAt(timeIndex)
	if err != nil {
		return 0, err
	}
	if threshold > timeIndex {
		return 0, nil
	}
	probabilities, err := l.ProbabilitiesAt(timeIndex)
	if err != nil {
		return 0, err
	}
	return 100 * floats.Sum(probabilities[:timeIndex-threshold+1]), nil
}

func errValueCount(got, want int) error {
	return fmt.Errorf("%w: %d values supplied for %d nodes", ErrIndexOutOfRange, got, want)
}
