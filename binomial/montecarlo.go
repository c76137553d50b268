package binomial

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// MonteCarlo is the simulated lattice: per step and per path a Bernoulli
// draw with success probability q multiplies the value by u or d. Its
// statistics converge to the combinatorial lattice's as the path count
// grows, which makes it the primary cross-check of the exact construction.
//
// The generator is supplied by the caller, so runs are reproducible and
// independent models never share random state. Like Lattice, a MonteCarlo
// model is immutable once built.
type MonteCarlo struct {
	params Parameters
	paths  int
	// realizations[t][i] is the value of path i at time t.
	realizations [][]float64
}

var _ Model = (*MonteCarlo)(nil)

// NewMonteCarlo simulates numberOfPaths trajectories of the process driven
// by the supplied source. It fails with ErrInvalidParameters on a malformed
// parameter set, a non-positive path count, or a nil source.
func NewMonteCarlo(params Parameters, numberOfPaths int, src rand.Source) (*MonteCarlo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if numberOfPaths < 1 {
		return nil, fmt.Errorf("%w: number of paths %d must be at least 1", ErrInvalidParameters, numberOfPaths)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameters)
	}
	rng := rand.New(src)
	q := params.RiskNeutralUpProbability()

	realizations := make([][]float64, params.Steps+1)
	initial := make([]float64, numberOfPaths)
	for i := range initial {
		initial[i] = params.InitialValue
	}
	realizations[0] = initial
	for t := 1; t <= params.Steps; t++ {
		step := make([]float64, numberOfPaths)
		previous := realizations[t-1]
		for i := range step {
			factor := params.DownFactor
			if rng.Float64() < q {
				factor = params.UpFactor
			}
			step[i] = previous[i] * factor
		}
		realizations[t] = step
	}
	return &MonteCarlo{params: params, paths: numberOfPaths, realizations: realizations}, nil
}

// Parameters returns the process assumptions.
func (m *MonteCarlo) Parameters() Parameters { return m.params }

// NumberOfPaths returns the number of simulated trajectories.
func (m *MonteCarlo) NumberOfPaths() int { return m.paths }

// ValuesAt returns the simulated values at the given time, one per path.
func (m *MonteCarlo) ValuesAt(timeIndex int) ([]float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return nil, err
	}
	out := make([]float64, m.paths)
	copy(out, m.realizations[timeIndex])
	return out, nil
}

// ProbabilitiesAt returns the uniform empirical weight 1/paths for every
// simulated value at the given time.
func (m *MonteCarlo) ProbabilitiesAt(timeIndex int) ([]float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return nil, err
	}
	weights := make([]float64, m.paths)
	w := 1 / float64(m.paths)
	for i := range weights {
		weights[i] = w
	}
	return weights, nil
}

// DiscountedExpectationAt returns (1+rho)^(-t) times the empirical average
// of the supplied per-path values.
func (m *MonteCarlo) DiscountedExpectationAt(timeIndex int, values []float64) (float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	if len(values) != m.paths {
		return 0, errValueCount(len(values), m.paths)
	}
	discount := math.Pow(1+m.params.InterestRate, -float64(timeIndex))
	return discount * stat.Mean(values, nil), nil
}

// DiscountedAverageAt returns the discounted empirical average of the
// process at the given time.
func (m *MonteCarlo) DiscountedAverageAt(timeIndex int) (float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	return m.DiscountedExpectationAt(timeIndex, m.realizations[timeIndex])
}

// GainProbabilityAt returns the percentage of paths whose discounted value
// at the given time exceeds the initial value.
func (m *MonteCarlo) GainProbabilityAt(timeIndex int) (float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	target := m.params.InitialValue * math.Pow(1+m.params.InterestRate, float64(timeIndex))
	gains := 0
	for _, v := range m.realizations[timeIndex] {
		if v > target {
			gains++
		}
	}
	return 100 * float64(gains) / float64(m.paths), nil
}

// Path returns the full trajectory of one simulation.
func (m *MonteCarlo) Path(pathIndex int) ([]float64, error) {
	if pathIndex < 0 || pathIndex >= m.paths {
		return nil, fmt.Errorf("%w: path %d not in [0, %d)", ErrIndexOutOfRange, pathIndex, m.paths)
	}
	out := make([]float64, m.params.Steps+1)
	for t := range out {
		out[t] = m.realizations[t][pathIndex]
	}
	return out, nil
}

// MaxAt returns the largest simulated value at the given time.
func (m *MonteCarlo) MaxAt(timeIndex int) (float64, error) {
	if err := m.params.checkTimeIndex(timeIndex); err != nil {
		return 0, err
	}
	max := math.Inf(-1)
	for _, v := range m.realizations[timeIndex] {
		if v > max {
			max = v
		}
	}
	return max, nil
}
