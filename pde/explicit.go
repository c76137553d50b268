package pde

import "fmt"

// SolveExplicit advances the pricing equation with forward Euler steps.
// The scheme is conditionally stable: it requires roughly
// dt <= dx^2 / (sigma(xmax) * xmax)^2, which the solver enforces because a
// violating step size produces garbage rather than a rough answer.
func SolveExplicit(p Problem) (*Solution, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	x, timeSteps := p.grids()
	n := len(x) - 1

	limit := p.Dx * p.Dx / sqr(p.Volatility(x[n])*x[n])
	if p.Dt > limit {
		return nil, fmt.Errorf("%w: explicit step %v exceeds stability limit %v", ErrInvalidProblem, p.Dt, limit)
	}

	values := make([][]float64, timeSteps+1)
	current := make([]float64, n+1)
	for j := range current {
		current[j] = p.Payoff(x[j])
	}
	values[0] = current

	for step := 1; step <= timeSteps; step++ {
		t := float64(step) * p.Dt
		next := make([]float64, n+1)
		next[0] = p.LeftBoundary(x[0], t)
		next[n] = p.RightBoundary(x[n], t)
		for j := 1; j < n; j++ {
			diffusion := 0.5 * sqr(p.Volatility(x[j])*x[j]) * (current[j+1] - 2*current[j] + current[j-1]) / sqr(p.Dx)
			convection := p.Rate * x[j] * (current[j+1] - current[j-1]) / (2 * p.Dx)
			next[j] = current[j] + p.Dt*(diffusion+convection-p.Rate*current[j])
		}
		values[step] = next
		current = next
	}
	return &Solution{x: x, xMin: p.XMin, dx: p.Dx, dt: p.Dt, values: values}, nil
}

func sqr(v float64) float64 { return v * v }
