package pde

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SolveImplicit advances the pricing equation with backward Euler steps,
// solving one tridiagonal system per step over the interior points. The
// scheme is unconditionally stable, so the time step is not tied to the
// space step.
func SolveImplicit(p Problem) (*Solution, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	x, timeSteps := p.grids()
	n := len(x) - 1
	interior := n - 1
	if interior < 1 {
		return nil, fmt.Errorf("%w: space grid too coarse (%d points)", ErrInvalidProblem, n+1)
	}

	// The coefficients do not depend on time, so the system matrix is
	// assembled once. For interior point j:
	//   lower_j = -dt (a_j/dx^2 - b_j/(2dx))
	//   diag_j  = 1 + dt (2 a_j/dx^2 + r)
	//   upper_j = -dt (a_j/dx^2 + b_j/(2dx))
	// with a_j = 0.5 sigma(x_j)^2 x_j^2 and b_j = r x_j.
	lower := make([]float64, interior-1)
	diag := make([]float64, interior)
	upper := make([]float64, interior-1)
	lowerAtFirst, upperAtLast := 0.0, 0.0
	for i := 0; i < interior; i++ {
		xj := x[i+1]
		a := 0.5 * sqr(p.Volatility(xj)*xj)
		b := p.Rate * xj
		l := -p.Dt * (a/sqr(p.Dx) - b/(2*p.Dx))
		u := -p.Dt * (a/sqr(p.Dx) + b/(2*p.Dx))
		diag[i] = 1 + p.Dt*(2*a/sqr(p.Dx)+p.Rate)
		switch {
		case i == 0:
			lowerAtFirst = l
		default:
			lower[i-1] = l
		}
		switch {
		case i == interior-1:
			upperAtLast = u
		default:
			upper[i] = u
		}
	}
	system := mat.NewTridiag(interior, lower, diag, upper)

	values := make([][]float64, timeSteps+1)
	current := make([]float64, n+1)
	for j := range current {
		current[j] = p.Payoff(x[j])
	}
	values[0] = current

	rhs := mat.NewVecDense(interior, nil)
	solved := mat.NewVecDense(interior, nil)
	for step := 1; step <= timeSteps; step++ {
		t := float64(step) * p.Dt
		left := p.LeftBoundary(x[0], t)
		right := p.RightBoundary(x[n], t)

		for i := 0; i < interior; i++ {
			rhs.SetVec(i, current[i+1])
		}
		// Known boundary values move to the right-hand side.
		rhs.SetVec(0, rhs.AtVec(0)-lowerAtFirst*left)
		rhs.SetVec(interior-1, rhs.AtVec(interior-1)-upperAtLast*right)

		if err := system.SolveVecTo(solved, false, rhs); err != nil {
			return nil, fmt.Errorf("pde: tridiagonal solve at step %d: %w", step, err)
		}

		next := make([]float64, n+1)
		next[0] = left
		next[n] = right
		for i := 0; i < interior; i++ {
			next[i+1] = solved.AtVec(i)
		}
		values[step] = next
		current = next
	}
	return &Solution{x: x, xMin: p.XMin, dx: p.Dx, dt: p.Dt, values: values}, nil
}
