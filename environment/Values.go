package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SolveValues returns the state values v of a Markov reward process
// with non-terminal transition matrix p and expected one-step rewards
// r, solving (I - discount * P) v = r. Transitions into terminal states
// must be omitted from p.
func SolveValues(p *mat.Dense, r *mat.VecDense, discount float64) (*mat.VecDense,
	error) {
	rows, cols := p.Dims()
	if rows != cols {
		return nil, fmt.Errorf("solveValues: transition matrix must be "+
			"square but got (%v, %v)", rows, cols)
	}
	if r.Len() != rows {
		return nil, fmt.Errorf("solveValues: expected %v rewards but got %v",
			rows, r.Len())
	}

	a := mat.NewDense(rows, cols, nil)
	a.Scale(-discount, p)
	for i := 0; i < rows; i++ {
		a.Set(i, i, a.At(i, i)+1.0)
	}

	v := mat.NewVecDense(rows, nil)
	if err := v.SolveVec(a, r); err != nil {
		return nil, fmt.Errorf("solveValues: %w", err)
	}
	return v, nil
}

// OneHot returns the one-hot feature vector of index i in dimension d
func OneHot(i, d int) *mat.VecDense {
	v := mat.NewVecDense(d, nil)
	v.SetVec(i, 1.0)
	return v
}
