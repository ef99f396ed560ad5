// Package matutils provides utilities for working with gonum matrices
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// MulVecT returns Mᵀv as a new vector
func MulVecT(m mat.Matrix, v mat.Vector) *mat.VecDense {
	_, c := m.Dims()
	out := mat.NewVecDense(c, nil)
	out.MulVec(m.T(), v)
	return out
}
