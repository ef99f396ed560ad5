// Package tensorutils converts between gonum weights and tensors
package tensorutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// FromVec returns a tensor of shape [n] holding a copy of v
func FromVec(v mat.Vector) *tensor.Dense {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return tensor.New(tensor.WithShape(len(data)), tensor.WithBacking(data))
}

// FromMatrices returns a tensor of shape [len(m), r, c] holding copies
// of the r x c matrices m
func FromMatrices(m []*mat.Dense) (*tensor.Dense, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("fromMatrices: no matrices")
	}

	r, c := m[0].Dims()
	data := make([]float64, 0, len(m)*r*c)
	for i := range m {
		if rows, cols := m[i].Dims(); rows != r || cols != c {
			return nil, fmt.Errorf("fromMatrices: matrix %d has shape (%d, "+
				"%d) but expected (%d, %d)", i, rows, cols, r, c)
		}
		for j := 0; j < r; j++ {
			for k := 0; k < c; k++ {
				data = append(data, m[i].At(j, k))
			}
		}
	}

	return tensor.New(tensor.WithShape(len(m), r, c),
		tensor.WithBacking(data)), nil
}

// ToVec copies a tensor of shape [n] into a new vector
func ToVec(t *tensor.Dense, n int) (*mat.VecDense, error) {
	data, err := Data(t, n)
	if err != nil {
		return nil, fmt.Errorf("toVec: %w", err)
	}
	return mat.NewVecDense(n, data), nil
}

// ToMatrices copies a tensor of shape [k, r, c] into k new r x c
// matrices
func ToMatrices(t *tensor.Dense, k, r, c int) ([]*mat.Dense, error) {
	data, err := Data(t, k, r, c)
	if err != nil {
		return nil, fmt.Errorf("toMatrices: %w", err)
	}

	m := make([]*mat.Dense, k)
	for i := range m {
		m[i] = mat.NewDense(r, c, data[i*r*c:(i+1)*r*c])
	}
	return m, nil
}

// Data returns a copy of the float64 data of t after checking that t
// has the argument shape
func Data(t *tensor.Dense, shape ...int) ([]float64, error) {
	if t == nil {
		return nil, fmt.Errorf("data: nil tensor")
	}
	if !t.Shape().Eq(tensor.Shape(shape)) {
		return nil, fmt.Errorf("data: expected shape %v but got %v",
			tensor.Shape(shape), t.Shape())
	}

	backing, ok := t.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("data: expected float64 tensor but got %v",
			t.Dtype())
	}

	data := make([]float64, len(backing))
	copy(data, backing)
	return data, nil
}

// New returns a float64 tensor with the given shape and a copy of data
func New(shape []int, data []float64) (*tensor.Dense, error) {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size != len(data) {
		return nil, fmt.Errorf("new: shape %v requires %d elements but "+
			"got %d", shape, size, len(data))
	}

	backing := make([]float64, len(data))
	copy(backing, data)
	return tensor.New(tensor.WithShape(shape...),
		tensor.WithBacking(backing)), nil
}
