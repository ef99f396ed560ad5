package tensorutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestVecRoundTrip(t *testing.T) {
	v := mat.NewVecDense(3, []float64{1, 2, 3})
	tt := FromVec(v)
	assert.Equal(t, []int{3}, []int(tt.Shape()))

	v.SetVec(0, 10)
	out, err := ToVec(tt, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, out.RawVector().Data)

	_, err = ToVec(tt, 4)
	assert.Error(t, err)
}

func TestMatricesRoundTrip(t *testing.T) {
	m := []*mat.Dense{
		mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		mat.NewDense(2, 2, []float64{5, 6, 7, 8}),
	}
	tt, err := FromMatrices(m)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2}, []int(tt.Shape()))

	out, err := ToMatrices(tt, 2, 2, 2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(m[1], out[1]))

	_, err = FromMatrices([]*mat.Dense{mat.NewDense(1, 2, nil),
		mat.NewDense(2, 1, nil)})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	_, err := New([]int{2, 3}, []float64{1})
	assert.Error(t, err)

	tt, err := New([]int{2}, []float64{1, 2})
	require.NoError(t, err)
	data, err := Data(tt, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, data)
}
