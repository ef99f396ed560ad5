package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	m, ok := Mean([]float64{1, 2, 3})
	assert.True(t, ok)
	assert.InDelta(t, 2.0, m, 1e-12)

	_, ok = Mean(nil)
	assert.False(t, ok)
}

func TestMeanSquare(t *testing.T) {
	m, ok := MeanSquare([]float64{1, -3})
	assert.True(t, ok)
	assert.InDelta(t, 5.0, m, 1e-12)
}

func TestRMSE(t *testing.T) {
	assert.InDelta(t, 1.0, RMSE([]float64{1, 2}, []float64{2, 3}), 1e-12)
	assert.Panics(t, func() { RMSE([]float64{1}, nil) })
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Flatten([][]float64{{1}, {2, 3}}))
}
