package constant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	c, first, err := New([]float64{1, 2}, 0.5, 2, 3, 0.9)
	require.NoError(t, err)
	assert.True(t, first.First())

	for i := 1; i <= 3; i++ {
		step, last, err := c.Step(1)
		require.NoError(t, err)
		assert.Equal(t, 0.5, step.Reward)
		assert.Equal(t, 2.0, step.Observation.AtVec(1))
		assert.Equal(t, i == 3, last)
	}

	_, _, err = c.Step(2)
	assert.Error(t, err)

	v, err := c.TrueValues(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v.AtVec(0), 1e-12)
}

func TestObservationsAreCopies(t *testing.T) {
	c, first, err := New([]float64{1}, 1, 1, 10, 1)
	require.NoError(t, err)

	first.Observation.SetVec(0, 5)
	step, _, err := c.Step(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, step.Observation.AtVec(0))
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	c.FeatureDim = 3
	e, err := c.CreateEnv(0)
	require.NoError(t, err)
	assert.Equal(t, 3, e.ObservationSpec().Shape.Len())

	c.NumActions = 0
	_, err = c.CreateEnv(0)
	assert.Error(t, err)
}
