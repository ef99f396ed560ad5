package gridworld

import (
	"testing"

	env "github.com/samuelfneumann/sflearn/environment"
	ts "github.com/samuelfneumann/sflearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCorridor(t *testing.T, cols, cutoff int) *GridWorld {
	task, err := NewGoal([]int{cols - 1}, []int{0}, 1, cols, -1.0, 10.0,
		cutoff)
	require.NoError(t, err)

	g, step, err := New(task, env.NewFixedStarter([]float64{0, 0}), 1, cols,
		0.0, 1.0, 1)
	require.NoError(t, err)
	require.True(t, step.First())
	require.Equal(t, 1.0, step.Observation.AtVec(0))

	return g
}

func TestStepToGoal(t *testing.T) {
	g := newCorridor(t, 4, 0)

	var step ts.TimeStep
	var last bool
	var err error
	for i := 1; i <= 3; i++ {
		step, last, err = g.Step(Right)
		require.NoError(t, err)
		assert.Equal(t, i, step.Number)
		assert.Equal(t, 1.0, step.Observation.AtVec(i))
	}

	assert.True(t, last)
	assert.Equal(t, 10.0, step.Reward)
	assert.Equal(t, ts.TerminalStateReached, step.EndType())

	_, _, err = g.Step(Right)
	assert.Error(t, err)

	step, err = g.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
	x, y := g.Coordinates()
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}

func TestWalls(t *testing.T) {
	g := newCorridor(t, 3, 0)

	step, last, err := g.Step(Left)
	require.NoError(t, err)
	assert.False(t, last)
	assert.Equal(t, -1.0, step.Reward)
	assert.Equal(t, 1.0, step.Observation.AtVec(0))

	_, _, err = g.Step(NumActions)
	assert.Error(t, err)
}

func TestCutoff(t *testing.T) {
	g := newCorridor(t, 5, 2)

	_, last, err := g.Step(Left)
	require.NoError(t, err)
	assert.False(t, last)

	step, last, err := g.Step(Left)
	require.NoError(t, err)
	assert.True(t, last)
	assert.Equal(t, ts.Timeout, step.EndType())
}

func TestTrueValues(t *testing.T) {
	g := newCorridor(t, 4, 0)

	states := g.States()
	require.Len(t, states, 3)

	v, err := g.TrueValues(1.0)
	require.NoError(t, err)

	// Cells 0, 1, 2 are 3, 2, 1 steps from the goal
	assert.InDelta(t, -1-1+10, v.AtVec(0), 1e-9)
	assert.InDelta(t, -1+10, v.AtVec(1), 1e-9)
	assert.InDelta(t, 10, v.AtVec(2), 1e-9)
}

func TestRandomStartAvoidsGoal(t *testing.T) {
	task, err := NewGoal([]int{1}, []int{0}, 1, 2, 0, 1, 0)
	require.NoError(t, err)

	g, _, err := New(task, env.NewCategoricalStarter([]int{2, 1}, 3), 1, 2,
		0.0, 1.0, 3)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_, err := g.Reset()
		require.NoError(t, err)
		x, _ := g.Coordinates()
		assert.Equal(t, 0, x)
	}
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	e, err := c.CreateEnv(1)
	require.NoError(t, err)

	assert.Equal(t, 25, env.FeatureDim(e))
	assert.Equal(t, NumActions, env.NumActions(e))
	_, ok := e.(env.Evaluator)
	assert.True(t, ok)

	c.Slip = 2
	_, err = c.CreateEnv(1)
	assert.Error(t, err)
}

func TestNewGoalErrors(t *testing.T) {
	_, err := NewGoal([]int{0, 1}, []int{0}, 2, 2, 0, 1, 0)
	assert.Error(t, err)

	_, err = NewGoal([]int{2}, []int{0}, 2, 2, 0, 1, 0)
	assert.Error(t, err)

	_, err = NewGoal([]int{0}, []int{0}, 1, 1, 0, 1, 0)
	assert.Error(t, err)
}
