package environment

import (
	"testing"

	ts "github.com/samuelfneumann/sflearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStepLimit(t *testing.T) {
	ender := NewStepLimit(3)

	step := ts.New(ts.Mid, 0, 1, nil, 2)
	assert.False(t, ender.End(&step))
	assert.False(t, step.Last())

	step = ts.New(ts.Mid, 0, 1, nil, 3)
	assert.True(t, ender.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.EndType())

	never := NewStepLimit(0)
	step = ts.New(ts.Mid, 0, 1, nil, 1000)
	assert.False(t, never.End(&step))
}

func TestEnders(t *testing.T) {
	atOne := NewFunctionEnder(func(o *mat.VecDense) bool {
		return o.AtVec(0) == 1.0
	}, ts.TerminalStateReached)
	enders := Enders{NewStepLimit(10), atOne}

	step := ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, []float64{0}), 1)
	assert.False(t, enders.End(&step))

	step = ts.New(ts.Mid, 0, 1, mat.NewVecDense(1, []float64{1}), 1)
	assert.True(t, enders.End(&step))
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
}

func TestCategoricalStarter(t *testing.T) {
	starter := NewCategoricalStarter([]int{3, 2}, 1)
	for i := 0; i < 50; i++ {
		s := starter.Start()
		require.Equal(t, 2, s.Len())
		assert.GreaterOrEqual(t, s.AtVec(0), 0.0)
		assert.Less(t, s.AtVec(0), 3.0)
		assert.GreaterOrEqual(t, s.AtVec(1), 0.0)
		assert.Less(t, s.AtVec(1), 2.0)
	}
}

func TestSolveValues(t *testing.T) {
	// Single state that self-loops with reward 1
	p := mat.NewDense(1, 1, []float64{1})
	r := mat.NewVecDense(1, []float64{1})
	v, err := SolveValues(p, r, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.AtVec(0), 1e-12)

	_, err = SolveValues(mat.NewDense(1, 2, nil), r, 0.5)
	assert.Error(t, err)
}

func TestSpecs(t *testing.T) {
	a := NewDiscreteActionSpec(4)
	assert.Equal(t, 3.0, a.UpperBound.AtVec(0))
	assert.Equal(t, Discrete, a.Cardinality)

	o := NewBinaryObservationSpec(5)
	assert.Equal(t, 5, o.Shape.Len())

	assert.Panics(t, func() {
		NewSpec(mat.NewVecDense(2, nil), Action, mat.NewVecDense(1, nil),
			mat.NewVecDense(2, nil), Discrete)
	})
}
