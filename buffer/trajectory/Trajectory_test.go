package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestAddAndIndex(t *testing.T) {
	traj := New(2)

	phi := mat.NewVecDense(2, []float64{1, 0})
	traj.AddFeature(phi)
	traj.AddAction(0)
	phi.SetVec(0, 5)

	traj.AddFeature(mat.NewVecDense(2, []float64{0, 1}))
	traj.AddAction(1)
	traj.AddReward(2.5)

	assert.Equal(t, 2, traj.NumFeatures())
	assert.Equal(t, 2, traj.NumActions())
	assert.Equal(t, 1, traj.NumRewards())

	assert.Equal(t, 1.0, traj.Feature(0).AtVec(0))
	assert.Equal(t, 1.0, traj.Feature(-1).AtVec(1))
	assert.Equal(t, 0, traj.Action(-2))
	assert.Equal(t, 2.5, traj.Reward(-1))

	assert.Panics(t, func() { traj.Reward(1) })
	assert.Panics(t, func() { traj.Action(-3) })
	assert.Panics(t, func() { traj.AddFeature(mat.NewVecDense(3, nil)) })
}

func TestReset(t *testing.T) {
	traj := New(1)
	traj.AddFeature(mat.NewVecDense(1, []float64{1}))
	traj.AddAction(0)
	traj.AddReward(1)

	traj.Reset()
	assert.Equal(t, 0, traj.NumFeatures())
	assert.Equal(t, 0, traj.NumActions())
	assert.Equal(t, 0, traj.NumRewards())
}
