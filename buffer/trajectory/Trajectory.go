// Package trajectory implements a buffer holding the feature vectors,
// actions, and rewards observed so far in a single episode
package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Trajectory stores the features, actions, and rewards of the current
// episode in order of arrival. The reward at index i is the reward
// received after taking the action at index i in the state with the
// features at index i. Feature vectors are copied on insertion and
// must all have the same length.
type Trajectory struct {
	featureDim int

	features []*mat.VecDense
	actions  []int
	rewards  []float64
}

// New returns a new, empty Trajectory of feature vectors of length
// featureDim
func New(featureDim int) *Trajectory {
	return &Trajectory{featureDim: featureDim}
}

// Reset clears the Trajectory for a new episode
func (t *Trajectory) Reset() {
	t.features = t.features[:0]
	t.actions = t.actions[:0]
	t.rewards = t.rewards[:0]
}

// AddFeature appends a copy of the feature vector phi
func (t *Trajectory) AddFeature(phi mat.Vector) {
	if phi.Len() != t.featureDim {
		panic(fmt.Sprintf("addFeature: expected features of length %d "+
			"but got %d", t.featureDim, phi.Len()))
	}
	t.features = append(t.features, mat.VecDenseCopyOf(phi))
}

// AddAction appends the action a
func (t *Trajectory) AddAction(a int) {
	t.actions = append(t.actions, a)
}

// AddReward appends the reward r
func (t *Trajectory) AddReward(r float64) {
	t.rewards = append(t.rewards, r)
}

// NumFeatures returns the number of feature vectors stored
func (t *Trajectory) NumFeatures() int {
	return len(t.features)
}

// NumActions returns the number of actions stored
func (t *Trajectory) NumActions() int {
	return len(t.actions)
}

// NumRewards returns the number of rewards stored
func (t *Trajectory) NumRewards() int {
	return len(t.rewards)
}

// FeatureDim returns the length of the feature vectors stored
func (t *Trajectory) FeatureDim() int {
	return t.featureDim
}

// Feature returns the feature vector at index i. Negative indices
// count back from the most recent feature vector. The returned vector
// must not be modified.
func (t *Trajectory) Feature(i int) *mat.VecDense {
	return t.features[index(i, len(t.features))]
}

// Action returns the action at index i. Negative indices count back
// from the most recent action.
func (t *Trajectory) Action(i int) int {
	return t.actions[index(i, len(t.actions))]
}

// Reward returns the reward at index i. Negative indices count back
// from the most recent reward.
func (t *Trajectory) Reward(i int) float64 {
	return t.rewards[index(i, len(t.rewards))]
}

func index(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		panic(fmt.Sprintf("index %d out of range for trajectory of "+
			"length %d", i, n))
	}
	return i
}

func (t *Trajectory) String() string {
	return fmt.Sprintf("Trajectory | Features: %d  |  Actions: %d  |  "+
		"Rewards: %d", len(t.features), len(t.actions), len(t.rewards))
}
