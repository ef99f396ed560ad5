// Package randomwalk implements the classic random walk Markov reward
// process with one-hot state features
package randomwalk

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/sflearn/environment"
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomWalk is a chain of non-terminal states with a terminal state
// at each end. On each step the agent moves left or right with equal
// probability regardless of the action taken. Episodes start in the
// middle state. Terminal states are observed as the zero vector.
type RandomWalk struct {
	n           int
	numActions  int
	leftReward  float64
	rightReward float64
	discount    float64
	cutoff      env.StepLimit

	position int
	coin     distuv.Bernoulli

	currentStep ts.TimeStep
}

// New returns a new RandomWalk over n non-terminal states and its
// first TimeStep
func New(n, numActions int, leftReward, rightReward, discount float64,
	episodeLength int, seed uint64) (*RandomWalk, ts.TimeStep, error) {
	if n <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: number of states must "+
			"be positive but got %d", n)
	}
	if numActions <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: number of actions "+
			"must be positive but got %d", numActions)
	}

	r := &RandomWalk{
		n:           n,
		numActions:  numActions,
		leftReward:  leftReward,
		rightReward: rightReward,
		discount:    discount,
		cutoff:      env.NewStepLimit(episodeLength),
		coin:        distuv.Bernoulli{P: 0.5, Src: rand.NewSource(seed)},
	}

	step, err := r.Reset()
	return r, step, err
}

// Reset resets the environment and returns the first TimeStep
func (r *RandomWalk) Reset() (ts.TimeStep, error) {
	r.position = r.n / 2
	r.currentStep = ts.New(ts.First, 0, r.discount,
		env.OneHot(r.position, r.n), 0)
	return r.currentStep, nil
}

// Step takes one environmental step. The action is validated but
// does not influence the transition.
func (r *RandomWalk) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= r.numActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %d outside "+
			"[0, %d)", action, r.numActions)
	}
	if r.currentStep.Last() {
		return ts.TimeStep{}, false, fmt.Errorf("step: episode has " +
			"ended, call Reset")
	}

	if r.coin.Rand() == 1.0 {
		r.position++
	} else {
		r.position--
	}

	number := r.currentStep.Number + 1
	var step ts.TimeStep
	switch {
	case r.position < 0:
		step = ts.New(ts.Mid, r.leftReward, r.discount,
			mat.NewVecDense(r.n, nil), number)
		step.SetEnd(ts.TerminalStateReached)

	case r.position >= r.n:
		step = ts.New(ts.Mid, r.rightReward, r.discount,
			mat.NewVecDense(r.n, nil), number)
		step.SetEnd(ts.TerminalStateReached)

	default:
		step = ts.New(ts.Mid, 0, r.discount, env.OneHot(r.position, r.n),
			number)
		r.cutoff.End(&step)
	}

	r.currentStep = step
	return step, step.Last(), nil
}

// States returns the one-hot features of the non-terminal states from
// left to right
func (r *RandomWalk) States() []*mat.VecDense {
	states := make([]*mat.VecDense, r.n)
	for i := range states {
		states[i] = env.OneHot(i, r.n)
	}
	return states
}

// TrueValues returns the value of each non-terminal state, ignoring
// the episode cutoff
func (r *RandomWalk) TrueValues(discount float64) (*mat.VecDense, error) {
	p := mat.NewDense(r.n, r.n, nil)
	rewards := mat.NewVecDense(r.n, nil)

	for i := 0; i < r.n; i++ {
		if i > 0 {
			p.Set(i, i-1, 0.5)
		} else {
			rewards.SetVec(i, rewards.AtVec(i)+0.5*r.leftReward)
		}

		if i < r.n-1 {
			p.Set(i, i+1, 0.5)
		} else {
			rewards.SetVec(i, rewards.AtVec(i)+0.5*r.rightReward)
		}
	}

	v, err := env.SolveValues(p, rewards, discount)
	if err != nil {
		return nil, fmt.Errorf("trueValues: %w", err)
	}
	return v, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (r *RandomWalk) ObservationSpec() env.Spec {
	return env.NewBinaryObservationSpec(r.n)
}

// ActionSpec returns the action specification of the environment
func (r *RandomWalk) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(r.numActions)
}

// DiscountSpec returns the discount specification of the environment
func (r *RandomWalk) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(r.discount)
}
