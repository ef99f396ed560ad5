// Package constant implements an environment which emits the same
// feature vector and reward on every step
package constant

import (
	"fmt"

	env "github.com/samuelfneumann/sflearn/environment"
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Constant is an environment whose observation and reward never
// change. Episodes end only through the step limit.
type Constant struct {
	features   *mat.VecDense
	reward     float64
	numActions int
	discount   float64
	env.Ender

	currentStep ts.TimeStep
}

// New returns a new Constant environment and its first TimeStep
func New(features []float64, reward float64, numActions,
	episodeLength int, discount float64) (*Constant, ts.TimeStep, error) {
	if len(features) == 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: features must be " +
			"non-empty")
	}
	if numActions <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: number of actions "+
			"must be positive but got %d", numActions)
	}

	f := make([]float64, len(features))
	copy(f, features)

	c := &Constant{
		features:   mat.NewVecDense(len(f), f),
		reward:     reward,
		numActions: numActions,
		discount:   discount,
		Ender:      env.NewStepLimit(episodeLength),
	}

	step, err := c.Reset()
	return c, step, err
}

// Reset resets the environment and returns the first TimeStep
func (c *Constant) Reset() (ts.TimeStep, error) {
	c.currentStep = ts.New(ts.First, 0, c.discount,
		mat.VecDenseCopyOf(c.features), 0)
	return c.currentStep, nil
}

// Step takes one environmental step, ignoring the action
func (c *Constant) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= c.numActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %d outside "+
			"[0, %d)", action, c.numActions)
	}

	step := ts.New(ts.Mid, c.reward, c.discount,
		mat.VecDenseCopyOf(c.features), c.currentStep.Number+1)
	last := c.End(&step)
	c.currentStep = step

	return step, last, nil
}

// States returns the single state of the environment
func (c *Constant) States() []*mat.VecDense {
	return []*mat.VecDense{mat.VecDenseCopyOf(c.features)}
}

// TrueValues returns the value of the single state, ignoring the
// episode cutoff
func (c *Constant) TrueValues(discount float64) (*mat.VecDense, error) {
	p := mat.NewDense(1, 1, []float64{1})
	r := mat.NewVecDense(1, []float64{c.reward})

	v, err := env.SolveValues(p, r, discount)
	if err != nil {
		return nil, fmt.Errorf("trueValues: %w", err)
	}
	return v, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Constant) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(c.features.Len(), nil)
	bound := mat.VecDenseCopyOf(c.features)
	return env.NewSpec(shape, env.Observation, bound, bound, env.Continuous)
}

// ActionSpec returns the action specification of the environment
func (c *Constant) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(c.numActions)
}

// DiscountSpec returns the discount specification of the environment
func (c *Constant) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(c.discount)
}
