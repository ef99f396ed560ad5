// Package environment outlines the interfaces and structs needed to
// implement concrete environments.
//
// Environments emit linear feature vectors as observations and accept
// discrete actions enumerated as (0, 1, ..., N-1).
package environment

import (
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes should end
type Ender interface {
	// End checks whether the episode should end at the argument
	// TimeStep, marking the TimeStep as the last one if so
	End(*ts.TimeStep) bool
}

// Environment implements a simulated environment
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes the argument action and returns the TimeStep that it
	// led to, as well as whether the episode has ended
	Step(action int) (ts.TimeStep, bool, error)

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec
}

// Evaluator is an Environment that knows the true state values of the
// fixed action-0 policy over a finite set of states.
type Evaluator interface {
	Environment

	// States returns the feature vector of each non-terminal state
	States() []*mat.VecDense

	// TrueValues returns the true value of each state returned by
	// States() under the discount factor discount
	TrueValues(discount float64) (*mat.VecDense, error)
}

// FeatureDim returns the dimension of the feature vectors emitted by
// an environment
func FeatureDim(env Environment) int {
	return env.ObservationSpec().Shape.Len()
}

// NumActions returns the number of discrete actions of an environment
func NumActions(env Environment) int {
	return int(env.ActionSpec().UpperBound.AtVec(0)) + 1
}

// Config configures and constructs an environment
type Config interface {
	Validate() error
	CreateEnv(seed uint64) (Environment, error)
}
