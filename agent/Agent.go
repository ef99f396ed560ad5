// Package agent defines the interfaces implemented by linear agents
// and a registry of agent configurations
package agent

import (
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Agent is a Learner whose weights can be read and replaced through a
// ParameterStore
type Agent interface {
	Learner
	ParameterStore
}

// Learner implements a learning algorithm that defines how weights are
// updated.
//
// A Learner is driven one episode at a time. BeginEpisode is called
// with the features of the first state and returns the first action.
// Step is then called with the features of each next state, the reward
// for the transition into it, and whether the episode has ended, and
// returns the next action. The action returned on the last step of an
// episode is never taken.
type Learner interface {
	BeginEpisode(phi mat.Vector) int
	Step(phi mat.Vector, reward float64, done bool) int

	// Logs returns the diagnostics recorded since the last call to
	// BeginEpisode
	Logs() LogDict
}

// ParameterStore exchanges the named weights of an agent. Weights
// returns copies, and SetWeights replaces only the weights named in
// its argument, returning an error on unknown names or shapes.
type ParameterStore interface {
	Weights() map[string]*tensor.Dense
	SetWeights(map[string]*tensor.Dense) error
}

// ValueEstimator is an agent that can estimate the value of a state
type ValueEstimator interface {
	StateValue(phi mat.Vector) float64
	Discount() float64
}

// SuccessorReturner is an agent that can estimate the λ-return of
// taking an action in a state through successor features
type SuccessorReturner interface {
	SuccessorReturn(phi mat.Vector, action int) float64
}

// Policy selects actions given state features
type Policy interface {
	SelectAction(phi mat.Vector) int
}

// Names of weights exchanged through a ParameterStore
const (
	QWeights      string = "Wq" // action values
	TraceWeights  string = "Wz" // eligibility trace
	RewardWeights string = "Wr" // reward prediction
	SFWeights     string = "Ws" // successor features, one matrix per action
	ValueWeights  string = "Wv" // state values
)

// CheckpointWeights lists, in order, the weights that are saved in a
// checkpoint whenever an agent has them
var CheckpointWeights = []string{
	QWeights,
	TraceWeights,
	RewardWeights,
	SFWeights,
	ValueWeights,
}
