package tracker

import ts "github.com/samuelfneumann/sflearn/timestep"

// Episode tracks the return and length of the current episode. A
// TimeStep of type First starts a new episode.
type Episode struct {
	steps  int
	reward float64
}

// Track tracks the reward seen on a timestep
func (e *Episode) Track(step ts.TimeStep) {
	if step.First() {
		e.steps = 0
		e.reward = 0
		return
	}
	e.steps++
	e.reward += step.Reward
}

// Steps returns the number of steps taken in the episode
func (e *Episode) Steps() int {
	return e.steps
}

// Return returns the cumulative reward of the episode
func (e *Episode) Return() float64 {
	return e.reward
}
