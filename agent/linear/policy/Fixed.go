// Package policy implements policies for linear agents
package policy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Fixed is a policy that selects the same action in every state
type Fixed struct {
	action int
}

// NewFixed returns a new Fixed policy which always selects action
func NewFixed(action, numActions int) (*Fixed, error) {
	if action < 0 || action >= numActions {
		return nil, fmt.Errorf("newFixed: action %d outside [0, %d)", action,
			numActions)
	}
	return &Fixed{action}, nil
}

// SelectAction returns the fixed action
func (f *Fixed) SelectAction(mat.Vector) int {
	return f.action
}
