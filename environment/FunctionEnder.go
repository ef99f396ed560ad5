package environment

import (
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
)

// FunctionEnder ends an episode whenever a function of the observed
// feature vector returns true.
type FunctionEnder struct {
	end     func(*mat.VecDense) bool
	endType ts.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(*mat.VecDense) bool, endType ts.EndType) Ender {
	return &FunctionEnder{f, endType}
}

// End determines whether or not the current episode should be ended.
// If so, the TimeStep is marked as the last in the episode with the
// FunctionEnder's end type.
func (f *FunctionEnder) End(t *ts.TimeStep) bool {
	if f.end(t.Observation) {
		t.SetEnd(f.endType)
		return true
	}
	return false
}

// Enders combines multiple Enders, ending the episode as soon as any
// of them does. Enders are checked in order.
type Enders []Ender

// End implements the Ender interface
func (e Enders) End(t *ts.TimeStep) bool {
	for _, ender := range e {
		if ender.End(t) {
			return true
		}
	}
	return false
}
