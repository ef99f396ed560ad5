package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, a discount, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteActionSpec returns the Spec of a 1-dimensional discrete
// action enumerated as (0, 1, ..., n-1)
func NewDiscreteActionSpec(n int) Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0.0})
	upperBound := mat.NewVecDense(1, []float64{float64(n - 1)})

	return NewSpec(shape, Action, lowerBound, upperBound, Discrete)
}

// NewBinaryObservationSpec returns the Spec of d-dimensional feature
// vectors with components in [0, 1], such as one-hot encodings
func NewBinaryObservationSpec(d int) Spec {
	shape := mat.NewVecDense(d, nil)
	lowerBound := mat.NewVecDense(d, nil)
	upper := make([]float64, d)
	for i := range upper {
		upper[i] = 1.0
	}
	upperBound := mat.NewVecDense(d, upper)

	return NewSpec(shape, Observation, lowerBound, upperBound, Continuous)
}

// NewDiscountSpec returns the Spec of a constant discount
func NewDiscountSpec(discount float64) Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{discount})

	return NewSpec(shape, Discount, bound, bound, Continuous)
}
