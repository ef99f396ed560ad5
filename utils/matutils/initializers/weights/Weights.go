// Package weights defines interfaces for weight initializations
package weights

import "gonum.org/v1/gonum/mat"

// Initializer initializes weights
type Initializer interface {
	Initialize(weights *mat.Dense) // initializes weights
}

// InitializeVec initializes a vector of weights with init by viewing
// it as a single-row matrix
func InitializeVec(init Initializer, weights *mat.VecDense) {
	if weights == nil || weights.Len() == 0 {
		return
	}
	raw := weights.RawVector()
	if raw.Inc != 1 {
		panic("initializeVec: cannot initialize a strided vector")
	}
	init.Initialize(mat.NewDense(1, weights.Len(), raw.Data[:weights.Len()]))
}
