// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the mean of values and whether values was non-empty
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// MeanSquare returns the mean of the squares of values and whether
// values was non-empty
func MeanSquare(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return floats.Dot(values, values) / float64(len(values)), true
}

// RMSE returns the root mean squared error between predictions and
// targets, which must have the same length
func RMSE(predictions, targets []float64) float64 {
	if len(predictions) != len(targets) {
		panic("rmse: length mismatch")
	}
	if len(predictions) == 0 {
		return 0
	}

	diff := make([]float64, len(predictions))
	floats.SubTo(diff, predictions, targets)
	ms, _ := MeanSquare(diff)
	return math.Sqrt(ms)
}

// Flatten concatenates values into a single slice
func Flatten(values [][]float64) []float64 {
	n := 0
	for i := range values {
		n += len(values[i])
	}

	out := make([]float64, 0, n)
	for i := range values {
		out = append(out, values[i]...)
	}
	return out
}
