package agent

// Keys of the diagnostics recorded in a LogDict
const (
	ValueErrors  string = "value_errors"   // value error, one per step
	RewardErrors string = "reward_errors"  // reward weight update vector
	SFErrorNorms string = "sf_error_norms" // ‖δ‖ of successor features
	ETErrorNorms string = "et_error_norms" // ‖δz‖ of eligibility traces
)

// LogDict records per-step diagnostics of a Learner. Each sample is a
// slice, so scalar samples are stored as slices of length one.
type LogDict map[string][][]float64

// Add records a scalar sample under key
func (l LogDict) Add(key string, value float64) {
	l[key] = append(l[key], []float64{value})
}

// AddVec records a copy of the vector sample value under key
func (l LogDict) AddVec(key string, value []float64) {
	v := make([]float64, len(value))
	copy(v, value)
	l[key] = append(l[key], v)
}

// Scalars returns the first element of each sample under key
func (l LogDict) Scalars(key string) []float64 {
	samples := l[key]
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if len(s) > 0 {
			out = append(out, s[0])
		}
	}
	return out
}

// Clear removes all samples
func (l LogDict) Clear() {
	for k := range l {
		delete(l, k)
	}
}

// Copy returns a deep copy of the LogDict
func (l LogDict) Copy() LogDict {
	out := make(LogDict, len(l))
	for k, samples := range l {
		c := make([][]float64, len(samples))
		for i := range samples {
			c[i] = make([]float64, len(samples[i]))
			copy(c[i], samples[i])
		}
		out[k] = c
	}
	return out
}
