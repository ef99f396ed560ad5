// Package tdlambda implements linear TD(λ) with accumulating
// eligibility traces
package tdlambda

import (
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/agent/linear/policy"
	"github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/utils/matutils/initializers/weights"
	"github.com/samuelfneumann/sflearn/utils/tensorutils"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// TDLambda implements online linear TD(λ) prediction of the fixed
// policy which always selects action 0
type TDLambda struct {
	policy agent.Policy
	logs   agent.LogDict

	wv    *mat.VecDense // value weights
	trace *mat.VecDense // eligibility trace

	prev *mat.VecDense // features of the previous state

	gamma        float64
	lambda       float64
	learningRate float64
	features     int
}

// New creates a new TDLambda agent for env with value weights
// initialized by init
func New(env environment.Environment, c Config,
	init weights.Initializer) (*TDLambda, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if env.ActionSpec().Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: cannot use non-discrete actions")
	}

	features := environment.FeatureDim(env)
	p, err := policy.NewFixed(0, environment.NumActions(env))
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	wv := mat.NewVecDense(features, nil)
	weights.InitializeVec(init, wv)

	return &TDLambda{
		policy:       p,
		logs:         make(agent.LogDict),
		wv:           wv,
		trace:        mat.NewVecDense(features, nil),
		prev:         mat.NewVecDense(features, nil),
		gamma:        c.Gamma,
		lambda:       c.Lambda,
		learningRate: c.LearningRate,
		features:     features,
	}, nil
}

// BeginEpisode resets the eligibility trace and returns the first
// action
func (t *TDLambda) BeginEpisode(phi mat.Vector) int {
	t.logs = make(agent.LogDict)
	t.trace.Zero()
	t.prev.CopyVec(phi)

	return t.policy.SelectAction(phi)
}

// Step performs a TD(λ) update on the transition from the previous
// state to the state with features phi
func (t *TDLambda) Step(phi mat.Vector, reward float64, done bool) int {
	// δ = r + γv(φ') - v(φ)
	next := 0.0
	if !done {
		next = mat.Dot(phi, t.wv)
	}
	delta := reward + t.gamma*next - mat.Dot(t.prev, t.wv)

	// z ← γλz + φ
	old := mat.VecDenseCopyOf(t.trace)
	t.trace.AddScaledVec(t.prev, t.gamma*t.lambda, t.trace)
	old.SubVec(t.trace, old)

	t.wv.AddScaledVec(t.wv, t.learningRate*delta, t.trace)

	t.logs.Add(agent.ValueErrors, delta)
	t.logs.Add(agent.ETErrorNorms, mat.Norm(old, 2))

	t.prev.CopyVec(phi)
	return t.policy.SelectAction(phi)
}

// Logs returns the diagnostics recorded since BeginEpisode was last
// called
func (t *TDLambda) Logs() agent.LogDict {
	return t.logs
}

// StateValue returns the value φ·Wv of the state with features phi
func (t *TDLambda) StateValue(phi mat.Vector) float64 {
	return mat.Dot(phi, t.wv)
}

// Discount returns the discount factor γ of the agent
func (t *TDLambda) Discount() float64 {
	return t.gamma
}

// Weights returns copies of the value weights and eligibility trace,
// both of shape [features]
func (t *TDLambda) Weights() map[string]*tensor.Dense {
	return map[string]*tensor.Dense{
		agent.ValueWeights: tensorutils.FromVec(t.wv),
		agent.TraceWeights: tensorutils.FromVec(t.trace),
	}
}

// SetWeights sets the weights named in w. If any weight is unknown or
// has the wrong shape, no weights are changed.
func (t *TDLambda) SetWeights(w map[string]*tensor.Dense) error {
	set := make(map[*mat.VecDense]*mat.VecDense, len(w))
	for name, tt := range w {
		var dst *mat.VecDense
		switch name {
		case agent.ValueWeights:
			dst = t.wv

		case agent.TraceWeights:
			dst = t.trace

		default:
			return fmt.Errorf("setWeights: unknown weights %q", name)
		}

		v, err := tensorutils.ToVec(tt, t.features)
		if err != nil {
			return fmt.Errorf("setWeights: %v: %w", name, err)
		}
		set[dst] = v
	}

	for dst, v := range set {
		dst.CopyVec(v)
	}
	return nil
}
