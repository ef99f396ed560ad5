// Package sfreturn implements a linear successor feature λ-return
// learner.
//
// The agent learns reward weights Wr such that r ≈ φ·Wr, successor
// feature weights Ws[a] for each action such that Ws[a]ᵀφ predicts
// the λγ-discounted sum of future features, and value weights Wv
// which regress toward the successor feature λ-return
//
//	G = (Ws[a]ᵀφ) · (Wr + γ(1-λ)Wv)
//
// Rewards are paired with the features of the state they were
// received from, one step behind the most recent features.
package sfreturn

import (
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/agent/linear/policy"
	"github.com/samuelfneumann/sflearn/buffer/trajectory"
	"github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/utils/matutils"
	"github.com/samuelfneumann/sflearn/utils/matutils/initializers/weights"
	"github.com/samuelfneumann/sflearn/utils/tensorutils"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// SFReturn implements the online linear successor feature λ-return
// algorithm. Actions are selected by a fixed policy which always
// selects action 0.
type SFReturn struct {
	policy agent.Policy
	traj   *trajectory.Trajectory
	logs   agent.LogDict

	wr *mat.VecDense // reward weights
	ws []*mat.Dense  // successor feature weights, one per action
	wv *mat.VecDense // value weights

	gamma    float64
	lambda   float64
	rewardLR float64
	sfLR     float64
	valueLR  float64

	features   int
	numActions int
}

// New creates a new SFReturn agent for environment env with weights
// initialized by init
func New(env environment.Environment, c Config,
	init weights.Initializer) (*SFReturn, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	if env.ActionSpec().Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: cannot use non-discrete actions")
	}
	if env.ActionSpec().LowerBound.Len() > 1 {
		return nil, fmt.Errorf("new: actions must be 1-dimensional")
	}
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("new: actions must be enumerated " +
			"starting from 0")
	}

	features := environment.FeatureDim(env)
	numActions := environment.NumActions(env)

	p, err := policy.NewFixed(0, numActions)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	wr := mat.NewVecDense(features, nil)
	wv := mat.NewVecDense(features, nil)
	ws := make([]*mat.Dense, numActions)
	for i := range ws {
		ws[i] = mat.NewDense(features, features, nil)
		init.Initialize(ws[i])
	}
	weights.InitializeVec(init, wr)
	weights.InitializeVec(init, wv)

	return &SFReturn{
		policy:     p,
		traj:       trajectory.New(features),
		logs:       make(agent.LogDict),
		wr:         wr,
		ws:         ws,
		wv:         wv,
		gamma:      c.Gamma,
		lambda:     c.Lambda,
		rewardLR:   c.RewardLR(),
		sfLR:       c.SFLR(),
		valueLR:    c.ValueLR(),
		features:   features,
		numActions: numActions,
	}, nil
}

// BeginEpisode starts a new episode in the state with features phi,
// returning the first action
func (s *SFReturn) BeginEpisode(phi mat.Vector) int {
	s.traj.Reset()
	s.logs = make(agent.LogDict)

	action := s.policy.SelectAction(phi)
	s.traj.AddFeature(phi)
	s.traj.AddAction(action)

	return action
}

// Step records the transition to the state with features phi and
// reward reward, updates the weights, and returns the next action. On
// the last step of an episode, phi and the returned action are not
// recorded, so the successor features of the previous transition are
// updated once more with a zero bootstrap.
func (s *SFReturn) Step(phi mat.Vector, reward float64, done bool) int {
	action := s.policy.SelectAction(phi)
	if !done {
		s.traj.AddFeature(phi)
		s.traj.AddAction(action)
	}
	s.traj.AddReward(reward)

	if s.traj.NumRewards() >= 1 {
		s.updateReward()
	}
	if s.traj.NumFeatures() >= 2 {
		s.updateSF(done)
	}
	if s.traj.NumFeatures() >= 1 {
		s.updateValue()
	}

	return action
}

// updateReward regresses the reward weights toward the most recent
// reward, paired with the features of the state it was received from
func (s *SFReturn) updateReward() {
	t := s.traj.NumRewards() - 1
	phi := s.traj.Feature(t)

	err := s.traj.Reward(t) - mat.Dot(phi, s.wr)

	grad := mat.NewVecDense(s.features, nil)
	grad.ScaleVec(err, phi)
	s.wr.AddScaledVec(s.wr, s.rewardLR, grad)

	s.logs.AddVec(agent.RewardErrors, grad.RawVector().Data)
}

// updateSF performs a TD update of the successor features of the
// second most recent state-action pair
func (s *SFReturn) updateSF(done bool) {
	t := s.traj.NumFeatures() - 2
	phi, a := s.traj.Feature(t), s.traj.Action(t)
	nextPhi, nextA := s.traj.Feature(t+1), s.traj.Action(t+1)

	sf := matutils.MulVecT(s.ws[a], phi)

	var nextSF *mat.VecDense
	if done {
		nextSF = mat.NewVecDense(s.features, nil)
	} else {
		nextSF = matutils.MulVecT(s.ws[nextA], nextPhi)
	}

	// δ = φ' + λγŝ' - ŝ
	delta := mat.NewVecDense(s.features, nil)
	delta.AddScaledVec(nextPhi, s.lambda*s.gamma, nextSF)
	delta.SubVec(delta, sf)

	s.ws[a].RankOne(s.ws[a], s.sfLR, phi, delta)

	s.logs.Add(agent.SFErrorNorms, mat.Norm(delta, 2))
}

// updateValue regresses the value of the most recent state toward its
// successor feature λ-return
func (s *SFReturn) updateValue() {
	t := s.traj.NumFeatures() - 1
	phi, a := s.traj.Feature(t), s.traj.Action(t)

	target := s.SuccessorReturn(phi, a)
	err := target - mat.Dot(phi, s.wv)

	s.wv.AddScaledVec(s.wv, s.valueLR*err, phi)

	s.logs.Add(agent.ValueErrors, err)
}

// Logs returns the diagnostics recorded since BeginEpisode was last
// called
func (s *SFReturn) Logs() agent.LogDict {
	return s.logs
}

// Weights returns copies of the weights of the agent. Wr and Wv have
// shape [features] and Ws has shape [actions, features, features].
func (s *SFReturn) Weights() map[string]*tensor.Dense {
	ws, err := tensorutils.FromMatrices(s.ws)
	if err != nil {
		panic(fmt.Sprintf("weights: %v", err))
	}

	return map[string]*tensor.Dense{
		agent.RewardWeights: tensorutils.FromVec(s.wr),
		agent.SFWeights:     ws,
		agent.ValueWeights:  tensorutils.FromVec(s.wv),
	}
}

// SetWeights sets the weights named in w. If any weight is unknown or
// has the wrong shape, no weights are changed.
func (s *SFReturn) SetWeights(w map[string]*tensor.Dense) error {
	var wr, wv *mat.VecDense
	var ws []*mat.Dense
	var err error

	for name, t := range w {
		switch name {
		case agent.RewardWeights:
			wr, err = tensorutils.ToVec(t, s.features)

		case agent.ValueWeights:
			wv, err = tensorutils.ToVec(t, s.features)

		case agent.SFWeights:
			ws, err = tensorutils.ToMatrices(t, s.numActions, s.features,
				s.features)

		default:
			return fmt.Errorf("setWeights: unknown weights %q", name)
		}

		if err != nil {
			return fmt.Errorf("setWeights: %v: %w", name, err)
		}
	}

	if wr != nil {
		s.wr.CopyVec(wr)
	}
	if wv != nil {
		s.wv.CopyVec(wv)
	}
	for i := range ws {
		s.ws[i].Copy(ws[i])
	}
	return nil
}

func (s *SFReturn) String() string {
	return fmt.Sprintf("SFReturn | γ: %v  |  λ: %v  |  Wr: %v  |  Wv: %v",
		s.gamma, s.lambda, matutils.Format(s.wr.T()),
		matutils.Format(s.wv.T()))
}
