package experiment

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/utils/matutils/initializers/weights"
	"github.com/samuelfneumann/sflearn/utils/tensorutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// RewardResetMax is the upper bound of the uniform noise reward
// weights are reset to
const RewardResetMax = 1e-5

// paramReset periodically resets agent weights. Reward weights are
// reset to uniform noise in [0, RewardResetMax) and successor feature
// weights to the identity for each action.
type paramReset struct {
	freq   int
	attrs  []string
	noise  weights.Initializer
	logger zerolog.Logger
}

// newParamReset returns a paramReset for c, or nil if resets are
// disabled
func newParamReset(c ParamResetConfig, seed uint64,
	logger zerolog.Logger) *paramReset {
	if c.Freq == nil || *c.Freq <= 0 {
		return nil
	}

	var attrs []string
	for _, a := range strings.Split(c.AttrStrs, ";") {
		if a = strings.TrimSpace(a); a != "" {
			attrs = append(attrs, a)
		}
	}

	uniform := distuv.Uniform{Min: 0, Max: RewardResetMax,
		Src: rand.NewSource(seed)}
	return &paramReset{
		freq:   *c.Freq,
		attrs:  attrs,
		noise:  weights.NewLinearUV(uniform),
		logger: logger,
	}
}

// Due returns whether weights are reset after episode
func (p *paramReset) Due(episode int) bool {
	return (episode+1)%p.freq == 0
}

// Reset resets the configured weights of store
func (p *paramReset) Reset(store agent.ParameterStore) error {
	current := store.Weights()
	set := make(map[string]*tensor.Dense)

	for _, attr := range p.attrs {
		w, ok := current[attr]
		if !ok && (attr == agent.RewardWeights || attr == agent.SFWeights) {
			p.logger.Warn().Str("attr", attr).Msg("agent has no such weights")
			continue
		}

		var err error
		switch attr {
		case agent.RewardWeights:
			set[attr], err = p.resetReward(w)

		case agent.SFWeights:
			set[attr], err = resetSF(w)

		default:
			p.logger.Warn().Str("attr", attr).Msg("unknown reset attribute")
			continue
		}
		if err != nil {
			return fmt.Errorf("reset: %v: %w", attr, err)
		}
	}

	if len(set) == 0 {
		return nil
	}
	if err := store.SetWeights(set); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

func (p *paramReset) resetReward(w *tensor.Dense) (*tensor.Dense, error) {
	shape := w.Shape()
	if shape.Dims() != 1 {
		return nil, fmt.Errorf("expected 1-dimensional weights but got "+
			"shape %v", shape)
	}

	wr := mat.NewVecDense(shape[0], nil)
	weights.InitializeVec(p.noise, wr)
	return tensorutils.FromVec(wr), nil
}

func resetSF(w *tensor.Dense) (*tensor.Dense, error) {
	shape := w.Shape()
	if shape.Dims() != 3 || shape[1] != shape[2] {
		return nil, fmt.Errorf("expected weights of shape [actions, "+
			"features, features] but got %v", shape)
	}

	ws := make([]*mat.Dense, shape[0])
	eye := weights.NewIdentity()
	for i := range ws {
		ws[i] = mat.NewDense(shape[1], shape[2], nil)
		eye.Initialize(ws[i])
	}
	return tensorutils.FromMatrices(ws)
}
