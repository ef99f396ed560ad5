package sfreturn

import (
	"github.com/samuelfneumann/sflearn/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// ComputeSuccessorReturn returns the successor feature λ-return
//
//	G = (Wsᵀφ) · (Wr + γ(1-λ)Wv)
//
// of the state with features phi, where ws are the successor feature
// weights of the action taken. The return is affine in wv. With λ = 1
// it is the successor feature estimate of the reward weights alone,
// and with λ = 0 the value weights are fully bootstrapped.
func ComputeSuccessorReturn(ws mat.Matrix, wr, wv, phi mat.Vector, gamma,
	lambda float64) float64 {
	sf := matutils.MulVecT(ws, phi)

	target := mat.NewVecDense(wr.Len(), nil)
	target.AddScaledVec(wr, gamma*(1-lambda), wv)

	return mat.Dot(sf, target)
}

// SuccessorReturn returns the successor feature λ-return of taking
// action in the state with features phi
func (s *SFReturn) SuccessorReturn(phi mat.Vector, action int) float64 {
	return ComputeSuccessorReturn(s.ws[action], s.wr, s.wv, phi, s.gamma,
		s.lambda)
}

// SuccessorFeatures returns the predicted successor features Wsᵀφ of
// taking action in the state with features phi
func (s *SFReturn) SuccessorFeatures(phi mat.Vector,
	action int) *mat.VecDense {
	return matutils.MulVecT(s.ws[action], phi)
}

// QValue returns φ·Wv. The action is ignored, so this is the value of
// the state rather than of the state-action pair.
func (s *SFReturn) QValue(phi mat.Vector, action int) float64 {
	return s.StateValue(phi)
}

// StateValue returns the value φ·Wv of the state with features phi
func (s *SFReturn) StateValue(phi mat.Vector) float64 {
	return mat.Dot(phi, s.wv)
}

// Discount returns the discount factor γ of the agent
func (s *SFReturn) Discount() float64 {
	return s.gamma
}
