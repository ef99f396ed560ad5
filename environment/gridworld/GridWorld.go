// Package gridworld implements 2D gridworld environments with one-hot
// state features
package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/sflearn/environment"
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Actions in the gridworld
const (
	Right int = iota
	Up
	Left
	Down
)

// NumActions is the number of actions in a gridworld
const NumActions int = 4

// maxStartAttempts bounds the number of resamples of the starting
// cell when a random start lands on a goal
const maxStartAttempts int = 1000

// GridWorld represents a gridworld environment
//
// A gridworld is represented as a flattened matrix of r rows and c
// columns. The features of a state are the one-hot encoding of the
// agent's cell in the flattened matrix. Starting states are sampled
// from a Starter as (x, y) coordinate vectors. With probability slip,
// the action taken is replaced by a uniformly random action.
type GridWorld struct {
	task    *Goal
	starter env.Starter

	r, c     int
	position int
	slip     float64
	discount float64

	uniform   distuv.Uniform
	direction distuv.Categorical

	currentStep ts.TimeStep
}

// New creates a new gridworld with r rows, c columns, task t, and
// discount factor discount. The first TimeStep of the environment is
// returned as well.
func New(t *Goal, s env.Starter, r, c int, slip, discount float64,
	seed uint64) (*GridWorld, ts.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: grid dimensions must "+
			"be positive but got (%d, %d)", r, c)
	}
	if t.r != r || t.c != c {
		return nil, ts.TimeStep{}, fmt.Errorf("new: task dimensions (%d, "+
			"%d) do not match grid dimensions (%d, %d)", t.r, t.c, r, c)
	}
	if slip < 0 || slip > 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: slip probability "+
			"must be in [0, 1] but got %v", slip)
	}

	source := rand.NewSource(seed)
	weights := make([]float64, NumActions)
	for i := range weights {
		weights[i] = 1.0 / float64(NumActions)
	}

	g := &GridWorld{
		task:      t,
		starter:   s,
		r:         r,
		c:         c,
		slip:      slip,
		discount:  discount,
		uniform:   distuv.Uniform{Min: 0, Max: 1, Src: source},
		direction: distuv.NewCategorical(weights, source),
	}

	step, err := g.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return g, step, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// At checks the value at position (i, j) in the gridworld. A value of
// 1.0 indicates that the agent is in row i and column j.
func (g *GridWorld) At(i, j int) float64 {
	if (i*g.c)+j == g.position {
		return 1.0
	}
	return 0.0
}

// Coordinates returns the (x, y) coordinates of the agent
func (g *GridWorld) Coordinates() (int, int) {
	return indToC(g.position, g.c)
}

// Reset resets the environment and returns the first TimeStep of the
// next episode
func (g *GridWorld) Reset() (ts.TimeStep, error) {
	for i := 0; i < maxStartAttempts; i++ {
		start := g.starter.Start()
		if start.Len() != 2 {
			return ts.TimeStep{}, fmt.Errorf("reset: starting state must "+
				"be (x, y) coordinates but got length %d", start.Len())
		}

		x, y := int(start.AtVec(0)), int(start.AtVec(1))
		if x < 0 || x >= g.c || y < 0 || y >= g.r {
			return ts.TimeStep{}, fmt.Errorf("reset: starting state (%d, "+
				"%d) outside grid (%d, %d)", x, y, g.c, g.r)
		}

		if ind := cToInd(x, y, g.c); !g.task.isGoal(ind) {
			g.position = ind
			g.currentStep = ts.New(ts.First, 0, g.discount,
				g.getObservation(), 0)
			return g.currentStep, nil
		}
	}

	return ts.TimeStep{}, fmt.Errorf("reset: could not sample a "+
		"non-goal starting state in %d attempts", maxStartAttempts)
}

// Step takes one environmental step given action direction
func (g *GridWorld) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= NumActions {
		return ts.TimeStep{}, false, fmt.Errorf("step: action %d outside "+
			"[0, %d)", action, NumActions)
	}
	if g.currentStep.Last() {
		return ts.TimeStep{}, false, fmt.Errorf("step: episode has " +
			"ended, call Reset")
	}

	if g.slip > 0 && g.uniform.Rand() < g.slip {
		action = int(g.direction.Rand())
	}

	x, y := g.Coordinates()
	g.position = g.move(x, y, action)

	reward := g.task.GetReward(g.position)
	number := g.currentStep.Number + 1

	step := ts.New(ts.Mid, reward, g.discount, g.getObservation(), number)
	last := g.task.End(&step)
	g.currentStep = step

	return step, last, nil
}

// move returns the flattened index reached by taking action from cell
// (x, y). Moves into walls leave the agent in place.
func (g *GridWorld) move(x, y, action int) int {
	switch action {
	case Right:
		if x+1 < g.c {
			x++
		}

	case Up:
		if y+1 < g.r {
			y++
		}

	case Left:
		if x-1 >= 0 {
			x--
		}

	case Down:
		if y-1 >= 0 {
			y--
		}
	}
	return cToInd(x, y, g.c)
}

// States returns the one-hot features of each non-goal cell in order
// of flattened index
func (g *GridWorld) States() []*mat.VecDense {
	states := make([]*mat.VecDense, 0, g.r*g.c)
	for i := 0; i < g.r*g.c; i++ {
		if !g.task.isGoal(i) {
			states = append(states, env.OneHot(i, g.r*g.c))
		}
	}
	return states
}

// TrueValues returns the values of each state returned by States()
// under the policy that always selects action 0. The episode cutoff is
// not taken into account.
func (g *GridWorld) TrueValues(discount float64) (*mat.VecDense, error) {
	// Map each non-goal cell to its row in the transition matrix
	index := make(map[int]int)
	for i := 0; i < g.r*g.c; i++ {
		if !g.task.isGoal(i) {
			index[i] = len(index)
		}
	}

	n := len(index)
	p := mat.NewDense(n, n, nil)
	r := mat.NewVecDense(n, nil)

	for cell, row := range index {
		x, y := indToC(cell, g.c)
		for a := 0; a < NumActions; a++ {
			prob := g.slip / float64(NumActions)
			if a == 0 {
				prob += 1 - g.slip
			}
			if prob == 0 {
				continue
			}

			next := g.move(x, y, a)
			r.SetVec(row, r.AtVec(row)+prob*g.task.GetReward(next))
			if col, ok := index[next]; ok {
				p.Set(row, col, p.At(row, col)+prob)
			}
		}
	}

	v, err := env.SolveValues(p, r, discount)
	if err != nil {
		return nil, fmt.Errorf("trueValues: %w", err)
	}
	return v, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() env.Spec {
	return env.NewBinaryObservationSpec(g.r * g.c)
}

// ActionSpec returns the action specification of the environment
func (g *GridWorld) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(NumActions)
}

// DiscountSpec returns the discount specification of the environment
func (g *GridWorld) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(g.discount)
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |   Goal: %v  |  Bounds: (%d, %d)"
	x, y := g.Coordinates()

	return fmt.Sprintf(str, [2]int{x, y}, g.task, g.r, g.c)
}

func (g *GridWorld) getObservation() *mat.VecDense {
	return env.OneHot(g.position, g.r*g.c)
}

func cToInd(x, y, c int) int {
	return y*c + x
}

func indToC(ind, c int) (int, int) {
	y := ind / c
	x := ind - (y * c)
	return x, y
}
