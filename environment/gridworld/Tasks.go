package gridworld

import (
	"fmt"

	env "github.com/samuelfneumann/sflearn/environment"
	ts "github.com/samuelfneumann/sflearn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Goal is a task in which the agent must navigate to one of a number
// of goal cells. Entering a goal cell ends the episode with the goal
// reward, all other transitions receive the step reward.
type Goal struct {
	env.Ender
	goals      map[int]bool // flattened indices of goal cells
	r, c       int
	stepReward float64
	goalReward float64
}

// NewGoal creates and returns a new goal task with goals at positions
// (x[i], y[i]), given that the gridworld has r rows and c columns.
// Episodes are cut off after cutoff steps if cutoff is positive.
func NewGoal(x, y []int, r, c int, stepReward, goalReward float64,
	cutoff int) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("newGoal: at least one goal required")
	}

	goals := make(map[int]bool, len(x))
	for i := range x {
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("newGoal: x[%d] = %d outside [0, %d)",
				i, x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("newGoal: y[%d] = %d outside [0, %d)",
				i, y[i], r)
		}
		goals[cToInd(x[i], y[i], c)] = true
	}
	if len(goals) == r*c {
		return nil, fmt.Errorf("newGoal: every cell is a goal")
	}

	g := &Goal{
		goals:      goals,
		r:          r,
		c:          c,
		stepReward: stepReward,
		goalReward: goalReward,
	}

	atGoal := env.NewFunctionEnder(g.AtGoal, ts.TerminalStateReached)
	g.Ender = env.Enders{atGoal, env.NewStepLimit(cutoff)}

	return g, nil
}

// GetReward returns the reward for entering the cell at flattened
// index next
func (g *Goal) GetReward(next int) float64 {
	if g.goals[next] {
		return g.goalReward
	}
	return g.stepReward
}

// AtGoal returns whether the one-hot observation state is a goal cell
func (g *Goal) AtGoal(state *mat.VecDense) bool {
	for i := 0; i < state.Len(); i++ {
		if state.AtVec(i) != 0.0 {
			return g.goals[i]
		}
	}
	return false
}

// isGoal returns whether the flattened index ind is a goal cell
func (g *Goal) isGoal(ind int) bool {
	return g.goals[ind]
}

func (g *Goal) String() string {
	coords := make([][2]int, 0, len(g.goals))
	for i := 0; i < g.r*g.c; i++ {
		if g.goals[i] {
			x, y := indToC(i, g.c)
			coords = append(coords, [2]int{x, y})
		}
	}
	return fmt.Sprintf("Goal%v", coords)
}
