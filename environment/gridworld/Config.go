package gridworld

import (
	"fmt"

	env "github.com/samuelfneumann/sflearn/environment"
)

// Config configures a single-goal GridWorld. If StartX or StartY is
// nil, starting cells are sampled uniformly from the non-goal cells.
type Config struct {
	Rows          int     `mapstructure:"rows"`
	Cols          int     `mapstructure:"cols"`
	StartX        *int    `mapstructure:"start_x"`
	StartY        *int    `mapstructure:"start_y"`
	GoalX         int     `mapstructure:"goal_x"`
	GoalY         int     `mapstructure:"goal_y"`
	GoalReward    float64 `mapstructure:"goal_reward"`
	StepReward    float64 `mapstructure:"step_reward"`
	Slip          float64 `mapstructure:"slip_prob"`
	Discount      float64 `mapstructure:"discount"`
	EpisodeLength int     `mapstructure:"episode_length"`
}

// DefaultConfig returns the default GridWorld configuration: a 5x5
// grid starting in the bottom-left corner with the goal in the
// bottom-right corner
func DefaultConfig() *Config {
	x, y := 0, 0
	return &Config{
		Rows:          5,
		Cols:          5,
		StartX:        &x,
		StartY:        &y,
		GoalX:         4,
		GoalY:         0,
		GoalReward:    1.0,
		StepReward:    0.0,
		Slip:          0.0,
		Discount:      1.0,
		EpisodeLength: 100,
	}
}

// Validate checks a Config for errors
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("validate: rows and cols must be positive")
	}
	if (c.StartX == nil) != (c.StartY == nil) {
		return fmt.Errorf("validate: start_x and start_y must be set together")
	}
	if c.Slip < 0 || c.Slip > 1 {
		return fmt.Errorf("validate: slip_prob must be in [0, 1]")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]")
	}
	return nil
}

// CreateEnv returns the GridWorld described by the Config
func (c *Config) CreateEnv(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}

	task, err := NewGoal([]int{c.GoalX}, []int{c.GoalY}, c.Rows, c.Cols,
		c.StepReward, c.GoalReward, c.EpisodeLength)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}

	var starter env.Starter
	if c.StartX != nil {
		starter = env.NewFixedStarter([]float64{float64(*c.StartX),
			float64(*c.StartY)})
	} else {
		starter = env.NewCategoricalStarter([]int{c.Cols, c.Rows}, seed)
	}

	g, _, err := New(task, starter, c.Rows, c.Cols, c.Slip, c.Discount, seed)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}
	return g, nil
}
