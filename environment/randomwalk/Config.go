package randomwalk

import (
	"fmt"

	env "github.com/samuelfneumann/sflearn/environment"
)

// Config configures a RandomWalk
type Config struct {
	NumStates     int     `mapstructure:"num_states"`
	NumActions    int     `mapstructure:"num_actions"`
	LeftReward    float64 `mapstructure:"left_reward"`
	RightReward   float64 `mapstructure:"right_reward"`
	Discount      float64 `mapstructure:"discount"`
	EpisodeLength int     `mapstructure:"episode_length"`
}

// DefaultConfig returns the five-state random walk with a reward of
// one for reaching the right terminal state
func DefaultConfig() *Config {
	return &Config{
		NumStates:     5,
		NumActions:    1,
		LeftReward:    0.0,
		RightReward:   1.0,
		Discount:      1.0,
		EpisodeLength: 0,
	}
}

// Validate checks a Config for errors
func (c *Config) Validate() error {
	if c.NumStates <= 0 {
		return fmt.Errorf("validate: num_states must be positive")
	}
	if c.NumActions <= 0 {
		return fmt.Errorf("validate: num_actions must be positive")
	}
	return nil
}

// CreateEnv returns the RandomWalk described by the Config
func (c *Config) CreateEnv(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}

	r, _, err := New(c.NumStates, c.NumActions, c.LeftReward, c.RightReward,
		c.Discount, c.EpisodeLength, seed)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}
	return r, nil
}
