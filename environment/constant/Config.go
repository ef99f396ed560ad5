package constant

import (
	"fmt"

	env "github.com/samuelfneumann/sflearn/environment"
)

// Config configures a Constant environment. The feature vector has
// FeatureDim components all equal to FeatureValue.
type Config struct {
	FeatureDim    int     `mapstructure:"feature_dim"`
	FeatureValue  float64 `mapstructure:"feature_value"`
	Reward        float64 `mapstructure:"reward"`
	NumActions    int     `mapstructure:"num_actions"`
	EpisodeLength int     `mapstructure:"episode_length"`
	Discount      float64 `mapstructure:"discount"`
}

// DefaultConfig returns the default Constant configuration
func DefaultConfig() *Config {
	return &Config{
		FeatureDim:    1,
		FeatureValue:  1.0,
		Reward:        1.0,
		NumActions:    1,
		EpisodeLength: 50,
		Discount:      1.0,
	}
}

// Validate checks a Config for errors
func (c *Config) Validate() error {
	if c.FeatureDim <= 0 {
		return fmt.Errorf("validate: feature_dim must be positive")
	}
	if c.NumActions <= 0 {
		return fmt.Errorf("validate: num_actions must be positive")
	}
	if c.EpisodeLength <= 0 {
		return fmt.Errorf("validate: episode_length must be positive")
	}
	return nil
}

// CreateEnv returns the Constant environment described by the Config
func (c *Config) CreateEnv(seed uint64) (env.Environment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}

	features := make([]float64, c.FeatureDim)
	for i := range features {
		features[i] = c.FeatureValue
	}

	e, _, err := New(features, c.Reward, c.NumActions, c.EpisodeLength,
		c.Discount)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}
	return e, nil
}
