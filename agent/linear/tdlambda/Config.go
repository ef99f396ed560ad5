package tdlambda

import (
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/utils/matutils/initializers/weights"
)

func init() {
	agent.Register(agent.TDLambdaLinear, &Config{})
}

// Config represents a configuration for the TDLambda agent
type Config struct {
	Gamma        float64 `mapstructure:"gamma"`
	Lambda       float64 `mapstructure:"lamb"`
	LearningRate float64 `mapstructure:"lr"`
}

// Default sets the default hyperparameters
func (c *Config) Default() {
	c.Gamma = 0.9
	c.Lambda = 0.8
	c.LearningRate = 0.1
}

// CreateAgent creates the agent from the Config with zero weights
func (c *Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, *c, weights.NewZero())
}

// Validate ensures that the Config is valid
func (c *Config) Validate() error {
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1] but got %v",
			c.Gamma)
	}
	if c.Lambda < 0 || c.Lambda > 1 {
		return fmt.Errorf("validate: lamb must be in [0, 1] but got %v",
			c.Lambda)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("validate: lr cannot be negative")
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c *Config) Type() agent.Type {
	return agent.TDLambdaLinear
}
