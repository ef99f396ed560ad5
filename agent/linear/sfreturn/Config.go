package sfreturn

import (
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/utils/matutils/initializers/weights"
)

func init() {
	agent.Register(agent.SFReturnLinear, &Config{})
}

// Config represents a configuration for the SFReturn agent. The
// reward, successor feature, and value learning rates default to
// LearningRate when nil.
type Config struct {
	Gamma        float64 `mapstructure:"gamma"`
	Lambda       float64 `mapstructure:"lamb"`
	LearningRate float64 `mapstructure:"lr"`

	RewardLearningRate *float64 `mapstructure:"reward_lr"`
	SFLearningRate     *float64 `mapstructure:"sf_lr"`
	ValueLearningRate  *float64 `mapstructure:"value_lr"`
}

// Default sets the default hyperparameters
func (c *Config) Default() {
	c.Gamma = 0.9
	c.Lambda = 0.8
	c.LearningRate = 0.1
}

// CreateAgent creates the agent from the Config. Agent weights are
// always initialized to zero using this function. To initialize from
// some other distribution, use the agent's constructor manually.
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

	for name, lr := range map[string]*float64{
		"reward_lr": c.RewardLearningRate,
		"sf_lr":     c.SFLearningRate,
		"value_lr":  c.ValueLearningRate,
	} {
		if lr != nil && *lr < 0 {
			return fmt.Errorf("validate: %v cannot be negative", name)
		}
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c *Config) Type() agent.Type {
	return agent.SFReturnLinear
}

// RewardLR returns the learning rate of the reward weights
func (c Config) RewardLR() float64 {
	return orDefault(c.RewardLearningRate, c.LearningRate)
}

// SFLR returns the learning rate of the successor feature weights
func (c Config) SFLR() float64 {
	return orDefault(c.SFLearningRate, c.LearningRate)
}

// ValueLR returns the learning rate of the value weights
func (c Config) ValueLR() float64 {
	return orDefault(c.ValueLearningRate, c.LearningRate)
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
