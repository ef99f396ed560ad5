// Package envconfig provides a registry of configurable environments.
// Environments are constructed from a class string and a map of
// keyword arguments, which override the environment's defaults.
package envconfig

import (
	"fmt"
	"sort"

	"github.com/samuelfneumann/sflearn/config"
	env "github.com/samuelfneumann/sflearn/environment"
	"github.com/samuelfneumann/sflearn/environment/constant"
	"github.com/samuelfneumann/sflearn/environment/gridworld"
	"github.com/samuelfneumann/sflearn/environment/randomwalk"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GridWorld  EnvName = "GridWorld"
	RandomWalk EnvName = "RandomWalk"
	Constant   EnvName = "Constant"
)

// defaults returns a new default configuration of each environment
var defaults = map[EnvName]func() env.Config{
	GridWorld:  func() env.Config { return gridworld.DefaultConfig() },
	RandomWalk: func() env.Config { return randomwalk.DefaultConfig() },
	Constant:   func() env.Config { return constant.DefaultConfig() },
}

// Config implements a specific configuration of a specific environment
type Config struct {
	ClsString string                 `mapstructure:"cls_string"`
	Kwargs    map[string]interface{} `mapstructure:"kwargs"`
}

// NewConfig decodes the keyword arguments kwargs into the default
// configuration of environment name
func NewConfig(name string, kwargs map[string]interface{}) (env.Config,
	error) {
	def, ok := defaults[EnvName(name)]
	if !ok {
		return nil, fmt.Errorf("newConfig: unknown environment %q", name)
	}

	c := def()
	if len(kwargs) > 0 {
		if err := config.Decode(kwargs, c); err != nil {
			return nil, fmt.Errorf("newConfig: environment %v: %w", name, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newConfig: environment %v: %w", name, err)
	}
	return c, nil
}

// Create returns the environment described by the Config
func (c Config) Create(seed uint64) (env.Environment, error) {
	ec, err := NewConfig(c.ClsString, c.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	e, err := ec.CreateEnv(seed)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return e, nil
}

// Names returns the sorted names of all configurable environments
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}
