package experiment

import (
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/config"
	"github.com/samuelfneumann/sflearn/environment/envconfig"
	"github.com/samuelfneumann/sflearn/experiment/checkpointer"
)

// Config represents a configuration of a single experiment, one
// combination of a sweep
type Config struct {
	Env      envconfig.Config `mapstructure:"env"`
	Agent    AgentConfig      `mapstructure:"agent"`
	Training TrainingConfig   `mapstructure:"training"`
	Logging  LoggingConfig    `mapstructure:"logging"`

	// Tree is the configuration tree the Config was decoded from. It
	// is saved with each checkpoint.
	Tree map[string]interface{} `mapstructure:"-"`
}

// AgentConfig names the agent type and its keyword arguments
type AgentConfig struct {
	ClsString string                 `mapstructure:"cls_string"`
	Kwargs    map[string]interface{} `mapstructure:"kwargs"`
}

// TrainingConfig configures the episode loop. Nil pointers disable
// the corresponding feature.
type TrainingConfig struct {
	NumEpisodes    int              `mapstructure:"num_episodes"`
	Seed           uint64           `mapstructure:"seed"`
	ParamReset     ParamResetConfig `mapstructure:"param_reset"`
	SaveCheckpoint *int             `mapstructure:"save_checkpoint"`
	CheckpointDir  string           `mapstructure:"checkpoint_dir"`
	InitCheckpoint string           `mapstructure:"init_checkpoint"`
}

// ParamResetConfig configures periodic parameter resets. AttrStrs is
// a ';' separated list of weight names.
type ParamResetConfig struct {
	Freq     *int   `mapstructure:"freq"`
	AttrStrs string `mapstructure:"attr_strs"`
}

// LoggingConfig configures where the log is written. The log stream
// is shared by every run of a sweep, so it is opened once from the
// configuration before expansion.
type LoggingConfig struct {
	DirPath *string `mapstructure:"dir_path"`
}

// Decode decodes a single combination of a configuration tree
func Decode(tree map[string]interface{}) (Config, error) {
	var c Config
	if err := config.Decode(tree, &c); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	c.Tree = config.Copy(tree)

	if c.Training.CheckpointDir == "" {
		c.Training.CheckpointDir = checkpointer.DefaultDir
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	return c, nil
}

// Validate checks a Config for errors
func (c Config) Validate() error {
	if c.Env.ClsString == "" {
		return fmt.Errorf("validate: env.cls_string must be set")
	}
	if c.Agent.ClsString == "" {
		return fmt.Errorf("validate: agent.cls_string must be set")
	}
	if c.Training.NumEpisodes < 0 {
		return fmt.Errorf("validate: training.num_episodes cannot be "+
			"negative but got %d", c.Training.NumEpisodes)
	}

	if _, err := envconfig.NewConfig(c.Env.ClsString, c.Env.Kwargs); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if _, err := agent.NewConfig(agent.Type(c.Agent.ClsString),
		c.Agent.Kwargs); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// LogDir returns the logging.dir_path of an unexpanded configuration
// tree, or the empty string if it is not set
func LogDir(tree map[string]interface{}) string {
	logging, ok := tree["logging"].(map[string]interface{})
	if !ok {
		return ""
	}
	dir, _ := logging["dir_path"].(string)
	return dir
}
