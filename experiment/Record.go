package experiment

import (
	"encoding/json"
	"fmt"

	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
	"github.com/samuelfneumann/sflearn/utils/floatutils"
)

// baseRecord returns the fields of the log record which are constant
// over a run. Agent keyword arguments which name a field are copied
// into the record, keeping scalars and encoding everything else as
// JSON.
func baseRecord(c Config) (tracker.Record, error) {
	envKwargs := c.Env.Kwargs
	if envKwargs == nil {
		envKwargs = map[string]interface{}{}
	}
	env, err := json.Marshal(envKwargs)
	if err != nil {
		return nil, fmt.Errorf("baseRecord: could not encode env kwargs: %w",
			err)
	}

	r := tracker.Record{
		"num_episodes":  c.Training.NumEpisodes,
		"envCls_name":   c.Env.ClsString,
		"env_kwargs":    string(env),
		"agentCls_name": c.Agent.ClsString,
		"seed":          c.Training.Seed,
	}

	for k, v := range c.Agent.Kwargs {
		if _, ok := tracker.KindOf(k); !ok {
			continue
		}
		switch value := v.(type) {
		case int, int64, uint64, float64, bool, string, nil:
			r[k] = value

		default:
			s, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("baseRecord: could not encode agent "+
					"kwarg %v: %w", k, err)
			}
			r[k] = string(s)
		}
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("baseRecord: %w", err)
	}
	return r, nil
}

// lossAverages returns the average losses recorded in logs. Losses
// with no samples are omitted.
func lossAverages(logs agent.LogDict) tracker.Record {
	r := make(tracker.Record)

	if v, ok := floatutils.MeanSquare(logs.Scalars(agent.ValueErrors)); ok {
		r["value_loss_avg"] = v
	}
	if v, ok := floatutils.MeanSquare(
		floatutils.Flatten(logs[agent.RewardErrors])); ok {
		r["reward_loss_avg"] = v
	}
	if v, ok := floatutils.Mean(logs.Scalars(agent.SFErrorNorms)); ok {
		r["sf_loss_avg"] = v
	}
	if v, ok := floatutils.Mean(logs.Scalars(agent.ETErrorNorms)); ok {
		r["et_loss_avg"] = v
	}

	return r
}
