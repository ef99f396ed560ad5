// Package checkpointer saves and restores agent weights together with
// the configuration of the run that produced them
package checkpointer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/utils/tensorutils"
	"gorgonia.org/tensor"
)

// DefaultDir is the directory checkpoints are written to by default
const DefaultDir = "./checkpoint"

// Checkpointer checkpoints agents based on the index of the episode
// that just finished
type Checkpointer interface {
	Checkpoint(episode int) error
}

// Weight is a serialized tensor of weights in row-major order
type Weight struct {
	Shape []int     `json:"shape"`
	Data  []float64 `json:"data"`
}

// Record is a single checkpoint
type Record struct {
	EpisodeIdx int                    `json:"episode_idx"`
	Timestamp  time.Time              `json:"timestamp"`
	Cfg        map[string]interface{} `json:"cfg"`
	Agent      map[string]Weight      `json:"agent"`
}

// Snapshot returns the weights of store named in
// agent.CheckpointWeights. Weights the store does not have are
// skipped.
func Snapshot(store agent.ParameterStore) (map[string]Weight, error) {
	weights := store.Weights()
	out := make(map[string]Weight)

	for _, name := range agent.CheckpointWeights {
		w, ok := weights[name]
		if !ok {
			continue
		}

		data, err := tensorutils.Data(w, w.Shape()...)
		if err != nil {
			return nil, fmt.Errorf("snapshot: %v: %w", name, err)
		}
		out[name] = Weight{Shape: append([]int(nil), w.Shape()...),
			Data: data}
	}
	return out, nil
}

// Restore sets the weights of store to those saved in r
func Restore(store agent.ParameterStore, r Record) error {
	weights := make(map[string]*tensor.Dense, len(r.Agent))
	for name, w := range r.Agent {
		t, err := tensorutils.New(w.Shape, w.Data)
		if err != nil {
			return fmt.Errorf("restore: %v: %w", name, err)
		}
		weights[name] = t
	}

	if err := store.SetWeights(weights); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	return nil
}

// Save writes r as JSON to path, creating its directory if needed
func Save(path string, r Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: could not create checkpoint "+
			"directory: %w", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("save: could not encode checkpoint: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write checkpoint: %w", err)
	}
	return nil
}

// Load reads the checkpoint at path
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("load: could not read checkpoint: %w",
			err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("load: could not decode checkpoint: %w",
			err)
	}
	return r, nil
}

// UUIDFile returns a function which names the checkpoint of an episode
// ckpt_epis-<episode>_<random hex>.json in directory dir
func UUIDFile(dir string) func(episode int) string {
	return func(episode int) string {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		return filepath.Join(dir, fmt.Sprintf("ckpt_epis-%d_%s.json",
			episode, id))
	}
}
