package checkpointer

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/sflearn/agent"
)

// nStep implements checkpointing every N episodes
type nStep struct {
	interval int
	store    agent.ParameterStore // Object to save
	cfg      map[string]interface{}

	// filename returns the name of the file to save the checkpoint of
	// an episode in. To save each checkpoint under a unique name in
	// some directory, use UUIDFile.
	filename func(episode int) string
}

// NewNStep returns a checkpointer that checkpoints the weights of
// store, along with the configuration cfg, on every episode that is
// a multiple of n. Episode 0 is always checkpointed.
func NewNStep(n int, store agent.ParameterStore, cfg map[string]interface{},
	filename func(episode int) string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNStep: interval must be positive but "+
			"got %d", n)
	}
	return &nStep{
		interval: n,
		store:    store,
		cfg:      cfg,
		filename: filename,
	}, nil
}

// Checkpoint saves the weights of the store if episode is a multiple
// of the interval
func (n *nStep) Checkpoint(episode int) error {
	if episode%n.interval != 0 {
		return nil
	}

	weights, err := Snapshot(n.store)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	r := Record{
		EpisodeIdx: episode,
		Timestamp:  time.Now().UTC(),
		Cfg:        n.cfg,
		Agent:      weights,
	}
	if err := Save(n.filename(episode), r); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}
