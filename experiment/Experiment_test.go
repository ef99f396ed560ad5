package experiment

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/agent"
	"github.com/samuelfneumann/sflearn/experiment/checkpointer"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
	"github.com/samuelfneumann/sflearn/utils/tensorutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// records is a Tracker which keeps every record in memory
type records []tracker.Record

func (r *records) Track(rec tracker.Record) error {
	*r = append(*r, rec)
	return rec.Validate()
}

type counter struct{ increments, displays int }

func (c *counter) Increment() { c.increments++ }
func (c *counter) Display()   { c.displays++ }

func testTree(t *testing.T, dir string, episodes int) map[string]interface{} {
	t.Helper()
	return map[string]interface{}{
		"env": map[string]interface{}{
			"cls_string": "Constant",
			"kwargs": map[string]interface{}{
				"feature_dim":    2,
				"episode_length": 3,
			},
		},
		"agent": map[string]interface{}{
			"cls_string": string(agent.SFReturnLinear),
			"kwargs": map[string]interface{}{
				"gamma": 0.9,
				"lamb":  0.8,
				"lr":    0.1,
			},
		},
		"training": map[string]interface{}{
			"num_episodes":   episodes,
			"seed":           1,
			"checkpoint_dir": dir,
		},
	}
}

func decode(t *testing.T, tree map[string]interface{}) Config {
	t.Helper()
	c, err := Decode(tree)
	require.NoError(t, err)
	return c
}

func TestDecode(t *testing.T) {
	c := decode(t, testTree(t, "", 2))
	assert.Equal(t, checkpointer.DefaultDir, c.Training.CheckpointDir)
	assert.Equal(t, "Constant", c.Env.ClsString)
	assert.Nil(t, c.Training.SaveCheckpoint)
	assert.Nil(t, c.Training.ParamReset.Freq)
	assert.NotNil(t, c.Tree)

	tree := testTree(t, "", 2)
	tree["training"].(map[string]interface{})["unknown"] = 1
	_, err := Decode(tree)
	assert.Error(t, err)

	tree = testTree(t, "", 2)
	delete(tree["agent"].(map[string]interface{}), "cls_string")
	_, err = Decode(tree)
	assert.Error(t, err)

	tree = testTree(t, "", -1)
	_, err = Decode(tree)
	assert.Error(t, err)
}

func TestLogDir(t *testing.T) {
	assert.Equal(t, "", LogDir(map[string]interface{}{}))
	assert.Equal(t, "out", LogDir(map[string]interface{}{
		"logging": map[string]interface{}{"dir_path": "out"},
	}))
}

func TestRunRecords(t *testing.T) {
	var r records
	c := decode(t, testTree(t, t.TempDir(), 4))

	exp, err := New(c, &r, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	require.Len(t, r, 4)
	for i, rec := range r {
		assert.Equal(t, i, rec["episode_idx"])
		assert.Equal(t, 3, rec["total_steps"])
		assert.InDelta(t, 3.0, rec["cumulative_reward"], 1e-12)
		assert.Equal(t, "Constant", rec["envCls_name"])
		assert.Equal(t, string(agent.SFReturnLinear), rec["agentCls_name"])
		assert.Equal(t, 0.9, rec["gamma"])

		for _, k := range []string{"v_fn_rmse", "sf_G_rmse",
			"value_loss_avg", "reward_loss_avg", "sf_loss_avg"} {
			assert.Contains(t, rec, k)
		}
		assert.NotContains(t, rec, "et_loss_avg")
		assert.NotContains(t, rec, "sf_matrix_rmse")
	}

	// Rewards are learned online, so the reward loss shrinks
	assert.Less(t, r[3]["reward_loss_avg"], r[0]["reward_loss_avg"])
}

func TestRunTDLambda(t *testing.T) {
	tree := testTree(t, t.TempDir(), 2)
	tree["agent"].(map[string]interface{})["cls_string"] =
		string(agent.TDLambdaLinear)

	var r records
	exp, err := New(decode(t, tree), &r, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	require.Len(t, r, 2)
	assert.Contains(t, r[1], "et_loss_avg")
	assert.Contains(t, r[1], "v_fn_rmse")
	assert.NotContains(t, r[1], "sf_G_rmse")
	assert.NotContains(t, r[1], "sf_loss_avg")
}

func TestUnknownIdentifiers(t *testing.T) {
	tree := testTree(t, t.TempDir(), 1)
	tree["agent"].(map[string]interface{})["cls_string"] = "None"
	_, err := Decode(tree)
	assert.ErrorContains(t, err, `unknown agent type "None"`)

	tree = testTree(t, t.TempDir(), 1)
	tree["env"].(map[string]interface{})["cls_string"] = "None"
	_, err = Decode(tree)
	assert.ErrorContains(t, err, `unknown environment "None"`)
}

func TestCheckpointSchedule(t *testing.T) {
	dir := t.TempDir()
	tree := testTree(t, dir, 5)
	tree["training"].(map[string]interface{})["save_checkpoint"] = 2

	exp, err := New(decode(t, tree), &records{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	for _, ep := range []string{"0", "2", "4"} {
		m, err := filepath.Glob(filepath.Join(dir, "ckpt_epis-"+ep+"_*.json"))
		require.NoError(t, err)
		assert.Len(t, m, 1, "episode %v", ep)
	}
	all, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	r, err := checkpointer.Load(all[0])
	require.NoError(t, err)
	assert.Contains(t, r.Agent, agent.SFWeights)
	assert.Equal(t, "Constant",
		r.Cfg["env"].(map[string]interface{})["cls_string"])
}

func TestInitCheckpoint(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "init.json")
	require.NoError(t, checkpointer.Save(path, checkpointer.Record{
		EpisodeIdx: 7,
		Agent: map[string]checkpointer.Weight{
			agent.ValueWeights: {Shape: []int{2}, Data: []float64{1, 2}},
		},
	}))

	tree := testTree(t, dir, 0)
	tree["training"].(map[string]interface{})["init_checkpoint"] = path

	exp, err := New(decode(t, tree), &records{}, zerolog.Nop())
	require.NoError(t, err)

	wv := exp.(*Online).learner.Weights()[agent.ValueWeights]
	v, err := tensorutils.ToVec(wv, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, v.RawVector().Data)

	tree["training"].(map[string]interface{})["init_checkpoint"] =
		filepath.Join(dir, "missing.json")
	_, err = New(decode(t, tree), &records{}, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParamReset(t *testing.T) {
	freq := 2
	assert.Nil(t, newParamReset(ParamResetConfig{}, 0, zerolog.Nop()))
	zero := 0
	assert.Nil(t, newParamReset(ParamResetConfig{Freq: &zero}, 0,
		zerolog.Nop()))

	p := newParamReset(ParamResetConfig{Freq: &freq,
		AttrStrs: "Wr; Ws;bogus"}, 1, zerolog.Nop())
	require.NotNil(t, p)
	assert.Equal(t, []string{"Wr", "Ws", "bogus"}, p.attrs)
	assert.False(t, p.Due(0))
	assert.True(t, p.Due(1))
	assert.False(t, p.Due(2))
	assert.True(t, p.Due(3))

	c := decode(t, testTree(t, t.TempDir(), 3))
	exp, err := New(c, &records{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	a := exp.(*Online).learner
	require.NoError(t, p.Reset(a))

	w := a.Weights()
	wr, err := tensorutils.ToVec(w[agent.RewardWeights], 2)
	require.NoError(t, err)
	for _, v := range wr.RawVector().Data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, RewardResetMax)
	}

	ws, err := tensorutils.ToMatrices(w[agent.SFWeights], 1, 2, 2)
	require.NoError(t, err)
	eye := mat.NewDiagDense(2, []float64{1, 1})
	assert.True(t, mat.Equal(eye, ws[0]))
}

func TestParamResetMissingWeights(t *testing.T) {
	freq := 1
	p := newParamReset(ParamResetConfig{Freq: &freq, AttrStrs: "Ws"}, 1,
		zerolog.Nop())

	tree := testTree(t, t.TempDir(), 0)
	tree["agent"].(map[string]interface{})["cls_string"] =
		string(agent.TDLambdaLinear)
	exp, err := New(decode(t, tree), &records{}, zerolog.Nop())
	require.NoError(t, err)

	assert.NoError(t, p.Reset(exp.(*Online).learner))
}

func TestResetDuringRun(t *testing.T) {
	tree := testTree(t, t.TempDir(), 2)
	tree["training"].(map[string]interface{})["param_reset"] =
		map[string]interface{}{"freq": 2, "attr_strs": "Ws"}

	exp, err := New(decode(t, tree), &records{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	// Episode 1 is the last episode, and weights are reset after it
	w := exp.(*Online).learner.Weights()[agent.SFWeights]
	ws, err := tensorutils.ToMatrices(w, 1, 2, 2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(mat.NewDiagDense(2, []float64{1, 1}), ws[0]))
}

func TestResetEveryAction(t *testing.T) {
	tree := testTree(t, t.TempDir(), 4)
	tree["env"].(map[string]interface{})["kwargs"].(map[string]interface{})["num_actions"] = 3
	tree["training"].(map[string]interface{})["param_reset"] =
		map[string]interface{}{"freq": 4, "attr_strs": "Ws"}

	exp, err := New(decode(t, tree), &records{}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, exp.Run())

	w := exp.(*Online).learner.Weights()[agent.SFWeights]
	assert.Equal(t, []int{3, 2, 2}, []int(w.Shape()))
	ws, err := tensorutils.ToMatrices(w, 3, 2, 2)
	require.NoError(t, err)

	eye := mat.NewDiagDense(2, []float64{1, 1})
	for a, m := range ws {
		assert.True(t, mat.Equal(eye, m), "action %d", a)
	}
}

func TestLossAverages(t *testing.T) {
	logs := agent.LogDict{}
	assert.Empty(t, lossAverages(logs))

	logs.Add(agent.ValueErrors, 1)
	logs.Add(agent.ValueErrors, -3)
	logs.AddVec(agent.RewardErrors, []float64{1, 2})
	logs.AddVec(agent.RewardErrors, []float64{0, 1})
	logs.Add(agent.SFErrorNorms, 1)
	logs.Add(agent.SFErrorNorms, 2)

	r := lossAverages(logs)
	assert.InDelta(t, 5.0, r["value_loss_avg"], 1e-12)
	assert.InDelta(t, 1.5, r["reward_loss_avg"], 1e-12)
	assert.InDelta(t, 1.5, r["sf_loss_avg"], 1e-12)
	assert.NotContains(t, r, "et_loss_avg")
}

func TestBaseRecord(t *testing.T) {
	c := decode(t, testTree(t, "", 2))
	c.Agent.Kwargs["optim_kwargs"] = map[string]interface{}{"eps": 0.1}
	c.Agent.Kwargs["not_a_field"] = 12

	r, err := baseRecord(c)
	require.NoError(t, err)
	assert.Equal(t, 2, r["num_episodes"])
	assert.Equal(t, uint64(1), r["seed"])
	assert.Equal(t, `{"episode_length":3,"feature_dim":2}`, r["env_kwargs"])
	assert.Equal(t, `{"eps":0.1}`, r["optim_kwargs"])
	assert.NotContains(t, r, "not_a_field")

	c.Agent.Kwargs["gamma"] = "high"
	_, err = baseRecord(c)
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	tree := testTree(t, t.TempDir(), 2)
	tree["agent"].(map[string]interface{})["kwargs"].(map[string]interface{})["lr"] =
		[]interface{}{0.1, 0.2}
	require.Equal(t, 2, Len(tree))

	var buf bytes.Buffer
	progress := &counter{}
	s := Sweep{
		Tracker:  tracker.NewPipe(&buf, false),
		Logger:   zerolog.Nop(),
		Progress: progress,
	}
	require.NoError(t, s.Run(tree))
	assert.Equal(t, 2, progress.increments)
	assert.Equal(t, 2, progress.displays)

	rows, err := tracker.Read(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	lrs := []string{rows[0]["lr"], rows[1]["lr"], rows[2]["lr"], rows[3]["lr"]}
	assert.Equal(t, []string{"0.1", "0.1", "0.2", "0.2"}, lrs)
	assert.Equal(t, "0", rows[0]["episode_idx"])
	assert.Equal(t, "1", rows[1]["episode_idx"])
	assert.Equal(t, "3", rows[0]["total_steps"])
	assert.Equal(t, "3.0", rows[0]["cumulative_reward"])
	assert.Equal(t, tracker.None, rows[0]["sf_matrix_rmse"])
}

func TestSweepCheckpointOverride(t *testing.T) {
	dir := t.TempDir()
	tree := testTree(t, "unused", 1)
	tree["training"].(map[string]interface{})["save_checkpoint"] = 1

	s := Sweep{Tracker: &records{}, Logger: zerolog.Nop(), CheckpointDir: dir}
	require.NoError(t, s.Run(tree))

	m, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, m, 1)
}

func TestSweepError(t *testing.T) {
	tree := testTree(t, t.TempDir(), 1)
	tree["env"].(map[string]interface{})["cls_string"] = "Missing"

	s := Sweep{Tracker: &records{}, Logger: zerolog.Nop()}
	assert.Error(t, s.Run(tree))
}

func TestSweepValidatesBeforeRunning(t *testing.T) {
	tree := testTree(t, t.TempDir(), 2)
	tree["agent"].(map[string]interface{})["cls_string"] =
		[]interface{}{string(agent.SFReturnLinear), "Bogus"}

	var r records
	progress := &counter{}
	s := Sweep{Tracker: &r, Logger: zerolog.Nop(), Progress: progress}

	err := s.Run(tree)
	assert.ErrorContains(t, err, `unknown agent type "Bogus"`)
	assert.Empty(t, r)
	assert.Zero(t, progress.increments)

	tree = testTree(t, t.TempDir(), 2)
	tree["agent"].(map[string]interface{})["kwargs"].(map[string]interface{})["lamb"] =
		[]interface{}{0.5, 2.0}
	r = nil
	assert.Error(t, s.Run(tree))
	assert.Empty(t, r)
}
