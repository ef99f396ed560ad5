package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
training:
  num_episodes: 10
  seed: [1, 2]
agent:
  cls_string: SFReturn-Linear
  kwargs:
    gamma: 0.9
    lamb: [0.0, 0.5, 1.0]
`

func TestRead(t *testing.T) {
	tree, err := Read(strings.NewReader(testConfig))
	require.NoError(t, err)

	training, ok := tree["training"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 10, training["num_episodes"])
	assert.Equal(t, []interface{}{1, 2}, training["seed"])

	agent := tree["agent"].(map[string]interface{})
	kwargs := agent["kwargs"].(map[string]interface{})
	assert.Equal(t, []interface{}{0.0, 0.5, 1.0}, kwargs["lamb"])
}

func TestReadEmpty(t *testing.T) {
	tree, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestDecode(t *testing.T) {
	type kwargs struct {
		Gamma float64  `mapstructure:"gamma"`
		Steps int      `mapstructure:"steps"`
		LR    *float64 `mapstructure:"lr"`
	}

	var k kwargs
	err := Decode(map[string]interface{}{"gamma": 1, "steps": 3}, &k)
	require.NoError(t, err)
	assert.Equal(t, 1.0, k.Gamma)
	assert.Equal(t, 3, k.Steps)
	assert.Nil(t, k.LR)

	err = Decode(map[string]interface{}{"gama": 1}, &k)
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	tree := map[string]interface{}{
		"a": []interface{}{1, 2},
		"b": map[string]interface{}{"c": 3},
	}
	out := Copy(tree)
	out["b"].(map[string]interface{})["c"] = 4
	out["a"].([]interface{})[0] = 5

	assert.Equal(t, 3, tree["b"].(map[string]interface{})["c"])
	assert.Equal(t, 1, tree["a"].([]interface{})[0])
}
