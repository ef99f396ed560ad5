package agent

import (
	"fmt"
	"testing"

	"github.com/samuelfneumann/sflearn/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Rate float64 `mapstructure:"rate"`
}

func (t *testConfig) Default() { t.Rate = 0.5 }

func (t *testConfig) Validate() error {
	if t.Rate < 0 {
		return fmt.Errorf("negative rate")
	}
	return nil
}

func (t *testConfig) Type() Type { return "Test" }

func (t *testConfig) CreateAgent(environment.Environment, uint64) (Agent,
	error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register("Test", &testConfig{})
	defer delete(registeredTypes, "Test")

	c, err := NewConfig("Test", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.(*testConfig).Rate)

	c, err = NewConfig("Test", map[string]interface{}{"rate": "2"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.(*testConfig).Rate)

	_, err = NewConfig("Test", map[string]interface{}{"rate": -1})
	assert.Error(t, err)

	_, err = NewConfig("Test", map[string]interface{}{"unused": 1})
	assert.Error(t, err)

	assert.Contains(t, Registered(), Type("Test"))
}

func TestUnknownType(t *testing.T) {
	_, err := NewConfig("Nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown agent type "Nope"`)
}

func TestLogDict(t *testing.T) {
	l := make(LogDict)
	l.Add(ValueErrors, 1.5)
	vec := []float64{1, 2}
	l.AddVec(RewardErrors, vec)
	vec[0] = 10

	assert.Equal(t, []float64{1.5}, l.Scalars(ValueErrors))
	assert.Equal(t, [][]float64{{1, 2}}, l[RewardErrors])

	c := l.Copy()
	l.Clear()
	assert.Empty(t, l)
	assert.Len(t, c, 2)
}
