package envconfig

import (
	"testing"

	env "github.com/samuelfneumann/sflearn/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	c := Config{
		ClsString: "GridWorld",
		Kwargs:    map[string]interface{}{"rows": 2, "cols": 3, "goal_x": 2},
	}
	e, err := c.Create(1)
	require.NoError(t, err)
	assert.Equal(t, 6, env.FeatureDim(e))

	c = Config{ClsString: "RandomWalk"}
	e, err = c.Create(1)
	require.NoError(t, err)
	assert.Equal(t, 5, env.FeatureDim(e))
}

func TestUnknownEnvironment(t *testing.T) {
	_, err := Config{ClsString: "Nope"}.Create(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown environment "Nope"`)
}

func TestUnknownKwarg(t *testing.T) {
	c := Config{
		ClsString: "Constant",
		Kwargs:    map[string]interface{}{"not_a_field": 1},
	}
	_, err := c.Create(0)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Constant", "GridWorld", "RandomWalk"}, Names())
}
