package tracker

import (
	"fmt"
	"math"
	"strconv"
)

// SchemaVersion is the version of the record layout given by Fields
const SchemaVersion = 2

// Kind is the kind of value stored in a record field
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "bool"
	}
}

// Field is a single named column of a record
type Field struct {
	Name string
	Kind
}

// Fields lists the columns of each record in order
var Fields = []Field{
	{"num_episodes", Int},
	{"envCls_name", String},
	{"env_kwargs", String},
	{"agentCls_name", String},
	{"seed", Int},
	{"gamma", Float},
	{"lr", Float},
	{"sf_lr", Float},
	{"optim_kwargs", String},
	{"reward_lr", Float},
	{"value_lr", Float},
	{"lamb", Float},
	{"eta_trace", Float},
	{"policy_epsilon", Float},
	{"use_true_reward_params", Bool},
	{"use_true_sf_params", Bool},
	{"episode_idx", Int},
	{"total_steps", Int},
	{"cumulative_reward", Float},
	{"v_fn_rmse", Float},
	{"sf_G_rmse", Float},
	{"sf_matrix_rmse", Float},
	{"reward_vec_rmse", Float},
	{"value_loss_avg", Float},
	{"reward_loss_avg", Float},
	{"sf_loss_avg", Float},
	{"et_loss_avg", Float},
}

// None is written in place of missing fields
const None = "None"

var fieldKinds = func() map[string]Kind {
	kinds := make(map[string]Kind, len(Fields))
	for _, f := range Fields {
		kinds[f.Name] = f.Kind
	}
	return kinds
}()

// Names returns the names of Fields in order
func Names() []string {
	names := make([]string, len(Fields))
	for i, f := range Fields {
		names[i] = f.Name
	}
	return names
}

// KindOf returns the kind of the field name and whether the field
// exists
func KindOf(name string) (Kind, bool) {
	k, ok := fieldKinds[name]
	return k, ok
}

// Record is a single row of the log. Fields which are absent or nil
// are missing.
type Record map[string]interface{}

// Validate checks that each field of the record exists and holds a
// value of the field's kind
func (r Record) Validate() error {
	for name, value := range r {
		kind, ok := fieldKinds[name]
		if !ok {
			return fmt.Errorf("validate: unknown field %q", name)
		}
		if value == nil {
			continue
		}
		if _, err := format(value, kind); err != nil {
			return fmt.Errorf("validate: field %v: %w", name, err)
		}
	}
	return nil
}

// Values returns the formatted value of each field in the order of
// Fields
func (r Record) Values() ([]string, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}

	values := make([]string, len(Fields))
	for i, f := range Fields {
		value, ok := r[f.Name]
		if !ok || value == nil {
			values[i] = None
			continue
		}

		// Validated above
		values[i], _ = format(value, f.Kind)
	}
	return values, nil
}

// format formats value as a field of kind kind
func format(value interface{}, kind Kind) (string, error) {
	switch kind {
	case Int:
		if i, ok := asInt(value); ok {
			return strconv.FormatInt(i, 10), nil
		}

	case Float:
		if i, ok := asInt(value); ok {
			return strconv.FormatInt(i, 10), nil
		}
		switch v := value.(type) {
		case float64:
			return FormatFloat(v), nil
		case float32:
			return FormatFloat(float64(v)), nil
		}

	case String:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case Bool:
		if b, ok := value.(bool); ok {
			if b {
				return "True", nil
			}
			return "False", nil
		}
	}

	return "", fmt.Errorf("expected %v but got %T", kind, value)
}

func asInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// FormatFloat formats f the way it is written in log records: integral
// values keep one decimal place, and exponent notation is used only
// for very small or very large magnitudes.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	switch {
	case abs >= 1e16 || (abs < 1e-4 && abs != 0):
		return strconv.FormatFloat(f, 'e', -1, 64)
	case f == math.Trunc(f):
		return strconv.FormatFloat(f, 'f', 1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}
