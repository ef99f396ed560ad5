package agent

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samuelfneumann/sflearn/config"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	SFReturnLinear Type = "SFReturn-Linear"
	TDLambdaLinear Type = "TDLambda-Linear"
)

// Registered types with the package. Once a Type has been registered
// with this map, a Config with that type can be created.
//
// No Type's are registered wtih this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes map[Type]reflect.Type

// Defaulter is a Config that can fill in its default values before
// keyword arguments are decoded into it
type Defaulter interface {
	Default()
}

func init() {
	registeredTypes = make(map[Type]reflect.Type)
}

// Register registers an agent's Type with a concrete Config type so
// that Configs of type agentType can be constructed by name.
//
// Note that each package is required to register its own Config's
// with an agentType separately. This package registers no agentTypes
// with any Config's. This is to avoid circular imports.
func Register(agentType Type, c Config) {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	registeredTypes[agentType] = t
}

// NewConfig returns a new Config of type agentType with the keyword
// arguments kwargs decoded into it. Registered Configs which implement
// Defaulter have Default called first. The returned Config has been
// validated.
func NewConfig(agentType Type, kwargs map[string]interface{}) (Config,
	error) {
	t, ok := registeredTypes[agentType]
	if !ok {
		return nil, fmt.Errorf("newConfig: unknown agent type %q", agentType)
	}

	c, ok := reflect.New(t).Interface().(Config)
	if !ok {
		return nil, fmt.Errorf("newConfig: registered type %v for agent "+
			"type %v is not a Config", t, agentType)
	}

	if d, ok := c.(Defaulter); ok {
		d.Default()
	}

	if len(kwargs) > 0 {
		if err := config.Decode(kwargs, c); err != nil {
			return nil, fmt.Errorf("newConfig: agent type %v: %w", agentType,
				err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newConfig: agent type %v: %w", agentType, err)
	}
	return c, nil
}

// Registered returns the sorted names of all registered agent types
func Registered() []Type {
	types := make([]Type, 0, len(registeredTypes))
	for t := range registeredTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
