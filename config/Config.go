// Package config loads experiment configuration files and decodes
// configuration trees into typed configuration structs.
//
// A configuration file is a YAML document of arbitrarily nested
// mappings whose leaves are either single values or lists of candidate
// values. Lists are expanded by the sweep package before a tree is
// decoded.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path into a tree of
// nested maps
func Load(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: could not open config: %w", err)
	}
	defer f.Close()

	tree, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load: %v: %w", path, err)
	}
	return tree, nil
}

// Read reads a YAML configuration tree from r
func Read(r io.Reader) (map[string]interface{}, error) {
	tree := make(map[string]interface{})
	if err := yaml.NewDecoder(r).Decode(&tree); err != nil {
		if err == io.EOF {
			return tree, nil
		}
		return nil, fmt.Errorf("read: could not parse config: %w", err)
	}
	return tree, nil
}

// Decode decodes a configuration (sub)tree into out, which must be a
// pointer to a struct with mapstructure tags. Numeric and boolean
// values are converted between types where possible, and keys in the
// tree that have no corresponding field are an error.
func Decode(in interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       false,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// Copy returns a deep copy of a configuration tree. Nested maps and
// slices are copied, leaf values are shared.
func Copy(tree map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(tree))
	for k, v := range tree {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		return Copy(value)

	case []interface{}:
		out := make([]interface{}, len(value))
		for i := range value {
			out[i] = copyValue(value[i])
		}
		return out

	default:
		return v
	}
}
