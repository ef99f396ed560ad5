// Package sweep expands a configuration tree into the Cartesian
// product of its leaf values.
//
// Every leaf of a tree is a list of candidate values, and a single
// value is treated as a list of one candidate. Each combination is a
// tree of the same nesting with one candidate chosen for every leaf.
// A list value must therefore be wrapped in a second list to be used
// as a single candidate.
package sweep

import (
	"sort"

	"github.com/samuelfneumann/sflearn/config"
)

// Normalize returns a copy of tree in which every leaf is a list of
// candidate values. Lists are kept as they are, maps are recursed
// into, and all other values are wrapped in a list of length one.
func Normalize(tree map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(tree))
	for k, v := range tree {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		return Normalize(value)
	case []interface{}:
		return value
	default:
		return []interface{}{value}
	}
}

// leaf is the path to a leaf of a tree and its candidate values
type leaf struct {
	path   []string
	values []interface{}
}

// Iterator lazily iterates over the combinations of a tree, with the
// leaf sorted last by path varying fastest
type Iterator struct {
	leaves  []leaf
	indices []int
	started bool
	done    bool
}

// New returns an Iterator over the combinations of tree
func New(tree map[string]interface{}) *Iterator {
	var leaves []leaf
	collect(Normalize(tree), nil, &leaves)

	it := &Iterator{
		leaves:  leaves,
		indices: make([]int, len(leaves)),
	}
	for _, l := range leaves {
		if len(l.values) == 0 {
			it.done = true
		}
	}
	return it
}

// collect appends the leaves of tree to leaves in sorted path order.
// Empty maps are leaves with a single candidate, the empty map.
func collect(tree map[string]interface{}, prefix []string, leaves *[]leaf) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := append(append([]string(nil), prefix...), k)

		switch v := tree[k].(type) {
		case map[string]interface{}:
			if len(v) == 0 {
				*leaves = append(*leaves, leaf{path,
					[]interface{}{map[string]interface{}{}}})
				continue
			}
			collect(v, path, leaves)

		case []interface{}:
			*leaves = append(*leaves, leaf{path, v})
		}
	}
}

// Len returns the total number of combinations
func (it *Iterator) Len() int {
	n := 1
	for _, l := range it.leaves {
		n *= len(l.values)
	}
	return n
}

// Next advances the Iterator to the next combination, returning false
// when there are no more combinations
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
		return true
	}

	for i := len(it.indices) - 1; i >= 0; i-- {
		it.indices[i]++
		if it.indices[i] < len(it.leaves[i].values) {
			return true
		}
		it.indices[i] = 0
	}

	it.done = true
	return false
}

// Config returns the current combination. Next must have returned
// true before Config is called.
func (it *Iterator) Config() map[string]interface{} {
	tree := make(map[string]interface{})
	for i, l := range it.leaves {
		node := tree
		for _, k := range l.path[:len(l.path)-1] {
			child, ok := node[k].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[k] = child
			}
			node = child
		}
		node[l.path[len(l.path)-1]] = l.values[it.indices[i]]
	}
	return config.Copy(tree)
}

// All returns every combination of tree in iteration order
func All(tree map[string]interface{}) []map[string]interface{} {
	it := New(tree)
	out := make([]map[string]interface{}, 0, it.Len())
	for it.Next() {
		out = append(out, it.Config())
	}
	return out
}
