// Package recon implements the metadata reconciliation engine: flattening
// catalog records, mapping catalog fields to embedded tags, diffing tag
// sets and driving the per-file reconciliation.
package recon

import (
	"iter"
	"slices"
	"sort"
	"strings"
)

// FlatEntry is one leaf of a flattened catalog record: the mapping keys on
// the way down, then the scalar value.
type FlatEntry struct {
	Path  []string
	Value any
}

// Key returns the dot-joined path.
func (e FlatEntry) Key() string {
	return strings.Join(e.Path, ".")
}

// Flatten walks a nested record depth-first and yields its leaves. Mapping
// keys extend the path; sequence elements recurse under the same prefix,
// so leaves from different elements of one sequence share paths and the
// last one wins in any map built from the entries. Null leaves are never
// yielded. A bare scalar yields a single entry with an empty path.
//
// The sequence is a pure function of the record and can be ranged over any
// number of times.
func Flatten(record any) iter.Seq[FlatEntry] {
	return func(yield func(FlatEntry) bool) {
		walk(record, nil, yield)
	}
}

func walk(v any, prefix []string, yield func(FlatEntry) bool) bool {
	switch val := v.(type) {
	case map[string]any:
		// Map iteration order is unspecified in Go, so keys are sorted
		// to keep the traversal deterministic.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub := append(slices.Clip(prefix), k)
			if !walk(val[k], sub, yield) {
				return false
			}
		}
	case []any:
		for _, elem := range val {
			if !walk(elem, prefix, yield) {
				return false
			}
		}
	case nil:
		// null leaves are dropped
	default:
		return yield(FlatEntry{Path: slices.Clone(prefix), Value: v})
	}
	return true
}
