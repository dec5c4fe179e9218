package recon

import (
	"sort"

	"github.com/camerahub/tagger/internal/exif"
)

// Pair is one (tag, value) element of a diff.
type Pair struct {
	Name  string
	Value any
}

// Diff returns the symmetric difference of two tag sets over their
// (key, value) pairs. A key carrying a different value on each side
// contributes two pairs, one per side; the caller decides which to apply
// by checking membership against the desired set. The result is sorted by
// name then rendered value, so Diff(a, b) and Diff(b, a) are identical.
func Diff(a, b exif.TagSet) []Pair {
	var out []Pair
	for name, v := range a {
		if other, ok := b[name]; !ok || !exif.ValueEqual(v, other) {
			out = append(out, Pair{Name: name, Value: v})
		}
	}
	for name, v := range b {
		if other, ok := a[name]; !ok || !exif.ValueEqual(v, other) {
			out = append(out, Pair{Name: name, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return exif.Canonical(out[i].Value) < exif.Canonical(out[j].Value)
	})
	return out
}

// Merge applies the desired-side pairs of a diff onto current. A pair is
// applied only if it is a member of desired, so tags present in current
// but absent from desired are never touched, and when the diff carries
// two conflicting pairs for one key the desired side wins.
func Merge(current exif.TagSet, diff []Pair, desired exif.TagSet) exif.TagSet {
	out := exif.TagSet{}
	for name, v := range current {
		out[name] = v
	}
	for _, p := range diff {
		if want, ok := desired[p.Name]; ok && exif.ValueEqual(p.Value, want) {
			out[p.Name] = p.Value
		}
	}
	return out
}
