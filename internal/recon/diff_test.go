package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/camerahub/tagger/internal/exif"
)

func TestDiffIdentity(t *testing.T) {
	sets := []exif.TagSet{
		{},
		{"model": "Nikon F3"},
		{"model": "Nikon F3", "artist": "Jane", "f_number": "2.8"},
	}
	for _, s := range sets {
		assert.Empty(t, Diff(s, s))
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := exif.TagSet{"model": "Nikon F3", "artist": "Jane"}
	b := exif.TagSet{"model": "Nikon FM", "copyright": "2024"}
	assert.Equal(t, Diff(a, b), Diff(b, a))
}

func TestDiffConflictingValueYieldsTwoPairs(t *testing.T) {
	a := exif.TagSet{"model": "Nikon F3"}
	b := exif.TagSet{"model": "Nikon FM"}

	got := Diff(a, b)
	assert.Len(t, got, 2)
	assert.Equal(t, "model", got[0].Name)
	assert.Equal(t, "model", got[1].Name)
	values := []any{got[0].Value, got[1].Value}
	assert.Contains(t, values, "Nikon F3")
	assert.Contains(t, values, "Nikon FM")
}

func TestDiffDisjointKeys(t *testing.T) {
	a := exif.TagSet{"artist": "Jane"}
	b := exif.TagSet{"copyright": "2024"}
	got := Diff(a, b)
	assert.Equal(t, []Pair{{Name: "artist", Value: "Jane"}, {Name: "copyright", Value: "2024"}}, got)
}

func TestDiffEqualValuesAcrossTypes(t *testing.T) {
	// a float read back from the codec and a string from the catalog
	// compare equal when they render the same
	a := exif.TagSet{"f_number": 2.8}
	b := exif.TagSet{"f_number": "2.8"}
	assert.Empty(t, Diff(a, b))
}

func TestMergeIsNonDestructive(t *testing.T) {
	current := exif.TagSet{"model": "Nikon F3", "artist": "Jane"}
	desired := exif.TagSet{"model": "Nikon FM", "copyright": "2024"}

	merged := Merge(current, Diff(current, desired), desired)

	// every key desired defines ends up with the desired value
	assert.Equal(t, "Nikon FM", merged["model"])
	assert.Equal(t, "2024", merged["copyright"])
	// keys absent from desired are preserved untouched
	assert.Equal(t, "Jane", merged["artist"])
}

func TestMergeReproducesDesired(t *testing.T) {
	current := exif.TagSet{"a": "1", "b": "2", "c": "3"}
	desired := exif.TagSet{"b": "two", "d": "4"}

	merged := Merge(current, Diff(current, desired), desired)
	for k, v := range desired {
		assert.True(t, exif.ValueEqual(v, merged[k]), "key %s", k)
	}
	assert.Equal(t, "1", merged["a"])
	assert.Equal(t, "3", merged["c"])
}

func TestMergeWithEmptyDiffChangesNothing(t *testing.T) {
	current := exif.TagSet{"model": "Nikon F3"}
	merged := Merge(current, nil, exif.TagSet{"model": "Nikon F3"})
	assert.Equal(t, current, merged)
}
