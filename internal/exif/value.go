// Package exif defines the embedded-metadata tag vocabulary, the value
// types the codec accepts, and the exiftool-backed codec itself.
package exif

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// TagSet maps tag names from the vocabulary to primitive values.
type TagSet map[string]any

// DMS is a degrees/minutes/seconds angle as required by the GPS tags.
// Degrees and minutes are whole numbers; seconds keep full decimal
// precision.
type DMS struct {
	Degrees int64
	Minutes int64
	Seconds decimal.Decimal
}

func (d DMS) String() string {
	return fmt.Sprintf("%d,%d,%s", d.Degrees, d.Minutes, d.Seconds)
}

var sixty = decimal.NewFromInt(60)

// DMSFromDegrees converts a decimal angle to DMS. The conversion is exact
// for exact decimal inputs: QuoRem with precision 0 is integer divmod.
func DMSFromDegrees(angle decimal.Decimal) DMS {
	total := angle.Abs().Mul(decimal.NewFromInt(3600))
	minsTotal, secs := total.QuoRem(sixty, 0)
	degs, mins := minsTotal.QuoRem(sixty, 0)
	return DMS{Degrees: degs.IntPart(), Minutes: mins.IntPart(), Seconds: secs}
}

// Canonical renders a tag value in the form handed to the codec. Two tag
// values are considered equal iff their canonical forms match; the diff
// and merge steps rely on this.
func Canonical(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case DMS:
		return t.String()
	case decimal.Decimal:
		return t.String()
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// ValueEqual reports whether two tag values are equal under Canonical.
func ValueEqual(a, b any) bool {
	return Canonical(a) == Canonical(b)
}
