package recon

import (
	"github.com/shopspring/decimal"

	"github.com/camerahub/tagger/internal/exif"
)

// Axis identifies which GPS coordinate an angle belongs to.
type Axis int

const (
	Latitude Axis = iota
	Longitude
)

// ToDMS converts a decimal angle to exact degrees/minutes/seconds.
func ToDMS(angle decimal.Decimal) exif.DMS {
	return exif.DMSFromDegrees(angle)
}

// GPSRef returns the single-character hemisphere code for an angle. Zero
// counts as the positive hemisphere.
func GPSRef(axis Axis, angle decimal.Decimal) string {
	positive := !angle.IsNegative()
	if axis == Latitude {
		if positive {
			return "N"
		}
		return "S"
	}
	if positive {
		return "E"
	}
	return "W"
}
