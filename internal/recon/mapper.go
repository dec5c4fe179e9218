package recon

import (
	"encoding/json"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/camerahub/tagger/internal/exif"
)

// tagForPath is the static translation table from catalog dotted paths to
// embedded tag names. The destination vocabulary is a strict subset of the
// catalog's fields; anything not listed here is dropped on purpose.
var tagForPath = map[string]string{
	"uuid": "image_unique_id",

	"negative.caption":           "image_description",
	"negative.date":              "datetime_original",
	"negative.notes":             "user_comment",
	"negative.copyright":         "copyright",
	"negative.photographer.name": "artist",

	"negative.aperture":                    "f_number",
	"negative.shutter_speed":               "shutter_speed_value",
	"negative.focal_length":                "focal_length",
	"negative.equivalent_focal_length":     "focal_length_in_35mm_film",
	"negative.exposure_program":            "exposure_program",
	"negative.metering_mode":               "metering_mode",
	"negative.flash":                       "flash",
	"negative.film.exposed_at":             "iso_speed",
	"negative.film.camera.serial":          "body_serial_number",
	"negative.lens.serial":                 "lens_serial_number",
	"negative.lens.lensmodel.model":        "lens_model",
	"negative.lens.lensmodel.max_aperture": "max_aperture_value",

	"negative.film.camera.cameramodel.model":             "model",
	"negative.film.camera.cameramodel.manufacturer.name": "make",
	"negative.lens.lensmodel.manufacturer.name":          "lens_make",
}

// gpsPath describes a computed coordinate field: the source path expands
// into an angle tag plus its hemisphere reference tag.
type gpsPath struct {
	axis   Axis
	tag    string
	refTag string
}

var gpsForPath = map[string]gpsPath{
	"negative.latitude":  {Latitude, "gps_latitude", "gps_latitude_ref"},
	"negative.longitude": {Longitude, "gps_longitude", "gps_longitude_ref"},
}

// MapToTags translates flattened catalog entries into a TagSet. Coordinate
// paths expand into a DMS triple and a hemisphere code; everything else is
// a straight rename through the table above. Unmapped paths drop silently.
func MapToTags(entries iter.Seq[FlatEntry]) exif.TagSet {
	out := exif.TagSet{}
	for e := range entries {
		key := e.Key()
		if gp, ok := gpsForPath[key]; ok {
			angle, err := toAngle(e.Value)
			if err != nil {
				continue
			}
			out[gp.tag] = ToDMS(angle)
			out[gp.refTag] = GPSRef(gp.axis, angle)
			continue
		}
		if tag, ok := tagForPath[key]; ok {
			out[tag] = e.Value
		}
	}
	return out
}

// toAngle parses a coordinate leaf without going through binary floating
// point, so the DMS conversion stays exact.
func toAngle(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(t)
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.NewFromString(exif.Canonical(v))
	}
}
