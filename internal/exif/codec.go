package exif

import (
	"fmt"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/shopspring/decimal"
)

// fieldForTag maps the vocabulary to exiftool field names. The reverse
// direction is derived in init.
var fieldForTag = map[string]string{
	"make":              "Make",
	"model":             "Model",
	"copyright":         "Copyright",
	"image_description": "ImageDescription",
	"artist":            "Artist",

	"image_unique_id":           "ImageUniqueID",
	"body_serial_number":        "SerialNumber",
	"user_comment":              "UserComment",
	"focal_length":              "FocalLength",
	"focal_length_in_35mm_film": "FocalLengthIn35mmFormat",
	"shutter_speed_value":       "ShutterSpeedValue",
	"iso_speed":                 "ISOSpeed",
	"lens_serial_number":        "LensSerialNumber",
	"lens_model":                "LensModel",
	"lens_make":                 "LensMake",
	"f_number":                  "FNumber",
	"max_aperture_value":        "MaxApertureValue",
	"datetime_original":         "DateTimeOriginal",
	"exposure_program":          "ExposureProgram",
	"metering_mode":             "MeteringMode",
	"flash":                     "Flash",

	"gps_latitude":      "GPSLatitude",
	"gps_latitude_ref":  "GPSLatitudeRef",
	"gps_longitude":     "GPSLongitude",
	"gps_longitude_ref": "GPSLongitudeRef",
}

var tagForField = map[string]string{}

func init() {
	for tag, field := range fieldForTag {
		tagForField[field] = tag
	}
}

// Codec reads and writes embedded tags through a persistent exiftool
// process. It only ever exposes vocabulary tag names and primitive
// values; the byte-level container format stays inside exiftool.
type Codec struct {
	et *exiftool.Exiftool
}

// NewCodec starts the backing exiftool process. Print conversion is
// disabled so numeric fields come back as numbers and GPS angles as
// decimal degrees.
func NewCodec() (*Codec, error) {
	et, err := exiftool.NewExiftool(exiftool.NoPrintConversion())
	if err != nil {
		return nil, fmt.Errorf("starting exiftool: %w", err)
	}
	return &Codec{et: et}, nil
}

// Close shuts down the exiftool process.
func (c *Codec) Close() error {
	return c.et.Close()
}

// ReadTags extracts the embedded tags of the file at path, translated into
// the vocabulary and classified into the three groups. GPS angles are
// rebuilt as DMS values so they compare cleanly against mapped catalog
// coordinates.
func (c *Codec) ReadTags(path string) (Groups, error) {
	fms := c.et.ExtractMetadata(path)
	if len(fms) != 1 {
		return Groups{}, fmt.Errorf("reading tags from %s: unexpected exiftool result", path)
	}
	fm := fms[0]
	if fm.Err != nil {
		return Groups{}, fmt.Errorf("reading tags from %s: %w", path, fm.Err)
	}

	flat := TagSet{}
	for field, value := range fm.Fields {
		tag, ok := tagForField[field]
		if !ok {
			continue
		}
		if tag == "gps_latitude" || tag == "gps_longitude" {
			if angle, ok := toDecimal(value); ok {
				flat[tag] = DMSFromDegrees(angle)
			}
			continue
		}
		flat[tag] = value
	}
	return Classify(flat), nil
}

// WriteTags encodes the given groups into the file at path. Only the tags
// present in the groups are staged; everything else in the container is
// left alone. The write happens in one exiftool invocation once the full
// tag set is assembled.
func (c *Codec) WriteTags(path string, g Groups) error {
	fm := exiftool.FileMetadata{File: path, Fields: map[string]interface{}{}}
	for tag, value := range g.Flatten() {
		field, ok := fieldForTag[tag]
		if !ok {
			continue
		}
		fm.Fields[field] = encodeValue(value)
	}

	fms := []exiftool.FileMetadata{fm}
	c.et.WriteMetadata(fms)
	if fms[0].Err != nil {
		return fmt.Errorf("writing tags to %s: %w", path, fms[0].Err)
	}
	return nil
}

// encodeValue renders a tag value the way exiftool expects it on write.
// DMS angles are space separated; everything else uses the canonical form.
func encodeValue(v any) string {
	if d, ok := v.(DMS); ok {
		return fmt.Sprintf("%d %d %s", d.Degrees, d.Minutes, d.Seconds)
	}
	return Canonical(v)
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case string:
		d, err := decimal.NewFromString(t)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}
