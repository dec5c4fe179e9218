package exif

// The tag vocabulary is split across three disjoint catalogs matching the
// destination container's groups. Membership is fixed at design time; a
// name appears in exactly one catalog.

var ifdTags = map[string]bool{
	"make":              true,
	"model":             true,
	"copyright":         true,
	"image_description": true,
	"artist":            true,
}

var exifTags = map[string]bool{
	"image_unique_id":           true,
	"body_serial_number":        true,
	"user_comment":              true,
	"focal_length":              true,
	"focal_length_in_35mm_film": true,
	"shutter_speed_value":       true,
	"iso_speed":                 true,
	"lens_serial_number":        true,
	"lens_model":                true,
	"lens_make":                 true,
	"f_number":                  true,
	"max_aperture_value":        true,
	"datetime_original":         true,
	"exposure_program":          true,
	"metering_mode":             true,
	"flash":                     true,
}

var gpsTags = map[string]bool{
	"gps_latitude":      true,
	"gps_latitude_ref":  true,
	"gps_longitude":     true,
	"gps_longitude_ref": true,
}

// Groups holds one TagSet per destination tag group.
type Groups struct {
	IFD  TagSet
	Exif TagSet
	GPS  TagSet
}

// NewGroups returns a Groups with empty tag sets.
func NewGroups() Groups {
	return Groups{IFD: TagSet{}, Exif: TagSet{}, GPS: TagSet{}}
}

// Empty reports whether no group holds any tags.
func (g Groups) Empty() bool {
	return len(g.IFD) == 0 && len(g.Exif) == 0 && len(g.GPS) == 0
}

// Flatten reassembles the three groups into a single TagSet. The catalogs
// are disjoint so no key can collide.
func (g Groups) Flatten() TagSet {
	out := TagSet{}
	for k, v := range g.IFD {
		out[k] = v
	}
	for k, v := range g.Exif {
		out[k] = v
	}
	for k, v := range g.GPS {
		out[k] = v
	}
	return out
}

// Classify partitions a TagSet into the three destination groups. Entries
// with nil or empty-string values are dropped, as are names outside the
// vocabulary. Classification is order-independent and idempotent.
func Classify(ts TagSet) Groups {
	g := NewGroups()
	for name, v := range ts {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		switch {
		case ifdTags[name]:
			g.IFD[name] = v
		case exifTags[name]:
			g.Exif[name] = v
		case gpsTags[name]:
			g.GPS[name] = v
		}
	}
	return g
}

// KnownTag reports whether name is in any of the three catalogs.
func KnownTag(name string) bool {
	return ifdTags[name] || exifTags[name] || gpsTags[name]
}
