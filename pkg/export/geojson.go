package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"p9e.in/lms/models"
)

// Locations turns every organization with both GPS coordinates into a
// point feature. Organizations without a location are skipped.
func Locations(orgs []models.Organization) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range orgs {
		o := &orgs[i]
		d := o.OtherDetails
		if d == nil || d.GPSLatitude == nil || d.GPSLongitude == nil {
			continue
		}

		feature := geojson.NewFeature(orb.Point{*d.GPSLongitude, *d.GPSLatitude})
		feature.ID = o.ID.String()
		feature.Properties["lab_name"] = o.LabName
		feature.Properties["lab_city"] = o.LabCity
		feature.Properties["lab_state"] = o.LabState
		feature.Properties["status"] = string(o.Status)
		fc.Append(feature)
	}
	return fc
}
