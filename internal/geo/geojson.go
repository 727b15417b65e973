package geo

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/bikelane-cli/internal/model"
)

// FeatureCollection builds one GeoJSON point per district that has
// coordinates. Size and color both carry the chosen indicator's value.
// Districts without coordinates are left out.
func FeatureCollection(rows []model.DistrictRecord, ind model.Indicator) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(rows))}
	for _, r := range rows {
		if !r.HasCoordinates() {
			continue
		}
		v := r.Value(ind)
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       r.District,
			Geometry: geom.NewPointFlat(geom.XY, []float64{*r.Longitude, *r.Latitude}),
			Properties: map[string]interface{}{
				"district":  r.District,
				"indicator": string(ind),
				"size":      v,
				"color":     v,
			},
		})
	}
	return fc
}
