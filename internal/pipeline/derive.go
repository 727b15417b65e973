package pipeline

import (
	"math"

	"github.com/sells-group/bikelane-cli/internal/geo"
	"github.com/sells-group/bikelane-cli/internal/model"
)

// derive computes the four ratio indicators for a joined district and
// attaches its coordinates, if known.
func derive(j joined, g *geo.Gazetteer) (model.DistrictRecord, error) {
	if !usable(j.area) {
		return model.DistrictRecord{}, &DegenerateError{District: j.district, Field: "area", Value: j.area}
	}
	if j.population <= 0 {
		return model.DistrictRecord{}, &DegenerateError{District: j.district, Field: "population", Value: float64(j.population)}
	}

	pop := float64(j.population)
	rec := model.DistrictRecord{
		District:          j.district,
		Population:        j.population,
		Area:              j.area,
		BikeLaneLength:    j.bikeLaneLength,
		PopulationDensity: pop / j.area,
		BikeLaneDensity:   j.bikeLaneLength / j.area,
		BikeLanePerCapita: j.bikeLaneLength / pop,
	}
	if !usable(rec.BikeLaneDensity) {
		return model.DistrictRecord{}, &DegenerateError{District: j.district, Field: "bike_lane_density", Value: rec.BikeLaneDensity}
	}
	rec.ImbalanceIndex = rec.PopulationDensity / rec.BikeLaneDensity

	for _, v := range []float64{rec.PopulationDensity, rec.BikeLanePerCapita, rec.ImbalanceIndex} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return model.DistrictRecord{}, &DegenerateError{District: j.district, Field: "ratio", Value: v}
		}
	}

	if g != nil {
		if p, ok := g.Lookup(j.district); ok {
			lat, lon := p.Lat, p.Lon
			rec.Latitude = &lat
			rec.Longitude = &lon
		}
	}
	return rec, nil
}

// usable reports whether v can be a denominator.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
