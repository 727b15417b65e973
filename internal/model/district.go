package model

// DistrictRecord is one joined row of the indicator table: the base figures
// read from the three sources plus the ratios derived from them.
type DistrictRecord struct {
	District       string  `json:"district"`
	Population     int64   `json:"population"`
	Area           float64 `json:"area"`
	BikeLaneLength float64 `json:"bike_lane_length"`

	PopulationDensity float64 `json:"population_density"`
	BikeLaneDensity   float64 `json:"bike_lane_density"`
	BikeLanePerCapita float64 `json:"bike_lane_per_capita"`
	ImbalanceIndex    float64 `json:"imbalance_index"`

	// Nil when the district is not in the coordinate table.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HasCoordinates reports whether both coordinates are set.
func (r DistrictRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Value returns the record's value for the given indicator.
func (r DistrictRecord) Value(ind Indicator) float64 {
	switch ind {
	case IndicatorBikeLaneLength:
		return r.BikeLaneLength
	case IndicatorBikeLaneDensity:
		return r.BikeLaneDensity
	case IndicatorBikeLanePerCapita:
		return r.BikeLanePerCapita
	case IndicatorPopulationDensity:
		return r.PopulationDensity
	case IndicatorImbalanceIndex:
		return r.ImbalanceIndex
	default:
		return 0
	}
}

// clone returns a copy that shares no pointers with r.
func (r DistrictRecord) clone() DistrictRecord {
	if r.Latitude != nil {
		lat := *r.Latitude
		r.Latitude = &lat
	}
	if r.Longitude != nil {
		lon := *r.Longitude
		r.Longitude = &lon
	}
	return r
}
