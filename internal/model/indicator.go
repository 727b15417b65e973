package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Indicator names a district metric offered for ranking and charting.
type Indicator string

const (
	IndicatorBikeLaneLength    Indicator = "bike_lane_length"
	IndicatorBikeLaneDensity   Indicator = "bike_lane_density"
	IndicatorBikeLanePerCapita Indicator = "bike_lane_per_capita"
	IndicatorPopulationDensity Indicator = "population_density"
	IndicatorImbalanceIndex    Indicator = "imbalance_index"
)

// Indicators lists the selectable indicators in display order.
var Indicators = []Indicator{
	IndicatorBikeLaneLength,
	IndicatorBikeLaneDensity,
	IndicatorBikeLanePerCapita,
	IndicatorPopulationDensity,
	IndicatorImbalanceIndex,
}

var indicatorLabels = map[Indicator]string{
	IndicatorBikeLaneLength:    "자전거도로_길이",
	IndicatorBikeLaneDensity:   "자전거도로_밀도",
	IndicatorBikeLanePerCapita: "1인당_자전거도로",
	IndicatorPopulationDensity: "인구밀도",
	IndicatorImbalanceIndex:    "불균형_지수",
}

// ParseIndicator resolves an indicator from its key or its Korean label.
func ParseIndicator(s string) (Indicator, error) {
	s = strings.TrimSpace(s)
	for _, ind := range Indicators {
		if strings.EqualFold(s, string(ind)) || s == indicatorLabels[ind] {
			return ind, nil
		}
	}
	return "", eris.Errorf("model: unknown indicator %q", s)
}

// Valid reports whether ind is one of the known indicators.
func (ind Indicator) Valid() bool {
	_, ok := indicatorLabels[ind]
	return ok
}

// Label returns the dashboard label for the indicator.
func (ind Indicator) Label() string {
	if l, ok := indicatorLabels[ind]; ok {
		return l
	}
	return string(ind)
}

func (ind Indicator) String() string { return string(ind) }
