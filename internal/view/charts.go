package view

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/bikelane-cli/internal/geo"
	"github.com/sells-group/bikelane-cli/internal/model"
)

// BarChart is the input of the bar renderer: one bar per district, height
// and color from the same indicator.
type BarChart struct {
	Title     string          `json:"title"`
	Indicator model.Indicator `json:"indicator"`
	Label     string          `json:"label"`
	Bars      []Bar           `json:"bars"`
}

// Bar is one category of a BarChart.
type Bar struct {
	District string  `json:"district"`
	Value    float64 `json:"value"`
	Color    float64 `json:"color"`
}

// BuildBar builds the bar chart for already ranked rows.
func BuildBar(rows []model.DistrictRecord, ind model.Indicator) BarChart {
	c := BarChart{
		Title:     barTitle(ind, len(rows)),
		Indicator: ind,
		Label:     ind.Label(),
		Bars:      make([]Bar, 0, len(rows)),
	}
	for _, r := range rows {
		v := r.Value(ind)
		c.Bars = append(c.Bars, Bar{District: r.District, Value: v, Color: v})
	}
	return c
}

func barTitle(ind model.Indicator, n int) string {
	return ind.Label() + " 기준 상위 " + strconv.Itoa(n) + " 자치구"
}

// ScatterChart compares population density with bike-lane density.
type ScatterChart struct {
	Title  string         `json:"title"`
	X      string         `json:"x"`
	Y      string         `json:"y"`
	Size   string         `json:"size"`
	Color  string         `json:"color"`
	Points []ScatterPoint `json:"points"`
}

// ScatterPoint is one district in a ScatterChart.
type ScatterPoint struct {
	District string  `json:"district"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"`
	Color    float64 `json:"color"`
}

// BuildScatter builds the scatter chart: x population density, y bike-lane
// density, size per-capita length, color imbalance index.
func BuildScatter(rows []model.DistrictRecord) ScatterChart {
	c := ScatterChart{
		Title:  "인구밀도 대비 자전거도로 밀도 (색: 불균형 지수, 크기: 1인당 도로길이)",
		X:      string(model.IndicatorPopulationDensity),
		Y:      string(model.IndicatorBikeLaneDensity),
		Size:   string(model.IndicatorBikeLanePerCapita),
		Color:  string(model.IndicatorImbalanceIndex),
		Points: make([]ScatterPoint, 0, len(rows)),
	}
	for _, r := range rows {
		c.Points = append(c.Points, ScatterPoint{
			District: r.District,
			X:        r.PopulationDensity,
			Y:        r.BikeLaneDensity,
			Size:     r.BikeLanePerCapita,
			Color:    r.ImbalanceIndex,
		})
	}
	return c
}

// BuildMap builds the map layer. Rows without coordinates are skipped.
func BuildMap(rows []model.DistrictRecord, ind model.Indicator) *geojson.FeatureCollection {
	return geo.FeatureCollection(rows, ind)
}

// ChartKind names one of the presentation charts.
type ChartKind string

const (
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
	ChartMap     ChartKind = "map"
)

// Render builds the payload for one chart. The bar chart is ranked and
// truncated to q.TopN; scatter and map show every selected district.
func Render(kind ChartKind, t *model.Table, q Query) (any, error) {
	switch kind {
	case ChartBar:
		return BuildBar(Apply(t, q), q.Indicator), nil
	case ChartScatter:
		return BuildScatter(Filter(t.Rows(), q.Districts)), nil
	case ChartMap:
		return BuildMap(Filter(t.Rows(), q.Districts), q.Indicator), nil
	default:
		return nil, eris.Errorf("view: unknown chart %q", kind)
	}
}
