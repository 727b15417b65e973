package view

import "github.com/sells-group/bikelane-cli/internal/model"

// Controls describes the selection surface a front end offers.
type Controls struct {
	Indicators []IndicatorOption `json:"indicators"`
	Default    model.Indicator   `json:"default_indicator"`
	TopN       TopNRange         `json:"top_n"`
	Districts  []string          `json:"districts"`
}

// IndicatorOption is one entry of the indicator selector.
type IndicatorOption struct {
	Key   model.Indicator `json:"key"`
	Label string          `json:"label"`
}

// TopNRange bounds the top-N slider.
type TopNRange struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// NewControls lists the selectable indicators, the top-N bounds and the
// districts of t (all selected by default).
func NewControls(t *model.Table, defaultIndicator model.Indicator, defaultTopN int) Controls {
	if !defaultIndicator.Valid() {
		defaultIndicator = model.IndicatorImbalanceIndex
	}
	if defaultTopN < MinTopN || defaultTopN > MaxTopN {
		defaultTopN = DefaultTopN
	}

	c := Controls{
		Default:   defaultIndicator,
		TopN:      TopNRange{Min: MinTopN, Max: MaxTopN, Default: defaultTopN},
		Districts: t.Districts(),
	}
	for _, ind := range model.Indicators {
		c.Indicators = append(c.Indicators, IndicatorOption{Key: ind, Label: ind.Label()})
	}
	return c
}
