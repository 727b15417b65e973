// Package view derives display views from an indicator table: ranked and
// filtered rows, and the series each chart renderer takes.
package view

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bikelane-cli/internal/model"
)

// Top-N bounds offered by the selection controls.
const (
	MinTopN     = 5
	MaxTopN     = 25
	DefaultTopN = 10
)

// Query selects a view of the table. A zero TopN keeps every row; an empty
// Districts keeps every district.
type Query struct {
	Indicator model.Indicator `json:"indicator"`
	TopN      int             `json:"top_n"`
	Districts []string        `json:"districts,omitempty"`
}

// Validate checks the query against the control bounds and, when known is
// non-nil, that every requested district exists.
func (q Query) Validate(known []string) error {
	if !q.Indicator.Valid() {
		return eris.Errorf("view: unknown indicator %q", q.Indicator)
	}
	if q.TopN != 0 && (q.TopN < MinTopN || q.TopN > MaxTopN) {
		return eris.Errorf("view: top must be between %d and %d, got %d", MinTopN, MaxTopN, q.TopN)
	}
	if known == nil {
		return nil
	}
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	for _, d := range q.Districts {
		if !set[d] {
			return eris.Errorf("view: unknown district %q", d)
		}
	}
	return nil
}

// Apply filters the table to the requested districts, sorts descending by
// the indicator and truncates to TopN. Ties keep district name order. The
// table itself is never modified.
func Apply(t *model.Table, q Query) []model.DistrictRecord {
	rows := Filter(t.Rows(), q.Districts)
	SortDesc(rows, q.Indicator)
	if q.TopN > 0 && q.TopN < len(rows) {
		rows = rows[:q.TopN]
	}
	return rows
}

// Filter keeps rows whose district is in districts. An empty list keeps all.
func Filter(rows []model.DistrictRecord, districts []string) []model.DistrictRecord {
	if len(districts) == 0 {
		return rows
	}
	want := make(map[string]bool, len(districts))
	for _, d := range districts {
		want[d] = true
	}
	out := rows[:0:0]
	for _, r := range rows {
		if want[r.District] {
			out = append(out, r)
		}
	}
	return out
}

// SortDesc sorts rows in place by the indicator, highest first.
func SortDesc(rows []model.DistrictRecord, ind model.Indicator) {
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := rows[i].Value(ind), rows[j].Value(ind)
		if vi != vj {
			return vi > vj
		}
		return rows[i].District < rows[j].District
	})
}
