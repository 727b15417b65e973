package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Table is the joined indicator table produced by one pipeline invocation.
// It is read-only after construction; accessors hand out copies.
type Table struct {
	LoadID    uuid.UUID `json:"load_id"`
	SourceKey string    `json:"source_key,omitempty"`
	BuiltAt   time.Time `json:"built_at"`

	// Sources lists the inputs in join order: population, area, bike lane.
	Sources []SourceProvenance `json:"sources,omitempty"`

	records []DistrictRecord
	index   map[string]int
	dropped []string
}

// NewTable wraps records (which must be uniquely keyed by district) in a Table.
// dropped lists districts seen in some but not all sources.
func NewTable(records []DistrictRecord, dropped []string) *Table {
	t := &Table{
		LoadID:  uuid.New(),
		BuiltAt: time.Now().UTC(),
		records: make([]DistrictRecord, len(records)),
		index:   make(map[string]int, len(records)),
		dropped: append([]string(nil), dropped...),
	}
	for i, r := range records {
		t.records[i] = r.clone()
		t.index[r.District] = i
	}
	sort.Strings(t.dropped)
	return t
}

// Len returns the number of districts.
func (t *Table) Len() int { return len(t.records) }

// Rows returns a copy of all records in load order.
func (t *Table) Rows() []DistrictRecord {
	out := make([]DistrictRecord, len(t.records))
	for i, r := range t.records {
		out[i] = r.clone()
	}
	return out
}

// Lookup returns the record for a district.
func (t *Table) Lookup(district string) (DistrictRecord, bool) {
	i, ok := t.index[district]
	if !ok {
		return DistrictRecord{}, false
	}
	return t.records[i].clone(), true
}

// Districts returns the district names, sorted.
func (t *Table) Districts() []string {
	names := make([]string, 0, len(t.records))
	for _, r := range t.records {
		names = append(names, r.District)
	}
	sort.Strings(names)
	return names
}

// Dropped returns districts that were present in at least one source but
// not in all three, and so were left out by the join.
func (t *Table) Dropped() []string {
	return append([]string(nil), t.dropped...)
}

// Missing returns the names in expected that have no row in the table.
func (t *Table) Missing(expected []string) []string {
	var out []string
	for _, name := range expected {
		if _, ok := t.index[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
