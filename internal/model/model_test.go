package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestParseIndicator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Indicator
		wantErr bool
	}{
		{"imbalance_index", IndicatorImbalanceIndex, false},
		{"  Population_Density ", IndicatorPopulationDensity, false},
		{"1인당_자전거도로", IndicatorBikeLanePerCapita, false},
		{"자전거도로_길이", IndicatorBikeLaneLength, false},
		{"bike_lane_density", IndicatorBikeLaneDensity, false},
		{"population", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseIndicator(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndicatorLabel(t *testing.T) {
	assert.Equal(t, "불균형_지수", IndicatorImbalanceIndex.Label())
	assert.Equal(t, "nope", Indicator("nope").Label())
	assert.True(t, IndicatorBikeLaneDensity.Valid())
	assert.False(t, Indicator("nope").Valid())
	assert.Len(t, Indicators, 5)
}

func TestDistrictRecordValue(t *testing.T) {
	r := DistrictRecord{
		BikeLaneLength:    5,
		BikeLaneDensity:   0.5,
		BikeLanePerCapita: 0.05,
		PopulationDensity: 10,
		ImbalanceIndex:    20,
	}

	assert.Equal(t, 5.0, r.Value(IndicatorBikeLaneLength))
	assert.Equal(t, 0.5, r.Value(IndicatorBikeLaneDensity))
	assert.Equal(t, 0.05, r.Value(IndicatorBikeLanePerCapita))
	assert.Equal(t, 10.0, r.Value(IndicatorPopulationDensity))
	assert.Equal(t, 20.0, r.Value(IndicatorImbalanceIndex))
	assert.Equal(t, 0.0, r.Value(Indicator("unknown")))
}

func TestTable_RowsAreCopies(t *testing.T) {
	recs := []DistrictRecord{
		{District: "B", Population: 200, Latitude: ptr(37.5), Longitude: ptr(127.0)},
		{District: "A", Population: 100},
	}
	tbl := NewTable(recs, []string{"Z", "C"})

	// Mutating the input after construction does not leak into the table.
	*recs[0].Latitude = 0
	recs[1].Population = 999

	rows := tbl.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].District)
	assert.Equal(t, 37.5, *rows[0].Latitude)
	assert.Equal(t, int64(100), rows[1].Population)

	// Mutating returned rows does not leak back either.
	*rows[0].Latitude = 1
	again, ok := tbl.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, 37.5, *again.Latitude)
	assert.True(t, again.HasCoordinates())

	a, ok := tbl.Lookup("A")
	require.True(t, ok)
	assert.False(t, a.HasCoordinates())

	_, ok = tbl.Lookup("nowhere")
	assert.False(t, ok)
}

func TestTable_Accessors(t *testing.T) {
	tbl := NewTable([]DistrictRecord{{District: "B"}, {District: "A"}}, []string{"Z", "C"})

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"A", "B"}, tbl.Districts())
	assert.Equal(t, []string{"C", "Z"}, tbl.Dropped())
	assert.Equal(t, []string{"C"}, tbl.Missing([]string{"A", "B", "C"}))
	assert.Nil(t, tbl.Missing([]string{"A"}))
	assert.NotEqual(t, [16]byte{}, [16]byte(tbl.LoadID))
	assert.False(t, tbl.BuiltAt.IsZero())
}
