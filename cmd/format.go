package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bikelane-cli/internal/model"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

var recordColumns = []string{
	"DISTRICT", "POPULATION", "AREA", "BIKE_LANE_LENGTH",
	"POPULATION_DENSITY", "BIKE_LANE_DENSITY", "BIKE_LANE_PER_CAPITA", "IMBALANCE_INDEX",
	"LAT", "LON",
}

func writeRecords(w io.Writer, rows []model.DistrictRecord, format string) error {
	switch format {
	case formatTable, "":
		formatRecordsTable(w, rows)
		return nil
	case formatJSON:
		return writeJSON(w, rows)
	case formatCSV:
		return formatRecordsCSV(w, rows)
	default:
		return eris.Errorf("unknown format %q (want table, json or csv)", format)
	}
}

func formatRecordsTable(w io.Writer, rows []model.DistrictRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, c := range recordColumns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw, "\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.1f\t%.3f\t%.6f\t%.1f\t%s\t%s\t\n",
			r.District, r.Population, r.Area, r.BikeLaneLength,
			r.PopulationDensity, r.BikeLaneDensity, r.BikeLanePerCapita, r.ImbalanceIndex,
			coord(r.Latitude), coord(r.Longitude),
		)
	}
	tw.Flush()
}

func formatRecordsCSV(w io.Writer, rows []model.DistrictRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"district", "population", "area", "bike_lane_length",
		"population_density", "bike_lane_density", "bike_lane_per_capita", "imbalance_index",
		"latitude", "longitude",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, r := range rows {
		rec := []string{
			r.District,
			strconv.FormatInt(r.Population, 10),
			ftoa(r.Area),
			ftoa(r.BikeLaneLength),
			ftoa(r.PopulationDensity),
			ftoa(r.BikeLaneDensity),
			ftoa(r.BikeLanePerCapita),
			ftoa(r.ImbalanceIndex),
			optional(r.Latitude),
			optional(r.Longitude),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return eris.Wrap(enc.Encode(v), "encode json")
}

// writeWarnings reports districts the join dropped and expected districts
// that are missing. Neither stops the command.
func writeWarnings(w io.Writer, t *model.Table, expected []string) {
	if d := t.Dropped(); len(d) > 0 {
		fmt.Fprintf(w, "warning: %d district(s) not present in all sources, dropped: %v\n", len(d), d)
	}
	if m := t.Missing(expected); len(m) > 0 {
		fmt.Fprintf(w, "warning: %d expected district(s) missing: %v\n", len(m), m)
	}
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func optional(f *float64) string {
	if f == nil {
		return ""
	}
	return ftoa(*f)
}

func coord(f *float64) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', 4, 64)
}
