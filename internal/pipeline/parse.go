package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/bikelane-cli/internal/geo"
)

// Source names used in errors and logs.
const (
	SourcePopulation = "population"
	SourceArea       = "area"
	SourceBikeLane   = "bike_lane"
)

// TotalMarker is the population category value of the all-residents row.
const TotalMarker = "계"

// layout describes the fixed shape of one source file. Every file carries a
// header record followed by MetaRows records of title/unit metadata.
type layout struct {
	Source   string
	MetaRows int
	Columns  []string
	District int // index of the district column in Columns
	Value    int // index of the numeric column in Columns
}

var (
	populationLayout = layout{
		Source:   SourcePopulation,
		MetaRows: 1,
		Columns:  []string{"district", "category", "population"},
		District: 0,
		Value:    2,
	}
	areaLayout = layout{
		Source:   SourceArea,
		MetaRows: 2,
		Columns:  []string{"city", "district", "area"},
		District: 1,
		Value:    2,
	}
	bikeLaneLayout = layout{
		Source:   SourceBikeLane,
		MetaRows: 2,
		Columns:  []string{"total", "classification", "district", "length"},
		District: 2,
		Value:    3,
	}
)

// skip is the number of leading records dropped before data starts.
func (l layout) skip() int { return 1 + l.MetaRows }

// row is one normalised source record.
type row struct {
	line     int
	district string
	cells    []string
}

// normalize drops the leading records and checks the positional column
// count. Trailing empty cells, which spreadsheet exports often add, are
// ignored. A source with no data row left is a LoadError.
func (l layout) normalize(records [][]string) ([]row, error) {
	var data [][]string
	if len(records) > l.skip() {
		data = records[l.skip():]
	}

	out := make([]row, 0, len(data))
	for i, rec := range data {
		line := l.skip() + i + 1
		cells := trimTrailingEmpty(rec)
		if len(cells) == 0 {
			continue
		}
		if len(cells) < len(l.Columns) {
			return nil, &LoadError{
				Source: l.Source,
				Column: l.Columns[len(cells)],
				Row:    line,
				Err:    eris.Errorf("expected %d columns, got %d", len(l.Columns), len(cells)),
			}
		}
		if len(cells) > len(l.Columns) {
			return nil, &LoadError{
				Source: l.Source,
				Row:    line,
				Err:    eris.Errorf("expected %d columns, got %d", len(l.Columns), len(cells)),
			}
		}

		district := geo.Normalize(cells[l.District])
		if district == "" {
			return nil, &LoadError{
				Source: l.Source,
				Column: l.Columns[l.District],
				Row:    line,
				Err:    eris.New("empty district name"),
			}
		}
		out = append(out, row{line: line, district: district, cells: cells})
	}
	if len(out) == 0 {
		return nil, &LoadError{
			Source: l.Source,
			Column: l.Columns[l.District],
			Err:    eris.Errorf("no data rows after %d header records (got %d records)", l.skip(), len(records)),
		}
	}
	return out, nil
}

func trimTrailingEmpty(rec []string) []string {
	n := len(rec)
	for n > 0 && strings.TrimSpace(rec[n-1]) == "" {
		n--
	}
	return rec[:n]
}

type populationRow struct {
	district   string
	category   string
	population int64
	line       int
}

type measureRow struct {
	district string
	value    float64
	line     int
}

// parsePopulation coerces every population row, then keeps the total rows.
func parsePopulation(records [][]string) ([]populationRow, error) {
	l := populationLayout
	rows, err := l.normalize(records)
	if err != nil {
		return nil, err
	}

	parsed := make([]populationRow, 0, len(rows))
	for _, r := range rows {
		raw := r.cells[l.Value]
		n, err := parseInt(raw)
		if err != nil {
			return nil, &LoadError{Source: l.Source, Column: l.Columns[l.Value], Row: r.line, Value: raw, Err: err}
		}
		if n < 0 {
			return nil, &LoadError{Source: l.Source, Column: l.Columns[l.Value], Row: r.line, Value: raw, Err: eris.New("negative population")}
		}
		parsed = append(parsed, populationRow{
			district:   r.district,
			category:   strings.TrimSpace(r.cells[1]),
			population: n,
			line:       r.line,
		})
	}

	totals := parsed[:0]
	for _, p := range parsed {
		if p.category == TotalMarker {
			totals = append(totals, p)
		}
	}
	if err := checkUnique(l, len(totals), func(i int) (string, int) { return totals[i].district, totals[i].line }); err != nil {
		return nil, err
	}
	return totals, nil
}

func parseMeasure(l layout, records [][]string) ([]measureRow, error) {
	rows, err := l.normalize(records)
	if err != nil {
		return nil, err
	}

	out := make([]measureRow, 0, len(rows))
	for _, r := range rows {
		raw := r.cells[l.Value]
		v, err := parseFloat(raw)
		if err != nil {
			return nil, &LoadError{Source: l.Source, Column: l.Columns[l.Value], Row: r.line, Value: raw, Err: err}
		}
		if v < 0 {
			return nil, &LoadError{Source: l.Source, Column: l.Columns[l.Value], Row: r.line, Value: raw, Err: eris.New("negative value")}
		}
		out = append(out, measureRow{district: r.district, value: v, line: r.line})
	}
	if err := checkUnique(l, len(out), func(i int) (string, int) { return out[i].district, out[i].line }); err != nil {
		return nil, err
	}
	return out, nil
}

func checkUnique(l layout, n int, at func(int) (string, int)) error {
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		district, line := at(i)
		if first, dup := seen[district]; dup {
			return &LoadError{
				Source: l.Source,
				Column: l.Columns[l.District],
				Row:    line,
				Value:  district,
				Err:    eris.Errorf("duplicate district (first seen on row %d)", first),
			}
		}
		seen[district] = line
	}
	return nil
}

// parseInt accepts optional thousands separators and a ".0" suffix, which
// spreadsheet exports add to whole numbers.
func parseInt(s string) (int64, error) {
	s = cleanNumber(s)
	if strings.HasSuffix(s, ".0") {
		s = strings.TrimSuffix(s, ".0")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, eris.New("not an integer")
	}
	return n, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(cleanNumber(s), 64)
	if err != nil {
		return 0, eris.New("not a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.New("not a finite number")
	}
	return v, nil
}

func cleanNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
