//go:build !integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sells-group/bikelane-cli/internal/config"
)

const (
	testPopCSV = `자치구,항목,인구
자치구,항목,2024
종로구,계,100
종로구,남자,48
중구,계,200
강남구,계,"1,000"
성동구,계,300
송파구,계,400
관악구,계,500
`
	testAreaCSV = `서울시,자치구,면적
서울시,자치구,2024
서울시,소계,145
서울시,종로구,10
서울시,중구,20
서울시,강남구,40
서울시,성동구,15
서울시,송파구,25
서울시,관악구,35
`
	testBikeCSV = `합계,구분,자치구,길이
합계,구분,자치구,km
합계,합계,합계,100
합계,자치구,종로구,5
합계,자치구,중구,8
합계,자치구,강남구,30
합계,자치구,성동구,9
합계,자치구,송파구,40
합계,자치구,해운대구,1
`
)

// writeTestSources writes the fixture CSVs and returns a config pointing at
// them. 관악구 has no bike-lane row and 해운대구 no population or area, so both
// are dropped by the join.
func writeTestSources(t *testing.T) config.SourcesConfig {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	return config.SourcesConfig{
		Population: write("population.csv", testPopCSV),
		Area:       write("area.csv", testAreaCSV),
		BikeLane:   write("bike_lane.csv", testBikeCSV),
		Encoding:   "utf-8",
	}
}

func testViewConfig() config.ViewConfig {
	return config.ViewConfig{Indicator: "imbalance_index", TopN: 10}
}
