package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/bikelane-cli/internal/fetcher"
)

// Paths locates the three source files. Files ending in .xlsx are read as
// workbooks; anything else is read as CSV.
type Paths struct {
	Population string
	Area       string
	BikeLane   string
}

// OpenOptions configures how source files are decoded.
type OpenOptions struct {
	Encoding  string // CSV charset, default utf-8
	Delimiter rune   // CSV field separator, default ','
	Sheet     string // workbook sheet name, default the first sheet
}

// OpenSources reads the three files. Read and decode failures are returned
// as *LoadError naming the source.
func OpenSources(ctx context.Context, paths Paths, opts OpenOptions) (Sources, error) {
	var src Sources
	g, gctx := errgroup.WithContext(ctx)

	targets := []struct {
		name string
		path string
		dst  *Source
	}{
		{SourcePopulation, paths.Population, &src.Population},
		{SourceArea, paths.Area, &src.Area},
		{SourceBikeLane, paths.BikeLane, &src.BikeLane},
	}
	for _, t := range targets {
		g.Go(func() error {
			s, err := readSource(gctx, t.path, opts)
			if err != nil {
				return &LoadError{Source: t.name, Err: err}
			}
			*t.dst = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Sources{}, err
	}
	return src, nil
}

func readSource(ctx context.Context, path string, opts OpenOptions) (Source, error) {
	if path == "" {
		return Source{}, eris.New("no path configured")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Source{}, eris.Wrapf(err, "read %s", path)
	}

	rows, err := ParseRows(ctx, path, raw, opts)
	if err != nil {
		return Source{}, err
	}
	return Source{Name: path, Raw: raw, Rows: rows}, nil
}

// ParseRows decodes raw file bytes into records, choosing the format from
// the name's extension.
func ParseRows(ctx context.Context, name string, raw []byte, opts OpenOptions) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		rows, err := fetcher.ReadXLSXBytes(raw, fetcher.XLSXOptions{
			SheetName: opts.Sheet,
			TrimSpace: true,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "parse %s", name)
		}
		return rows, nil
	}

	rows, err := fetcher.ReadCSV(ctx, bytes.NewReader(raw), fetcher.CSVOptions{
		Delimiter: opts.Delimiter,
		Encoding:  opts.Encoding,
		TrimSpace: true,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "parse %s", name)
	}
	return rows, nil
}
