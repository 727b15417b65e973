// Package pipeline joins the population, area and bike-lane sources by
// district and derives the indicator table.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bikelane-cli/internal/geo"
	"github.com/sells-group/bikelane-cli/internal/model"
)

// Source is one raw tabular input: every record of the file, header and
// metadata rows included.
type Source struct {
	Name string // file path or other label, for logs
	Raw  []byte // original bytes, used for content hashing
	Rows [][]string
}

// Sources is the input triple of the pipeline.
type Sources struct {
	Population Source
	Area       Source
	BikeLane   Source
}

// Contents returns the raw bytes of the three sources in join order.
func (s Sources) Contents() [][]byte {
	return [][]byte{s.Population.Raw, s.Area.Raw, s.BikeLane.Raw}
}

// Option configures Build.
type Option func(*options)

type options struct {
	gazetteer *geo.Gazetteer
	sourceKey string
}

// WithGazetteer overrides the coordinate table (default: geo.Seoul()).
func WithGazetteer(g *geo.Gazetteer) Option {
	return func(o *options) { o.gazetteer = g }
}

// WithSourceKey records the cache key of the inputs on the built table.
func WithSourceKey(key string) Option {
	return func(o *options) { o.sourceKey = key }
}

// Build runs the pipeline: normalise each source, keep the population total
// rows, inner-join on district, derive the ratios, attach coordinates.
// Any failure aborts the whole invocation; no partial table is returned.
func Build(ctx context.Context, src Sources, opts ...Option) (*model.Table, error) {
	o := options{gazetteer: geo.Seoul()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: build")
	}

	pop, err := parsePopulation(src.Population.Rows)
	if err != nil {
		return nil, err
	}
	area, err := parseMeasure(areaLayout, src.Area.Rows)
	if err != nil {
		return nil, err
	}
	bike, err := parseMeasure(bikeLaneLayout, src.BikeLane.Rows)
	if err != nil {
		return nil, err
	}

	rows, dropped := innerJoin(pop, area, bike)
	if len(rows) == 0 {
		zap.L().Warn("pipeline: empty join",
			zap.Int("population_rows", len(pop)),
			zap.Int("area_rows", len(area)),
			zap.Int("bike_lane_rows", len(bike)),
		)
		return nil, ErrEmptyJoin
	}

	records := make([]model.DistrictRecord, 0, len(rows))
	for _, j := range rows {
		rec, err := derive(j, o.gazetteer)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	t := model.NewTable(records, dropped)
	t.SourceKey = o.sourceKey
	t.Sources = []model.SourceProvenance{
		provenance(SourcePopulation, src.Population, len(pop)),
		provenance(SourceArea, src.Area, len(area)),
		provenance(SourceBikeLane, src.BikeLane, len(bike)),
	}

	log := zap.L().With(zap.String("load_id", t.LoadID.String()))
	log.Info("pipeline: built indicator table",
		zap.Int("population_rows", len(pop)),
		zap.Int("area_rows", len(area)),
		zap.Int("bike_lane_rows", len(bike)),
		zap.Int("districts", t.Len()),
	)
	if len(dropped) > 0 {
		log.Warn("pipeline: districts dropped by join", zap.Strings("districts", dropped))
	}
	if o.gazetteer != nil {
		if missing := t.Missing(o.gazetteer.Known()); len(missing) > 0 {
			log.Warn("pipeline: expected districts missing", zap.Strings("districts", missing))
		}
	}

	return t, nil
}

func provenance(name string, s Source, rows int) model.SourceProvenance {
	return model.SourceProvenance{
		Source:  name,
		Name:    s.Name,
		Bytes:   len(s.Raw),
		Records: len(s.Rows),
		Rows:    rows,
	}
}
