package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/bikelane-cli/internal/cache"
	"github.com/sells-group/bikelane-cli/internal/config"
	"github.com/sells-group/bikelane-cli/internal/model"
	"github.com/sells-group/bikelane-cli/internal/pipeline"
)

// loadTable reads the configured sources and builds the indicator table.
// When c is non-nil the build is memoised by source content, and tables
// built from earlier content are evicted once the sources change.
func loadTable(ctx context.Context, sc config.SourcesConfig, c *cache.Cache) (*model.Table, error) {
	sep, err := sc.Separator()
	if err != nil {
		return nil, err
	}
	src, err := pipeline.OpenSources(ctx, pipeline.Paths{
		Population: sc.Population,
		Area:       sc.Area,
		BikeLane:   sc.BikeLane,
	}, pipeline.OpenOptions{
		Encoding:  sc.Encoding,
		Delimiter: sep,
		Sheet:     sc.Sheet,
	})
	if err != nil {
		return nil, err
	}

	key := cache.KeyOf(src.Contents()...)
	build := func(ctx context.Context) (*model.Table, error) {
		return pipeline.Build(ctx, src, pipeline.WithSourceKey(string(key)))
	}
	if c == nil {
		return build(ctx)
	}

	t, hit, err := c.GetOrBuild(ctx, key, build)
	if err != nil {
		return nil, err
	}
	if hit {
		zap.L().Debug("indicator table served from cache", zap.String("load_id", t.LoadID.String()))
		return t, nil
	}
	if n := c.Retain(key); n > 0 {
		zap.L().Info("evicted tables for changed sources", zap.Int("entries", n))
	}
	return t, nil
}
