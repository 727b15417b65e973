package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/bikelane-cli/internal/config"
	"github.com/sells-group/bikelane-cli/internal/geo"
	"github.com/sells-group/bikelane-cli/internal/model"
	"github.com/sells-group/bikelane-cli/internal/view"
)

var (
	topIndicator string
	topN         int
	topDistricts []string
	topFormat    string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank districts by an indicator",
	Long: `Sorts districts by the chosen indicator, highest first, and keeps the top N.

Examples:
  bikelane-cli top --indicator imbalance_index --top 10
  bikelane-cli top --indicator 1인당_자전거도로 --district 강남구 --district 송파구 --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}
		q, err := queryFromFlags(cfg.View, topIndicator, topN, topDistricts)
		if err != nil {
			return err
		}
		return runTop(cmd.Context(), os.Stdout, cfg.Sources, q, topFormat)
	},
}

// queryFromFlags fills unset flags from the configured view defaults.
// District names are normalised the way the pipeline normalises source keys.
func queryFromFlags(vc config.ViewConfig, indicator string, n int, districts []string) (view.Query, error) {
	if indicator == "" {
		indicator = vc.Indicator
	}
	ind, err := model.ParseIndicator(indicator)
	if err != nil {
		return view.Query{}, err
	}
	if n == 0 {
		n = vc.TopN
	}
	var names []string
	for _, d := range districts {
		names = append(names, geo.Normalize(d))
	}
	return view.Query{Indicator: ind, TopN: n, Districts: names}, nil
}

func runTop(ctx context.Context, out io.Writer, sc config.SourcesConfig, q view.Query, format string) error {
	t, err := loadTable(ctx, sc, nil)
	if err != nil {
		return err
	}
	if err := q.Validate(t.Districts()); err != nil {
		return err
	}
	return writeRecords(out, view.Apply(t, q), format)
}

func init() {
	f := topCmd.Flags()
	f.StringVar(&topIndicator, "indicator", "", "indicator to rank by (default from config)")
	f.IntVar(&topN, "top", 0, "number of districts to keep, 5-25 (default from config)")
	f.StringSliceVar(&topDistricts, "district", nil, "restrict to these districts (repeatable)")
	f.StringVar(&topFormat, "format", formatTable, "output format: table, json or csv")
	rootCmd.AddCommand(topCmd)
}
