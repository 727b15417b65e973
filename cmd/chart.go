package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/bikelane-cli/internal/config"
	"github.com/sells-group/bikelane-cli/internal/view"
)

var (
	chartIndicator string
	chartN         int
	chartDistricts []string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print chart payloads as JSON",
	Long:  "Emits the series the bar, scatter and map renderers take, for the current sources.",
}

var chartBarCmd = &cobra.Command{
	Use:   "bar",
	Short: "Top-N districts by an indicator, as bar chart series",
	RunE:  chartRunE(view.ChartBar),
}

var chartScatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Population density vs bike-lane density for the selected districts",
	RunE:  chartRunE(view.ChartScatter),
}

var chartMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Selected districts as GeoJSON points sized by an indicator",
	RunE:  chartRunE(view.ChartMap),
}

func chartRunE(kind view.ChartKind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}
		q, err := queryFromFlags(cfg.View, chartIndicator, chartN, chartDistricts)
		if err != nil {
			return err
		}
		return runChart(cmd.Context(), os.Stdout, cfg.Sources, kind, q)
	}
}

func runChart(ctx context.Context, out io.Writer, sc config.SourcesConfig, kind view.ChartKind, q view.Query) error {
	t, err := loadTable(ctx, sc, nil)
	if err != nil {
		return err
	}
	if err := q.Validate(t.Districts()); err != nil {
		return err
	}
	payload, err := view.Render(kind, t, q)
	if err != nil {
		return err
	}
	return writeJSON(out, payload)
}

func init() {
	pf := chartCmd.PersistentFlags()
	pf.StringVar(&chartIndicator, "indicator", "", "indicator for bar height and map size/color (default from config)")
	pf.IntVar(&chartN, "top", 0, "bar chart: number of districts, 5-25 (default from config)")
	pf.StringSliceVar(&chartDistricts, "district", nil, "restrict to these districts (repeatable)")

	chartCmd.AddCommand(chartBarCmd, chartScatterCmd, chartMapCmd)
	rootCmd.AddCommand(chartCmd)
}
