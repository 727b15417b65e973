package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/bikelane-cli/internal/config"
	"github.com/sells-group/bikelane-cli/internal/geo"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the joined district indicator table",
	Long:  "Loads the three sources, joins them by district and prints every district with its derived indicators in source order.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("load"); err != nil {
			return err
		}
		return runTable(cmd.Context(), os.Stdout, os.Stderr, cfg.Sources, tableFormat)
	},
}

func runTable(ctx context.Context, out, errOut io.Writer, sc config.SourcesConfig, format string) error {
	t, err := loadTable(ctx, sc, nil)
	if err != nil {
		return err
	}
	writeWarnings(errOut, t, geo.Seoul().Known())
	return writeRecords(out, t.Rows(), format)
}

func init() {
	tableCmd.Flags().StringVar(&tableFormat, "format", formatTable, "output format: table, json or csv")
	rootCmd.AddCommand(tableCmd)
}
