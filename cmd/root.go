package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/bikelane-cli/internal/config"
)

var cfg *config.Config

// Source overrides shared by every command that loads the datasets.
var (
	flagPopulation string
	flagArea       string
	flagBikeLane   string
	flagEncoding   string
	flagDelimiter  string
	flagSheet      string
)

var rootCmd = &cobra.Command{
	Use:   "bikelane-cli",
	Short: "Seoul bike-lane infrastructure and imbalance indicators",
	Long:  "Joins district population, area and bike-lane datasets, derives density and imbalance indicators, and serves them as ranked tables, chart payloads and a dashboard API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		applySourceFlags(cfg)

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func applySourceFlags(c *config.Config) {
	if flagPopulation != "" {
		c.Sources.Population = flagPopulation
	}
	if flagArea != "" {
		c.Sources.Area = flagArea
	}
	if flagBikeLane != "" {
		c.Sources.BikeLane = flagBikeLane
	}
	if flagEncoding != "" {
		c.Sources.Encoding = flagEncoding
	}
	if flagDelimiter != "" {
		c.Sources.Delimiter = flagDelimiter
	}
	if flagSheet != "" {
		c.Sources.Sheet = flagSheet
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagPopulation, "population", "", "population CSV/XLSX (default from config)")
	pf.StringVar(&flagArea, "area", "", "district area CSV/XLSX (default from config)")
	pf.StringVar(&flagBikeLane, "bike-lane", "", "bike-lane length CSV/XLSX (default from config)")
	pf.StringVar(&flagEncoding, "encoding", "", "CSV charset: utf-8, euc-kr, cp949 (default from config)")
	pf.StringVar(&flagDelimiter, "delimiter", "", `CSV field separator, one character or "tab" (default from config)`)
	pf.StringVar(&flagSheet, "sheet", "", "sheet to read from .xlsx sources (default first sheet)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
