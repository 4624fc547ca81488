package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/internal/report"
	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/trends"
)

func newTrendsCmd() *cobra.Command {
	var (
		dataset   string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Analyze connectivity trends over time",
		Long: `Groups the dataset's measurements by calendar day and reports per-day
aggregates, provider standings, and generated insights.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrends(dataset, outputFmt)
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Dataset file to analyze")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runTrends(datasetPath, outputFmt string) error {
	ds, err := connectivity.LoadDataset(datasetPath)
	if err != nil {
		return err
	}

	analyzer := trends.NewAnalyzer(nil)
	rep := analyzer.Analyze(ds.Points)

	switch outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		renderer := &report.TerminalRenderer{}
		if err := renderer.RenderTrends(os.Stdout, rep); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}

	return nil
}
