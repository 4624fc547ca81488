package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/internal/report"
	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/export"
	"github.com/ruralmapper/ruralmapper/pkg/trends"
)

func newExportCmd() *cobra.Command {
	var (
		dataset string
		outDir  string
		push    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the downstream export bundle and reports",
		Long: `Transforms the dataset into the failover simulator input, the field
deployment layer, a bundle manifest, and JSON/CSV/text reports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), dataset, outDir, push)
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Dataset file to export")
	cmd.Flags().StringVar(&outDir, "out-dir", "data/exports", "Directory for the export bundle")
	cmd.Flags().BoolVar(&push, "push", false, "Upload the bundle to configured blob storage")

	return cmd
}

func runExport(ctx context.Context, datasetPath, outDir string, push bool) error {
	ds, err := connectivity.LoadDataset(datasetPath)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	failover := export.BuildFailoverExport(ds.Points, now)
	suitability := export.BuildSuitabilityExport(ds.Points, now)
	manifest := export.BuildManifest(ds, map[string]string{
		"failover":    "hybrid_simulator_input.json",
		"suitability": "deployment_connectivity.json",
	}, now)

	manifestPath, err := report.WriteBundle(outDir, failover, suitability, manifest)
	if err != nil {
		return err
	}

	rep := trends.NewAnalyzer(nil).Analyze(ds.Points)
	if err := report.WriteJSON(filepath.Join(outDir, "connectivity_report.json"), ds); err != nil {
		return err
	}
	if err := report.WriteCSV(filepath.Join(outDir, "connectivity_report.csv"), ds); err != nil {
		return err
	}
	if err := report.WriteText(filepath.Join(outDir, "connectivity_report.txt"), ds, rep); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Export bundle written to %s\n", outDir)
	fmt.Fprintf(os.Stderr, "  Manifest: %s\n", manifestPath)

	if push {
		cfg := loadConfig()
		client, err := openStorage(ctx, cfg)
		if err != nil {
			return err
		}
		entries, err := os.ReadDir(outDir)
		if err != nil {
			return fmt.Errorf("listing export bundle: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
			if err != nil {
				return fmt.Errorf("reading export file: %w", err)
			}
			if err := client.PutExport(ctx, cfg.Country, entry.Name(), data); err != nil {
				return fmt.Errorf("uploading %s: %w", entry.Name(), err)
			}
		}
		fmt.Fprintf(os.Stderr, "Bundle uploaded to %s storage\n", cfg.Storage.Backend)
	}

	return nil
}
