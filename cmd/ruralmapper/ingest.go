package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/internal/ingest"
	"github.com/ruralmapper/ruralmapper/internal/report"
	"github.com/ruralmapper/ruralmapper/pkg/config"
	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
	"github.com/ruralmapper/ruralmapper/pkg/scoring"
	"github.com/ruralmapper/ruralmapper/pkg/validate"
)

func newIngestCmd() *cobra.Command {
	var (
		input     string
		format    string
		dataset   string
		verbose   bool
		workers   int
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Validate and score a batch of measurements",
		Long: `Reads raw speed-test records from a CSV or JSON file, validates each
record, scores the accepted ones, and appends them to the dataset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(ingestOpts{
				input:     input,
				format:    format,
				dataset:   dataset,
				verbose:   verbose,
				workers:   workers,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input file with raw records (required)")
	cmd.Flags().StringVar(&format, "format", "auto", "Input format: csv, json, or auto (by extension)")
	cmd.Flags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Dataset file to append to")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Collect every validation failure per record")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel validation workers (default: config)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type ingestOpts struct {
	input     string
	format    string
	dataset   string
	verbose   bool
	workers   int
	outputFmt string
}

func runIngest(opts ingestOpts) error {
	cfg := loadConfig()

	records, err := readRecords(opts.input, opts.format)
	if err != nil {
		return err
	}

	service := buildService(cfg, opts.verbose, opts.workers)
	result := service.Ingest(records)

	if len(result.Accepted) > 0 {
		if err := appendToDataset(opts.dataset, cfg.Country, opts.input, result.Accepted); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Dataset saved to %s\n", opts.dataset)
	}

	switch opts.outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		renderer := &report.TerminalRenderer{}
		if err := renderer.RenderIngest(os.Stdout, result); err != nil {
			return fmt.Errorf("rendering: %w", err)
		}
	}

	return nil
}

func buildService(cfg *config.Config, verbose bool, workers int) *ingest.Service {
	validator := &validate.Validator{
		Verbose:        verbose || cfg.Ingest.Verbose,
		KnownProviders: config.KnownProviders(cfg.Country),
	}
	engine := scoring.NewEngine(cfg.Weights())

	service := ingest.NewService(validator, engine)
	if workers > 0 {
		service.Workers = workers
	} else {
		service.Workers = cfg.Ingest.Parallelism
	}
	return service
}

func readRecords(path, format string) ([]validate.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	if format == "auto" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv":
			format = "csv"
		default:
			format = "json"
		}
	}

	switch format {
	case "csv":
		return ingest.ReadCSV(f)
	case "json":
		return ingest.ReadJSON(f)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// appendToDataset loads the dataset (or starts a fresh one), appends
// the points, and writes it back.
func appendToDataset(path, country, source string, points []connectivity.Point) error {
	ds, err := connectivity.LoadDataset(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		ds = &connectivity.Dataset{CountryID: country}
	}

	ds.Points = append(ds.Points, points...)
	ds.SavedAt = time.Now().UTC()
	ds.Source = source

	return connectivity.SaveDataset(path, ds)
}
