// Package main provides the ruralmapper CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ruralmapper",
		Short: "Connectivity measurement mapping for underserved regions",
		Long: `Ruralmapper ingests field speed-test measurements, scores connection
quality, analyzes trends over time, and exports deployment-ready data.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newIngestCmd(),
		newSimulateCmd(),
		newTrendsCmd(),
		newExportCmd(),
		newDatasetCmd(),
		newSyncCmd(),
		newDBCmd(),
		newCountriesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
