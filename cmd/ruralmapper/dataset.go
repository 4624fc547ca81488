package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

func newDatasetCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the local dataset file",
	}
	cmd.PersistentFlags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Dataset file")

	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the dataset to a timestamped backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := connectivity.BackupDataset(dataset)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Backup saved to %s\n", backup)
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <point-id>",
		Short: "Remove a point from the dataset by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetRemove(dataset, args[0])
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dataset size, providers, and quality distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDatasetStats(dataset)
		},
	}

	cmd.AddCommand(backupCmd, removeCmd, statsCmd)
	return cmd
}

func runDatasetRemove(path, id string) error {
	ds, err := connectivity.LoadDataset(path)
	if err != nil {
		return err
	}

	if !ds.Remove(id) {
		return fmt.Errorf("point %s not found in dataset", id)
	}

	ds.SavedAt = time.Now().UTC()
	if err := connectivity.SaveDataset(path, ds); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Removed point %s (%d points remain)\n", id, len(ds.Points))
	return nil
}

func runDatasetStats(path string) error {
	ds, err := connectivity.LoadDataset(path)
	if err != nil {
		return err
	}

	fmt.Printf("Points:    %d\n", len(ds.Points))
	fmt.Printf("Country:   %s\n", ds.CountryID)
	if !ds.SavedAt.IsZero() {
		fmt.Printf("Saved at:  %s\n", ds.SavedAt.Format(time.RFC3339))
	}
	fmt.Printf("Providers: %d\n", len(ds.Providers()))
	for _, provider := range ds.Providers() {
		fmt.Printf("  %s\n", provider)
	}
	fmt.Printf("Quality:   %s\n", ratingLine(ds.RatingCounts()))
	return nil
}
