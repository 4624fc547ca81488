package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

func newSyncCmd() *cobra.Command {
	var (
		dataset   string
		datasetID string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push or pull datasets against blob storage",
		Long: `Archives the local dataset file to the configured blob storage backend
(local directory, S3, or GCS), or restores one from it.`,
	}
	cmd.PersistentFlags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Local dataset file")
	cmd.PersistentFlags().StringVar(&datasetID, "id", "latest", "Dataset ID in storage")

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the local dataset to storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(dataset)
			if err != nil {
				return fmt.Errorf("reading dataset: %w", err)
			}
			if err := client.PutDataset(cmd.Context(), cfg.Country, datasetID, data); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Dataset %s pushed to %s storage\n", datasetID, cfg.Storage.Backend)
			return nil
		},
	}

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Download a dataset from storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			client, err := openStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			data, err := client.GetDataset(cmd.Context(), cfg.Country, datasetID)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dataset, data, 0o644); err != nil {
				return fmt.Errorf("writing dataset: %w", err)
			}

			ds, err := connectivity.LoadDataset(dataset)
			if err != nil {
				return fmt.Errorf("pulled dataset is not valid: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Dataset %s pulled (%d points)\n", datasetID, len(ds.Points))
			return nil
		},
	}

	cmd.AddCommand(pushCmd, pullCmd)
	return cmd
}
