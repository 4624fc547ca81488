package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ruralmapper/ruralmapper/internal/platform"
	"github.com/ruralmapper/ruralmapper/internal/store"
	"github.com/ruralmapper/ruralmapper/pkg/config"
	"github.com/ruralmapper/ruralmapper/pkg/connectivity"
)

func newDBCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Sync the dataset with the Postgres store",
	}
	cmd.PersistentFlags().StringVar(&dataset, "dataset", "data/connectivity_data.json", "Local dataset file")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := platform.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Migrations applied")
			return nil
		},
	}

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Upsert the dataset's points into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ds, err := connectivity.LoadDataset(dataset)
			if err != nil {
				return err
			}

			country := ds.CountryID
			if country == "" {
				country = cfg.Country
			}
			if err := store.New(db).SavePoints(cmd.Context(), country, ds.Points); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Pushed %d points for %s\n", len(ds.Points), country)
			return nil
		},
	}

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Rebuild the dataset file from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			points, err := store.New(db).ListPoints(cmd.Context(), cfg.Country)
			if err != nil {
				return err
			}

			ds := &connectivity.Dataset{
				Points:    points,
				SavedAt:   time.Now().UTC(),
				Source:    "store",
				CountryID: cfg.Country,
			}
			if err := connectivity.SaveDataset(dataset, ds); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "Pulled %d points for %s\n", len(points), cfg.Country)
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the store's quality distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := store.New(db).CountByRating(cmd.Context(), cfg.Country)
			if err != nil {
				return err
			}

			fmt.Printf("Quality distribution for %s: %s\n", cfg.Country, ratingLine(counts))
			return nil
		},
	}

	cmd.AddCommand(migrateCmd, pushCmd, pullCmd, statsCmd)
	return cmd
}

func openDB() (*sql.DB, *config.Config, error) {
	cfg := loadConfig()
	dsn := cfg.Store.DatabaseURL
	if env := os.Getenv("DATABASE_URL"); env != "" {
		dsn = env
	}
	if dsn == "" {
		return nil, nil, fmt.Errorf("no database configured: set store.database_url or DATABASE_URL")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db, cfg, nil
}
