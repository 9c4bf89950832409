package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dwellio/dwellio-api/internal/importer"
	"github.com/dwellio/dwellio-api/pkg/config"
	"github.com/dwellio/dwellio-api/pkg/database"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "importer",
		Short: "Bulk-import property listings",
	}
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		csvURL    string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Download a CSV of listings and import it",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			cfg := config.Load()

			if csvURL == "" {
				csvURL = cfg.Import.CSVURL
			}
			if csvURL == "" {
				return fmt.Errorf("no CSV URL: pass --url or set CSV_URL")
			}
			if batchSize == 0 {
				batchSize = cfg.Import.BatchSize
			}

			ctx := context.Background()
			pool, err := database.Connect(ctx, cfg.Database.URL, cfg.Database.MinConns, cfg.Database.MaxConns, cfg.Database.MaxLifetime)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()

			logger.Info("Starting CSV import", "url", csvURL, "batch_size", batchSize)

			n, err := importer.New(pool, batchSize).Run(ctx, csvURL)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d properties\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvURL, "url", "", "CSV URL to import (defaults to CSV_URL)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "rows per copy batch (defaults to IMPORT_BATCH_SIZE)")

	return cmd
}
