package cmd

import (
	"fmt"

	"osm-linker/core/config"
	"osm-linker/core/database"
	"osm-linker/core/logger"
	"osm-linker/feature/mapfeatures"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd verifies that the database carries every table and column the linker reads or writes.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		missing, err := database.MissingColumns(db, mapfeatures.ExpectedSchema())
		if err != nil {
			return fmt.Errorf("failed to inspect schema: %w", err)
		}
		if len(missing) > 0 {
			l.Error("Schema is incomplete", zap.Strings("missing", missing))
			return fmt.Errorf("schema check failed: %d missing tables or columns", len(missing))
		}

		l.Info("Schema OK", zap.String("driver", cfg.Database.Driver), zap.Int("tables", len(mapfeatures.ExpectedSchema())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
