package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"osm-linker/core/config"
	"osm-linker/core/database"
	"osm-linker/core/logger"
	"osm-linker/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	linkTypes   []string
	linkDryRun  bool
	linkArchive bool
	linkJSON    bool
)

// linkCmd is the parent command for all linking passes.
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link map features to OSM nodes and registry addresses",
	Long: `Link processed map features to external features.

Examples:
  # Link every auto-linkable type to OSM nodes
  osm-linker link osm

  # Preview entrance matches without writing
  osm-linker link osm --type entrance --dry-run

  # Link image notes to registry addresses
  osm-linker link addresses

  # Both passes, archiving the run report to object storage
  osm-linker link all --archive`,
}

var linkOSMCmd = &cobra.Command{
	Use:   "osm",
	Short: "Link map features to OpenStreetMap nodes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, reconcile.KindOSM)
	},
}

var linkAddressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Link image notes to official registry addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, reconcile.KindAddresses)
	},
}

var linkAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the OSM pass followed by the address pass",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLink(cmd, reconcile.KindAll)
	},
}

func init() {
	linkCmd.AddCommand(linkOSMCmd, linkAddressesCmd, linkAllCmd)

	linkCmd.PersistentFlags().StringSliceVar(&linkTypes, "type", nil, "Restrict the run to these feature types (repeatable)")
	linkCmd.PersistentFlags().BoolVar(&linkDryRun, "dry-run", false, "Match without writing links")
	linkCmd.PersistentFlags().BoolVar(&linkArchive, "archive", false, "Upload the run report to object storage")
	linkCmd.PersistentFlags().BoolVar(&linkJSON, "json", false, "Print the run report as JSON")

	RootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, kind reconcile.Kind) error {
	ctx := cmd.Context()

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

	svc, closeLock, err := newLinkingService(ctx, cfg, l, db, linkArchive)
	if err != nil {
		return err
	}
	defer closeLock()

	opts := reconcile.Options{DryRun: linkDryRun, Types: linkTypes}
	l.Info("Starting link run",
		zap.String("kind", string(kind)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Strings("types", opts.Types),
	)

	report, err := svc.Run(ctx, kind, opts)
	if report != nil {
		if linkJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if encErr := enc.Encode(report); encErr != nil {
				return fmt.Errorf("failed to encode report: %w", encErr)
			}
		} else {
			printRunReport(l, report)
		}
	}
	if err != nil {
		return fmt.Errorf("link run failed: %w", err)
	}

	if opts.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printRunReport logs one line per feature type followed by the totals.
func printRunReport(l *zap.Logger, report *reconcile.RunReport) {
	for _, res := range report.Types {
		fields := []zap.Field{
			zap.String("kind", string(res.Kind)),
			zap.String("type", res.Type),
			zap.Int("candidates", res.Candidates),
			zap.Int("checked", res.Checked),
			zap.Int("matched", res.Matched),
			zap.Int("linked", res.Linked),
			zap.Int("skipped", res.Skipped),
		}
		if res.Error != "" {
			l.Warn("Feature type failed", append(fields, zap.String("error", res.Error))...)
			continue
		}
		l.Info("Feature type done", fields...)
	}

	l.Info("Link report",
		zap.String("run_id", report.ID),
		zap.Int("linked", report.Linked),
		zap.Int("failed_types", report.Failed),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
}
