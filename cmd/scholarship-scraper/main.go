package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scholarship-scraper/internal/app"
	"scholarship-scraper/internal/config"
	"scholarship-scraper/internal/fetcher"
	"scholarship-scraper/internal/observability"
	"scholarship-scraper/internal/output"
	"scholarship-scraper/internal/scraper"
	"scholarship-scraper/internal/storage"
	"scholarship-scraper/internal/storage/mssql"
	"scholarship-scraper/internal/version"
)

type options struct {
	configPath string
	outputDir  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "scholarship-scraper",
		Short:        "scrape scholarship and opportunity listings into a JSON file.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config (built-in defaults when empty)")
	rootCmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for programs_<timestamp>.json")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "print version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.Print(cmd.OutOrStdout())
		},
	})

	return rootCmd
}

func run(ctx context.Context, opts *options, console io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}

	logger := observability.NewLogger(cfg.Observability.LogPath, cfg.Observability.LogLevel)
	defer func() { _ = logger.Close() }()

	rules, err := cfg.LoadRuleSet(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	var repo storage.Repository
	if cfg.Storage.Enabled {
		mssqlRepo, err := mssql.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			return fmt.Errorf("failed to connect storage: %w", err)
		}
		defer func() {
			if err := mssqlRepo.Close(); err != nil {
				logger.Error("Failed to close storage", "error", err.Error())
			}
		}()
		repo = mssqlRepo
	}

	orchestrator := app.NewOrchestrator(
		cfg,
		logger,
		fetcher.NewFetcher(cfg, logger),
		scraper.NewScraper(rules),
		fetcher.NewPacer(cfg.GetPauseDelay()),
		console,
	)
	programs, _ := orchestrator.Run(ctx)

	publisher := app.NewPublisher(output.NewWriter(cfg.Output.Dir, cfg.Output.Prefix), repo, logger, console)
	if _, err := publisher.Publish(ctx, programs, time.Now()); err != nil {
		return err
	}

	return nil
}
