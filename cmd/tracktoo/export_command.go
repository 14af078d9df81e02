package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CloudCante/Tracking-TOO/internal/export"
	"github.com/CloudCante/Tracking-TOO/internal/histcache"
	"github.com/CloudCante/Tracking-TOO/internal/logging"
	"github.com/CloudCante/Tracking-TOO/internal/report"
	"github.com/CloudCante/Tracking-TOO/internal/tracking"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFlag  string
		outputFlag string
		startDate  string
		endDate    string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "export [serial...]",
		Short: "Fetch production history and export milestone timestamps to CSV",
		Long: `Fetch production history for the given serial numbers, segment each
unit's current manufacturing cycle, and write one milestone row per serial
to the output CSV.

Serial numbers come from the arguments, an input file, or piped stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if (startDate == "") != (endDate == "") {
				return errors.New("--start-date and --end-date must be given together")
			}

			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return err
			}

			serials, err := resolveSerials(args, inputFlag, cfg.Export.InputFile, os.Stdin, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if len(serials) == 0 {
				return errors.New("no serial numbers to export")
			}

			client, err := tracking.New(cfg.API.BaseURL,
				tracking.WithToken(cfg.API.Token),
				tracking.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
			)
			if err != nil {
				return err
			}

			var cache *histcache.Cache
			if cfg.Cache.Enabled && !noCache {
				if err := cfg.EnsureCacheDir(); err != nil {
					return err
				}
				ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
				cache, err = histcache.Open(cfg.Cache.Dir, ttl)
				if err != nil {
					return err
				}
				defer cache.Close()
				if _, err := cache.Prune(cmd.Context()); err != nil {
					logger.Warn("cache prune failed", logging.Error(err))
				}
			}

			outputPath := cfg.Export.OutputFile
			if outputFlag != "" {
				outputPath = outputFlag
			}

			converter := report.NewConverter(cfg.Export.SourceUTCOffsetHours, cfg.Export.DisplayOffsetHours)
			runner, err := export.NewRunner(export.Options{
				Fetcher:    client,
				Cache:      cache,
				Logger:     logger,
				BatchSize:  cfg.API.BatchSize,
				OutputPath: outputPath,
				Converter:  converter,
			})
			if err != nil {
				return err
			}

			window := tracking.Window{StartDate: startDate, EndDate: endDate}
			summary, err := runner.Run(cmd.Context(), serials, window)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d of %d serial numbers to %s\n", summary.Processed, summary.Requested, summary.OutputPath)
			if summary.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d serial numbers across %d failed batches\n", summary.Skipped, summary.FailedBatches)
			}
			if summary.CacheHits > 0 {
				fmt.Fprintf(out, "Served %d serial numbers from the local cache\n", summary.CacheHits)
			}
			if len(summary.Results) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderMilestonePreview(summary.Results[0], converter))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "CSV file with serial numbers in the first column")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output CSV path (overrides the configured output file)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Lower bound for the history lookup (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Upper bound for the history lookup (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the serial-history cache for this run")

	return cmd
}
