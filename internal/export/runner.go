package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/CloudCante/Tracking-TOO/internal/cycle"
	"github.com/CloudCante/Tracking-TOO/internal/histcache"
	"github.com/CloudCante/Tracking-TOO/internal/logging"
	"github.com/CloudCante/Tracking-TOO/internal/report"
	"github.com/CloudCante/Tracking-TOO/internal/tracking"
)

const defaultBatchSize = 10

// Options configures a Runner.
type Options struct {
	Fetcher    tracking.Fetcher
	Cache      *histcache.Cache // nil disables caching
	Logger     *slog.Logger
	BatchSize  int
	OutputPath string
	Converter  report.Converter
}

// Runner executes export runs.
type Runner struct {
	fetcher    tracking.Fetcher
	cache      *histcache.Cache
	logger     *slog.Logger
	batchSize  int
	outputPath string
	converter  report.Converter
}

// NewRunner validates options and builds a Runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("export runner: fetcher required")
	}
	if opts.OutputPath == "" {
		return nil, errors.New("export runner: output path required")
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Runner{
		fetcher:    opts.Fetcher,
		cache:      opts.Cache,
		logger:     logging.NewComponentLogger(opts.Logger, "export"),
		batchSize:  batchSize,
		outputPath: opts.OutputPath,
		converter:  opts.Converter,
	}, nil
}

// Summary reports the outcome of one run.
type Summary struct {
	RunID         string
	Requested     int
	Processed     int
	Skipped       int
	Batches       int
	FailedBatches int
	CacheHits     int
	OutputPath    string
	Results       []cycle.Milestones
}

// Run exports milestone records for the given serial numbers into the output
// CSV. Results keep the input serial order; serials whose batch fetch failed
// are skipped and counted rather than failing the run.
func (r *Runner) Run(ctx context.Context, serials []string, window tracking.Window) (*Summary, error) {
	if len(serials) == 0 {
		return nil, errors.New("export run: no serial numbers given")
	}

	summary := &Summary{
		RunID:      uuid.NewString(),
		Requested:  len(serials),
		OutputPath: r.outputPath,
	}
	log := r.logger.With(logging.String("run_id", summary.RunID))

	lock := flock.New(r.outputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire report lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another export is already writing %s", r.outputPath)
	}
	defer func() { _ = lock.Unlock() }()

	log.Info("export run started",
		logging.Int("serials", len(serials)),
		logging.Int("batch_size", r.batchSize),
	)

	for start := 0; start < len(serials); start += r.batchSize {
		end := min(start+r.batchSize, len(serials))
		batch := serials[start:end]
		summary.Batches++

		r.runBatch(ctx, log, batch, window, summary)
	}

	if err := report.WriteFile(r.outputPath, summary.Results, r.converter); err != nil {
		return nil, err
	}

	log.Info("export run complete",
		logging.Int("processed", summary.Processed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed_batches", summary.FailedBatches),
		logging.Int("cache_hits", summary.CacheHits),
		logging.String("output", r.outputPath),
	)
	return summary, nil
}

// runBatch resolves one batch of serials from the cache and the portal and
// appends a milestone record per resolved serial.
func (r *Runner) runBatch(ctx context.Context, log *slog.Logger, batch []string, window tracking.Window, summary *Summary) {
	cached := make(map[string][]tracking.HistoryRecord)
	var missing []string
	for _, serial := range batch {
		if records, hit := r.cacheGet(ctx, log, serial, window); hit {
			cached[serial] = records
			summary.CacheHits++
			continue
		}
		missing = append(missing, serial)
	}

	fetched := make(map[string][]tracking.HistoryRecord)
	fetchFailed := false
	if len(missing) > 0 {
		records, err := r.fetcher.SerialHistory(ctx, missing, window)
		if err != nil {
			// One bad batch must not sink the run; cached serials in the
			// batch still produce rows.
			log.Warn("batch fetch failed, skipping its serials",
				logging.Error(err),
				logging.Int("serials", len(missing)),
			)
			summary.FailedBatches++
			fetchFailed = true
		} else {
			fetched = tracking.GroupBySerial(records)
			for _, serial := range missing {
				r.cachePut(ctx, log, serial, window, fetched[serial])
			}
		}
	}

	for _, serial := range batch {
		records, ok := cached[serial]
		if !ok {
			if fetchFailed {
				summary.Skipped++
				continue
			}
			records = fetched[serial]
		}
		summary.Results = append(summary.Results, cycle.Extract(serial, toCycleRecords(records)))
		summary.Processed++
	}
}

func (r *Runner) cacheGet(ctx context.Context, log *slog.Logger, serial string, window tracking.Window) ([]tracking.HistoryRecord, bool) {
	if r.cache == nil {
		return nil, false
	}
	records, hit, err := r.cache.Get(ctx, histcache.Key(serial, window))
	if err != nil {
		log.Warn("cache lookup failed", logging.Error(err), logging.String("serial", serial))
		return nil, false
	}
	return records, hit
}

func (r *Runner) cachePut(ctx context.Context, log *slog.Logger, serial string, window tracking.Window, records []tracking.HistoryRecord) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Put(ctx, histcache.Key(serial, window), serial, records); err != nil {
		log.Warn("cache store failed", logging.Error(err), logging.String("serial", serial))
	}
}

func toCycleRecords(records []tracking.HistoryRecord) []cycle.Record {
	converted := make([]cycle.Record, 0, len(records))
	for _, record := range records {
		converted = append(converted, cycle.Record{
			Source:  record.Source,
			Station: record.StationName,
			Start:   record.StationStart,
			End:     record.StationEnd,
		})
	}
	return converted
}
