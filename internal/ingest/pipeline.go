package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jimezsa/jobsink/internal/filter"
	"github.com/jimezsa/jobsink/internal/models"
	"github.com/jimezsa/jobsink/internal/source"
	"github.com/jimezsa/jobsink/internal/store"
	"github.com/rs/zerolog"
)

// Pipeline runs one ingestion batch: fetch from each source in order,
// normalize, dedupe, filter, then upsert everything in one transaction.
type Pipeline struct {
	Sources []source.Source
	Store   *store.Store
	Region  filter.Region
	Content *filter.Content
	Logger  zerolog.Logger
	// DryRun stops before persistence.
	DryRun bool
}

// Summary is the outcome of one run.
type Summary struct {
	RunID    string
	Fetched  int
	Deduped  int
	Kept     int
	Inserted int
	Updated  int
	Failures int
}

// Run executes the batch. Sources run sequentially in the order given so
// that first-seen dedup tie-breaks are reproducible. A source returning
// an error (missing credentials) aborts the whole run; per-unit failures
// are logged and skipped. All upserts commit together at the end.
func (p *Pipeline) Run(ctx context.Context, params source.FetchParams) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	logger := p.Logger.With().Str("run_id", summary.RunID).Logger()

	var jobs []models.Job
	for _, src := range p.Sources {
		result, err := src.Fetch(ctx, params)
		if err != nil {
			return summary, fmt.Errorf("fetch %s: %w", src.Name(), err)
		}

		for _, failure := range result.Failures {
			logger.Warn().
				Str("source", failure.Source).
				Str("unit", failure.Unit).
				Err(failure.Err).
				Msg("fetch unit failed")
		}
		summary.Failures += len(result.Failures)

		for _, raw := range result.Records {
			jobs = append(jobs, Normalize(raw))
		}
		logger.Debug().
			Str("source", src.Name()).
			Int("records", len(result.Records)).
			Msg("source fetched")
	}
	summary.Fetched = len(jobs)

	jobs = Dedupe(jobs)
	summary.Deduped = len(jobs)

	kept := jobs[:0]
	for _, job := range jobs {
		if !p.Region.Accepts(job) {
			continue
		}
		if p.Content != nil && !p.Content.Keep(job) {
			continue
		}
		kept = append(kept, job)
	}
	jobs = kept
	summary.Kept = len(jobs)

	if p.DryRun || p.Store == nil {
		return summary, nil
	}

	tx, err := p.Store.BeginTx(ctx)
	if err != nil {
		return summary, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for i := range jobs {
		inserted, err := p.Store.UpsertJob(ctx, tx, &jobs[i])
		if err != nil {
			return summary, fmt.Errorf("upsert %s: %w", jobs[i].Fingerprint, err)
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, err
	}
	committed = true

	logger.Info().
		Int("fetched", summary.Fetched).
		Int("deduped", summary.Deduped).
		Int("kept", summary.Kept).
		Int("inserted", summary.Inserted).
		Int("updated", summary.Updated).
		Msg("ingestion run complete")

	return summary, nil
}
