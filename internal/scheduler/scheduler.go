// Package scheduler runs the periodic scrape and review sweep. On each
// tick it fetches a batch for every configured search, ingests the
// records, then reviews any jobs that have no fit review yet.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/seekpath/scout/internal/jobs"
	"github.com/seekpath/scout/internal/reviews"
	"github.com/seekpath/scout/internal/scrape"
	"github.com/seekpath/scout/pkg/lifecycle"
)

// reviewBatchSize bounds how many unreviewed jobs one sweep will review.
// Remaining jobs are picked up on the next tick.
const reviewBatchSize = 25

// Scheduler wraps robfig/cron and drives the scrape/review loop.
type Scheduler struct {
	cron     *cron.Cron
	client   *scrape.Client
	jobs     jobs.System
	reviews  reviews.System
	searches []scrape.Search
	spec     string
	logger   *slog.Logger
}

// New creates a Scheduler firing on the given cron spec (e.g. "@every 6h").
func New(
	client *scrape.Client,
	jobSys jobs.System,
	reviewSys reviews.System,
	searches []scrape.Search,
	spec string,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		client:   client,
		jobs:     jobSys,
		reviews:  reviewSys,
		searches: searches,
		spec:     spec,
		logger:   logger.With("system", "scheduler"),
	}
}

// Start registers the sweep with cron, runs one sweep immediately so the
// feed is populated without waiting for the first tick, and hooks cron
// shutdown into the lifecycle coordinator.
func (s *Scheduler) Start(lc *lifecycle.Coordinator) error {
	ctx := lc.Context()

	if _, err := s.cron.AddFunc(s.spec, func() {
		s.sweep(ctx)
	}); err != nil {
		return fmt.Errorf("register sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "spec", s.spec, "searches", len(s.searches))

	go s.sweep(ctx)

	lc.OnShutdown(func() {
		<-ctx.Done()
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.logger.Info("scheduler stopped")
	})

	return nil
}

func (s *Scheduler) sweep(ctx context.Context) {
	s.logger.Info("sweep started")

	for _, search := range s.searches {
		if ctx.Err() != nil {
			return
		}
		s.runSearch(ctx, search)
	}

	s.reviewUnreviewed(ctx)
	s.logger.Info("sweep complete")
}

func (s *Scheduler) runSearch(ctx context.Context, search scrape.Search) {
	records, err := s.client.Fetch(ctx, search)
	if err != nil {
		s.logger.Error("scrape fetch failed", "site", search.Site, "query", search.Query, "error", err)
		return
	}

	if len(records) == 0 {
		return
	}

	result, err := s.jobs.Ingest(ctx, jobs.IngestCommand{
		Site:    search.Site,
		Records: records,
	})
	if err != nil {
		s.logger.Error("scrape ingest failed", "site", search.Site, "error", err)
		return
	}

	s.logger.Info("search ingested",
		"site", search.Site,
		"query", search.Query,
		"inserted", result.Summary.Inserted,
		"skipped_duplicates", result.Summary.SkippedDuplicates,
		"errors", len(result.Summary.Errors),
	)
}

func (s *Scheduler) reviewUnreviewed(ctx context.Context) {
	pending, err := s.jobs.Unreviewed(ctx, reviewBatchSize)
	if err != nil {
		s.logger.Error("unreviewed query failed", "error", err)
		return
	}

	for _, job := range pending {
		if ctx.Err() != nil {
			return
		}

		if _, err := s.reviews.Review(ctx, job.ID); err != nil {
			s.logger.Error("review failed", "job_id", job.ID, "error", err)
		}
	}

	if len(pending) > 0 {
		s.logger.Info("pending reviews processed", "count", len(pending))
	}
}
