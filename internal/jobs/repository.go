package jobs

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/seekpath/scout/pkg/pagination"
	"github.com/seekpath/scout/pkg/query"
	"github.com/seekpath/scout/pkg/repository"
	"github.com/seekpath/scout/pkg/storage"
)

type repo struct {
	db         *sql.DB
	store      storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a job repository implementing the System interface.
// store may be nil, which disables the raw batch archive.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		store:      store,
		logger:     logger.With("system", "jobs"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxIngestSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxIngestSize)
}

// Ingest archives the raw batch (best effort), then classifies and persists
// each record. Each upsert is its own atomic unit; a partial batch failure
// never rolls back already-inserted rows.
func (r *repo) Ingest(ctx context.Context, cmd IngestCommand) (*IngestResult, error) {
	if cmd.Site == "" {
		return nil, ErrMissingSite
	}

	r.archive(ctx, cmd)

	rows, summary := ClassifyAndMap(
		ctx,
		cmd.Records,
		cmd.Site,
		time.Now().UTC(),
		r.upsert,
		r.logger,
	)

	r.logger.Info("batch ingested",
		"site", cmd.Site,
		"records", len(cmd.Records),
		"inserted", summary.Inserted,
		"skipped_duplicates", summary.SkippedDuplicates,
		"content_duplicates", summary.ContentDuplicates,
		"errors", len(summary.Errors),
	)

	return &IngestResult{Site: cmd.Site, Jobs: rows, Summary: summary}, nil
}

// upsert relies on the unique (site, job_url) constraint for atomic
// check-and-insert; a conflicting key leaves the stored row untouched.
func (r *repo) upsert(ctx context.Context, job *Job) (UpsertOutcome, error) {
	const q = `
		INSERT INTO jobs(
			id, site, job_url, title, company, location,
			min_amount, max_amount, salary_source, interval,
			description, is_remote, job_type, date_posted,
			ingested_at, source_raw
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (site, job_url) DO NOTHING`

	result, err := r.db.ExecContext(ctx, q,
		job.ID,
		job.Site,
		job.JobURL,
		job.Title,
		job.Company,
		job.Location,
		job.MinAmount,
		job.MaxAmount,
		job.SalarySource,
		job.Interval,
		job.Description,
		job.IsRemote,
		job.JobType,
		job.DatePosted,
		job.IngestedAt,
		job.SourceRaw,
	)
	if err != nil {
		return "", fmt.Errorf("upsert job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("upsert job: %w", err)
	}

	if rows == 0 {
		return OutcomeDuplicate, nil
	}
	return OutcomeInserted, nil
}

// archive uploads the original batch payload verbatim for audit. Failures
// are logged and never block ingestion.
func (r *repo) archive(ctx context.Context, cmd IngestCommand) {
	if r.store == nil {
		return
	}

	data, err := json.Marshal(cmd)
	if err != nil {
		r.logger.Warn("batch archive serialization failed", "site", cmd.Site, "error", err)
		return
	}

	key := fmt.Sprintf("scrapes/%s/%s.json", cmd.Site, uuid.New())
	if err := r.store.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		r.logger.Warn("batch archive upload failed", "key", key, "error", err)
		return
	}

	r.logger.Info("batch archived", "key", key, "bytes", len(data))
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Job], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Company", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanJob)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Job, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	j, err := repository.QueryOne(ctx, r.db, q, args, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

func (r *repo) FindByKey(ctx context.Context, site, jobURL string) (*Job, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("Site", site).
		WhereEquals("JobURL", jobURL).
		BuildSingleOrNull()

	j, err := repository.QueryOne(ctx, r.db, q, args, scanJob)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &j, nil
}

// Unreviewed returns jobs that have no fit review yet, oldest first.
func (r *repo) Unreviewed(ctx context.Context, limit int) ([]Job, error) {
	q := fmt.Sprintf(`
		SELECT %s FROM %s
		LEFT JOIN fit_reviews r ON j.id = r.job_id
		WHERE r.id IS NULL
		ORDER BY j.ingested_at ASC
		LIMIT $1`,
		projection.Columns(),
		projection.Table(),
	)

	items, err := repository.QueryMany(ctx, r.db, q, []any{limit}, scanJob)
	if err != nil {
		return nil, fmt.Errorf("query unreviewed jobs: %w", err)
	}
	return items, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM jobs WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job deleted", "id", id)
	return nil
}
