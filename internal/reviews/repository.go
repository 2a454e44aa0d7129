package reviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/jobs"
	"github.com/seekpath/scout/internal/personas"
	"github.com/seekpath/scout/pkg/pagination"
	"github.com/seekpath/scout/pkg/query"
	"github.com/seekpath/scout/pkg/repository"
	"github.com/seekpath/scout/workflow"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const reviewColumns = `id, job_id, recommend, confidence, rationale, personas,
		  tradeoffs, actions, sources, reviewed_at, model_name, provider_name,
		  override_recommend, override_comment, override_by, override_at`

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	jobs       jobs.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a review repository implementing the System interface.
// It internally constructs the workflow runtime from the provided
// dependencies; weights and guardrails come from configuration and stay
// fixed for the lifetime of the process.
func New(
	db *sql.DB,
	agent gaconfig.AgentConfig,
	logger *slog.Logger,
	pagination pagination.Config,
	jobSys jobs.System,
	personaSys personas.System,
	weights decision.Weights,
	guardrails decision.Guardrails,
) System {
	rt := &workflow.Runtime{
		Agent:      agent,
		Personas:   personaSys,
		Weights:    weights,
		Guardrails: guardrails,
		Logger:     logger.With("workflow", "review"),
	}
	return &repo{
		db:         db,
		rt:         rt,
		jobs:       jobSys,
		logger:     logger.With("system", "reviews"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[FitReview], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Rationale")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*FitReview, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rev, err := repository.QueryOne(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rev, nil
}

func (r *repo) FindByJob(ctx context.Context, jobID uuid.UUID) (*FitReview, error) {
	q, args := query.NewBuilder(projection).BuildSingle("JobID", jobID)

	rev, err := repository.QueryOne(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rev, nil
}

// Review runs the full pipeline for a job and upserts the result. A
// re-review replaces the stored verdict and clears any human override,
// since the override applied to a recommendation that no longer exists.
func (r *repo) Review(ctx context.Context, jobID uuid.UUID) (*FitReview, error) {
	job, err := r.jobs.Find(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job %s: %w", jobID, err)
	}

	result, err := workflow.Execute(ctx, r.rt, jobID, IntakeFromJob(job))
	if err != nil {
		return nil, fmt.Errorf("review job %s: %w", jobID, err)
	}

	personasJSON, err := json.Marshal(result.Personas)
	if err != nil {
		return nil, fmt.Errorf("marshal personas: %w", err)
	}

	tradeoffsJSON, err := json.Marshal(emptyIfNil(result.Tradeoffs))
	if err != nil {
		return nil, fmt.Errorf("marshal tradeoffs: %w", err)
	}

	actionsJSON, err := json.Marshal(emptyIfNil(result.Actions))
	if err != nil {
		return nil, fmt.Errorf("marshal actions: %w", err)
	}

	sourcesJSON, err := json.Marshal(emptyIfNil(result.Sources))
	if err != nil {
		return nil, fmt.Errorf("marshal sources: %w", err)
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO fit_reviews(
			job_id, recommend, confidence, rationale, personas,
			tradeoffs, actions, sources, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (job_id) DO UPDATE SET
			recommend = EXCLUDED.recommend,
			confidence = EXCLUDED.confidence,
			rationale = EXCLUDED.rationale,
			personas = EXCLUDED.personas,
			tradeoffs = EXCLUDED.tradeoffs,
			actions = EXCLUDED.actions,
			sources = EXCLUDED.sources,
			reviewed_at = NOW(),
			model_name = EXCLUDED.model_name,
			provider_name = EXCLUDED.provider_name,
			override_recommend = NULL,
			override_comment = NULL,
			override_by = NULL,
			override_at = NULL
		RETURNING %s`, reviewColumns)

	upsertArgs := []any{
		jobID,
		result.Final.Recommend,
		string(result.Final.Confidence),
		result.Final.Rationale,
		personasJSON,
		tradeoffsJSON,
		actionsJSON,
		sourcesJSON,
		r.rt.Agent.Model.Name,
		r.rt.Agent.Provider.Name,
	}

	rev, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FitReview, error) {
		return repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanReview)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("job reviewed",
		"id", rev.ID,
		"job_id", jobID,
		"recommend", rev.Recommend,
		"confidence", rev.Confidence,
	)
	return &rev, nil
}

func (r *repo) Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*FitReview, error) {
	overrideQ := fmt.Sprintf(`
		UPDATE fit_reviews
		SET override_recommend = $1, override_comment = $2, override_by = $3, override_at = NOW()
		WHERE id = $4
		RETURNING %s`, reviewColumns)

	rev, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (FitReview, error) {
		return repository.QueryOne(ctx, tx, overrideQ,
			[]any{cmd.Recommend, cmd.Comment, cmd.By, id},
			scanReview,
		)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("review overridden",
		"id", rev.ID,
		"override_recommend", cmd.Recommend,
		"override_by", cmd.By,
	)
	return &rev, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM fit_reviews WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("review deleted", "id", id)
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
