package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UpsertOutcome classifies a storage write keyed on (site, job_url).
type UpsertOutcome string

// Upsert outcomes.
const (
	OutcomeInserted  UpsertOutcome = "inserted"
	OutcomeDuplicate UpsertOutcome = "duplicate"
)

// UpsertFunc persists one normalized row, reporting whether the identity
// key already existed. Re-submitting the same (site, job_url) with
// different field values still classifies as duplicate and must not
// overwrite the stored row.
type UpsertFunc func(ctx context.Context, job *Job) (UpsertOutcome, error)

// Permissive date_posted layouts, tried in order. RFC3339 covers offsets
// and trailing Z.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDatePosted parses a scraped date permissively. An unparseable or
// empty value yields nil; a bad date is a null field, never an error.
func ParseDatePosted(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Normalize validates a scraped record and maps it to a Job. Validation is
// job_url-first, then title, so a record failing both reports only the
// job_url failure. The full original record plus the scrape timestamp is
// embedded in SourceRaw verbatim.
func Normalize(rec ScrapedRecord, site string, now time.Time) (Job, error) {
	if strings.TrimSpace(rec.JobURL) == "" {
		return Job{}, ErrMissingJobURL
	}
	if strings.TrimSpace(rec.Title) == "" {
		return Job{}, ErrMissingTitle
	}

	raw, err := json.Marshal(struct {
		ScrapedRecord
		ScrapedAt time.Time `json:"scraped_at"`
	}{ScrapedRecord: rec, ScrapedAt: now})
	if err != nil {
		return Job{}, fmt.Errorf("serialize source record: %w", err)
	}

	return Job{
		ID:           uuid.New(),
		Site:         site,
		JobURL:       rec.JobURL,
		Title:        rec.Title,
		Company:      optional(rec.Company),
		Location:     optional(rec.Location),
		MinAmount:    rec.SalaryMin,
		MaxAmount:    rec.SalaryMax,
		SalarySource: optional(rec.SalarySource),
		Interval:     optional(rec.Interval),
		Description:  optional(rec.Description),
		IsRemote:     rec.IsRemote,
		JobType:      optional(rec.JobType),
		DatePosted:   ParseDatePosted(rec.DatePosted),
		IngestedAt:   now,
		SourceRaw:    raw,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type contentKey struct {
	title   string
	company string
}

// ClassifyAndMap runs the dedup classifier over one batch in input order.
// Invalid records are reported in Summary.Errors and never reach storage.
// Within the batch, records sharing a job_url are duplicates regardless of
// other fields and skip the storage call entirely; records sharing an exact
// (title, company) pair under different URLs are counted as content
// duplicates but still persisted, since the identity key is (site, job_url)
// alone. Cross-batch idempotency comes from the storage uniqueness check,
// not from in-memory state.
//
// Storage failures are logged and recorded per record; the batch continues.
func ClassifyAndMap(
	ctx context.Context,
	records []ScrapedRecord,
	site string,
	now time.Time,
	upsert UpsertFunc,
	logger *slog.Logger,
) ([]Job, IngestSummary) {
	summary := IngestSummary{Errors: []string{}}
	rows := make([]Job, 0, len(records))

	urlSeen := make(map[string]bool)
	contentSeen := make(map[contentKey]bool)

	for i, rec := range records {
		n := i + 1

		job, err := Normalize(rec, site, now)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("record %d: %s", n, err))
			continue
		}

		rows = append(rows, job)

		// URL duplicates take precedence over content duplicates.
		if urlSeen[job.JobURL] {
			summary.SkippedDuplicates++
			continue
		}
		urlSeen[job.JobURL] = true

		key := contentKey{title: rec.Title, company: rec.Company}
		if contentSeen[key] {
			summary.ContentDuplicates++
		} else {
			contentSeen[key] = true
		}

		outcome, err := upsert(ctx, &job)
		if err != nil {
			logger.Error("job upsert failed",
				"site", site,
				"job_url", job.JobURL,
				"error", err,
			)
			summary.Errors = append(summary.Errors, fmt.Sprintf("record %d: storage: %s", n, err))
			continue
		}

		switch outcome {
		case OutcomeInserted:
			summary.Inserted++
		case OutcomeDuplicate:
			summary.SkippedDuplicates++
		}
	}

	return rows, summary
}
