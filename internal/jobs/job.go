// Package jobs implements the job posting domain for Scout. It converts
// raw scraped records into normalized rows, classifies each record as an
// insert or duplicate against the (site, job_url) identity key, and
// provides data access and HTTP handlers for stored postings.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScrapedRecord is a raw job posting as delivered by a scraping source.
// Records are consumed exactly once by the classifier and never mutated;
// classification produces a new normalized Job.
type ScrapedRecord struct {
	Title        string   `json:"title"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	JobType      string   `json:"job_type,omitempty"`
	DatePosted   string   `json:"date_posted,omitempty"`
	SalaryMin    *float64 `json:"salary_min,omitempty"`
	SalaryMax    *float64 `json:"salary_max,omitempty"`
	SalarySource string   `json:"salary_source,omitempty"`
	Interval     string   `json:"interval,omitempty"`
	Description  string   `json:"description,omitempty"`
	JobURL       string   `json:"job_url"`
	JobURLDirect string   `json:"job_url_direct,omitempty"`
	Site         string   `json:"site,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	IsRemote     *bool    `json:"is_remote,omitempty"`
}

// Job is a normalized, persisted posting. (Site, JobURL) is the logical
// uniqueness key for "same posting, same source". SourceRaw preserves the
// complete original record plus the scrape timestamp so no information is
// lost even for fields the normalized schema does not use.
//
// The fields from CompanyURL down are forward-compatible: present in the
// schema for future cross-source dedup work, always null in this version.
type Job struct {
	ID           uuid.UUID       `json:"id"`
	Site         string          `json:"site"`
	JobURL       string          `json:"job_url"`
	Title        string          `json:"title"`
	Company      *string         `json:"company"`
	Location     *string         `json:"location"`
	MinAmount    *float64        `json:"min_amount"`
	MaxAmount    *float64        `json:"max_amount"`
	SalarySource *string         `json:"salary_source"`
	Interval     *string         `json:"interval"`
	Description  *string         `json:"description"`
	IsRemote     *bool           `json:"is_remote"`
	JobType      *string         `json:"job_type"`
	DatePosted   *time.Time      `json:"date_posted"`
	IngestedAt   time.Time       `json:"ingested_at"`
	SourceRaw    json.RawMessage `json:"source_raw,omitempty"`

	CompanyURL       *string    `json:"company_url"`
	LocationCountry  *string    `json:"location_country"`
	LocationState    *string    `json:"location_state"`
	LocationCity     *string    `json:"location_city"`
	Compensation     *float64   `json:"compensation"`
	Currency         *string    `json:"currency"`
	CanonicalKey     *string    `json:"canonical_key"`
	Fingerprint      *string    `json:"fingerprint"`
	DuplicateGroupID *uuid.UUID `json:"duplicate_group_id"`
}

// IngestCommand carries one scrape batch for classification and persistence.
// Site identifies the scraping source and forms half of the identity key.
type IngestCommand struct {
	Site    string          `json:"site"`
	Records []ScrapedRecord `json:"records"`
}

// IngestSummary reports the outcome of one ingested batch. Errors holds one
// human-readable string per invalid or failed record, in input order, using
// 1-based record numbering. Inserted + SkippedDuplicates + len(Errors)
// always equals the number of records in the batch.
type IngestSummary struct {
	Inserted          int      `json:"inserted"`
	SkippedDuplicates int      `json:"skipped_duplicates"`
	ContentDuplicates int      `json:"content_duplicates"`
	Errors            []string `json:"errors"`
}

// IngestResult bundles the attempted rows with the batch summary.
type IngestResult struct {
	Site    string        `json:"site"`
	Jobs    []Job         `json:"jobs"`
	Summary IngestSummary `json:"summary"`
}
