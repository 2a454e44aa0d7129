// Package reviews implements the fit review domain for Scout. It provides
// types, data access, and business logic for running the review workflow
// against stored jobs and persisting the resulting recommendations.
package reviews

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/jobs"
)

// FitReview represents a stored review result for a job. The AI verdict
// fields are never edited in place; a human disagreement is recorded in
// the override fields alongside the original recommendation. Personas is
// null when the pre-filter rejected the posting before evaluation ran.
type FitReview struct {
	ID           uuid.UUID                                       `json:"id"`
	JobID        uuid.UUID                                       `json:"job_id"`
	Recommend    bool                                            `json:"recommend"`
	Confidence   decision.Confidence                             `json:"confidence"`
	Rationale    string                                          `json:"rationale"`
	Personas     decision.StageResult[[]decision.PersonaVerdict] `json:"personas"`
	Tradeoffs    []string                                        `json:"tradeoffs"`
	Actions      []string                                        `json:"actions"`
	Sources      []string                                        `json:"sources"`
	ReviewedAt   time.Time                                       `json:"reviewed_at"`
	ModelName    string                                          `json:"model_name"`
	ProviderName string                                          `json:"provider_name"`

	OverrideRecommend *bool      `json:"override_recommend"`
	OverrideComment   *string    `json:"override_comment"`
	OverrideBy        *string    `json:"override_by"`
	OverrideAt        *time.Time `json:"override_at"`
}

// OverrideCommand carries the data needed to record a human override.
// By identifies the human who disagreed with the AI recommendation.
type OverrideCommand struct {
	Recommend bool    `json:"recommend"`
	Comment   *string `json:"comment"`
	By        string  `json:"by"`
}

// IntakeFromJob projects a stored job into the intake shape consumed by
// the review pipeline. Salary is rendered as free text so the pre-filter
// can parse it the same way it parses scraped postings.
func IntakeFromJob(j *jobs.Job) decision.Intake {
	intake := decision.Intake{
		Title:   j.Title,
		Salary:  formatSalary(j),
		JobType: deref(j.JobType),
	}

	if j.Company != nil {
		intake.Company = *j.Company
	}
	if j.Location != nil {
		intake.Location = *j.Location
	}
	if j.Description != nil {
		intake.Description = *j.Description
	}

	return intake
}

func formatSalary(j *jobs.Job) string {
	var parts []string

	switch {
	case j.MinAmount != nil && j.MaxAmount != nil:
		parts = append(parts, fmt.Sprintf("%.0f-%.0f", *j.MinAmount, *j.MaxAmount))
	case j.MinAmount != nil:
		parts = append(parts, fmt.Sprintf("%.0f", *j.MinAmount))
	case j.MaxAmount != nil:
		parts = append(parts, fmt.Sprintf("%.0f", *j.MaxAmount))
	default:
		return ""
	}

	if j.Interval != nil && *j.Interval != "" {
		parts = append(parts, *j.Interval)
	}

	return strings.Join(parts, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
