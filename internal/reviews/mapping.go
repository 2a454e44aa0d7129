package reviews

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/pkg/query"
	"github.com/seekpath/scout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "fit_reviews", "r").
	Project("id", "ID").
	Project("job_id", "JobID").
	Project("recommend", "Recommend").
	Project("confidence", "Confidence").
	Project("rationale", "Rationale").
	Project("personas", "Personas").
	Project("tradeoffs", "Tradeoffs").
	Project("actions", "Actions").
	Project("sources", "Sources").
	Project("reviewed_at", "ReviewedAt").
	Project("model_name", "ModelName").
	Project("provider_name", "ProviderName").
	Project("override_recommend", "OverrideRecommend").
	Project("override_comment", "OverrideComment").
	Project("override_by", "OverrideBy").
	Project("override_at", "OverrideAt")

var defaultSort = query.SortField{
	Field:      "ReviewedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for review queries.
// Nil fields are ignored. All fields use exact matching. Overridden
// filters on the presence of a human override.
type Filters struct {
	JobID      *uuid.UUID           `json:"job_id,omitempty"`
	Recommend  *bool                `json:"recommend,omitempty"`
	Confidence *decision.Confidence `json:"confidence,omitempty"`
	Overridden *bool                `json:"overridden,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("JobID", f.JobID).
		WhereEquals("Recommend", f.Recommend).
		WhereEquals("Confidence", f.Confidence)

	if f.Overridden != nil {
		if *f.Overridden {
			b.WhereRaw("r.override_recommend IS NOT NULL")
		} else {
			b.WhereRaw("r.override_recommend IS NULL")
		}
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if j := values.Get("job_id"); j != "" {
		if id, err := uuid.Parse(j); err == nil {
			f.JobID = &id
		}
	}

	if r := values.Get("recommend"); r != "" {
		if v, err := strconv.ParseBool(r); err == nil {
			f.Recommend = &v
		}
	}

	if c := values.Get("confidence"); c != "" {
		conf := decision.Confidence(c)
		f.Confidence = &conf
	}

	if o := values.Get("overridden"); o != "" {
		if v, err := strconv.ParseBool(o); err == nil {
			f.Overridden = &v
		}
	}

	return f
}

func scanReview(s repository.Scanner) (FitReview, error) {
	var (
		r            FitReview
		personasRaw  []byte
		tradeoffsRaw []byte
		actionsRaw   []byte
		sourcesRaw   []byte
	)

	err := s.Scan(
		&r.ID,
		&r.JobID,
		&r.Recommend,
		&r.Confidence,
		&r.Rationale,
		&personasRaw,
		&tradeoffsRaw,
		&actionsRaw,
		&sourcesRaw,
		&r.ReviewedAt,
		&r.ModelName,
		&r.ProviderName,
		&r.OverrideRecommend,
		&r.OverrideComment,
		&r.OverrideBy,
		&r.OverrideAt,
	)
	if err != nil {
		return r, err
	}

	if err := json.Unmarshal(personasRaw, &r.Personas); err != nil {
		return r, fmt.Errorf("unmarshal personas: %w", err)
	}

	for _, field := range []struct {
		raw  []byte
		dest *[]string
	}{
		{tradeoffsRaw, &r.Tradeoffs},
		{actionsRaw, &r.Actions},
		{sourcesRaw, &r.Sources},
	} {
		if len(field.raw) == 0 {
			*field.dest = []string{}
			continue
		}
		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			return r, fmt.Errorf("unmarshal review detail: %w", err)
		}
	}

	return r, nil
}
