package jobs

import (
	"net/url"
	"strconv"

	"github.com/seekpath/scout/pkg/query"
	"github.com/seekpath/scout/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "jobs", "j").
	Project("id", "ID").
	Project("site", "Site").
	Project("job_url", "JobURL").
	Project("title", "Title").
	Project("company", "Company").
	Project("location", "Location").
	Project("min_amount", "MinAmount").
	Project("max_amount", "MaxAmount").
	Project("salary_source", "SalarySource").
	Project("interval", "Interval").
	Project("description", "Description").
	Project("is_remote", "IsRemote").
	Project("job_type", "JobType").
	Project("date_posted", "DatePosted").
	Project("ingested_at", "IngestedAt").
	Project("source_raw", "SourceRaw").
	Project("company_url", "CompanyURL").
	Project("location_country", "LocationCountry").
	Project("location_state", "LocationState").
	Project("location_city", "LocationCity").
	Project("compensation", "Compensation").
	Project("currency", "Currency").
	Project("canonical_key", "CanonicalKey").
	Project("fingerprint", "Fingerprint").
	Project("duplicate_group_id", "DuplicateGroupID")

var defaultSort = query.SortField{
	Field:      "IngestedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for job queries.
// Nil fields are ignored. Site, JobType, and IsRemote use exact matching;
// Title and Company use case-insensitive contains matching.
type Filters struct {
	Site     *string `json:"site,omitempty"`
	Title    *string `json:"title,omitempty"`
	Company  *string `json:"company,omitempty"`
	JobType  *string `json:"job_type,omitempty"`
	IsRemote *bool   `json:"is_remote,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Site", f.Site).
		WhereContains("Title", f.Title).
		WhereContains("Company", f.Company).
		WhereEquals("JobType", f.JobType).
		WhereEquals("IsRemote", f.IsRemote)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("site"); s != "" {
		f.Site = &s
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if c := values.Get("company"); c != "" {
		f.Company = &c
	}

	if jt := values.Get("job_type"); jt != "" {
		f.JobType = &jt
	}

	if r := values.Get("is_remote"); r != "" {
		if v, err := strconv.ParseBool(r); err == nil {
			f.IsRemote = &v
		}
	}

	return f
}

func scanJob(s repository.Scanner) (Job, error) {
	var j Job
	err := s.Scan(
		&j.ID,
		&j.Site,
		&j.JobURL,
		&j.Title,
		&j.Company,
		&j.Location,
		&j.MinAmount,
		&j.MaxAmount,
		&j.SalarySource,
		&j.Interval,
		&j.Description,
		&j.IsRemote,
		&j.JobType,
		&j.DatePosted,
		&j.IngestedAt,
		&j.SourceRaw,
		&j.CompanyURL,
		&j.LocationCountry,
		&j.LocationState,
		&j.LocationCity,
		&j.Compensation,
		&j.Currency,
		&j.CanonicalKey,
		&j.Fingerprint,
		&j.DuplicateGroupID,
	)
	return j, err
}
