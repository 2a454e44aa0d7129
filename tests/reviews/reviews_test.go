package reviews_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/seekpath/scout/internal/decision"
	"github.com/seekpath/scout/internal/jobs"
	"github.com/seekpath/scout/internal/reviews"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }

func TestIntakeFromJob(t *testing.T) {
	job := &jobs.Job{
		Title:       "Staff Engineer",
		Company:     strPtr("Acme"),
		Location:    strPtr("Denver, CO"),
		MinAmount:   numPtr(140000),
		MaxAmount:   numPtr(170000),
		Interval:    strPtr("yearly"),
		JobType:     strPtr("fulltime"),
		Description: strPtr("Own the platform."),
	}

	intake := reviews.IntakeFromJob(job)

	if intake.Title != "Staff Engineer" {
		t.Errorf("title: got %s", intake.Title)
	}
	if intake.Company != "Acme" {
		t.Errorf("company: got %s", intake.Company)
	}
	if intake.Salary != "140000-170000 yearly" {
		t.Errorf("salary: got %q", intake.Salary)
	}
	if intake.JobType != "fulltime" {
		t.Errorf("job_type: got %s", intake.JobType)
	}
	if intake.Description != "Own the platform." {
		t.Errorf("description: got %s", intake.Description)
	}
}

func TestIntakeFromJobSalaryVariants(t *testing.T) {
	tests := []struct {
		name string
		job  jobs.Job
		want string
	}{
		{
			name: "range with interval",
			job:  jobs.Job{MinAmount: numPtr(90000), MaxAmount: numPtr(110000), Interval: strPtr("yearly")},
			want: "90000-110000 yearly",
		},
		{
			name: "range without interval",
			job:  jobs.Job{MinAmount: numPtr(90000), MaxAmount: numPtr(110000)},
			want: "90000-110000",
		},
		{
			name: "min only",
			job:  jobs.Job{MinAmount: numPtr(90000)},
			want: "90000",
		},
		{
			name: "max only",
			job:  jobs.Job{MaxAmount: numPtr(110000), Interval: strPtr("yearly")},
			want: "110000 yearly",
		},
		{
			name: "no salary",
			job:  jobs.Job{Interval: strPtr("yearly")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intake := reviews.IntakeFromJob(&tt.job)
			if intake.Salary != tt.want {
				t.Errorf("salary: got %q, want %q", intake.Salary, tt.want)
			}
		})
	}
}

func TestIntakeSalaryParsesBackThroughPreFilter(t *testing.T) {
	// The rendered salary string must survive a round trip through the
	// pre-filter's permissive parser.
	job := &jobs.Job{
		Title:     "Engineer",
		MinAmount: numPtr(90000),
		MaxAmount: numPtr(110000),
		Interval:  strPtr("yearly"),
	}

	intake := reviews.IntakeFromJob(job)
	got, ok := decision.ParseSalary(intake.Salary)
	if !ok {
		t.Fatalf("ParseSalary(%q) failed", intake.Salary)
	}
	if got != 110000 {
		t.Errorf("parsed salary: got %v, want 110000 (range max)", got)
	}
}

func TestIntakeFromJobNilFields(t *testing.T) {
	intake := reviews.IntakeFromJob(&jobs.Job{Title: "Engineer"})

	if intake.Company != "" || intake.Location != "" || intake.Description != "" {
		t.Error("nil optional fields should map to empty strings")
	}
	if intake.Salary != "" {
		t.Errorf("salary: got %q, want empty", intake.Salary)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", reviews.ErrNotFound, http.StatusNotFound},
		{"job not found", reviews.ErrJobNotFound, http.StatusNotFound},
		{"duplicate", reviews.ErrDuplicate, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reviews.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
