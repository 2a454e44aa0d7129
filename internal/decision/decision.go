// Package decision implements the deterministic core of the job review
// pipeline: pre-filter guardrails that can reject a posting outright, and
// aggregation of independent persona verdicts into a final recommendation.
// The package performs no I/O; configuration is passed in as immutable
// values and consulted for the duration of a single run.
package decision

import "encoding/json"

// Confidence represents a categorical assessment of recommendation certainty.
type Confidence string

// Confidence levels for final recommendations.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Intake carries the job facts consumed by the pre-filter and surfaced to
// persona evaluators. Salary is kept as free text and parsed permissively;
// an empty or unparseable salary never trips the compensation guardrail.
type Intake struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Salary      string `json:"salary,omitempty"`
	Location    string `json:"location,omitempty"`
	Seniority   string `json:"seniority,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// GuardrailVerdict is the outcome of the pre-filter stage. When Recommend
// is false, Reason carries the failing rule and drives the final decision
// alone; all downstream stages are skipped.
type GuardrailVerdict struct {
	Recommend bool   `json:"recommend"`
	Reason    string `json:"reason,omitempty"`
}

// PersonaVerdict is one evaluator's judgment of a job posting.
type PersonaVerdict struct {
	ID        string   `json:"id"`
	Recommend bool     `json:"recommend"`
	Reason    string   `json:"reason"`
	Notes     []string `json:"notes,omitempty"`
	Sources   []string `json:"sources,omitempty"`
}

// FinalRecommendation is the synthesized outcome of a review run.
type FinalRecommendation struct {
	Recommend  bool       `json:"recommend"`
	Rationale  string     `json:"rationale"`
	Confidence Confidence `json:"confidence"`
}

// Outcome bundles the final recommendation with its supporting detail.
type Outcome struct {
	Final     FinalRecommendation `json:"final"`
	Tradeoffs []string            `json:"tradeoffs,omitempty"`
	Actions   []string            `json:"actions,omitempty"`
	Sources   []string            `json:"sources,omitempty"`
}

// Weights maps persona identifiers to voting weights. A table is usable
// when every voting persona has an entry and the entries sum to ~1.0;
// otherwise aggregation falls back to equal weighting.
type Weights map[string]float64

// Guardrails holds the hard rules consulted by PreFilter and the blocking
// behavior consulted by Aggregate. Zero values disable the corresponding rule.
type Guardrails struct {
	MinSalary       float64
	MinSeniority    string
	RedFlags        []string
	BlockOnRedFlags bool
	TieBreakReject  bool
}

// StageResult distinguishes a pipeline stage that never ran from one that
// ran and produced a value. A skipped stage serializes as JSON null so
// "not run" is distinguishable from "ran, nothing found".
type StageResult[T any] struct {
	value T
	ran   bool
}

// Ran wraps a stage value as a completed result.
func Ran[T any](v T) StageResult[T] {
	return StageResult[T]{value: v, ran: true}
}

// NotRun returns a stage result marking the stage as skipped.
func NotRun[T any]() StageResult[T] {
	return StageResult[T]{}
}

// Value returns the stage value and whether the stage ran.
func (r StageResult[T]) Value() (T, bool) {
	return r.value, r.ran
}

// MarshalJSON emits null for a skipped stage and the value otherwise.
func (r StageResult[T]) MarshalJSON() ([]byte, error) {
	if !r.ran {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON treats null as a skipped stage.
func (r *StageResult[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = StageResult[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = StageResult[T]{value: v, ran: true}
	return nil
}
