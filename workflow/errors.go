package workflow

import "errors"

// Workflow stage errors.
var (
	ErrPreFilterFailed = errors.New("pre-filter stage failed")
	ErrEvaluateFailed  = errors.New("evaluate stage failed")
	ErrFinalizeFailed  = errors.New("finalize stage failed")
)
