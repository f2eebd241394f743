package result

import "github.com/brandfetch-labs/logodex/internal/domain"

// Result is a single scored search hit. The score is an internal ranking
// artifact and is never serialized to clients.
type Result struct {
	record domain.Record
	score  float64
}

// New creates a scored result.
func New(record domain.Record, score float64) Result {
	return Result{record: record, score: score}
}

// Record returns the matched record.
func (r *Result) Record() domain.Record { return r.record }

// ID returns the record identifier.
func (r *Result) ID() string { return r.record.ID }

// Score returns the relevance score.
func (r *Result) Score() float64 { return r.score }
