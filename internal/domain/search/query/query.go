package query

import (
	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
	"github.com/brandfetch-labs/logodex/internal/domain/search/term"
)

// Result limit bounds applied to every search variant.
const (
	DefaultLimit = 24
	MaxLimit     = 200
)

// Query is a normalized, clamped search request.
// Construction is permissive: malformed input degrades to empty filters
// rather than an error, and out-of-range limits are clamped.
type Query struct {
	industries  []string
	keywords    []string
	keywordMode mode.Mode
	description []string
	fuzzyText   string
	limit       int
}

// New normalizes all terms and clamps the limit into [1, MaxLimit].
// Callers substitute DefaultLimit when the request carried no limit at
// all; an explicit zero or negative limit clamps to 1, it does not fall
// back to the default. An unrecognized keyword mode falls back to
// mode.And, the contract the original exact-match endpoint shipped with.
func New(industries, keywords []string, m mode.Mode, description, fuzzyText string, limit int) Query {
	if !m.IsValid() {
		m = mode.And
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{
		industries:  term.NormalizeSet(industries),
		keywords:    term.NormalizeSet(keywords),
		keywordMode: m,
		description: term.Tokenize(description),
		fuzzyText:   term.Normalize(fuzzyText),
		limit:       limit,
	}
}

// Industries returns the normalized industry terms.
func (q *Query) Industries() []string { return q.industries }

// Keywords returns the normalized keyword terms.
func (q *Query) Keywords() []string { return q.keywords }

// KeywordMode returns the keyword combination semantics.
func (q *Query) KeywordMode() mode.Mode { return q.keywordMode }

// Description returns the tokenized free-text description.
func (q *Query) Description() []string { return q.description }

// FuzzyText returns the normalized free-text fuzzy query.
func (q *Query) FuzzyText() string { return q.fuzzyText }

// Limit returns the clamped result limit.
func (q *Query) Limit() int { return q.limit }

// HasFilters reports whether any structured criterion was supplied.
func (q *Query) HasFilters() bool {
	return len(q.industries) > 0 || len(q.keywords) > 0 || len(q.description) > 0
}

// HasFuzzy reports whether a free-text fuzzy query was supplied.
func (q *Query) HasFuzzy() bool { return q.fuzzyText != "" }
