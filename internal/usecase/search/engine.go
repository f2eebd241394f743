package search

import (
	"sort"
	"strings"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/domain/search/result"
	"github.com/brandfetch-labs/logodex/internal/domain/search/term"
)

// Engine scores records against a structured query. All matching is done on
// normalized text; record fields and query terms go through the same
// canonicalization.
type Engine struct {
	weights Weights
	// broadKeywords widens the keyword matcher text to include categories.
	broadKeywords bool
}

// NewEngine creates a scoring engine with the given weights.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// WithBroadKeywords makes the keyword matcher consider categories text too.
func (e *Engine) WithBroadKeywords(broad bool) *Engine {
	e.broadKeywords = broad
	return e
}

// match is a single criterion outcome.
type match struct {
	passed bool
	score  float64
}

// Score decides inclusion and computes the total relevance of one record.
//
// Inclusion policy: a supplied industry term is a hard filter; keywords and
// description form an OR'd relevance gate on top of it. Criteria that were
// not supplied are neutral and never satisfy the gate on their own. A query
// with no criteria at all matches nothing.
func (e *Engine) Score(rec *domain.Record, q *query.Query) (float64, bool) {
	if !q.HasFilters() {
		return 0, false
	}

	industry := e.matchIndustry(rec, q.Industries())
	if len(q.Industries()) > 0 && !industry.passed {
		return 0, false
	}

	keyword := e.matchKeywords(rec, q.Keywords(), q.KeywordMode())
	description := e.matchDescription(rec, q.Description())

	gateSupplied := len(q.Keywords()) > 0 || len(q.Description()) > 0
	gatePassed := (len(q.Keywords()) > 0 && keyword.passed) ||
		(len(q.Description()) > 0 && description.passed)

	if gateSupplied && !gatePassed {
		return 0, false
	}
	if !gateSupplied && len(q.Industries()) == 0 {
		return 0, false
	}

	total := industry.score
	if keyword.passed {
		total += keyword.score
	}
	if description.passed {
		total += description.score
	}
	return total, true
}

// Rank scores every record, keeps the included ones, orders them by
// (score desc, id asc), and truncates to the query limit.
func (e *Engine) Rank(records []domain.Record, q *query.Query) []result.Result {
	out := make([]result.Result, 0, q.Limit())
	for i := range records {
		score, ok := e.Score(&records[i], q)
		if !ok {
			continue
		}
		out = append(out, result.New(records[i], score))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score() != out[j].Score() {
			return out[i].Score() > out[j].Score()
		}
		return out[i].ID() < out[j].ID()
	})

	if len(out) > q.Limit() {
		out = out[:q.Limit()]
	}
	return out
}

// matchIndustry compares query industry terms against the record's industry
// bag (category plus categories). ANY semantics: one hit includes the record.
// Per term, the first bag hit wins; exact beats substring containment in
// either direction.
func (e *Engine) matchIndustry(rec *domain.Record, industries []string) match {
	if len(industries) == 0 {
		return match{passed: true}
	}

	bag := industryBag(rec)
	if len(bag) == 0 {
		return match{}
	}

	var m match
	for _, q := range industries {
		for _, entry := range bag {
			if entry == q {
				m.passed = true
				m.score += e.weights.IndustryExact
				break
			}
			if strings.Contains(entry, q) || strings.Contains(q, entry) {
				m.passed = true
				m.score += e.weights.IndustryPartial
				break
			}
		}
	}
	return m
}

// matchKeywords checks each query keyword against the record's combined
// keyword text: full containment first, then per-token partial overlap.
func (e *Engine) matchKeywords(rec *domain.Record, keywords []string, m mode.Mode) match {
	if len(keywords) == 0 {
		return match{passed: true}
	}

	combined := e.keywordText(rec)
	tokens := term.Tokenize(combined)

	matched := 0
	var score float64
	for _, kw := range keywords {
		switch {
		case strings.Contains(combined, kw):
			matched++
			score += e.weights.KeywordExact
		case anyTokenOverlap(tokens, kw):
			matched++
			score += e.weights.KeywordPartial
		}
	}

	passed := matched > 0
	if m == mode.And {
		passed = matched == len(keywords)
	}
	if matched > 1 {
		score += e.weights.KeywordBonus * float64(matched)
	}
	return match{passed: passed, score: score}
}

// matchDescription counts free-text tokens present anywhere in the record's
// combined text (category, categories, keywords, labels).
func (e *Engine) matchDescription(rec *domain.Record, tokens []string) match {
	if len(tokens) == 0 {
		return match{passed: true}
	}

	combined := combinedText(rec)

	hits := 0
	var score float64
	for _, tok := range tokens {
		if strings.Contains(combined, tok) {
			hits++
			score += e.weights.DescriptionHit
		}
	}
	if hits == 0 {
		return match{}
	}
	if hits > 1 {
		score += e.weights.DescriptionBonus * float64(hits)
	}
	return match{passed: true, score: score}
}

func (e *Engine) keywordText(rec *domain.Record) string {
	parts := term.NormalizeSet(rec.Keywords)
	if e.broadKeywords {
		parts = append(parts, term.NormalizeSet(rec.Categories)...)
	}
	return strings.Join(parts, " ")
}

// industryBag builds the normalized industry set of a record.
func industryBag(rec *domain.Record) []string {
	bag := make([]string, 0, 1+len(rec.Categories))
	if c := term.Normalize(rec.Category); c != "" {
		bag = append(bag, c)
	}
	return append(bag, term.NormalizeSet(rec.Categories)...)
}

// combinedText flattens all textual fields of a record into one lowercase string.
func combinedText(rec *domain.Record) string {
	parts := make([]string, 0, 1+len(rec.Categories)+len(rec.Keywords)+len(rec.Labels))
	if c := term.Normalize(rec.Category); c != "" {
		parts = append(parts, c)
	}
	parts = append(parts, term.NormalizeSet(rec.Categories)...)
	parts = append(parts, term.NormalizeSet(rec.Keywords)...)
	parts = append(parts, term.NormalizeSet(rec.Labels)...)
	return strings.Join(parts, " ")
}

// anyTokenOverlap reports a partial hit: some token contains the keyword or
// the keyword contains the token.
func anyTokenOverlap(tokens []string, kw string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, kw) || strings.Contains(kw, tok) {
			return true
		}
	}
	return false
}
