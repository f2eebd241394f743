package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/domain/search/term"
)

// FuzzyConfig tunes the approximate matcher.
type FuzzyConfig struct {
	// Tolerance is the maximum normalized edit distance accepted per field,
	// in [0, 1]. A looser match policy means a higher tolerance.
	Tolerance float64
	// Per-field weights; keywords carry the strongest signal.
	KeywordsWeight   float64
	CategoryWeight   float64
	CategoriesWeight float64
}

// DefaultFuzzyConfig returns the production fuzzy matcher settings.
func DefaultFuzzyConfig() FuzzyConfig {
	return FuzzyConfig{
		Tolerance:        0.6,
		KeywordsWeight:   1.0,
		CategoryWeight:   0.7,
		CategoriesWeight: 0.4,
	}
}

// Compile-time check: WeightedFuzzy implements Fuzzy.
var _ Fuzzy = (*WeightedFuzzy)(nil)

// WeightedFuzzy ranks records by approximate similarity of the query to
// their keyword and category fields. Matching is subsequence-based and
// position-independent; the edit distance between query and field value is
// normalized into a similarity and weighted per field.
type WeightedFuzzy struct {
	cfg FuzzyConfig
}

// NewWeightedFuzzy creates a fuzzy matcher.
func NewWeightedFuzzy(cfg FuzzyConfig) *WeightedFuzzy {
	if cfg.Tolerance <= 0 || cfg.Tolerance > 1 {
		cfg.Tolerance = DefaultFuzzyConfig().Tolerance
	}
	return &WeightedFuzzy{cfg: cfg}
}

// Search returns up to limit candidates in the matcher's own ranked order.
// An empty query degrades to a browse: the head of the candidate sequence
// in collection order, not a random or score-based pick.
func (f *WeightedFuzzy) Search(queryText string, candidates []domain.Record, limit int) []domain.Record {
	if limit <= 0 {
		limit = query.DefaultLimit
	}

	q := term.Normalize(queryText)
	if q == "" {
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		return candidates
	}

	type hit struct {
		idx   int
		score float64
	}
	hits := make([]hit, 0, limit)

	for i := range candidates {
		rec := &candidates[i]
		score := f.cfg.KeywordsWeight * f.bestSimilarity(q, rec.Keywords)
		score += f.cfg.CategoryWeight * f.similarity(q, rec.Category)
		score += f.cfg.CategoriesWeight * f.bestSimilarity(q, rec.Categories)
		if score > 0 {
			hits = append(hits, hit{idx: i, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]domain.Record, len(hits))
	for i, h := range hits {
		out[i] = candidates[h.idx]
	}
	return out
}

// bestSimilarity returns the strongest similarity of q across field values.
func (f *WeightedFuzzy) bestSimilarity(q string, values []string) float64 {
	var best float64
	for _, v := range values {
		if s := f.similarity(q, v); s > best {
			best = s
		}
	}
	return best
}

// similarity converts the edit distance between q and one field value into
// a score in (0, 1], or 0 when the match falls outside the tolerance.
func (f *WeightedFuzzy) similarity(q, value string) float64 {
	v := term.Normalize(value)
	if v == "" {
		return 0
	}

	d := fuzzy.RankMatchNormalizedFold(q, v)
	if d < 0 {
		return 0
	}

	n := len(q)
	if len(v) > n {
		n = len(v)
	}
	if n == 0 {
		return 0
	}

	nd := float64(d) / float64(n)
	if nd > f.cfg.Tolerance {
		return 0
	}
	return 1 - nd
}
