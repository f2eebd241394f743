package search

import (
	"testing"

	"github.com/brandfetch-labs/logodex/internal/domain"
)

func TestWeightedFuzzy_ExactKeywordFirst(t *testing.T) {
	f := NewWeightedFuzzy(DefaultFuzzyConfig())
	candidates := []domain.Record{
		{ID: "1", Category: "Banking"},
		{ID: "2", Keywords: []string{"bank"}},
		{ID: "3", Category: "Retail"},
	}

	out := f.Search("bank", candidates, 10)
	if len(out) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(out))
	}
	// identical similarity, but keywords weigh 1.0 vs category 0.7
	if out[0].ID != "2" {
		t.Errorf("expected keyword match first, got %s", out[0].ID)
	}
}

func TestWeightedFuzzy_ToleratesTypos(t *testing.T) {
	f := NewWeightedFuzzy(DefaultFuzzyConfig())
	candidates := []domain.Record{
		{ID: "1", Keywords: []string{"insurance"}},
	}

	out := f.Search("insurnce", candidates, 10)
	if len(out) != 1 {
		t.Fatalf("expected typo to match, got %d results", len(out))
	}
}

func TestWeightedFuzzy_RejectsOutsideTolerance(t *testing.T) {
	f := NewWeightedFuzzy(FuzzyConfig{
		Tolerance:        0.1,
		KeywordsWeight:   1.0,
		CategoryWeight:   0.7,
		CategoriesWeight: 0.4,
	})
	candidates := []domain.Record{
		{ID: "1", Keywords: []string{"bankruptcy proceedings"}},
	}

	// subsequence matches, but the normalized distance is far above 0.1
	out := f.Search("bank", candidates, 10)
	if len(out) != 0 {
		t.Fatalf("expected 0 results under a tight tolerance, got %d", len(out))
	}
}

func TestWeightedFuzzy_NoMatch(t *testing.T) {
	f := NewWeightedFuzzy(DefaultFuzzyConfig())
	candidates := []domain.Record{
		{ID: "1", Category: "Finance", Keywords: []string{"bank"}},
	}

	out := f.Search("xyzzy", candidates, 10)
	if len(out) != 0 {
		t.Fatalf("expected 0 results, got %d", len(out))
	}
}

func TestWeightedFuzzy_EmptyQueryBrowses(t *testing.T) {
	f := NewWeightedFuzzy(DefaultFuzzyConfig())
	candidates := []domain.Record{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}

	out := f.Search("   ", candidates, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	// collection order, not ranked
	if out[0].ID != "1" || out[1].ID != "2" {
		t.Errorf("expected head of collection [1 2], got [%s %s]", out[0].ID, out[1].ID)
	}
}

func TestWeightedFuzzy_LimitApplied(t *testing.T) {
	f := NewWeightedFuzzy(DefaultFuzzyConfig())
	candidates := []domain.Record{
		{ID: "1", Keywords: []string{"bank"}},
		{ID: "2", Keywords: []string{"bank"}},
		{ID: "3", Keywords: []string{"bank"}},
	}

	out := f.Search("bank", candidates, 2)
	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
}

func TestNewWeightedFuzzy_InvalidToleranceFallsBack(t *testing.T) {
	f := NewWeightedFuzzy(FuzzyConfig{Tolerance: 4.2, KeywordsWeight: 1})
	if f.cfg.Tolerance != DefaultFuzzyConfig().Tolerance {
		t.Errorf("expected default tolerance, got %f", f.cfg.Tolerance)
	}
}
