package query

import (
	"reflect"
	"testing"

	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
)

func TestNew_NormalizesTerms(t *testing.T) {
	q := New([]string{" Finance ", "finance"}, []string{"BANK", ""}, mode.Or, "  Secure Payments ", "  QuerY ", 10)

	if got := q.Industries(); !reflect.DeepEqual(got, []string{"finance"}) {
		t.Errorf("industries = %v", got)
	}
	if got := q.Keywords(); !reflect.DeepEqual(got, []string{"bank"}) {
		t.Errorf("keywords = %v", got)
	}
	if got := q.Description(); !reflect.DeepEqual(got, []string{"secure", "payments"}) {
		t.Errorf("description = %v", got)
	}
	if q.FuzzyText() != "query" {
		t.Errorf("fuzzy text = %q", q.FuzzyText())
	}
	if q.KeywordMode() != mode.Or {
		t.Errorf("mode = %s", q.KeywordMode())
	}
}

func TestNew_LimitClamping(t *testing.T) {
	// the default for an absent limit is the caller's concern; an explicit
	// zero or negative limit clamps to 1, never back to the default
	cases := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{24, 24},
		{200, 200},
		{201, MaxLimit},
		{100000, MaxLimit},
	}
	for _, c := range cases {
		q := New(nil, nil, mode.And, "", "", c.in)
		if q.Limit() != c.want {
			t.Errorf("limit %d clamped to %d, want %d", c.in, q.Limit(), c.want)
		}
	}
}

func TestNew_InvalidModeDefaultsToAnd(t *testing.T) {
	q := New(nil, nil, mode.Mode("sideways"), "", "", 0)
	if q.KeywordMode() != mode.And {
		t.Errorf("expected AND fallback, got %s", q.KeywordMode())
	}
}

func TestQuery_Predicates(t *testing.T) {
	empty := New(nil, nil, mode.And, "", "", 0)
	if empty.HasFilters() || empty.HasFuzzy() {
		t.Error("empty query should report no filters and no fuzzy text")
	}

	structured := New(nil, []string{"bank"}, mode.And, "", "", 0)
	if !structured.HasFilters() || structured.HasFuzzy() {
		t.Error("keyword query should report filters only")
	}

	fuzzy := New(nil, nil, mode.And, "", "bank", 0)
	if fuzzy.HasFilters() || !fuzzy.HasFuzzy() {
		t.Error("fuzzy query should report fuzzy text only")
	}

	// whitespace-only fuzzy text normalizes away
	blank := New(nil, nil, mode.And, "", "   ", 0)
	if blank.HasFuzzy() {
		t.Error("blank fuzzy text should not count")
	}
}
