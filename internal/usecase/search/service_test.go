package search

import (
	"context"
	"errors"
	"testing"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
)

type fakeCatalog struct {
	records []domain.Record
	err     error
}

func (f *fakeCatalog) Snapshot(_ context.Context) (*catalog.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return catalog.NewSnapshot(f.records), nil
}

type recordingFuzzy struct {
	gotQuery      string
	gotCandidates []domain.Record
	out           []domain.Record
}

func (f *recordingFuzzy) Search(queryText string, candidates []domain.Record, _ int) []domain.Record {
	f.gotQuery = queryText
	f.gotCandidates = candidates
	return f.out
}

func newTestService(records []domain.Record, fz Fuzzy) *Service {
	return New(&fakeCatalog{records: records}, NewEngine(DefaultWeights()), fz)
}

func TestService_StructuredVariant(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Category: "Finance", Keywords: []string{"bank"}},
		{ID: "2", Category: "Retail"},
	}
	svc := newTestService(records, &recordingFuzzy{})

	q := query.New([]string{"finance"}, nil, mode.And, "", "", query.DefaultLimit)
	results, variant, err := svc.Search(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != VariantStructured {
		t.Errorf("expected structured variant, got %s", variant)
	}
	if len(results) != 1 || results[0].ID() != "1" {
		t.Fatalf("expected [1], got %d results", len(results))
	}
}

func TestService_FuzzyVariant(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Category: "Finance"},
		{ID: "2", Category: "Retail"},
	}
	fz := &recordingFuzzy{out: []domain.Record{records[1], records[0]}}
	svc := newTestService(records, fz)

	q := query.New(nil, nil, mode.And, "", "fintch", query.DefaultLimit)
	results, variant, err := svc.Search(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != VariantFuzzy {
		t.Errorf("expected fuzzy variant, got %s", variant)
	}
	if fz.gotQuery != "fintch" {
		t.Errorf("matcher saw query %q", fz.gotQuery)
	}
	// matcher order is preserved, not re-sorted
	if len(results) != 2 || results[0].ID() != "2" || results[1].ID() != "1" {
		t.Fatalf("expected matcher order [2 1], got %d results", len(results))
	}
}

func TestService_FuzzyIndustryPreFilter(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Category: "Finance"},
		{ID: "2", Category: "Retail"},
		{ID: "3", Categories: []string{"Finance"}},
	}
	fz := &recordingFuzzy{}
	svc := newTestService(records, fz)

	q := query.New([]string{"finance"}, nil, mode.And, "", "bank", query.DefaultLimit)
	if _, _, err := svc.Search(context.Background(), &q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// only exact industry matches reach the matcher
	if len(fz.gotCandidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(fz.gotCandidates))
	}
	if fz.gotCandidates[0].ID != "1" || fz.gotCandidates[1].ID != "3" {
		t.Errorf("expected candidates [1 3], got [%s %s]",
			fz.gotCandidates[0].ID, fz.gotCandidates[1].ID)
	}
}

func TestService_EmptyQueryReturnsNothing(t *testing.T) {
	records := []domain.Record{{ID: "1", Category: "Finance"}}
	svc := newTestService(records, &recordingFuzzy{})

	q := query.New(nil, nil, mode.And, "", "", query.DefaultLimit)
	results, variant, err := svc.Search(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if variant != VariantStructured || len(results) != 0 {
		t.Fatalf("expected empty structured result, got %d (%s)", len(results), variant)
	}
}

func TestService_SourceErrorPropagates(t *testing.T) {
	wantErr := domain.ErrSourceUnavailable
	svc := New(&fakeCatalog{err: wantErr}, NewEngine(DefaultWeights()), &recordingFuzzy{})

	q := query.New([]string{"finance"}, nil, mode.And, "", "", query.DefaultLimit)
	if _, _, err := svc.Search(context.Background(), &q); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
	if _, err := svc.Legacy(context.Background(), &q); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error from legacy path, got %v", err)
	}
}

func TestService_LegacyExactSemantics(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Category: "Finance", Keywords: []string{"bank", "secure"}},
		{ID: "2", Category: "Finance", Keywords: []string{"secure"}},
		{ID: "3", Category: "Financial Services", Keywords: []string{"bank", "secure"}},
	}
	svc := newTestService(records, &recordingFuzzy{})

	q := query.New([]string{"finance"}, []string{"bank", "secure"}, mode.And, "", "", query.DefaultLimit)
	out, err := svc.Legacy(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// exact industry only: no substring match for record 3; record 2 misses
	// the "bank" keyword
	if len(out) != 1 || out[0].ID != "1" {
		t.Fatalf("expected [1], got %d results", len(out))
	}
}

func TestService_LegacyBrowsesWithoutFilters(t *testing.T) {
	records := []domain.Record{
		{ID: "1"}, {ID: "2"}, {ID: "3"},
	}
	svc := newTestService(records, &recordingFuzzy{})

	q := query.New(nil, nil, mode.And, "", "", 2)
	out, err := svc.Legacy(context.Background(), &q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "1" || out[1].ID != "2" {
		t.Fatalf("expected collection head [1 2], got %d results", len(out))
	}
}
