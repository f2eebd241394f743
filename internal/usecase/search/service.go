package search

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/domain/search/result"
	"github.com/brandfetch-labs/logodex/internal/domain/search/term"
)

// Variant names the search path that produced a result set. The transport
// keys its response contract on it: the structured path returns id+asset
// projections, the fuzzy and legacy paths return full records.
type Variant string

// Search variants.
const (
	VariantStructured Variant = "structured"
	VariantFuzzy      Variant = "fuzzy"
	VariantLegacy     Variant = "legacy"
)

// Service routes a query to the structured scoring engine or the fuzzy
// fallback matcher over the cached catalog.
type Service struct {
	catalog  CatalogReader
	engine   *Engine
	fuzzy    Fuzzy
	searches *prometheus.CounterVec
}

// New creates a search service.
func New(catalog CatalogReader, engine *Engine, fz Fuzzy) *Service {
	return &Service{catalog: catalog, engine: engine, fuzzy: fz}
}

// WithMetrics attaches the per-variant search counter.
func (s *Service) WithMetrics(searches *prometheus.CounterVec) *Service {
	s.searches = searches
	return s
}

// Search runs the fuzzy path when a free-text query is present, otherwise
// the structured scoring path. A query with no criteria at all yields an
// empty list: this endpoint deliberately never enumerates the collection.
func (s *Service) Search(ctx context.Context, q *query.Query) ([]result.Result, Variant, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("search: %w", err)
	}

	if q.HasFuzzy() {
		candidates := snap.Records()
		if len(q.Industries()) > 0 {
			candidates = filterExactIndustry(candidates, q.Industries())
		}
		recs := s.fuzzy.Search(q.FuzzyText(), candidates, q.Limit())
		out := make([]result.Result, len(recs))
		for i, rec := range recs {
			out[i] = result.New(rec, 0)
		}
		s.inc(VariantFuzzy)
		return out, VariantFuzzy, nil
	}

	out := s.engine.Rank(snap.Records(), q)
	s.inc(VariantStructured)
	return out, VariantStructured, nil
}

// Legacy preserves the original exact-match contract: industries ANY,
// keywords AND, both exact on normalized terms, scanned in collection
// order and capped at the limit. With no filters it browses the head of
// the collection.
func (s *Service) Legacy(ctx context.Context, q *query.Query) ([]domain.Record, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("legacy search: %w", err)
	}

	out := make([]domain.Record, 0, q.Limit())
	for _, rec := range snap.Records() {
		if len(q.Industries()) > 0 && !hasAnyExactIndustry(&rec, q.Industries()) {
			continue
		}
		if len(q.Keywords()) > 0 && !hasAllKeywords(&rec, q.Keywords()) {
			continue
		}
		out = append(out, rec)
		if len(out) >= q.Limit() {
			break
		}
	}

	s.inc(VariantLegacy)
	return out, nil
}

func (s *Service) inc(v Variant) {
	if s.searches != nil {
		s.searches.WithLabelValues(string(v)).Inc()
	}
}

// filterExactIndustry keeps records whose industry bag contains any query
// term exactly. Used as the pre-filter of the fuzzy path.
func filterExactIndustry(records []domain.Record, industries []string) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if hasAnyExactIndustry(&records[i], industries) {
			out = append(out, records[i])
		}
	}
	return out
}

func hasAnyExactIndustry(rec *domain.Record, industries []string) bool {
	bag := industryBag(rec)
	for _, q := range industries {
		for _, entry := range bag {
			if entry == q {
				return true
			}
		}
	}
	return false
}

func hasAllKeywords(rec *domain.Record, keywords []string) bool {
	have := make(map[string]struct{}, len(rec.Keywords))
	for _, k := range term.NormalizeSet(rec.Keywords) {
		have[k] = struct{}{}
	}
	for _, k := range keywords {
		if _, ok := have[k]; !ok {
			return false
		}
	}
	return true
}
