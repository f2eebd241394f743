// Package meta derives facet enumerations (industries, keywords) from the
// catalog in a single pass.
package meta

import (
	"context"
	"fmt"
	"sort"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/term"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
)

// CatalogReader provides the materialized collection.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Facet is a distinct categorical value with its occurrence count.
type Facet struct {
	Name  string
	Count int
}

// Service aggregates facet values.
type Service struct {
	catalog CatalogReader
}

// New creates a meta service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Industries enumerates distinct industries from category plus categories.
// A record contributes each distinct industry at most once, even when the
// same value appears in both fields. Display keeps the first-seen original
// casing. byCount sorts count-descending, otherwise by name.
func (s *Service) Industries(ctx context.Context, byCount bool) ([]Facet, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("industries: %w", err)
	}

	counts := make(map[string]*Facet)
	for _, rec := range snap.Records() {
		for _, name := range recordIndustries(&rec) {
			key := term.Normalize(name)
			if f, ok := counts[key]; ok {
				f.Count++
			} else {
				counts[key] = &Facet{Name: name, Count: 1}
			}
		}
	}

	return sorted(counts, byCount), nil
}

// Keywords enumerates distinct keywords. Display uses the normalized term,
// matching the original endpoint's output.
func (s *Service) Keywords(ctx context.Context, byCount bool) ([]Facet, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("keywords: %w", err)
	}

	counts := make(map[string]*Facet)
	for _, rec := range snap.Records() {
		for _, k := range rec.Keywords {
			key := term.Normalize(k)
			if key == "" {
				continue
			}
			if f, ok := counts[key]; ok {
				f.Count++
			} else {
				counts[key] = &Facet{Name: key, Count: 1}
			}
		}
	}

	return sorted(counts, byCount), nil
}

// recordIndustries returns the record's industries deduplicated per record
// on the normalized form, preserving first-seen casing.
func recordIndustries(rec *domain.Record) []string {
	seen := make(map[string]struct{}, 1+len(rec.Categories))
	out := make([]string, 0, 1+len(rec.Categories))

	add := func(name string) {
		key := term.Normalize(name)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}

	add(rec.Category)
	for _, c := range rec.Categories {
		add(c)
	}
	return out
}

func sorted(counts map[string]*Facet, byCount bool) []Facet {
	out := make([]Facet, 0, len(counts))
	for _, f := range counts {
		out = append(out, *f)
	}
	if byCount {
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Name < out[j].Name
		})
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}
