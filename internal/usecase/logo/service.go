package logo

import (
	"context"
	"fmt"
	"strings"

	"github.com/brandfetch-labs/logodex/internal/domain"
)

// Service performs identity lookups against the catalog.
type Service struct {
	catalog CatalogReader
}

// New creates a logo lookup service.
func New(catalog CatalogReader) *Service {
	return &Service{catalog: catalog}
}

// Get returns the record with the given identifier. The id is the only
// required input in the whole API; a miss is a normal outcome reported as
// domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (domain.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Record{}, fmt.Errorf("%w: logo id is required", domain.ErrInvalidInput)
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return domain.Record{}, fmt.Errorf("get logo: %w", err)
	}

	rec, ok := snap.Get(id)
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return rec, nil
}
