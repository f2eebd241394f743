package search

import (
	"context"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
)

// CatalogReader provides the materialized collection.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// Fuzzy is the approximate-text matcher contract. Implementations return
// candidates in their own ranked order; the engine does not re-score them.
type Fuzzy interface {
	Search(queryText string, candidates []domain.Record, limit int) []domain.Record
}
