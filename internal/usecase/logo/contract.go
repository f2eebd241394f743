package logo

import (
	"context"

	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
)

// CatalogReader provides the materialized collection.
type CatalogReader interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}
