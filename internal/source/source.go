// Package source abstracts where the logo index JSON lives. Drivers fetch
// the whole collection in one shot; caching is the catalog's concern.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/brandfetch-labs/logodex/internal/domain"
)

// Source fetches the full logo index.
type Source interface {
	// Fetch retrieves and parses the entire index. A failed fetch or parse
	// is reported as domain.ErrSourceUnavailable; partial results are never
	// returned.
	Fetch(ctx context.Context) ([]domain.Record, error)
	// Ping checks that the backing location is reachable.
	Ping(ctx context.Context) error
	Close()
}

// WaitForReady polls Ping until the source responds or timeout expires.
func WaitForReady(ctx context.Context, s Source, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for index source: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
