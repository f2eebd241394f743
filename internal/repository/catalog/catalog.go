// Package catalog materializes the logo index exactly once per process and
// serves read-only snapshots of it.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/source"
)

// Catalog lazily loads the index from its source and memoizes the result.
// A failed load leaves the cache empty, so the next caller retries the
// fetch on its own request.
type Catalog struct {
	src    source.Source
	logger *zap.Logger

	loads   *prometheus.CounterVec
	records prometheus.Gauge

	mu   sync.Mutex
	snap *Snapshot
}

// New creates a catalog over the given index source.
func New(src source.Source, logger *zap.Logger) *Catalog {
	return &Catalog{src: src, logger: logger}
}

// WithMetrics attaches load counters. loads carries a "status" label
// ("ok"/"error"); records reports the loaded collection size.
func (c *Catalog) WithMetrics(loads *prometheus.CounterVec, records prometheus.Gauge) *Catalog {
	c.loads = loads
	c.records = records
	return c
}

// Snapshot returns the materialized collection, fetching it on first use.
// Concurrent callers block on the single in-flight fetch; once loaded the
// snapshot is immutable and returned without locking overhead beyond the
// guard itself.
func (c *Catalog) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil {
		return c.snap, nil
	}

	records, err := c.src.Fetch(ctx)
	if err != nil {
		c.incLoad("error")
		return nil, fmt.Errorf("load index: %w", err)
	}

	snap := NewSnapshot(records)
	c.snap = snap

	c.incLoad("ok")
	if c.records != nil {
		c.records.Set(float64(snap.Len()))
	}
	c.logger.Info("Index loaded", zap.Int("records", snap.Len()))

	return snap, nil
}

// Loaded reports whether the index has been materialized.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap != nil
}

// Ping proxies the source reachability check.
func (c *Catalog) Ping(ctx context.Context) error {
	if err := c.src.Ping(ctx); err != nil {
		return fmt.Errorf("ping source: %w", err)
	}
	return nil
}

func (c *Catalog) incLoad(status string) {
	if c.loads != nil {
		c.loads.WithLabelValues(status).Inc()
	}
}

// Snapshot is an immutable view of the loaded collection: the ordered
// record sequence plus an identity map.
type Snapshot struct {
	records []domain.Record
	byID    map[string]int
}

// NewSnapshot builds a snapshot over records as-is, in collection order.
func NewSnapshot(records []domain.Record) *Snapshot {
	byID := make(map[string]int, len(records))
	for i, r := range records {
		// duplicate ids: first occurrence wins under identity lookup
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = i
		}
	}
	return &Snapshot{records: records, byID: byID}
}

// Records returns the records in collection order. Callers must not mutate.
func (s *Snapshot) Records() []domain.Record { return s.records }

// Get looks a record up by identifier.
func (s *Snapshot) Get(id string) (domain.Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Record{}, false
	}
	return s.records[i], true
}

// Len returns the collection size.
func (s *Snapshot) Len() int { return len(s.records) }
