package filesrc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/source"
)

// Compile-time check: Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Source reads the index JSON array from a local file. Meant for local
// development and tests; production deployments use the http or redis driver.
type Source struct {
	path string
}

// New creates a file index source.
func New(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &Source{path: filepath.Clean(path)}, nil
}

// Fetch reads and parses the index file.
func (s *Source) Fetch(_ context.Context) ([]domain.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnavailable, s.path, err)
	}
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrSourceUnavailable, s.path, err)
	}
	return records, nil
}

// Ping checks that the index file exists.
func (s *Source) Ping(_ context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *Source) Close() {}
