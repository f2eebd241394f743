package httpsrc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/source"
)

// Compile-time check: Source implements source.Source.
var _ source.Source = (*Source)(nil)

const defaultTimeout = 10 * time.Second

// Config holds parameters for an HTTP index source.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Source fetches the index JSON array over HTTP.
type Source struct {
	url    string
	client *http.Client
}

// New creates an HTTP index source.
func New(cfg Config) (*Source, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Source{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Fetch downloads and parses the index. Non-2xx responses and parse
// failures both surface as domain.ErrSourceUnavailable.
func (s *Source) Fetch(ctx context.Context) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrSourceUnavailable, s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: get %s: status %d", domain.ErrSourceUnavailable, s.url, resp.StatusCode)
	}

	var records []domain.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: parse index: %w", domain.ErrSourceUnavailable, err)
	}
	return records, nil
}

// Ping issues a HEAD request against the index location.
func (s *Source) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("head %s: %w", s.url, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("head %s: status %d", s.url, resp.StatusCode)
	}
	return nil
}

// Close is a no-op; the HTTP client holds no persistent resources.
func (s *Source) Close() {}
