package redissrc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/source"
)

// Compile-time check: Source implements source.Source.
var _ source.Source = (*Source)(nil)

// Config holds connection parameters for a Redis index source.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// Key is the Redis key holding the index JSON array.
	Key string
}

// Source reads the index JSON array from a single Redis key via rueidis.
// Deployments that push index.json into Redis on publish use this driver
// to avoid an extra HTTP hop at cold start.
type Source struct {
	client rueidis.Client
	key    string
}

// New creates a Redis index source.
func New(cfg Config) (*Source, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("key is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Source{client: client, key: cfg.Key}, nil
}

// Fetch GETs the index key and parses it. A missing key counts as
// unavailable: the catalog must never observe a partial collection.
func (s *Source) Fetch(ctx context.Context) ([]domain.Record, error) {
	cmd := s.client.B().Get().Key(s.key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, fmt.Errorf("%w: key %s not found", domain.ErrSourceUnavailable, s.key)
		}
		return nil, fmt.Errorf("%w: get %s: %w", domain.ErrSourceUnavailable, s.key, err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrSourceUnavailable, s.key, err)
	}
	return records, nil
}

// Ping checks connectivity.
func (s *Source) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Source) Close() {
	s.client.Close()
}
