package logodex

import (
	"time"

	"go.uber.org/zap"
)

// Weights holds the structured scoring constants. Zero fields fall back to
// the production defaults.
type Weights struct {
	IndustryExact    float64
	IndustryPartial  float64
	KeywordExact     float64
	KeywordPartial   float64
	KeywordBonus     float64
	DescriptionHit   float64
	DescriptionBonus float64
}

type clientConfig struct {
	driver string

	url  string
	path string

	addrs    []string
	key      string
	password string

	fetchTimeout     time.Duration
	readinessTimeout time.Duration

	limit          int
	weights        *Weights
	fuzzyTolerance float64
	broadKeywords  bool

	logger *zap.Logger
}

// Option configures the embedded client.
type Option func(*clientConfig)

// WithHTTPSource reads the index from a JSON array served at url.
func WithHTTPSource(url string) Option {
	return func(c *clientConfig) {
		c.driver = "http"
		c.url = url
	}
}

// WithFileSource reads the index from a local JSON file.
func WithFileSource(path string) Option {
	return func(c *clientConfig) {
		c.driver = "file"
		c.path = path
	}
}

// WithRedisSource reads the index JSON from a Redis key.
func WithRedisSource(addrs []string, key string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
		c.key = key
	}
}

// WithRedisPassword sets the password for the redis source.
func WithRedisPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithFetchTimeout bounds the one-time index fetch of the http source.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.fetchTimeout = d }
}

// WithReadinessTimeout bounds the initial source reachability check.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.readinessTimeout = d }
}

// WithLimit sets the default result limit for searches that do not
// specify one.
func WithLimit(n int) Option {
	return func(c *clientConfig) { c.limit = n }
}

// WithWeights overrides the structured scoring constants.
func WithWeights(w Weights) Option {
	return func(c *clientConfig) { c.weights = &w }
}

// WithFuzzyTolerance overrides the fuzzy matcher tolerance in (0, 1].
func WithFuzzyTolerance(t float64) Option {
	return func(c *clientConfig) { c.fuzzyTolerance = t }
}

// WithBroadKeywords widens keyword matching to cover categories text.
func WithBroadKeywords() Option {
	return func(c *clientConfig) { c.broadKeywords = true }
}

// WithLogger attaches a zap logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
