// Package logodex embeds the logo index lookup and search engine behind a
// small client, for callers that want the scoring pipeline without running
// the HTTP service.
package logodex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
	"github.com/brandfetch-labs/logodex/internal/source"
	"github.com/brandfetch-labs/logodex/internal/source/filesrc"
	"github.com/brandfetch-labs/logodex/internal/source/httpsrc"
	"github.com/brandfetch-labs/logodex/internal/source/redissrc"
	logouc "github.com/brandfetch-labs/logodex/internal/usecase/logo"
	metauc "github.com/brandfetch-labs/logodex/internal/usecase/meta"
	searchuc "github.com/brandfetch-labs/logodex/internal/usecase/search"
)

// Sentinel errors returned by the client, usable with errors.Is.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrInvalidInput      = domain.ErrInvalidInput
	ErrSourceUnavailable = domain.ErrSourceUnavailable
)

// Logo is a single index record.
type Logo struct {
	ID         string
	Category   string
	Categories []string
	Keywords   []string
	Labels     []string
	Asset      string
}

// SearchParams describes one search call. Query switches to the fuzzy
// matcher; otherwise the structured scoring engine runs. A nil Limit uses
// the client default; an explicit zero or negative clamps to one result.
type SearchParams struct {
	Industries  []string
	Keywords    []string
	MatchAny    bool // keywords match ANY instead of ALL
	Description string
	Query       string
	Limit       *int
}

// Facet is one facet value with its record count.
type Facet struct {
	Name  string
	Count int
}

// Client bundles the index catalog and the search services over one source.
type Client struct {
	src     source.Source
	catalog *catalog.Catalog
	logos   *logouc.Service
	search  *searchuc.Service
	meta    *metauc.Service
	limit   int
}

// New builds a client over the configured index source. Exactly one source
// option is required. The index itself loads lazily on first use.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := clientConfig{
		fetchTimeout:     10 * time.Second,
		readinessTimeout: 5 * time.Second,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	src, err := buildSource(&cfg)
	if err != nil {
		return nil, err
	}
	if err := source.WaitForReady(ctx, src, cfg.readinessTimeout); err != nil {
		src.Close()
		return nil, fmt.Errorf("index source not ready: %w", err)
	}

	weights := searchuc.DefaultWeights()
	if cfg.weights != nil {
		weights = mergeWeights(*cfg.weights)
	}
	fuzzyCfg := searchuc.DefaultFuzzyConfig()
	if cfg.fuzzyTolerance > 0 {
		fuzzyCfg.Tolerance = cfg.fuzzyTolerance
	}

	cat := catalog.New(src, cfg.logger)
	engine := searchuc.NewEngine(weights).WithBroadKeywords(cfg.broadKeywords)
	return &Client{
		src:     src,
		catalog: cat,
		logos:   logouc.New(cat),
		search:  searchuc.New(cat, engine, searchuc.NewWeightedFuzzy(fuzzyCfg)),
		meta:    metauc.New(cat),
		limit:   cfg.limit,
	}, nil
}

func buildSource(cfg *clientConfig) (source.Source, error) {
	switch cfg.driver {
	case "http":
		return httpsrc.New(httpsrc.Config{URL: cfg.url, Timeout: cfg.fetchTimeout})
	case "file":
		return filesrc.New(cfg.path)
	case "redis":
		return redissrc.New(redissrc.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
			Key:      cfg.key,
		})
	case "":
		return nil, fmt.Errorf("%w: an index source option is required", domain.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown source driver %q", domain.ErrInvalidInput, cfg.driver)
	}
}

func mergeWeights(w Weights) searchuc.Weights {
	def := searchuc.DefaultWeights()
	pick := func(v, fallback float64) float64 {
		if v > 0 {
			return v
		}
		return fallback
	}
	return searchuc.Weights{
		IndustryExact:    pick(w.IndustryExact, def.IndustryExact),
		IndustryPartial:  pick(w.IndustryPartial, def.IndustryPartial),
		KeywordExact:     pick(w.KeywordExact, def.KeywordExact),
		KeywordPartial:   pick(w.KeywordPartial, def.KeywordPartial),
		KeywordBonus:     pick(w.KeywordBonus, def.KeywordBonus),
		DescriptionHit:   pick(w.DescriptionHit, def.DescriptionHit),
		DescriptionBonus: pick(w.DescriptionBonus, def.DescriptionBonus),
	}
}

// Logo returns the record with the given id.
func (c *Client) Logo(ctx context.Context, id string) (Logo, error) {
	rec, err := c.logos.Get(ctx, id)
	if err != nil {
		return Logo{}, err
	}
	return toLogo(rec), nil
}

// Search runs a structured or fuzzy search depending on the params.
func (c *Client) Search(ctx context.Context, p SearchParams) ([]Logo, error) {
	m := mode.And
	if p.MatchAny {
		m = mode.Or
	}
	limit := c.limit
	if limit <= 0 {
		limit = query.DefaultLimit
	}
	if p.Limit != nil {
		limit = *p.Limit
	}
	q := query.New(p.Industries, p.Keywords, m, p.Description, p.Query, limit)
	results, _, err := c.search.Search(ctx, &q)
	if err != nil {
		return nil, err
	}
	logos := make([]Logo, 0, len(results))
	for _, r := range results {
		logos = append(logos, toLogo(r.Record()))
	}
	return logos, nil
}

// Industries returns the industry facets, ordered by count when byCount
// is set and by name otherwise.
func (c *Client) Industries(ctx context.Context, byCount bool) ([]Facet, error) {
	return toFacets(c.meta.Industries(ctx, byCount))
}

// Keywords returns the keyword facets, ordered like Industries.
func (c *Client) Keywords(ctx context.Context, byCount bool) ([]Facet, error) {
	return toFacets(c.meta.Keywords(ctx, byCount))
}

// Ping checks that the index source is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.catalog.Ping(ctx)
}

// Close releases the underlying source.
func (c *Client) Close() {
	c.src.Close()
}

func toLogo(rec domain.Record) Logo {
	return Logo{
		ID:         rec.ID,
		Category:   rec.Category,
		Categories: rec.Categories,
		Keywords:   rec.Keywords,
		Labels:     rec.Labels,
		Asset:      rec.Asset,
	}
}

func toFacets(facets []metauc.Facet, err error) ([]Facet, error) {
	if err != nil {
		return nil, err
	}
	out := make([]Facet, 0, len(facets))
	for _, f := range facets {
		out = append(out, Facet{Name: f.Name, Count: f.Count})
	}
	return out, nil
}
