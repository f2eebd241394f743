package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brandfetch-labs/logodex/internal/assets"
	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/domain/search/mode"
	"github.com/brandfetch-labs/logodex/internal/domain/search/query"
	"github.com/brandfetch-labs/logodex/internal/logger"
	healthuc "github.com/brandfetch-labs/logodex/internal/usecase/health"
	logouc "github.com/brandfetch-labs/logodex/internal/usecase/logo"
	metauc "github.com/brandfetch-labs/logodex/internal/usecase/meta"
	searchuc "github.com/brandfetch-labs/logodex/internal/usecase/search"
)

const cacheOneHour = "public, max-age=3600"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the logo API over chi.
type Server struct {
	logos         *logouc.Service
	search        *searchuc.Service
	meta          *metauc.Service
	health        *healthuc.Service
	resolver      assets.Resolver
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. Handlers log through the
// request-scoped logger placed in the context by the logging middleware.
func NewServer(
	logos *logouc.Service,
	search *searchuc.Service,
	meta *metauc.Service,
	health *healthuc.Service,
	resolver assets.Resolver,
) *Server {
	s := &Server{
		logos:    logos,
		search:   search,
		meta:     meta,
		health:   health,
		resolver: resolver,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusBadGateway),
	}
	return s
}

// Routes mounts all API handlers on the given router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/logo/{id}", s.GetLogo)
	r.Post("/logo", s.PostLogo)
	r.Post("/search", s.Search)
	r.Post("/logos", s.LegacySearch)
	r.Get("/meta/industries", s.Industries)
	r.Get("/meta/keywords", s.Keywords)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// GetLogo handles GET /logo/{id}.
func (s *Server) GetLogo(w http.ResponseWriter, r *http.Request) {
	s.serveLogo(w, r, chirouter.URLParam(r, "id"))
}

// PostLogo handles POST /logo, the body-based lookup variant.
func (s *Server) PostLogo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	// Malformed body degrades to an empty id, which the service rejects.
	_ = json.NewDecoder(r.Body).Decode(&req)
	s.serveLogo(w, r, req.ID)
}

func (s *Server) serveLogo(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := s.logos.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", cacheOneHour)
	writeJSON(w, http.StatusOK, map[string]any{
		"logo": s.recordPayload(r, rec),
	})
}

// searchRequest is the POST /search and POST /logos body. All fields are
// optional; unknown or malformed input degrades to empty filters. Limit
// is a pointer so an absent limit (default) and an explicit zero (clamps
// to one result) stay distinguishable.
type searchRequest struct {
	Industry    string   `json:"industry"`
	Industries  []string `json:"industries"`
	Keywords    []string `json:"keywords"`
	KeywordMode string   `json:"keyword_mode"`
	Description string   `json:"description"`
	Query       string   `json:"query"`
	Limit       *int     `json:"limit"`
}

func (req *searchRequest) toQuery() query.Query {
	industries := req.Industries
	if req.Industry != "" {
		industries = append(industries, req.Industry)
	}
	limit := query.DefaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	return query.New(
		industries,
		req.Keywords,
		mode.Mode(req.KeywordMode),
		req.Description,
		req.Query,
		limit,
	)
}

// Search handles POST /search. A free-text "query" selects the fuzzy path,
// which answers with full records in matcher order; the structured path
// answers with id+asset projections only.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	q := req.toQuery()
	results, variant, err := s.search.Search(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")

	if variant == searchuc.VariantFuzzy {
		items := make([]map[string]any, len(results))
		for i := range results {
			items[i] = s.recordPayload(r, results[i].Record())
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
		return
	}

	items := make([]map[string]any, len(results))
	for i := range results {
		rec := results[i].Record()
		items[i] = map[string]any{
			"id":  rec.ID,
			"svg": nullableURL(s.resolver.Resolve(requestOrigin(r), rec.Asset)),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// LegacySearch handles POST /logos, the original exact-filter contract:
// full records, collection order, capped at limit.
func (s *Server) LegacySearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	q := req.toQuery()
	records, err := s.search.Legacy(r.Context(), &q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]map[string]any, len(records))
	for i := range records {
		items[i] = s.recordPayload(r, records[i])
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// Industries handles GET /meta/industries.
func (s *Server) Industries(w http.ResponseWriter, r *http.Request) {
	s.serveFacets(w, r, "industries", "name", s.meta.Industries)
}

// Keywords handles GET /meta/keywords.
func (s *Server) Keywords(w http.ResponseWriter, r *http.Request) {
	s.serveFacets(w, r, "keywords", "term", s.meta.Keywords)
}

func (s *Server) serveFacets(
	w http.ResponseWriter,
	r *http.Request,
	field, nameKey string,
	fetch func(ctx context.Context, byCount bool) ([]metauc.Facet, error),
) {
	withCounts := r.URL.Query().Get("counts") == "1"

	facets, err := fetch(r.Context(), withCounts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	var payload any
	if withCounts {
		items := make([]map[string]any, len(facets))
		for i, f := range facets {
			items[i] = map[string]any{nameKey: f.Name, "count": f.Count}
		}
		payload = items
	} else {
		names := make([]string, len(facets))
		for i, f := range facets {
			names[i] = f.Name
		}
		payload = names
	}

	w.Header().Set("Cache-Control", cacheOneHour)
	writeJSON(w, http.StatusOK, map[string]any{field: payload})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":       string(report.Status),
		"checks":       checks,
		"index_loaded": report.IndexLoaded,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// recordPayload serializes a full record with its asset resolved to an
// absolute URL (null when the record has no asset, as the original API did).
func (s *Server) recordPayload(r *http.Request, rec domain.Record) map[string]any {
	p := map[string]any{
		"id":  rec.ID,
		"svg": nullableURL(s.resolver.Resolve(requestOrigin(r), rec.Asset)),
	}
	if rec.Category != "" {
		p["category"] = rec.Category
	}
	if len(rec.Categories) > 0 {
		p["categories"] = rec.Categories
	}
	if len(rec.Keywords) > 0 {
		p["keywords"] = rec.Keywords
	}
	if len(rec.Labels) > 0 {
		p["labels"] = rec.Labels
	}
	return p
}

func nullableURL(u string) any {
	if u == "" {
		return nil
	}
	return u
}

// requestOrigin reconstructs the request origin, trusting a forwarding
// proxy's X-Forwarded-Proto when present.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
