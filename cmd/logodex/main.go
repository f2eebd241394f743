package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brandfetch-labs/logodex/internal/assets"
	"github.com/brandfetch-labs/logodex/internal/config"
	logpkg "github.com/brandfetch-labs/logodex/internal/logger"
	"github.com/brandfetch-labs/logodex/internal/metrics"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
	"github.com/brandfetch-labs/logodex/internal/source"
	"github.com/brandfetch-labs/logodex/internal/source/filesrc"
	"github.com/brandfetch-labs/logodex/internal/source/httpsrc"
	"github.com/brandfetch-labs/logodex/internal/source/redissrc"
	chiTransport "github.com/brandfetch-labs/logodex/internal/transport/chi"
	healthuc "github.com/brandfetch-labs/logodex/internal/usecase/health"
	logouc "github.com/brandfetch-labs/logodex/internal/usecase/logo"
	metauc "github.com/brandfetch-labs/logodex/internal/usecase/meta"
	searchuc "github.com/brandfetch-labs/logodex/internal/usecase/search"
	"github.com/brandfetch-labs/logodex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting logodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	// Create index source based on driver
	src, err := buildSource(cfg.Source)
	if err != nil {
		logger.Fatal("Failed to create index source", zap.Error(err))
	}
	defer src.Close()

	// The redis driver needs its backend up before we serve traffic; the
	// http and file drivers answer Ping immediately.
	ctx := context.Background()
	readiness := time.Duration(cfg.Source.ReadinessTimeout) * time.Second
	if err := source.WaitForReady(ctx, src, readiness); err != nil {
		logger.Fatal("Index source not ready", zap.Error(err))
	}
	logger.Info("Index source ready")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	cat := catalog.New(src, logger).
		WithMetrics(metrics.CatalogLoadsTotal, metrics.CatalogRecords)

	engine := searchuc.NewEngine(searchWeights(cfg.Search.Weights)).
		WithBroadKeywords(cfg.Search.BroadKeywords)
	fz := searchuc.NewWeightedFuzzy(fuzzyConfig(cfg.Search.Fuzzy))

	logoSvc := logouc.New(cat)
	searchSvc := searchuc.New(cat, engine, fz).
		WithMetrics(metrics.SearchesTotal)
	metaSvc := metauc.New(cat)
	healthSvc := healthuc.New(cat)

	resolver := assets.New(cfg.Assets.BaseURL, cfg.Assets.PathTemplate)

	server := chiTransport.NewServer(logoSvc, searchSvc, metaSvc, healthSvc, resolver)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware(cfg.CORS.AllowedOrigin))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSource creates the index source selected by config.
func buildSource(cfg config.SourceConfig) (source.Source, error) {
	switch cfg.Driver {
	case "http":
		return httpsrc.New(httpsrc.Config{
			URL:     cfg.URL,
			Timeout: time.Duration(cfg.FetchTimeoutSec) * time.Second,
		})
	case "file":
		return filesrc.New(cfg.Path)
	case "redis":
		return redissrc.New(redissrc.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			Key:      cfg.Key,
		})
	default:
		return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
	}
}

func searchWeights(w config.WeightsConfig) searchuc.Weights {
	return searchuc.Weights{
		IndustryExact:    w.IndustryExact,
		IndustryPartial:  w.IndustryPartial,
		KeywordExact:     w.KeywordExact,
		KeywordPartial:   w.KeywordPartial,
		KeywordBonus:     w.KeywordBonus,
		DescriptionHit:   w.DescriptionHit,
		DescriptionBonus: w.DescriptionBonus,
	}
}

func fuzzyConfig(f config.FuzzyConfig) searchuc.FuzzyConfig {
	return searchuc.FuzzyConfig{
		Tolerance:        f.Tolerance,
		KeywordsWeight:   f.KeywordsWeight,
		CategoryWeight:   f.CategoryWeight,
		CategoriesWeight: f.CategoriesWeight,
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
