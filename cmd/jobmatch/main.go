package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/config"
	dbPostgres "github.com/kailas-cloud/jobmatch/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/jobmatch/internal/db/redis"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	logpkg "github.com/kailas-cloud/jobmatch/internal/logger"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
	alertrepo "github.com/kailas-cloud/jobmatch/internal/repository/alert"
	"github.com/kailas-cloud/jobmatch/internal/repository/analysiscache"
	applicationrepo "github.com/kailas-cloud/jobmatch/internal/repository/application"
	catalogrepo "github.com/kailas-cloud/jobmatch/internal/repository/catalog"
	"github.com/kailas-cloud/jobmatch/internal/repository/event"
	keywordrepo "github.com/kailas-cloud/jobmatch/internal/repository/keyword"
	savedjobrepo "github.com/kailas-cloud/jobmatch/internal/repository/savedjob"
	"github.com/kailas-cloud/jobmatch/internal/scheduler"
	chiTransport "github.com/kailas-cloud/jobmatch/internal/transport/chi"
	"github.com/kailas-cloud/jobmatch/internal/transport/cvanalysis"
	openaiAnalyzer "github.com/kailas-cloud/jobmatch/internal/transport/openai"
	alertuc "github.com/kailas-cloud/jobmatch/internal/usecase/alert"
	analysisuc "github.com/kailas-cloud/jobmatch/internal/usecase/analysis"
	applicationuc "github.com/kailas-cloud/jobmatch/internal/usecase/application"
	cataloguc "github.com/kailas-cloud/jobmatch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/jobmatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/jobmatch/internal/usecase/recommend"
	savedjobuc "github.com/kailas-cloud/jobmatch/internal/usecase/savedjob"
	"github.com/kailas-cloud/jobmatch/internal/version"
)

// catalogStore is what the composition root needs from either catalog backend.
type catalogStore interface {
	Upsert(ctx context.Context, j job.Job) error
	Get(ctx context.Context, id string) (job.Job, error)
	List(ctx context.Context, f job.Filter) ([]job.Job, error)
	Delete(ctx context.Context, id string) error
	PostedSince(ctx context.Context, t time.Time) ([]job.Job, error)
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting jobmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("catalog_backend", cfg.Catalog.Backend),
		zap.String("analyzer", cfg.Analyzer.Provider),
	)

	// rueidis speaks to Redis and Valkey alike. A single address means a standalone node.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		Standalone: len(cfg.Database.Addrs) == 1,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterMatchingMetrics()
	metrics.RegisterAnalyzerMetrics()

	// Catalog backend
	var catalog catalogStore
	var catalogPinger healthuc.CatalogPinger
	switch cfg.Catalog.Backend {
	case config.BackendPostgres:
		pool, err := dbPostgres.NewPool(ctx, cfg.Catalog.PostgresDSN)
		if err != nil {
			logger.Fatal("Failed to connect to catalog database", zap.Error(err))
		}
		defer pool.Close()
		pg := catalogrepo.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to create catalog schema", zap.Error(err))
		}
		catalog, catalogPinger = pg, pool
	default:
		catalog = catalogrepo.New(store)
	}

	// Analyzer chain: provider -> Instrumented. nil when uploads are disabled.
	analyzer := buildAnalyzer(cfg, store, logger)

	// Repositories
	keywordRepo := keywordrepo.New(store)
	savedRepo := savedjobrepo.New(store)
	appRepo := applicationrepo.New(store)
	alertRepo := alertrepo.New(store, cfg.Alerts.FeedLength)
	events := event.New(store)

	// Use cases
	catalogSvc := cataloguc.New(catalog, cfg.Catalog.PageSize, cfg.Catalog.ActiveOnly())
	recommendSvc := recommenduc.New(catalog, keywordRepo, nilableAnalyzer(analyzer), recommenduc.Options{
		Threshold: cfg.Matching.Threshold,
		PageSize:  cfg.Catalog.PageSize,
	}, logger)
	savedSvc := savedjobuc.New(savedRepo, catalog)
	appSvc := applicationuc.New(appRepo, catalog, events, domapp.PolicyFor(cfg.Matching.StrictTransitions), logger)
	alertSvc := alertuc.New(catalog, keywordRepo, alertRepo, alertuc.Options{
		Threshold: cfg.Alerts.Threshold,
		Lookback:  time.Duration(cfg.Alerts.LookbackSec) * time.Second,
	}, logger)

	// Pass nil interface (not typed nil pointer!) when a component is absent.
	var analyzerChecker healthuc.AnalyzerChecker
	if analyzer != nil {
		analyzerChecker = analyzer
	}
	healthSvc := healthuc.New(store, catalogPinger, analyzerChecker)

	// Alert scheduler
	var sched *scheduler.Scheduler
	if cfg.Alerts.Enabled {
		sched = scheduler.New(alertSvc, cfg.Alerts.Schedule, logger)
		if err := sched.Start(ctx); err != nil {
			logger.Fatal("Failed to start alert scheduler", zap.Error(err))
		}
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Catalog:      catalogSvc,
		Recommend:    recommendSvc,
		SavedJobs:    savedSvc,
		Applications: appSvc,
		Alerts:       alertSvc,
		Health:       healthSvc,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.UserMiddleware())
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if sched != nil {
		sched.Stop()
	}

	logger.Info("Server stopped gracefully")
}

// buildAnalyzer assembles the CV analyzer chain: provider -> Cached -> Instrumented.
// Returns nil when CV analysis is disabled.
func buildAnalyzer(cfg config.Config, store *dbRedis.Store, logger *zap.Logger) *analysisuc.InstrumentedAnalyzer {
	var base domain.Analyzer
	switch cfg.Analyzer.Provider {
	case config.ProviderMLService:
		base = cvanalysis.New(cvanalysis.Config{
			BaseURL:   cfg.Analyzer.BaseURL,
			Timeout:   time.Duration(cfg.Analyzer.TimeoutSec) * time.Second,
			RateLimit: cfg.Analyzer.RateLimit,
			RateBurst: cfg.Analyzer.RateBurst,
			Logger:    logger,
		})
	case config.ProviderOpenAI:
		base = openaiAnalyzer.NewAnalyzer(&openaiAnalyzer.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Logger:  logger,
		})
	default:
		logger.Info("CV analysis disabled")
		return nil
	}

	if cfg.Analyzer.CacheEnabled() {
		ttl := time.Duration(cfg.Analyzer.CacheTTLSec) * time.Second
		base = analysiscache.New(base, store, ttl, metrics.AnalyzerCacheTotal, logger)
	}

	logger.Info("CV analyzer created",
		zap.String("provider", cfg.Analyzer.Provider),
		zap.Bool("cache", cfg.Analyzer.CacheEnabled()),
	)
	return analysisuc.NewInstrumented(base, cfg.Analyzer.Provider, logger)
}

func nilableAnalyzer(a *analysisuc.InstrumentedAnalyzer) recommenduc.Analyzer {
	if a == nil {
		return nil
	}
	return a
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// One line per request. user_id is added by UserMiddleware to its own logger only.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("user_id", r.Header.Get(chiTransport.UserHeader)),
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
