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

	"github.com/instabrief/instabrief/internal/config"
	dbRedis "github.com/instabrief/instabrief/internal/db/redis"
	"github.com/instabrief/instabrief/internal/domain"
	logpkg "github.com/instabrief/instabrief/internal/logger"
	"github.com/instabrief/instabrief/internal/metrics"
	documentrepo "github.com/instabrief/instabrief/internal/repository/document"
	"github.com/instabrief/instabrief/internal/repository/sumcache"
	chiTransport "github.com/instabrief/instabrief/internal/transport/chi"
	openaiSum "github.com/instabrief/instabrief/internal/transport/openai"
	"github.com/instabrief/instabrief/internal/usecase/document"
	"github.com/instabrief/instabrief/internal/usecase/explore"
	healthuc "github.com/instabrief/instabrief/internal/usecase/health"
	summaryuc "github.com/instabrief/instabrief/internal/usecase/summary"
	"github.com/instabrief/instabrief/internal/version"
)

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

	logger.Info("Starting instabrief API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register summary metrics explicitly (no init())
	metrics.RegisterSummaryMetrics()

	// Build summarizer chain — composition root
	var provider summaryuc.Provider
	var providerChecker healthuc.SummarizerChecker
	if cfg.Summarizer.APIKey != "" {
		base := openaiSum.NewSummarizer(&openaiSum.Config{
			APIKey:   cfg.Summarizer.APIKey,
			BaseURL:  cfg.Summarizer.BaseURL,
			Model:    cfg.Summarizer.Model,
			Provider: cfg.Summarizer.Provider,
			Logger:   logger,
		})
		provider = base
		providerChecker = base
		logger.Info("Abstractive summarizer created",
			zap.String("provider", cfg.Summarizer.Provider),
			zap.String("model", cfg.Summarizer.Model),
		)
	} else {
		logger.Info("No summarizer api_key configured, using extractive summaries only")
	}

	var summarizer domain.Summarizer = summaryuc.New(provider, logger)
	summarizer = sumcache.New(
		summarizer, store, cfg.Storage.KeyPrefix,
		time.Duration(cfg.Summarizer.CacheTTLHours)*time.Hour,
		metrics.SummaryCacheTotal, logger,
	)

	// Repositories and use case services
	docRepo := documentrepo.New(store, cfg.Storage.KeyPrefix)
	docSvc := document.New(
		docRepo, summarizer, cfg.Summarizer.DefaultLength,
		cfg.Storage.DefaultPageSize, cfg.Storage.MaxPageSize, logger,
	)
	exploreSvc := explore.New(docRepo)
	healthSvc := healthuc.New(store, providerChecker)

	// Create chi server
	server := chiTransport.NewServer(
		docSvc, exploreSvc, summarizer, healthSvc,
		cfg.Summarizer.DefaultLength, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys, cfg.Auth.JWTSecret))
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
						"code":    "internal_error",
						"message": "internal error",
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
