// Package app wires configuration, storage, services, and transport
// into a running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/media"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres/ballot"
	statsrepo "github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres/stats"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/adapter/postgres/suggestion"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/auth"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/config"
	mediasvc "github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/media"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/review"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/sampler"
	statssvc "github.com/nkowaokwu/igbo-api-admin-sub002/internal/service/stats"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/transport/middleware"
	"github.com/nkowaokwu/igbo-api-admin-sub002/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage_env", cfg.Storage.Env),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	suggestionRepo := suggestion.New(pool)
	ballotRepo := ballot.New(pool)
	statsRepo := statsrepo.New(pool)

	backend, err := newMediaBackend(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init media backend: %w", err)
	}

	samplerSvc := sampler.NewService(logger, suggestionRepo, cfg.Sampling)
	reviewSvc := review.NewService(logger, suggestionRepo, ballotRepo, txManager)
	mediaSvc := mediasvc.New(backend, suggestionRepo, cfg.Storage, logger)
	statsSvc := statssvc.NewService(logger, statsRepo)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := newRouter(routerDeps{
		logger:      logger,
		pool:        pool,
		verifier:    verifier,
		rateLimiter: rateLimiter,
		cors:        cfg.CORS,
		sampling:    rest.NewSamplingHandler(samplerSvc, logger),
		review:      rest.NewReviewHandler(reviewSvc, logger),
		media:       rest.NewMediaHandler(mediaSvc, logger),
		stats:       rest.NewStatsHandler(statsSvc, logger),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newMediaBackend selects the object-store implementation once at startup.
// Outside production every media operation is deterministic string
// construction with zero network I/O.
func newMediaBackend(ctx context.Context, cfg config.StorageConfig) (media.Backend, error) {
	if cfg.IsProduction() {
		return media.NewMinioBackend(ctx, cfg)
	}
	return media.NewMockBackend(cfg.Bucket), nil
}
