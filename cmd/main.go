package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/content-calendar/internal/config"
	"github.com/Vovarama1992/content-calendar/internal/delivery"
	"github.com/Vovarama1992/content-calendar/internal/domain"
	"github.com/Vovarama1992/content-calendar/internal/infra"
	"github.com/Vovarama1992/content-calendar/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {

	// LOGGER
	zcore, _ := zap.NewProduction()
	defer zcore.Sync()
	zl := logger.NewZapLogger(zcore.Sugar())

	fatal := func(msg string, err error) {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: msg,
			Error:   err,
		})
		os.Exit(1)
	}

	// ENV
	cfg, err := config.Load()
	if err != nil {
		fatal("config load failed", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// STORE
	var repo ports.ContentRepository
	if cfg.UseMemoryStore() {
		repo = infra.NewMemoryContentRepo()
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "using in-memory content store",
		})
	} else {
		pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL, cfg.PingTimeout)
		if err != nil {
			fatal("postgres init failed", err)
		}
		defer pool.Close()

		if err := infra.RunMigrations(ctx, pool); err != nil {
			fatal("migrations failed", err)
		}
		repo = infra.NewPostgresContentRepo(pool)
	}

	// SEED
	if cfg.Seed.Enabled {
		source, err := infra.NewFixtureSource(ctx, cfg.Seed.FixturePath, cfg.S3)
		if err != nil {
			fatal("fixture source init failed", err)
		}
		if _, err := domain.NewSeedService(repo, source, zl).Load(ctx); err != nil {
			fatal("seed failed", err)
		}
	}

	// HANDLERS
	hHome := delivery.NewHomeHandler(cfg.Home)
	hContent := delivery.NewContentHandler(repo, zl)

	// ROUTER
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	delivery.RegisterRoutes(r, hHome, hContent)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port},
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
