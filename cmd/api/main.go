package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/firejune/notion-github-embed/internal/api"
	"github.com/firejune/notion-github-embed/internal/api/handlers"
	"github.com/firejune/notion-github-embed/internal/calendar"
	"github.com/firejune/notion-github-embed/internal/config"
	"github.com/firejune/notion-github-embed/internal/database"
	"github.com/firejune/notion-github-embed/internal/logging"
	"github.com/firejune/notion-github-embed/internal/services/chart"
	"github.com/firejune/notion-github-embed/internal/services/contributions"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("warning: Error loading .env file (this is fine in production): %v", err)
		}
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗しました: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("サーバーが異常終了しました", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := calendar.ParseLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	var provider contributions.Provider
	switch cfg.Provider {
	case config.ProviderGitHub:
		provider = contributions.NewGitHubService(ctx, cfg.GitHubToken, logger)
	default:
		provider = contributions.NewUpstreamClient(cfg.APIHost, logger)
	}

	// スナップショットストアは任意。DATABASE_URL が無ければ使わない
	var (
		store  contributions.SnapshotStore
		pinger handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		db, err := database.NewDatabaseService(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.InitSchema(ctx); err != nil {
			return err
		}
		store, pinger = db, db
	}
	provider = contributions.NewCachedProvider(provider, store, logger)

	graphHandler := handlers.NewGraphHandler(provider, chart.NewRenderer(cfg.BaseURL), loc, cfg.CacheMaxAge, logger)
	healthHandler := handlers.NewHealthHandler(pinger, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(graphHandler, healthHandler, cfg.AllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("provider", cfg.Provider),
			zap.Bool("snapshots", store != nil),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("シャットダウンしています")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
