package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"mockupgen/internal/http/handlers"
	httpapi "mockupgen/internal/http/httpapi"
	"mockupgen/internal/imagepipe"
	"mockupgen/internal/infra"
	"mockupgen/internal/mockup"
	"mockupgen/internal/providers/genai"
	"mockupgen/internal/storage"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	// Configuration & logger. LoadConfig fails here when the Gemini
	// credential is missing, so a misconfigured deployment never serves.
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		HTTPClient: &http.Client{Timeout: 90 * time.Second},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}

	fetcher := imagepipe.NewFetcher(&http.Client{Timeout: 30 * time.Second})
	service := mockup.NewService(fetcher, geminiClient, cfg.GenerateTimeout, &logger)

	// Uploads storage and the retention sweeper only exist in persistence
	// mode; the sweeper stops with the signal context.
	var store *storage.FileStore
	if cfg.OutputMode == infra.OutputModePersist {
		store, err = storage.NewFileStore(cfg.UploadsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure uploads storage")
		}
		sweeper := storage.NewSweeper(store.BasePath(), cfg.RetentionMaxAge, cfg.SweepInterval, &logger)
		sweeper.Start(ctx)
	}

	app := handlers.NewApp(service, store, cfg, &logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on :%s (mode=%s, model=%s)", cfg.Port, cfg.OutputMode, geminiClient.Model())
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
