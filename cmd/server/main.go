package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahul4469/youtube-analyzer/internal/config"
	"github.com/rahul4469/youtube-analyzer/internal/middleware"
	"github.com/rahul4469/youtube-analyzer/internal/services"
)

const serviceName = "youtube-analyzer"

func main() {
	cfg := config.MustLoad()
	if err := run(cfg); err != nil {
		middleware.Logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config) error {
	log := middleware.InitLogger(cfg.Log.Level, serviceName)

	if cfg.UsesPlaceholderKey() {
		log.Warn().Msg("YOUTUBE_API_KEY is not set; every analysis will fail until a real key is configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup Services ---------------
	youtube, err := services.NewYouTubeClient(ctx, services.YouTubeConfig{
		APIKey:     cfg.APIs.YouTubeAPIKey,
		OAuthToken: cfg.APIs.YouTubeOAuthToken,
		BaseURL:    cfg.APIs.YouTubeBaseURL,
	})
	if err != nil {
		return err
	}

	analyzer := services.NewAnalyzer(youtube, services.Options{
		CallTimeout:           cfg.APIs.CallTimeout,
		VideoFetchConcurrency: cfg.Limits.VideoFetchConcurrency,
	}, log)

	handler, err := newRouter(cfg, analyzer, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("env", cfg.Server.Environment).
			Bool("csrf", cfg.CSRFEnabled()).
			Int("video_fetch_concurrency", cfg.Limits.VideoFetchConcurrency).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}
