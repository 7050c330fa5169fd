package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"momo-analysis/internal/api/rest"
	"momo-analysis/internal/config"
	"momo-analysis/internal/logger"
)

// StartAnalyticsService запускает сервис аналитики: консьюмер Kafka и REST API счетчиков
func StartAnalyticsService() {
	cfg := config.Load()
	log.Logger = logger.New(cfg.Log.Level)

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		log.Info().Msg("Starting Kafka consumer...")
		if err := deps.KafkaConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Kafka consumer error")
		}
	}()

	router := rest.SetupAnalyticsRouter(rest.NewAnalyticsHandlers(deps.AnalyticsService))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.AnalyticsPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.AnalyticsPort).Msg("Analytics Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down services...")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Services exited")
}
