package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "momo-analysis/docs" // Swagger docs
	"momo-analysis/internal/api/rest"
	"momo-analysis/internal/config"
	"momo-analysis/internal/grpc"
	"momo-analysis/internal/logger"
)

// StartIngestionService запускает сервис импорта SMS
func StartIngestionService() {
	cfg := config.Load()
	log.Logger = logger.New(cfg.Log.Level)

	deps, err := InitializeDependencies(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	// Настройка REST API
	handlers := rest.NewHandlers(deps.TransactionService, deps.ClassifierService, deps.Generator)
	router := rest.SetupRouter(handlers)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.IngestionPort),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.IngestionPort).Msg("Ingestion Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// gRPC сервер в отдельной горутине
	grpcServer := grpc.NewServer(grpc.NewMomoGRPCServer(deps.TransactionService, deps.ClassifierService))
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Warn().Err(err).Int("port", cfg.Server.GRPCPort).Msg("gRPC server not started")
	} else {
		go func() {
			log.Info().Int("port", cfg.Server.GRPCPort).Msg("gRPC server listening")
			if err := grpcServer.Serve(lis); err != nil {
				log.Error().Err(err).Msg("gRPC server stopped")
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	grpcServer.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
