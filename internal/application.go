package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/workshop-backend/internal/config"
	"github.com/rocketscienceinc/workshop-backend/internal/repository"
	"github.com/rocketscienceinc/workshop-backend/internal/repository/storage"
	"github.com/rocketscienceinc/workshop-backend/internal/service"
	"github.com/rocketscienceinc/workshop-backend/internal/usecase"
	"github.com/rocketscienceinc/workshop-backend/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}
	defer func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}
	defer func() {
		if closeErr := sqliteStorage.Close(); closeErr != nil {
			log.Error("could not close sqlite storage", "error", closeErr)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	santaKeyPEM, err := os.ReadFile(conf.Gift.SantaKeyPath)
	if err != nil {
		return fmt.Errorf("could not read santa public key: %w", err)
	}

	giftService, err := service.NewGiftService(conf.Gift.SecretKey, santaKeyPEM)
	if err != nil {
		return fmt.Errorf("could not create gift service: %w", err)
	}

	quoteRepo := repository.NewQuoteRepository(sqliteStorage.Connection)
	tokenRepo := repository.NewTokenRepository(redisStorage.Connection)

	boardManager := usecase.NewBoardManager(logger)
	bucketManager := usecase.NewBucketManager(logger)
	quoteBook := usecase.NewQuoteBook(logger, quoteRepo, tokenRepo)

	server := rest.New(logger, boardManager, bucketManager, quoteBook, giftService)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
