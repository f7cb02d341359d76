package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/config"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/repository"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-matchmaker/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-matchmaker/transport/rest"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Run(ctx, logger, conf)
}

// Run - wires the game state and serves HTTP until ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	order, err := repository.ParseQueueOrder(conf.Matchmaking.Order)
	if err != nil {
		return fmt.Errorf("invalid matchmaking config: %w", err)
	}

	var mirror repository.GameRepository
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		mirror = repository.NewGameRepository(redisStorage.Connection)
		log.Info("Mirroring games to redis", "addr", conf.Redis.GetRedisAddr())
	}

	queue := repository.NewWaitingQueue(order)
	store := repository.NewSessionStore(conf.Matchmaking.ShardCount)
	gameManager := usecase.NewGameManager(logger, queue, store, mirror)

	server := rest.New(logger, conf, rest.NewHandlers(logger, gameManager))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "tls", conf.TLS.Enabled(), "queue_order", order)
	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down",
		"sessions", store.Len(),
		"waiting", queue.Len(),
	)

	return nil
}
