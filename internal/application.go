package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playforge/gameroom-backend/internal/broadcast"
	"github.com/playforge/gameroom-backend/internal/config"
	"github.com/playforge/gameroom-backend/internal/registry"
	"github.com/playforge/gameroom-backend/internal/repository"
	"github.com/playforge/gameroom-backend/internal/repository/storage"
	"github.com/playforge/gameroom-backend/internal/repository/storage/sqlite"
	"github.com/playforge/gameroom-backend/internal/room"
	"github.com/playforge/gameroom-backend/internal/server"
	"github.com/playforge/gameroom-backend/internal/transport"
	"github.com/playforge/gameroom-backend/internal/transport/rest"
	"github.com/playforge/gameroom-backend/internal/transport/tcp"
	"github.com/playforge/gameroom-backend/internal/transport/websocket"
)

const eventBufferSize = 256

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

	accounts, closeAccounts, err := buildAccountRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not build account repository: %w", err)
	}

	defer func() {
		if err = closeAccounts(); err != nil {
			log.Error("could not close account storage", "error", err)
		}
	}()

	log.Info("account storage ready", "backend", conf.AccountStorage)

	connections := registry.New()
	caster := broadcast.New(logger, connections)
	rooms := room.NewManager(logger, caster)

	events := make(chan transport.Event, eventBufferSize)
	engine := server.New(logger, accounts, connections, rooms, caster, events)

	// run engine
	engineErrCh := make(chan error, 1)
	go func() {
		if engineErr := engine.Run(ctx); engineErr != nil {
			log.Error("engine error", "error", engineErr)
			engineErrCh <- engineErr
		}
	}()

	// run TCP transport
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting TCP server", "port", conf.TCPPort)
		if tcpErr := tcp.New(logger, events).Start(ctx, conf.TCPPort); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	// run WebSocket transport
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, events).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// run HTTP status server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(connections, rooms).Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-engineErrCh:
		return fmt.Errorf("engine error: %w", err)
	case err = <-tcpErrCh:
		return fmt.Errorf("TCP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func buildAccountRepository(ctx context.Context, conf *config.Config) (repository.AccountRepository, func() error, error) {
	switch conf.AccountStorage {
	case config.MemoryStorage:
		return repository.NewMemoryAccountRepository(), func() error { return nil }, nil

	case config.SQLiteStorage:
		sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteAccountRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	case config.RedisStorage:
		redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisAccountRepository(redisStorage.Connection), redisStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown account storage backend: %q", conf.AccountStorage)
	}
}
