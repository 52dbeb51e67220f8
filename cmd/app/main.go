package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nats-io/nats.go"

	"github.com/emberhall/bazaar/internal/account"
	"github.com/emberhall/bazaar/internal/auction"
	"github.com/emberhall/bazaar/internal/config"
	"github.com/emberhall/bazaar/internal/database"
	"github.com/emberhall/bazaar/internal/database/postgres"
	"github.com/emberhall/bazaar/internal/notify"
	"github.com/emberhall/bazaar/internal/quota"
	"github.com/emberhall/bazaar/internal/server"
	"github.com/emberhall/bazaar/internal/trade"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	// Database
	dbPool, err := database.NewPool(cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Redis, used for the daily listing quota counter
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}()

	// NATS is optional; without it the marketplace runs silently
	var publisher *notify.Publisher
	var natsConn *nats.Conn
	if cfg.NatsURL != "" {
		natsConn, err = nats.Connect(cfg.NatsURL,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second))
		if err != nil {
			slog.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		publisher = notify.NewPublisher(natsConn)
		slog.Info("NATS notifications enabled", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, notifications disabled")
	}

	// Repositories and services
	tradeRepo := postgres.NewTradeRepository(dbPool)
	auctionRepo := postgres.NewAuctionRepository(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)

	quotaCounter := quota.NewRedisCounter(rdb)

	var tradeNotifier trade.Notifier
	var auctionNotifier auction.Notifier
	if publisher != nil {
		tradeNotifier = publisher
		auctionNotifier = publisher
	}

	tradeService := trade.NewService(tradeRepo, quotaCounter, tradeNotifier)
	auctionService := auction.NewService(auctionRepo, auctionNotifier)
	accountService := account.NewService(accountRepo)

	srv := server.NewServer(cfg.Port, cfg.JWTSecret, cfg.TrustedProxies, dbPool,
		tradeService, auctionService, accountService)

	// Run the server and wait for a shutdown signal
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if natsConn != nil {
		natsConn.Close()
	}

	slog.Info("Server stopped")
}
