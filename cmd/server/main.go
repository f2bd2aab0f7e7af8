package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"octofit-tracker/internal/api/routes"
	"octofit-tracker/internal/auth"
	"octofit-tracker/internal/config"
	"octofit-tracker/internal/events"
	"octofit-tracker/internal/jobs"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/repository"
	"octofit-tracker/internal/seed"
	"octofit-tracker/internal/service"
	"octofit-tracker/internal/websocket"
	"octofit-tracker/internal/worker"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log := logger.Component("server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	log.WithField("driver", cfg.Store.Driver).Info("Entity store ready")

	publisher, err := newSnapshotPublisher(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	eventPublisher := newEventPublisher(cfg)

	leaderboardService := service.NewLeaderboardService(store, publisher, eventPublisher)

	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize, leaderboardService)
	pool.Start()

	// publish the stored leaderboard so websocket clients start from a known version
	if err := pool.Submit(worker.RecomputeTask{Reason: "startup"}); err != nil {
		log.WithError(err).Warn("Failed to queue startup recompute")
	}

	hub := websocket.NewHub(leaderboardService)
	go hub.Run(ctx)

	var simulator *jobs.ActivitySimulator
	if cfg.Simulator.Enabled {
		rng, usedSeed := seed.NewSeededRNG(cfg.Seed.RandomSeed)
		simulator = jobs.NewActivitySimulator(store, eventPublisher, pool, rng, cfg.Simulator.Tick)
		if err := simulator.Start(ctx); err != nil {
			log.WithError(err).Warn("Failed to start simulator")
		} else {
			log.WithField("seed", usedSeed).Info("Activity simulator enabled")
		}
	}

	app := routes.NewApp(routes.Deps{
		Store:       store,
		Leaderboard: leaderboardService,
		Pool:        pool,
		Hub:         hub,
		Events:      eventPublisher,
		Auth: auth.Config{
			Secret: cfg.Auth.Secret,
			Issuer: cfg.Auth.Issuer,
			TTL:    cfg.Auth.TTL,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AccessLog:      true,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.WithField("addr", addr).Info("Server starting")

	err = serveUntilSignal(quit, func() error { return app.Listen(addr) }, func() {
		log.Info("Shutting down server...")

		if simulator != nil {
			simulator.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Warn("Server forced to shutdown")
		}

		if err := pool.Shutdown(30 * time.Second); err != nil {
			log.WithError(err).Warn("Worker pool shutdown error")
		}

		cancel()

		if err := eventPublisher.Close(); err != nil {
			log.WithError(err).Warn("Error closing event publisher")
		}
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Error closing snapshot publisher")
		}
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("Error closing store")
		}

		log.Info("Server shutdown complete")
	})
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// serveUntilSignal runs listen until a signal arrives on quit, then runs
// shutdown. It returns only after shutdown has finished, since listen comes
// back as soon as the listener closes.
func serveUntilSignal(quit <-chan os.Signal, listen func() error, shutdown func()) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-quit
		shutdown()
	}()

	if err := listen(); err != nil {
		return err
	}
	<-done
	return nil
}

func newSnapshotPublisher(ctx context.Context, cfg *config.Config) (repository.SnapshotPublisher, error) {
	if !cfg.Redis.Enabled {
		return repository.NewLocalPublisher(), nil
	}
	client, err := repository.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return repository.NewRedisPublisher(client), nil
}

func newEventPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return events.NoopPublisher{}
	}
	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ActivityTopic, cfg.Kafka.LeaderboardTopic)
}
