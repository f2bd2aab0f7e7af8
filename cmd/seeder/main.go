package main

import (
	"context"
	"flag"

	"octofit-tracker/internal/config"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/repository"
	"octofit-tracker/internal/seed"

	"github.com/sirupsen/logrus"
)

func main() {
	seedFlag := flag.Int64("seed", 0, "random seed for fabricated activities (0 uses SEED_RANDOM_SEED or the current time)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	log := logger.Component("seeder")

	ctx := context.Background()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.Close()
	log.WithField("driver", cfg.Store.Driver).Info("Connected to octofit_db")

	var publisher repository.SnapshotPublisher
	if cfg.Redis.Enabled {
		client, err := repository.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		redisPublisher := repository.NewRedisPublisher(client)
		defer redisPublisher.Close()
		publisher = redisPublisher
	}

	requested := *seedFlag
	if requested == 0 {
		requested = cfg.Seed.RandomSeed
	}
	rng, usedSeed := seed.NewSeededRNG(requested)
	log.WithField("seed", usedSeed).Info("Seeding random generator")

	summary, err := seed.NewLoader(store, publisher, rng, seed.WithLogger(log)).Run(ctx)
	if err != nil {
		log.Fatalf("Database population failed: %v", err)
	}

	log.WithFields(map[string]interface{}{
		"teams":       summary.Teams,
		"users":       summary.Users,
		"activities":  summary.Activities,
		"leaderboard": summary.LeaderboardEntries,
		"workouts":    summary.Workouts,
	}).Info("Database population completed successfully")
}
