package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "octofit_db", cfg.Database.DBName)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password= dbname=octofit_db sslmode=disable",
		cfg.GetDSN())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("BACKEND_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SIMULATOR_TICK", "250ms")
	t.Setenv("SEED_RANDOM_SEED", "42")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/octofit_db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 250*time.Millisecond, cfg.Simulator.Tick)
	assert.Equal(t, int64(42), cfg.Seed.RandomSeed)
	assert.Equal(t, "postgres://u:p@db:5432/octofit_db", cfg.GetDSN())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestValidateProductionSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
