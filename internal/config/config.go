package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultJWTSecret = "octofit-dev-secret-change-me"

// Config holds all configuration for the application
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig
	Auth      AuthConfig
	Kafka     KafkaConfig
	Worker    WorkerConfig
	Simulator SimulatorConfig
	Seed      SeedConfig
	Log       LogConfig
}

// StoreConfig selects the Entity Store backend
type StoreConfig struct {
	Driver string `env:"STORE_DRIVER" envDefault:"postgres"` // postgres | memory
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"octofit_db"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Username string `env:"REDIS_USERNAME"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int    `env:"BACKEND_PORT" envDefault:"8000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

// AuthConfig holds bearer token settings for write endpoints
type AuthConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"octofit-dev-secret-change-me"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"octofit-tracker"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// KafkaConfig holds event publishing settings; no brokers disables publishing
type KafkaConfig struct {
	Brokers          []string `env:"KAFKA_BROKERS" envSeparator:","`
	ActivityTopic    string   `env:"KAFKA_ACTIVITY_TOPIC" envDefault:"octofit.activities"`
	LeaderboardTopic string   `env:"KAFKA_LEADERBOARD_TOPIC" envDefault:"octofit.leaderboard"`
}

// WorkerConfig sizes the leaderboard recompute pool
type WorkerConfig struct {
	Count     int `env:"WORKER_COUNT" envDefault:"2"`
	QueueSize int `env:"WORKER_QUEUE_SIZE" envDefault:"64"`
}

// SimulatorConfig controls the demo activity generator
type SimulatorConfig struct {
	Enabled bool          `env:"SIMULATOR_ENABLED" envDefault:"false"`
	Tick    time.Duration `env:"SIMULATOR_TICK" envDefault:"5s"`
}

// SeedConfig holds seed loader settings
type SeedConfig struct {
	RandomSeed int64 `env:"SEED_RANDOM_SEED" envDefault:"0"` // 0 picks a time-based seed
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file from root directory (parent of the working dir)
	if err := godotenv.Load("../.env"); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found, using environment variables")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the services cannot run with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want postgres or memory)", c.Store.Driver)
	}

	if c.IsProduction() && c.Auth.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	if c.Store.Driver == "postgres" && c.Database.URL == "" && c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Worker.Count <= 0 || c.Worker.QueueSize <= 0 {
		return fmt.Errorf("WORKER_COUNT and WORKER_QUEUE_SIZE must be positive")
	}

	return nil
}

// GetDSN returns the PostgreSQL DSN
func (c *Config) GetDSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
