package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"octofit-tracker/internal/config"
	"octofit-tracker/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// LeaderboardKey is the Redis sorted set of user ids scored by rank
	LeaderboardKey = "octofit:leaderboard:ranks"

	// EntriesKey is the Redis hash of user id -> JSON leaderboard entry
	EntriesKey = "octofit:leaderboard:entries"

	// VersionKey is bumped once per published snapshot for change detection
	VersionKey = "octofit:leaderboard:version"
)

// SnapshotPublisher exposes the latest computed leaderboard outside the
// Entity Store. The store stays the source of truth.
type SnapshotPublisher interface {
	Publish(ctx context.Context, entries []models.LeaderboardEntry) error
	Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
	Version(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// RedisPublisher keeps the leaderboard snapshot in Redis
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher over an existing client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// NewRedisClient initializes a Redis client with connection pooling and pings it
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.Redis.Username,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Publish replaces the snapshot in one MULTI/EXEC so readers never see a
// half-written leaderboard
func (r *RedisPublisher) Publish(ctx context.Context, entries []models.LeaderboardEntry) error {
	members := make([]redis.Z, 0, len(entries))
	values := make([]any, 0, len(entries)*2)
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode entry %d: %w", e.UserID, err)
		}
		id := strconv.FormatInt(e.UserID, 10)
		members = append(members, redis.Z{Score: float64(e.Rank), Member: id})
		values = append(values, id, payload)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, LeaderboardKey, EntriesKey)
	if len(members) > 0 {
		pipe.ZAdd(ctx, LeaderboardKey, members...)
		pipe.HSet(ctx, EntriesKey, values...)
	}
	pipe.Incr(ctx, VersionKey)

	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the best n entries of the last published snapshot
func (r *RedisPublisher) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		return []models.LeaderboardEntry{}, nil
	}

	ids, err := r.client.ZRange(ctx, LeaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.LeaderboardEntry{}, nil
	}

	raw, err := r.client.HMGet(ctx, EntriesKey, ids...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue // evicted between ZRANGE and HMGET
		}
		var e models.LeaderboardEntry
		if err := json.Unmarshal([]byte(s), &e); err != nil {
			return nil, fmt.Errorf("decode entry %s: %w", ids[i], err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Version returns the current snapshot version, 0 before the first publish
func (r *RedisPublisher) Version(ctx context.Context) (int64, error) {
	version, err := r.client.Get(ctx, VersionKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

// Ping checks if Redis is reachable
func (r *RedisPublisher) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisPublisher) Close() error {
	return r.client.Close()
}

// LocalPublisher keeps the snapshot in process memory. Used when Redis is
// disabled so the websocket hub still sees version changes.
type LocalPublisher struct {
	mu      sync.RWMutex
	entries []models.LeaderboardEntry
	version int64
}

// NewLocalPublisher creates an empty in-process publisher
func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{}
}

func (p *LocalPublisher) Publish(ctx context.Context, entries []models.LeaderboardEntry) error {
	snapshot := make([]models.LeaderboardEntry, len(entries))
	copy(snapshot, entries)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = snapshot
	p.version++
	return nil
}

func (p *LocalPublisher) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if n <= 0 {
		return []models.LeaderboardEntry{}, nil
	}
	if n > len(p.entries) {
		n = len(p.entries)
	}
	out := make([]models.LeaderboardEntry, n)
	copy(out, p.entries[:n])
	return out, nil
}

func (p *LocalPublisher) Version(ctx context.Context) (int64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version, nil
}

func (p *LocalPublisher) Ping(ctx context.Context) error { return nil }
func (p *LocalPublisher) Close() error                   { return nil }
