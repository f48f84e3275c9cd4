package repository

import (
	"context"
	"fmt"
	"time"

	"logscope/internal/config"
	"logscope/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// Redis keys
	ReportKeyPrefix    = "logscope:report:"
	RecentReportsKey   = "logscope:reports"
	DefaultReportTTL   = 7 * 24 * time.Hour
	DefaultRecentLimit = 100
)

// RedisRepository caches analysis reports in Redis
type RedisRepository struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(cfg *config.RedisConfig) (*RedisRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("Redis connected successfully")

	return &RedisRepository{
		client: rdb,
		cfg:    cfg,
	}, nil
}

// SaveReport stores the msgpack-encoded envelope under its run ID and
// pushes the run ID onto the capped recent list
func (r *RedisRepository) SaveReport(ctx context.Context, env *model.ReportEnvelope) error {
	data, err := msgpack.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.reportKey(env.RunID), data, r.ttl())
	pipe.LPush(ctx, RecentReportsKey, env.RunID)
	pipe.LTrim(ctx, RecentReportsKey, 0, r.recentLimit()-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache report %s: %w", env.RunID, err)
	}
	return nil
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func (r *RedisRepository) reportKey(runID string) string {
	return ReportKeyPrefix + runID
}

func (r *RedisRepository) ttl() time.Duration {
	if r.cfg == nil || r.cfg.TTL <= 0 {
		return DefaultReportTTL
	}
	return r.cfg.TTL
}

func (r *RedisRepository) recentLimit() int64 {
	if r.cfg == nil || r.cfg.RecentLimit <= 0 {
		return DefaultRecentLimit
	}
	return r.cfg.RecentLimit
}
