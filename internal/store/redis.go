package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexdoe/folio/internal/constants"
	"github.com/alexdoe/folio/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKV is the shared-storage backend for deployments where the server
// itself is ephemeral (container restarts must not lose edits).
type RedisKV struct {
	client *redis.Client
	logger *zap.Logger
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func NewRedisKV(cfg RedisConfig, logger *zap.Logger) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  constants.StoreConfig.RedisDialTimeout,
		ReadTimeout:  constants.StoreConfig.RedisOpTimeout,
		WriteTimeout: constants.StoreConfig.RedisOpTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.StoreConfig.RedisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewStoreError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &RedisKV{
		client: client,
		logger: logger,
	}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Redis get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewStoreError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			return true, errors.NewParseError("stored value is not valid JSON", key, err)
		}
	}

	return true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.NewStoreError("marshal failed", "set", key, err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("Redis set failed", zap.String("key", key), zap.Error(err))
		return errors.NewStoreError("set failed", "set", key, err)
	}

	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis delete failed", zap.String("key", key), zap.Error(err))
		return errors.NewStoreError("delete failed", "del", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	r.logger.Info("Redis disconnected")
	return nil
}
