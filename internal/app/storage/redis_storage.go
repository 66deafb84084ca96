package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tokebay/shortener/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyPrefix отделяет наши ключи от остальных в общей базе Redis
const keyPrefix = "shortener:"

type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(ctx context.Context, addr string) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{client: client}, nil
}

func (rs *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := rs.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		logger.Log.Error("Error get value from redis", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (rs *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := rs.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		logger.Log.Error("Error set value in redis", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (rs *RedisStorage) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}
