package redisrepo

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/batchauction/dexclient/domain"
)

// KeyPrefix namespaces every key written by the client.
const KeyPrefix = "dexclient:"

type redisRepo struct {
	client *redis.Client
}

var _ domain.KVStore = &redisRepo{}

// New creates a new key-value store backed by redisClient.
func New(redisClient *redis.Client) *redisRepo {
	return &redisRepo{
		client: redisClient,
	}
}

// NewFromConfig creates the redis client described by config and ensures that it is up.
func NewFromConfig(ctx context.Context, config domain.StorageConfig) (*redisRepo, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient.Close()
		return nil, err
	}

	return New(redisClient), nil
}

// Get implements domain.KVStore.
func (r *redisRepo) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements domain.KVStore.
func (r *redisRepo) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, KeyPrefix+key, value, 0).Err()
}

// Close implements domain.KVStore.
func (r *redisRepo) Close() error {
	return r.client.Close()
}
