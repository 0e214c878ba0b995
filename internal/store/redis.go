package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sovdevs/weirdFlights/internal/models"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Key      string
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		Key:  "weirdflights:dataset",
	}
}

// RedisStore keeps the dataset under a single key with no expiry; the
// next run replaces it wholesale.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	key := cfg.Key
	if key == "" {
		key = DefaultRedisConfig().Key
	}

	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Load(ctx context.Context) (*models.Dataset, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return &ds, nil
}

func (s *RedisStore) Save(ctx context.Context, ds *models.Dataset) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
