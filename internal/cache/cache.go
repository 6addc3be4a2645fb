// Package cache stores search responses keyed by endpoint and request body.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

type Cache interface {
	Get(ctx context.Context, endpoint string, req any) (*models.SearchResult, bool)
	Set(ctx context.Context, endpoint string, req any, result *models.SearchResult) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      10 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
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

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, endpoint string, req any) (*models.SearchResult, bool) {
	key, err := generateKey(endpoint, req)
	if err != nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var result models.SearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}

	return &result, true
}

func (c *RedisCache) Set(ctx context.Context, endpoint string, req any, result *models.SearchResult) error {
	key, err := generateKey(endpoint, req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, endpoint string, req any) (*models.SearchResult, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, endpoint string, req any, result *models.SearchResult) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(endpoint string, req any) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(append([]byte(endpoint+"\x00"), data...))
	return "travel:" + hex.EncodeToString(hash[:]), nil
}
