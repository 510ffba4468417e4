package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider"
)

// Cache stores the offers for one leg query. A hub sweep repeats the direct
// and leg queries often enough that caching them saves real provider calls.
type Cache interface {
	Get(ctx context.Context, q provider.Query) ([]models.Offer, bool)
	Set(ctx context.Context, q provider.Query, offers []models.Offer) error
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
		TTL:      5 * time.Minute,
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

func (c *RedisCache) Get(ctx context.Context, q provider.Query) ([]models.Offer, bool) {
	key := generateKey(q)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var offers []models.Offer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, false
	}

	// Parsed fields are not serialized; rebuild them.
	for i := range offers {
		offers[i].Normalize()
	}

	return offers, true
}

func (c *RedisCache) Set(ctx context.Context, q provider.Query, offers []models.Offer) error {
	key := generateKey(q)

	data, err := json.Marshal(offers)
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

func (c *NoOpCache) Get(ctx context.Context, q provider.Query) ([]models.Offer, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, q provider.Query, offers []models.Offer) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(q provider.Query) string {
	data, _ := json.Marshal(struct {
		Origin      string
		Destination string
		Date        string
		MaxStops    int
		Sort        string
	}{
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        q.Date,
		MaxStops:    q.MaxStops,
		Sort:        q.Sort,
	})
	hash := sha256.Sum256(data)
	return "fare:" + hex.EncodeToString(hash[:])
}
