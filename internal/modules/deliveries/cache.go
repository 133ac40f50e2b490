package deliveries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 24 * time.Hour

// Cache is a read-through Redis cache for single-delivery lookups. All cache
// failures are soft: the service logs them and falls back to the database.
type Cache struct {
	client *redis.Client
}

// NewCache connects to Redis at addr and verifies the connection.
func NewCache(addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func cacheKey(id string) string {
	return fmt.Sprintf("delivery:%s", id)
}

// Set stores a delivery under its record id.
func (c *Cache) Set(ctx context.Context, d *models.Delivery) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(d.ID), data, cacheTTL).Err()
}

// Get returns the cached delivery, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, id string) (*models.Delivery, error) {
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var d models.Delivery
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Invalidate drops the cached entry for id.
func (c *Cache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, cacheKey(id)).Err()
}
