package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront_service/internal/models"
	"storefront_service/internal/storage"

	"github.com/redis/go-redis/v9"
)

// Cache stores news responses keyed by query parameters with a fixed TTL.
type Cache struct {
	client     *redis.Client
	DefaultTTL time.Duration
}

func New(ctx context.Context, address string, db int, defaultTTL time.Duration) (*Cache, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr: address,
		DB:   db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Cache{
		client:     rdb,
		DefaultTTL: defaultTTL,
	}, nil
}

func (c *Cache) SaveNews(ctx context.Context, key string, articles []models.Article) error {
	const op = "storage.redis.SaveNews"

	data, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(
		ctx,
		newsKey(key),
		data,
		c.DefaultTTL,
	).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Cache) News(ctx context.Context, key string) ([]models.Article, error) {
	const op = "storage.redis.News"

	data, err := c.client.Get(ctx, newsKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, storage.ErrCacheMiss
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var articles []models.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return articles, nil
}

func newsKey(key string) string {
	return fmt.Sprintf("news:%s", key)
}

func (c *Cache) Close() {
	c.client.Close()
}
