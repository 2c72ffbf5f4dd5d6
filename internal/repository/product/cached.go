package product

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"agrimart/internal/domain"
	"github.com/redis/go-redis/v9"
)

const listCacheKey = "agrimart:products:all"

// Cached is a read-through Redis cache in front of the product list.
// Redis failures are logged and the call falls through to the wrapped repository.
type Cached struct {
	next   Repository
	redis  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCached(next Repository, client *redis.Client, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{next: next, redis: client, ttl: ttl, logger: logger}
}

func (c *Cached) List(ctx context.Context) ([]domain.Product, error) {
	data, err := c.redis.Get(ctx, listCacheKey).Bytes()
	switch {
	case err == nil:
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		c.logger.Printf("product cache: decode key=%s error=%v (continuing with db)", listCacheKey, err)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Printf("product cache: get key=%s error=%v (continuing with db)", listCacheKey, err)
	}

	products, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Printf("product cache: encode error=%v", err)
		return products, nil
	}
	if err := c.redis.Set(ctx, listCacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Printf("product cache: set key=%s error=%v", listCacheKey, err)
	}
	return products, nil
}

func (c *Cached) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return c.next.GetByID(ctx, id)
}

func (c *Cached) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	res, err := c.next.Upsert(ctx, product)
	if err != nil {
		return nil, err
	}
	c.Invalidate(ctx)
	return res, nil
}

// Invalidate drops the cached product list.
func (c *Cached) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, listCacheKey).Err(); err != nil {
		c.logger.Printf("product cache: del key=%s error=%v", listCacheKey, err)
	}
}

// ConnectRedis opens a client and verifies it with a ping.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}
