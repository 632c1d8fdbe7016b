package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the Cache implementation backed by go-redis
type Redis struct {
	client *redis.Client
}

// NewRedis connects and pings; callers fall back to the in-memory cache
// when this fails, so a dead Redis degrades rather than blocks startup.
func NewRedis(addr, password string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[Cache] set %s failed: %v", key, err)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}

// Clear drops only this service's keys, not the whole database
func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, "console:*", 100).Iterator()
	for iter.Next(ctx) {
		r.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[Cache] clear failed: %v", err)
	}
}

// Ping reports Redis liveness for health checks
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
