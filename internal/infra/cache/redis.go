package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient connects to url and pings it. It returns nil when url is
// empty or the server is unreachable; callers fall back to in-process state.
func NewRedisClient(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[redis] invalid REDIS_URL: %v", err)
		return nil
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] ping failed, continuing without redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
