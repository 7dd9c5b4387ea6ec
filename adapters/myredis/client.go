package myredis

import (
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr string
}

// NewRedisUniversalClient creates a client from a redis:// URL or a plain host:port address.
func NewRedisUniversalClient(addr string) (redis.UniversalClient, error) {
	if strings.Contains(addr, "://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("can't parse redis url %q, err: %w", addr, err)
		}
		return redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{opts.Addr},
			Username: opts.Username,
			Password: opts.Password,
			DB:       opts.DB,
		}), nil
	}
	if addr == "" {
		return nil, fmt.Errorf("redis address is empty")
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}}), nil
}
