// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"tripplanner/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient caches web search results.
	CacheClient *redis.Client
	// SessionClient holds the per-session itinerary slot.
	SessionClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis db %d: %w", db, err)
	}
	return client, nil
}

// InitRedis connects the cache and session clients. Both stay nil when Redis is disabled.
func InitRedis() error {
	if !config.AppConfig.RedisEnabled {
		return nil
	}
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return err
	}
	if SessionClient, err = newRedisClient(config.AppConfig.RedisSessionDB); err != nil {
		_ = CacheClient.Close()
		CacheClient = nil
		return err
	}
	return nil
}

// RedisClients returns the connected clients, for health checks and shutdown.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, SessionClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
