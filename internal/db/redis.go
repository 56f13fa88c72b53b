package db

import (
	"time"

	"github.com/harshit001122/Tracking-system/internal/config"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns the client used for cross-instance stream fan-out, or
// nil when no address is configured. The connection is established lazily.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		ClientName:   "fieldtrack-api",
		DialTimeout:  5 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}
