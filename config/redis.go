package config

import (
	"context"
	"os"
	"github.com/redis/go-redis/v9"
)

// RedisClient is a global Redis client instance
var RedisClient *redis.Client
//Accessed as config.RedisClient in other files

// InitRedis leaves RedisClient nil when REDIS_ADDR is unset; the option cache then
// stays process-local.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
}

// PingRedis disables Redis when it is configured but unreachable.
func PingRedis() string {
	if RedisClient == nil {
		return "Redis not configured, option cache is in-memory."
	}
	if err := RedisClient.Ping(RedisCtx()).Err(); err != nil {
		RedisClient = nil
		return "Redis configured but not reachable, option cache is in-memory."
	}
	return "Redis connection successful."
}

func RedisCtx() context.Context {
	return context.Background()
}
