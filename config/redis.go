package config

import "github.com/redis/go-redis/v9"

// InitRedis builds the client used for the winners leaderboard.
func InitRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
