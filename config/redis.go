package config

import (
	"log"

	"tuiter/global"

	"github.com/go-redis/redis"
)

func initRedis(cfg *Config, res *global.Resources) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})

	if _, err := client.Ping().Result(); err != nil {
		log.Fatalf("Failed to connect to Redis, got error: %v", err)
	}

	res.RedisDB = client
}
