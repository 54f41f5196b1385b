package models

import (
	"context"
	"log"

	"aidla/config"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis connects the cart persistence store. The cart is a best-effort
// client cache (the backend is authoritative for stock and pricing), so a
// missing or unreachable Redis downgrades to in-process storage instead of
// failing startup.
func InitRedis() {
	var opt *redis.Options
	if config.AppConfig.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(config.AppConfig.RedisURL)
		if err != nil {
			log.Println("Failed to parse Redis URL:", err)
			log.Println("Running with in-process cart storage")
			return
		}
		opt = parsedOpt
	} else {
		opt = &redis.Options{
			Addr: config.AppConfig.RedisAddr,
			DB:   0,
		}
	}

	RedisClient = redis.NewClient(opt)

	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		log.Println("Redis connection failed:", err)
		log.Println("Running with in-process cart storage")
		RedisClient = nil
		return
	}

	log.Println("Redis connected")
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
	}
}
