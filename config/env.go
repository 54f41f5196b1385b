package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	BackendURL    string
	BackendAPIKey string
	JWTSecret     string
	RedisAddr     string
	RedisURL      string
	CartTTL       time.Duration
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cartTTL, err := time.ParseDuration(getEnv("CART_TTL", "720h"))
	if err != nil || cartTTL <= 0 {
		cartTTL = 720 * time.Hour
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		BackendURL:    getEnv("BACKEND_URL", "http://localhost:54321"),
		BackendAPIKey: getEnv("BACKEND_API_KEY", ""),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisURL:      getEnv("REDIS_URL", ""),
		CartTTL:       cartTTL,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
	log.Printf("Backend platform: %s", AppConfig.BackendURL)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
