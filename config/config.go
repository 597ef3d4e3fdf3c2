package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	Environment string
	Port        string

	MongoURI       string
	MongoDB        string
	ConnectTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL string

	Gateway Gateway
}

// Gateway holds the payment provider settings. The access token and redirect
// URLs must come from the environment, never from source.
type Gateway struct {
	BaseURL        string
	AccessToken    string
	SuccessURL     string
	FailureURL     string
	PendingURL     string
	RequestTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Environment:    getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3001"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGODB_DB", "storefront"),
		ConnectTimeout: getDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       time.Hour,
		RedisURL:       os.Getenv("REDIS_URL"),
		Gateway: Gateway{
			BaseURL:        getEnv("GATEWAY_BASE_URL", "https://api.mercadopago.com"),
			AccessToken:    os.Getenv("GATEWAY_ACCESS_TOKEN"),
			SuccessURL:     getEnv("GATEWAY_SUCCESS_URL", "http://localhost:3000/checkout/success"),
			FailureURL:     getEnv("GATEWAY_FAILURE_URL", "http://localhost:3000/checkout/failure"),
			PendingURL:     getEnv("GATEWAY_PENDING_URL", "http://localhost:3000/checkout/pending"),
			RequestTimeout: getDuration("GATEWAY_REQUEST_TIMEOUT", 30*time.Second),
		},
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
