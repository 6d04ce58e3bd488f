package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const DATE_PARSE_FORMAT = "2006-01-02"

// GetEnv returns the value of key or fallback when it is unset or empty.
func GetEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

func GetInt(key string, fallback int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return i
}

func APIEnv() string {
	return GetEnv("API_ENV", "local")
}

func Port() string {
	return GetEnv("PORT", "3000")
}

func AppHost() string {
	return GetEnv("APP_HOST", "http://localhost:5173")
}

func Currency() string {
	return GetEnv("PAYMENT_CURRENCY", "usd")
}

func RoleCacheTTL() time.Duration {
	return GetDuration("ROLE_CACHE_TTL", 5*time.Minute)
}

func SettlementRetryInterval() time.Duration {
	return GetDuration("SETTLEMENT_RETRY_INTERVAL", 10*time.Minute)
}

func SettlementRetryBatch() int {
	return GetInt("SETTLEMENT_RETRY_BATCH", 50)
}
