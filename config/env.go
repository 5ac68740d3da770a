package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Port              string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxConns        int32
	MigrationsDir     string
	RedisURL          string
	RedisAddr         string
	RedisPassword     string
	ProductCacheTTL   time.Duration
	JWTSecret         string
	JWTExpiry         time.Duration
	CashierSessionTTL time.Duration
	OriginURL         string
	LogLevel          string
	AdminUsername     string
	AdminPassword     string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxConns, _ := strconv.Atoi(os.Getenv("DB_MAX_CONNS"))
	if maxConns <= 0 {
		maxConns = 25
	}

	AppConfig = &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "sinar_terang"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:        int32(maxConns),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", "database/migration"),
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		ProductCacheTTL:   getDuration("PRODUCT_CACHE_TTL", 5*time.Minute),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTExpiry:         getDuration("JWT_EXPIRY", 24*time.Hour),
		CashierSessionTTL: getDuration("CASHIER_SESSION_TTL", 2*time.Hour),
		OriginURL:         os.Getenv("ORIGIN_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
