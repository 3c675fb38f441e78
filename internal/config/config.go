package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Ledger   LedgerConfig
	SeedDemo bool
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// DSN builds the PostgreSQL connection string for pgdriver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

type RedisConfig struct {
	Addr     string
	Enabled  bool
	CacheTTL time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Enabled bool
}

type LedgerConfig struct {
	// ClaimTimeout bounds how long a claim may wait on per-seat locks
	// before giving up and reporting a conflict.
	ClaimTimeout time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Username: getEnv("DB_USERNAME", "eventspark"),
			Password: getEnv("DB_PASSWORD", "eventspark"),
			Database: getEnv("DB_NAME", "eventspark"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			CacheTTL: time.Duration(getEnvInt("SEATMAP_CACHE_TTL_SECONDS", 5)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Enabled: getEnvBool("KAFKA_ENABLED", false),
		},
		Ledger: LedgerConfig{
			ClaimTimeout: time.Duration(getEnvInt("CLAIM_TIMEOUT_MS", 3000)) * time.Millisecond,
		},
		SeedDemo: getEnvBool("SEED_DEMO_DATA", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
