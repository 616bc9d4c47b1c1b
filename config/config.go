package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:""`
	DBName     string `env:"DB_NAME" envDefault:"pickline"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AgentBaseURL string `env:"AGENT_BASE_URL" envDefault:""`
	AgentAPIKey  string `env:"AGENT_API_KEY" envDefault:""`

	SeasonYear int `env:"SEASON_YEAR" envDefault:"2025"`

	BetSize       float64 `env:"BET_SIZE" envDefault:"1"`
	VigMultiplier float64 `env:"VIG_MULTIPLIER" envDefault:"1.1"`

	// The badge and headline thresholds are deliberately independent; the
	// product uses 5% for badges and 7% for the headline section.
	BadgeEdgeThreshold    float64 `env:"BADGE_EDGE_THRESHOLD" envDefault:"5"`
	HeadlineEdgeThreshold float64 `env:"HEADLINE_EDGE_THRESHOLD" envDefault:"7"`
	MinEdgeFloor          float64 `env:"MIN_EDGE_FLOOR" envDefault:"0"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "pickline")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.RedisAddr = getEnvWithDefault("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvIntWithDefault("REDIS_DB", 0)

	cfg.AgentBaseURL = os.Getenv("AGENT_BASE_URL")
	cfg.AgentAPIKey = os.Getenv("AGENT_API_KEY")

	cfg.SeasonYear = getEnvIntWithDefault("SEASON_YEAR", 2025)

	cfg.BetSize = getEnvFloatWithDefault("BET_SIZE", 1)
	cfg.VigMultiplier = getEnvFloatWithDefault("VIG_MULTIPLIER", 1.1)
	cfg.BadgeEdgeThreshold = getEnvFloatWithDefault("BADGE_EDGE_THRESHOLD", 5)
	cfg.HeadlineEdgeThreshold = getEnvFloatWithDefault("HEADLINE_EDGE_THRESHOLD", 7)
	cfg.MinEdgeFloor = getEnvFloatWithDefault("MIN_EDGE_FLOOR", 0)

	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	return &cfg, nil
}

func getEnvWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntWithDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvInt64WithDefault(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloatWithDefault(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}
