package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	AppEnv    string
	Port      string
	LogLevel  string
	LogFormat string

	AWSRegion   string
	AWSEndpoint string

	JournalsTable string
	MessagesTable string
	ResultsTable  string
	ResultTTL     time.Duration

	RedisURL       string
	ResultCacheTTL time.Duration

	ModelPath    string
	KeywordsPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		AWSEndpoint:   getEnv("AWS_ENDPOINT", ""),
		JournalsTable: getEnv("JOURNALS_TABLE", "Journals"),
		MessagesTable: getEnv("MESSAGES_TABLE", "ChatMessages"),
		ResultsTable:  getEnv("RESULTS_TABLE", "AnalysisResults"),
		RedisURL:      getEnv("REDIS_URL", ""),
		ModelPath:     getEnv("MODEL_PATH", ""),
		KeywordsPath:  getEnv("KEYWORDS_PATH", ""),
	}

	resultTTL, err := time.ParseDuration(getEnv("RESULT_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("RESULT_TTL must be a valid duration: %w", err)
	}
	cfg.ResultTTL = resultTTL

	cacheTTL, err := time.ParseDuration(getEnv("RESULT_CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("RESULT_CACHE_TTL must be a valid duration: %w", err)
	}
	cfg.ResultCacheTTL = cacheTTL

	if cfg.JournalsTable == "" {
		return nil, fmt.Errorf("JOURNALS_TABLE is required")
	}
	if cfg.MessagesTable == "" {
		return nil, fmt.Errorf("MESSAGES_TABLE is required")
	}
	if cfg.ResultsTable == "" {
		return nil, fmt.Errorf("RESULTS_TABLE is required")
	}

	switch cfg.LogFormat {
	case "json", "text", "pretty":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be one of json, text, pretty, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
