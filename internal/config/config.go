// Package config handles service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// RegistryPath overrides the embedded station dataset when set.
	RegistryPath string

	// ResultLimit is the default number of stations returned per query.
	ResultLimit int

	// Gemini disambiguation configuration.
	GeminiAPIKey    string
	GeminiEnabled   bool
	GeminiModel     string
	GeminiTimeout   time.Duration
	GeminiRateLimit float64
	AreaCacheSize   int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	geminiTimeout, err := parseDuration("GEMINI_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}

	resultLimit, err := parsePositiveInt("RESULT_LIMIT", 3)
	if err != nil {
		return nil, err
	}

	areaCacheSize, err := parsePositiveInt("AREA_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	rateLimit, err := parseRate("GEMINI_RATE_LIMIT", 1)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	enabled := apiKey != ""
	if v := os.Getenv("GEMINI_ENABLED"); v != "" {
		enabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RegistryPath:    os.Getenv("REGISTRY_PATH"),
		ResultLimit:     resultLimit,

		GeminiAPIKey:    apiKey,
		GeminiEnabled:   enabled,
		GeminiModel:     envOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiTimeout:   geminiTimeout,
		GeminiRateLimit: rateLimit,
		AreaCacheSize:   areaCacheSize,
	}

	if cfg.GeminiEnabled && cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_ENABLED is true but GEMINI_API_KEY is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseRate(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return f, nil
}
