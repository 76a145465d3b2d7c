// Package config provides configuration for the dispatcher.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the dispatcher configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Completion service
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Telemetry providers
	MotiveBaseURL      string
	MotiveAPIKey       string
	TelematicsBBaseURL string
	TelematicsBAPIKey  string
	ProviderTimeout    time.Duration

	// Logging
	LogLevel string
}

// fileConfig mirrors the optional TOML config file. Env vars override any
// value set here.
type fileConfig struct {
	HTTPPort    int    `toml:"http_port"`
	DatabaseURL string `toml:"database_url"`

	LLM struct {
		BaseURL   string `toml:"base_url"`
		APIKey    string `toml:"api_key"`
		Model     string `toml:"model"`
		TimeoutMs int    `toml:"timeout_ms"`
	} `toml:"llm"`

	Motive struct {
		BaseURL string `toml:"base_url"`
		APIKey  string `toml:"api_key"`
	} `toml:"motive"`

	TelematicsB struct {
		BaseURL string `toml:"base_url"`
		APIKey  string `toml:"api_key"`
	} `toml:"telematics_b"`

	ProviderTimeoutMs int    `toml:"provider_timeout_ms"`
	LogLevel          string `toml:"log_level"`
}

// Load builds the configuration from an optional TOML file (path in
// DISPATCHER_CONFIG) with environment variables taking precedence.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("DISPATCHER_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", orInt(file.HTTPPort, 8080)),
		DatabaseURL:        getEnv("DATABASE_URL", orStr(file.DatabaseURL, "file:dispatcher.db?cache=shared&mode=rwc")),
		LLMBaseURL:         getEnv("LLM_BASE_URL", orStr(file.LLM.BaseURL, "http://localhost:4000")),
		LLMAPIKey:          getEnv("LLM_API_KEY", file.LLM.APIKey),
		LLMModel:           getEnv("LLM_MODEL", orStr(file.LLM.Model, "gpt-4o")),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", orInt(file.LLM.TimeoutMs, 60000))) * time.Millisecond,
		MotiveBaseURL:      getEnv("MOTIVE_BASE_URL", file.Motive.BaseURL),
		MotiveAPIKey:       getEnv("MOTIVE_API_KEY", file.Motive.APIKey),
		TelematicsBBaseURL: getEnv("TELEMATICS_B_BASE_URL", file.TelematicsB.BaseURL),
		TelematicsBAPIKey:  getEnv("TELEMATICS_B_API_KEY", file.TelematicsB.APIKey),
		ProviderTimeout:    time.Duration(getEnvInt("PROVIDER_TIMEOUT_MS", orInt(file.ProviderTimeoutMs, 5000))) * time.Millisecond,
		LogLevel:           getEnv("LOG_LEVEL", orStr(file.LogLevel, "info")),
	}
	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func orStr(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

func orInt(val, defaultVal int) int {
	if val != 0 {
		return val
	}
	return defaultVal
}
