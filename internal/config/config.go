package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration. Values come from an optional
// YAML file (path in QUICKTOOLS_CONFIG), overridden by environment
// variables.
type Config struct {
	Port          string   `yaml:"port"`
	LogLevel      string   `yaml:"log_level"`
	PostgresDSN   string   `yaml:"postgres_dsn"`
	ClickHouseDSN string   `yaml:"clickhouse_dsn"`
	APIKeys       []string `yaml:"api_keys"`
	AuthCacheTTL  int      `yaml:"auth_cache_ttl_s"`
	ToolCacheTTL  int      `yaml:"tool_cache_ttl_s"`
}

// Load builds the configuration from file and environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         "8080",
		LogLevel:     "info",
		AuthCacheTTL: 30,
		ToolCacheTTL: 60,
	}

	if path := os.Getenv("QUICKTOOLS_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
	}

	cfg.Port = envOrDefault("QUICKTOOLS_PORT", cfg.Port)
	cfg.LogLevel = envOrDefault("QUICKTOOLS_LOG_LEVEL", cfg.LogLevel)
	cfg.PostgresDSN = envOrDefault("POSTGRES_DSN", cfg.PostgresDSN)
	cfg.ClickHouseDSN = envOrDefault("CLICKHOUSE_DSN", cfg.ClickHouseDSN)
	cfg.AuthCacheTTL = envOrDefaultInt("QUICKTOOLS_AUTH_CACHE_TTL_S", cfg.AuthCacheTTL)
	cfg.ToolCacheTTL = envOrDefaultInt("QUICKTOOLS_TOOL_CACHE_TTL_S", cfg.ToolCacheTTL)
	if keys := os.Getenv("QUICKTOOLS_API_KEYS"); keys != "" {
		cfg.APIKeys = splitKeys(keys)
	}

	return cfg, nil
}

// splitKeys parses a comma-separated key list, dropping empty entries.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
