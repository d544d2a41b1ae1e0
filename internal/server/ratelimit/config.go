package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for the expensive endpoints
const (
	DefaultLimit   = 5
	DefaultWindow  = time.Minute
	DefaultMaxKeys = 500
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled  bool
	Limit    int
	Window   time.Duration
	MaxKeys  int
	RedisURL string

	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	limit := getEnvInt("RATE_LIMIT_LIMIT", DefaultLimit)
	window := getEnvDuration("RATE_LIMIT_WINDOW", DefaultWindow)

	return &Config{
		Enabled:         enabled,
		Limit:           limit,
		Window:          window,
		MaxKeys:         getEnvInt("RATE_LIMIT_MAX_KEYS", DefaultMaxKeys),
		RedisURL:        getEnvString("RATE_LIMIT_REDIS_URL", ""),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(limit, window),
	}
}

// DefaultEndpointConfigs limits the completion-backed endpoints.
// Every other route is unlimited.
func DefaultEndpointConfigs(limit int, window time.Duration) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/generate", Method: "POST", Limit: limit, Window: window},
		{Path: "/generate/stream", Method: "POST", Limit: limit, Window: window},
		{Path: "/update", Method: "POST", Limit: limit, Window: window},
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
