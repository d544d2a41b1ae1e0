// Package config provides configuration loading and validation for the
// server and CLI. Values come from the environment, an optional JSON file,
// and built-in defaults, in that order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Built-in defaults
const (
	DefaultPort             = 3000
	DefaultLLMProvider      = "openai"
	DefaultLinkedInProvider = "demo"
	DefaultTimeout          = 60 * time.Second
	DefaultMaxResumeLength  = 10000
	DefaultPublishBaseURL   = "https://portfolioai.com"
)

// Duration is a time.Duration that reads "60s"-style strings or seconds from JSON
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// Config holds every setting the server and CLI consume.
// All fields are optional in a config file.
type Config struct {
	Port    int  `json:"port,omitempty"`
	Verbose bool `json:"verbose,omitempty"`

	// Completion service
	LLMProvider   string `json:"llm_provider,omitempty"`
	LLMAPIKey     string `json:"llm_api_key,omitempty"`
	LLMBaseURL    string `json:"llm_base_url,omitempty"`
	GenerateModel string `json:"generate_model,omitempty"`
	UpdateModel   string `json:"update_model,omitempty"`

	// Profile sources
	GitHubToken          string `json:"github_token,omitempty"`
	GitHubAPIURL         string `json:"github_api_url,omitempty"`
	LinkedInProvider     string `json:"linkedin_provider,omitempty"`
	LinkedInEnrichURL    string `json:"linkedin_enrich_url,omitempty"`
	LinkedInEnrichAPIKey string `json:"linkedin_enrich_api_key,omitempty"`

	// Limits
	GenerationTimeout Duration `json:"generation_timeout,omitempty"`
	UpdateTimeout     Duration `json:"update_timeout,omitempty"`
	MaxResumeLength   int      `json:"max_resume_length,omitempty"`

	// Publish
	PublishBaseURL string `json:"publish_base_url,omitempty"`
	AuthJWTSecret  string `json:"auth_jwt_secret,omitempty"`
	AuthJWTIssuer  string `json:"auth_jwt_issuer,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:              DefaultPort,
		LLMProvider:       DefaultLLMProvider,
		LinkedInProvider:  DefaultLinkedInProvider,
		GenerationTimeout: Duration(DefaultTimeout),
		UpdateTimeout:     Duration(DefaultTimeout),
		MaxResumeLength:   DefaultMaxResumeLength,
		PublishBaseURL:    DefaultPublishBaseURL,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration from environment variables. Unset
// variables leave fields empty so they can be merged with other layers.
func FromEnv() Config {
	cfg := Config{
		Port:                 getEnvInt("PORT", 0),
		Verbose:              getEnvBool("VERBOSE", false),
		LLMProvider:          strings.ToLower(os.Getenv("LLM_PROVIDER")),
		LLMAPIKey:            os.Getenv("LLM_API_KEY"),
		LLMBaseURL:           os.Getenv("LLM_BASE_URL"),
		GenerateModel:        os.Getenv("LLM_GENERATE_MODEL"),
		UpdateModel:          os.Getenv("LLM_UPDATE_MODEL"),
		GitHubToken:          os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL:         os.Getenv("GITHUB_API_URL"),
		LinkedInProvider:     strings.ToLower(os.Getenv("LINKEDIN_PROVIDER")),
		LinkedInEnrichURL:    os.Getenv("LINKEDIN_ENRICH_URL"),
		LinkedInEnrichAPIKey: os.Getenv("LINKEDIN_ENRICH_API_KEY"),
		GenerationTimeout:    Duration(getEnvDuration("GENERATION_TIMEOUT", 0)),
		UpdateTimeout:        Duration(getEnvDuration("UPDATE_TIMEOUT", 0)),
		MaxResumeLength:      getEnvInt("MAX_RESUME_LENGTH", 0),
		PublishBaseURL:       os.Getenv("PUBLISH_BASE_URL"),
		AuthJWTSecret:        os.Getenv("AUTH_JWT_SECRET"),
		AuthJWTIssuer:        os.Getenv("AUTH_JWT_ISSUER"),
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = providerKeyFromEnv(cfg.LLMProvider)
	}
	return cfg
}

// Load layers environment over the optional config file over defaults,
// then validates the result.
func Load(path string) (*Config, error) {
	cfg := FromEnv()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
		if !cfg.Verbose {
			cfg.Verbose = fileCfg.Verbose
		}
	}

	cfg = cfg.MergeWithDefaults(Defaults())
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = providerKeyFromEnv(cfg.LLMProvider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// providerKeyFromEnv falls back to the provider's conventional variable
func providerKeyFromEnv(provider string) string {
	var keys []string
	switch provider {
	case "gemini":
		keys = []string{"GEMINI_API_KEY"}
	case "anthropic":
		keys = []string{"ANTHROPIC_API_KEY"}
	default:
		keys = []string{"GROQ_API_KEY", "OPENAI_API_KEY"}
	}
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the configuration has valid values.
// The completion API key is not required here since only commands that
// call the completion service need it.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case "", "openai", "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: unsupported llm_provider %q", c.LLMProvider)
	}

	switch c.LinkedInProvider {
	case "", "demo":
	case "http":
		if c.LinkedInEnrichURL == "" {
			return fmt.Errorf("config error: 'linkedin_enrich_url' is required when linkedin_provider is http")
		}
	default:
		return fmt.Errorf("config error: unsupported linkedin_provider %q", c.LinkedInProvider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxResumeLength < 0 {
		return fmt.Errorf("config error: 'max_resume_length' must be non-negative")
	}
	if c.GenerationTimeout < 0 || c.UpdateTimeout < 0 {
		return fmt.Errorf("config error: timeouts must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.LLMProvider, defaults.LLMProvider)
	mergeString(&result.LLMAPIKey, defaults.LLMAPIKey)
	mergeString(&result.LLMBaseURL, defaults.LLMBaseURL)
	mergeString(&result.GenerateModel, defaults.GenerateModel)
	mergeString(&result.UpdateModel, defaults.UpdateModel)
	mergeString(&result.GitHubToken, defaults.GitHubToken)
	mergeString(&result.GitHubAPIURL, defaults.GitHubAPIURL)
	mergeString(&result.LinkedInProvider, defaults.LinkedInProvider)
	mergeString(&result.LinkedInEnrichURL, defaults.LinkedInEnrichURL)
	mergeString(&result.LinkedInEnrichAPIKey, defaults.LinkedInEnrichAPIKey)
	mergeString(&result.PublishBaseURL, defaults.PublishBaseURL)
	mergeString(&result.AuthJWTSecret, defaults.AuthJWTSecret)
	mergeString(&result.AuthJWTIssuer, defaults.AuthJWTIssuer)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxResumeLength == 0 {
		result.MaxResumeLength = defaults.MaxResumeLength
	}
	if result.GenerationTimeout == 0 {
		result.GenerationTimeout = defaults.GenerationTimeout
	}
	if result.UpdateTimeout == 0 {
		result.UpdateTimeout = defaults.UpdateTimeout
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	return result
}

func mergeString(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
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

// getEnvDuration accepts "45s"-style durations or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
