package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/GriffinCanCode/AuraOS/internal/shared/utils"
)

// PlaceholderAPIKey is used when API_KEY is unset so the relay still boots.
// Every provider call then fails and surfaces as HTTP 500.
const PlaceholderAPIKey = "TEMP_KEY"

// Config holds all relay configuration
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Breaker   BreakerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	State     StateConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"3001"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	BodyLimit       int64         `envconfig:"BODY_LIMIT" default:"2097152"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	Compress        bool          `envconfig:"COMPRESS" default:"true"`
}

// AIConfig holds generative model configuration
type AIConfig struct {
	APIKey      string        `envconfig:"API_KEY"`
	BaseURL     string        `envconfig:"AI_BASE_URL"`
	ChatModel   string        `envconfig:"AI_CHAT_MODEL" default:"gemini-2.5-flash"`
	MapsModel   string        `envconfig:"AI_MAPS_MODEL" default:"gemini-2.5-flash"`
	SpeechModel string        `envconfig:"AI_TTS_MODEL" default:"gemini-2.5-flash-preview-tts"`
	Voice       string        `envconfig:"AI_VOICE" default:"Kore"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
}

// BreakerConfig holds circuit breaker settings for provider calls
type BreakerConfig struct {
	Enabled          bool          `envconfig:"BREAKER_ENABLED" default:"true"`
	FailureThreshold uint32        `envconfig:"BREAKER_FAILURES" default:"5"`
	OpenTimeout      time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
// Disabled by default: the relay does not throttle callers.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
}

// CORSConfig holds the browser origin allow-list
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000,http://10.0.2.15:3000,https://lrufee9-spec.github.io"`
}

// StateConfig holds SystemState boot options
type StateConfig struct {
	SeedFile string `envconfig:"SEED_FILE"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// HasAPIKey reports whether a real provider credential is configured
func (c *Config) HasAPIKey() bool {
	return c.AI.APIKey != "" && c.AI.APIKey != PlaceholderAPIKey
}

// EffectiveAPIKey returns the configured key or the placeholder
func (c *Config) EffectiveAPIKey() string {
	if c.AI.APIKey == "" {
		return PlaceholderAPIKey
	}
	return c.AI.APIKey
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "3001",
			Host:            "0.0.0.0",
			BodyLimit:       utils.MaxBodySize,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Compress:        true,
		},
		AI: AIConfig{
			ChatModel:   "gemini-2.5-flash",
			MapsModel:   "gemini-2.5-flash",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			Voice:       "Kore",
			Timeout:     60 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           false,
		},
		CORS: CORSConfig{
			Origins: DefaultOrigins(),
		},
	}
}

// DefaultOrigins returns the browser origins allowed out of the box
func DefaultOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://10.0.2.15:3000",
		"https://lrufee9-spec.github.io",
	}
}
