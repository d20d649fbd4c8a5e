// Package config provides 12-factor configuration for the Aura relay.
//
// Configuration is loaded from environment variables with defaults.
// CLI flags on cmd/server override a few of them.
//
// Configuration Sections:
//   - Server: bind address, body limit, timeouts, compression
//   - AI: provider credential, model names, voice, call timeout
//   - Breaker: circuit breaker around provider calls
//   - Logging: log level and output format
//   - RateLimit: optional per-IP throttling (off by default)
//   - CORS: browser origin allow-list
//   - State: optional TOML seed file
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Relay listening on %s\n", cfg.Addr())
//
// Environment Variables:
//   - API_KEY, PORT, HOST, BODY_LIMIT
//   - AI_CHAT_MODEL, AI_MAPS_MODEL, AI_TTS_MODEL, AI_VOICE, AI_TIMEOUT
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS, SEED_FILE
package config
