// Package main is the entry point for the Aura relay.
//
// The relay holds the shared SystemState in memory and forwards chat,
// terminal, maps and speech requests to the Gemini API.
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	API_KEY=... ./server -port 3001
//
//	# Development mode (console logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
