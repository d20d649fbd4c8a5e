// Package logging provides structured logging using uber/zap.
//
// Three shapes are used:
//   - Production: JSON to stdout (relay default)
//   - Development: colored console output (relay -dev)
//   - File: JSON to a file (the shell, whose stdout is the terminal UI)
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Relay starting", zap.String("port", "3001"))
//	logger.Error("Provider call failed", zap.Error(err))
package logging
