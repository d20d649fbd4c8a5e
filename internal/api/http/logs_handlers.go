package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// MaxLogBatch caps entries accepted per request
const MaxLogBatch = 256

// StreamLogs writes client log entries into the relay log
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req types.LogBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "Invalid log request format")
		return
	}
	if len(req.Entries) == 0 {
		h.badRequest(c, nil, "No log entries provided")
		return
	}
	if len(req.Entries) > MaxLogBatch {
		h.badRequest(c, nil, "Too many log entries")
		return
	}

	logger := h.logger.Named("client").With(zap.String("source", req.Source))
	for _, entry := range req.Entries {
		fields := make([]zap.Field, 0, len(entry.Context)+1)
		fields = append(fields, zap.String("client_timestamp", entry.Timestamp))
		for key, value := range entry.Context {
			fields = append(fields, zap.Any(key, value))
		}

		switch entry.Level {
		case "error":
			logger.Error(entry.Message, fields...)
		case "warn":
			logger.Warn(entry.Message, fields...)
		case "debug":
			logger.Debug(entry.Message, fields...)
		default:
			logger.Info(entry.Message, fields...)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"entries_received": len(req.Entries),
	})
}

// GetLogs returns the newest system log lines, newest first
func (h *Handlers) GetLogs(c *gin.Context) {
	logs := h.store.Snapshot().Logs

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.badRequest(c, nil, "limit must be a non-negative integer")
			return
		}
		if limit < len(logs) {
			logs = logs[:limit]
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": h.store.Stats().Logs,
	})
}
