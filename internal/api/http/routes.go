package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every relay endpoint on router
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/system/state", h.SystemState)
	api.GET("/system/logs", h.GetLogs)
	api.GET("/metrics/snapshot", h.GetMetricsSnapshot)

	api.POST("/chat", h.Chat)
	api.POST("/terminal", h.Terminal)
	api.POST("/maps", h.Maps)
	api.POST("/speak", h.Speak)
	api.POST("/logs", h.StreamLogs)
}
