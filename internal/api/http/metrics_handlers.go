package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// MetricsSnapshot is a JSON view of relay health for dashboards
type MetricsSnapshot struct {
	Timestamp   time.Time           `json:"timestamp"`
	Requests    monitoring.Snapshot `json:"requests"`
	State       types.Stats         `json:"state"`
	Subscribers int                 `json:"subscribers"`
	Breaker     BreakerStatus       `json:"breaker"`
}

// BreakerStatus describes the model circuit breaker
type BreakerStatus struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
}

// GetMetricsSnapshot returns counters, state sizes and breaker status
func (h *Handlers) GetMetricsSnapshot(c *gin.Context) {
	snap := MetricsSnapshot{
		Timestamp:   h.now().UTC(),
		State:       h.store.Stats(),
		Subscribers: h.store.Subscribers(),
		Breaker:     BreakerStatus{Name: "disabled", State: "closed"},
	}
	if h.metrics != nil {
		snap.Requests = h.metrics.Snapshot()
	}
	if h.breaker != nil {
		snap.Breaker = BreakerStatus{
			Name:                h.breaker.Name(),
			State:               h.breaker.State().String(),
			ConsecutiveFailures: h.breaker.Counts().ConsecutiveFailures,
		}
	}

	c.JSON(http.StatusOK, snap)
}
