package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/ai"
	"github.com/GriffinCanCode/AuraOS/internal/api/middleware"
	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/domain/tools"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Version is reported by the health endpoints
const Version = "6.0.0"

// Static failure messages returned when the model call fails
const (
	MsgChatFailure     = "Neural core failure"
	MsgTerminalFailure = "Kernel linkage failure"
	MsgMapsFailure     = "Navigation uplink failure"
	MsgSpeakFailure    = "Voice synthesis failure"
	MsgInvalidBody     = "invalid request body"
	MsgBodyTooLarge    = "request body too large"
)

// Handlers contains all relay HTTP handlers
type Handlers struct {
	store    *state.Store
	provider ai.Provider
	tools    *tools.Registry
	metrics  *monitoring.Metrics
	breaker  *resilience.Breaker
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(
	store *state.Store,
	provider ai.Provider,
	registry *tools.Registry,
	metrics *monitoring.Metrics,
	breaker *resilience.Breaker,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = tools.DefaultRegistry()
	}
	return &Handlers{
		store:    store,
		provider: provider,
		tools:    registry,
		metrics:  metrics,
		breaker:  breaker,
		logger:   logger,
		now:      time.Now,
	}
}

const rootPage = `<!doctype html>
<html>
  <body style="font-family: sans-serif; background: #020617; color: white; padding: 2rem;">
    <h1>AURA CORE ONLINE</h1>
    <p>Status: <span style="color:#10b981">ACTIVE</span></p>
    <p>Endpoints: /api/health, /api/system/state, /api/chat, /api/terminal, /api/maps, /api/speak</p>
  </body>
</html>`

// Root serves the human-readable status page
func (h *Handlers) Root(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rootPage))
}

// Health reports liveness
func (h *Handlers) Health(c *gin.Context) {
	stats := h.store.Stats()
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:    "online",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   Version,
		Stats:     &stats,
	})
}

// SystemState returns the full relay state
func (h *Handlers) SystemState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// badRequest aborts with 400, or 413 when the body limit tripped
func (h *Handlers) badRequest(c *gin.Context, bindErr error, msg string) {
	switch {
	case middleware.IsBodyTooLarge(bindErr):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{Error: MsgBodyTooLarge})
	default:
		if msg == "" {
			msg = MsgInvalidBody
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{Error: msg})
	}
}

// providerFailure logs the cause and answers with a static 500
func (h *Handlers) providerFailure(c *gin.Context, op string, err error, msg string) {
	h.logger.Error("Provider call failed",
		zap.String("operation", op),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: msg})
}
