package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Frame types
const (
	TypeSnapshot = "snapshot"
	TypeState    = "state"
	TypePing     = "ping"
	TypePong     = "pong"
	TypeError    = "error"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	readLimit  = 4096
)

// inbound is a client frame
type inbound struct {
	Type string `json:"type"`
}

// Handler streams SystemState to WebSocket clients
type Handler struct {
	store    *state.Store
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a new stream handler. allowOrigin decides browser
// origins; requests without an Origin header are always accepted.
func NewHandler(store *state.Store, metrics *monitoring.Metrics, logger *zap.Logger, allowOrigin func(string) bool) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowOrigin == nil {
				return true
			}
			return allowOrigin(origin)
		},
	}
	return h
}

// HandleConnection upgrades the request and pushes a snapshot on every
// state change. A slow client only ever sees the latest state.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.IncWSConnections()
	defer h.metrics.DecWSConnections()

	updates, cancel := h.store.Subscribe()
	defer cancel()

	ctx, stop := context.WithCancel(c.Request.Context())
	defer stop()

	replies := make(chan string, 4)
	go h.readLoop(ctx, conn, replies, stop)

	snapshot := h.store.Snapshot()
	if err := h.send(conn, TypeSnapshot, &snapshot); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			if err := h.send(conn, TypeState, &s); err != nil {
				return
			}
		case t := <-replies:
			if err := h.send(conn, t, nil); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop handles client frames until the connection closes
func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, replies chan<- string, stop context.CancelFunc) {
	defer stop()

	reply := func(t string) bool {
		select {
		case replies <- t:
			return true
		case <-ctx.Done():
			return false
		}
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.metrics.RecordWSMessage("in", "frame")

		var msg inbound
		frame := TypeError
		if err := sonic.Unmarshal(data, &msg); err == nil && msg.Type == TypePing {
			frame = TypePong
		}
		if !reply(frame) {
			return
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, frameType string, s *types.SystemState) error {
	data, err := sonic.Marshal(types.StreamEvent{Type: frameType, State: s})
	if err != nil {
		h.logger.Error("Failed to encode stream frame", zap.Error(err))
		return err
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("WebSocket write failed", zap.Error(err))
		return err
	}
	h.metrics.RecordWSMessage("out", frameType)
	return nil
}
