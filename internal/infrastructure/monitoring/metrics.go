package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics of the relay.
// Each instance owns its registry so several can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// AI provider metrics
	AICalls    *prometheus.CounterVec
	AIDuration *prometheus.HistogramVec
	AIErrors   *prometheus.CounterVec

	// Tool-call metrics
	ToolCalls *prometheus.CounterVec

	// State metrics
	StateItems *prometheus.GaugeVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the health endpoint
type Snapshot struct {
	TotalRequests int64   `json:"totalRequests"`
	TotalErrors   int64   `json:"totalErrors"`
	AIFailures    int64   `json:"aiFailures"`
	TotalDuration float64 `json:"-"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
}

// NewMetrics creates a metrics collector with its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 2100000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		AICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_ai_calls_total",
				Help: "Total number of AI provider calls",
			},
			[]string{"operation", "status"},
		),
		AIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aura_ai_duration_seconds",
				Help:    "AI provider call duration in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		AIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_ai_errors_total",
				Help: "Total number of AI provider errors",
			},
			[]string{"operation", "error_type"},
		),

		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_tool_calls_total",
				Help: "Tool calls returned by the model",
			},
			[]string{"tool", "applied"},
		),

		StateItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "aura_state_items",
				Help: "Number of items per SystemState collection",
			},
			[]string{"collection"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "aura_ws_connections",
				Help: "Number of active state stream connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aura_ws_messages_total",
				Help: "Total number of state stream frames",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "aura_uptime_seconds",
			Help: "Relay uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordAICall records an AI provider call
func (m *Metrics) RecordAICall(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AICalls.WithLabelValues(operation, status).Inc()
	m.AIDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAIError records an AI provider failure
func (m *Metrics) RecordAIError(operation, errorType string) {
	if m == nil {
		return
	}
	m.AIErrors.WithLabelValues(operation, errorType).Inc()

	m.mu.Lock()
	m.snapshot.AIFailures++
	m.mu.Unlock()
}

// RecordToolCall records a tool call and whether it changed state
func (m *Metrics) RecordToolCall(tool string, applied bool) {
	if m == nil {
		return
	}
	label := "false"
	if applied {
		label = "true"
	}
	m.ToolCalls.WithLabelValues(tool, label).Inc()
}

// SetStateSizes updates the collection gauges
func (m *Metrics) SetStateSizes(emails, files, contacts, logs int) {
	if m == nil {
		return
	}
	m.StateItems.WithLabelValues("emails").Set(float64(emails))
	m.StateItems.WithLabelValues("files").Set(float64(files))
	m.StateItems.WithLabelValues("contacts").Set(float64(contacts))
	m.StateItems.WithLabelValues("logs").Set(float64(logs))
}

// RecordWSMessage records a state stream frame
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments stream connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements stream connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// Snapshot returns the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
