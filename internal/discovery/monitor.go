package discovery

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Status is the relay connectivity seen by a monitor
type Status string

const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
)

// Poll intervals used by the shell
const (
	ShellInterval = 15 * time.Second
	HomeInterval  = 5 * time.Second
)

// Source is the relay surface a monitor polls
type Source interface {
	Health(ctx context.Context) (*types.HealthResponse, error)
	SystemState(ctx context.Context) (*types.SystemState, error)
}

// Update is one monitor observation. State is the last good snapshot and
// may be older than the tick when the full fetch failed.
type Update struct {
	Status  Status
	State   *types.SystemState
	Checked time.Time
}

// Monitor polls a relay on a fixed interval. Instances are independent.
type Monitor struct {
	Interval time.Duration
	// FetchState also pulls the full state on every tick
	FetchState bool

	source Source
	logger *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	status Status
	state  *types.SystemState
}

// NewMonitor creates a monitor over source
func NewMonitor(source Source, interval time.Duration, logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		Interval: interval,
		source:   source,
		logger:   logger,
		now:      time.Now,
		status:   StatusChecking,
	}
}

// Status returns the last observed status
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Latest returns the last good state snapshot, or nil
func (m *Monitor) Latest() *types.SystemState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Check runs one health check, plus a full fetch when enabled
func (m *Monitor) Check(ctx context.Context) Update {
	m.setStatus(StatusChecking)

	status := StatusOnline
	if _, err := m.source.Health(ctx); err != nil {
		m.logger.Debug("Health check failed", zap.Error(err))
		status = StatusOffline
	}
	m.setStatus(status)

	if m.FetchState {
		if st, err := m.source.SystemState(ctx); err == nil {
			m.mu.Lock()
			m.state = st
			m.mu.Unlock()
		}
	}

	return Update{Status: status, State: m.Latest(), Checked: m.now()}
}

// Run checks immediately and then on every interval until ctx is done
func (m *Monitor) Run(ctx context.Context, onUpdate func(Update)) error {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		u := m.Check(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if onUpdate != nil {
			onUpdate(u)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (m *Monitor) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
}
