package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/AuraOS/internal/client"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

type countingServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newRelay(t *testing.T, status int) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		if r.URL.Path != DefaultHealthPath {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestDefaultCandidates(t *testing.T) {
	assert.Equal(t, []string{
		"http://localhost:3001",
		"http://127.0.0.1:3001",
		"http://10.0.2.2:3001",
		"http://192.168.1.1:3001",
		"http://192.168.0.1:3001",
		"http://10.0.2.15:3001",
		"http://aura.lan:3001",
	}, DefaultCandidates("aura.lan"))

	assert.Len(t, DefaultCandidates("localhost"), 6, "configured host already listed")
	assert.Len(t, DefaultCandidates(""), 6)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, Dedupe([]string{"http://a/", "http://b", "http://a", " "}))
}

func TestDiscoverFirstHealthyWins(t *testing.T) {
	down := newRelay(t, http.StatusServiceUnavailable)
	up := newRelay(t, http.StatusOK)
	later := newRelay(t, http.StatusOK)

	p := NewProber([]string{deadURL(t), down.URL, up.URL, later.URL})
	base, err := p.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, up.URL, base)
	assert.Equal(t, up.URL, p.Current())
	assert.Equal(t, int32(1), down.hits.Load())
	assert.Equal(t, int32(0), later.hits.Load(), "candidates after the winner are not probed")
}

func TestDiscoverAllFailKeepsLastBase(t *testing.T) {
	up := newRelay(t, http.StatusOK)
	p := NewProber([]string{up.URL}, WithFallback("http://fallback:3001/"))
	assert.Equal(t, "http://fallback:3001", p.Current())

	_, err := p.Discover(context.Background())
	require.NoError(t, err)

	up.Close()
	base, err := p.Reprobe(context.Background())
	assert.ErrorIs(t, err, ErrNoBackend)
	assert.Equal(t, up.URL, base)
	assert.Equal(t, up.URL, p.Current())
}

func TestDiscoverUsesFallbackWhenNothingAnswers(t *testing.T) {
	p := NewProber([]string{deadURL(t)}, WithFallback("http://localhost:3001"))
	base, err := p.Discover(context.Background())
	assert.ErrorIs(t, err, ErrNoBackend)
	assert.Equal(t, "http://localhost:3001", base)
}

func TestDiscoverTimeout(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(release) })
	up := newRelay(t, http.StatusOK)

	p := NewProber([]string{slow.URL, up.URL})
	p.Timeout = 50 * time.Millisecond

	start := time.Now()
	base, err := p.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, up.URL, base)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDiscoverCanceled(t *testing.T) {
	up := newRelay(t, http.StatusOK)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProber([]string{up.URL}).Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), up.hits.Load())
}

type fakeSource struct {
	mu       sync.Mutex
	healthy  bool
	stateErr error
	state    types.SystemState
	calls    int
}

func (f *fakeSource) Health(context.Context) (*types.HealthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if !f.healthy {
		return nil, &client.APIError{Status: http.StatusBadGateway}
	}
	return &types.HealthResponse{Status: "online"}, nil
}

func (f *fakeSource) SystemState(context.Context) (*types.SystemState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	st := f.state.Clone()
	return &st, nil
}

func (f *fakeSource) set(fn func(*fakeSource)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func TestMonitorCheck(t *testing.T) {
	src := &fakeSource{healthy: true, state: types.SystemState{Logs: []string{"boot"}}}
	m := NewMonitor(src, time.Minute, nil)
	m.FetchState = true
	assert.Equal(t, StatusChecking, m.Status())

	u := m.Check(context.Background())
	assert.Equal(t, StatusOnline, u.Status)
	require.NotNil(t, u.State)
	assert.Equal(t, []string{"boot"}, u.State.Logs)

	// A failed full fetch keeps the last good snapshot
	src.set(func(f *fakeSource) {
		f.stateErr = errors.New("boom")
		f.healthy = false
	})
	u = m.Check(context.Background())
	assert.Equal(t, StatusOffline, u.Status)
	require.NotNil(t, u.State)
	assert.Equal(t, []string{"boot"}, u.State.Logs)
	assert.Equal(t, StatusOffline, m.Status())
}

func TestMonitorHealthOnly(t *testing.T) {
	src := &fakeSource{healthy: true}
	m := NewMonitor(src, time.Minute, nil)

	u := m.Check(context.Background())
	assert.Equal(t, StatusOnline, u.Status)
	assert.Nil(t, u.State)
	assert.Nil(t, m.Latest())
}

func TestMonitorRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	src := &fakeSource{healthy: true}
	m := NewMonitor(src, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, 16)
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx, func(u Update) {
			select {
			case updates <- u:
			default:
			}
		})
	}()

	first := <-updates
	assert.Equal(t, StatusOnline, first.Status)

	src.set(func(f *fakeSource) { f.healthy = false })
	require.Eventually(t, func() bool {
		return m.Status() == StatusOffline
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
