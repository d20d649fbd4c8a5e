package discovery

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/client"
)

// ErrNoBackend is returned when no candidate answered the health probe
var ErrNoBackend = errors.New("no reachable relay")

const (
	// DefaultPort is the relay port probed on every candidate host
	DefaultPort = "3001"
	// DefaultProbeTimeout bounds a single candidate probe
	DefaultProbeTimeout = time.Second
	// DefaultHealthPath is the path probed on each candidate
	DefaultHealthPath = "/health"
)

var fallbackHosts = []string{
	"localhost",
	"127.0.0.1",
	"10.0.2.2",
	"192.168.1.1",
	"192.168.0.1",
	"10.0.2.15",
}

// DefaultCandidates returns the ordered probe list. host is appended when
// set; duplicates are dropped while keeping first-seen order.
func DefaultCandidates(host string) []string {
	hosts := append([]string{}, fallbackHosts...)
	if host != "" {
		hosts = append(hosts, host)
	}
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		out = append(out, "http://"+h+":"+DefaultPort)
	}
	return Dedupe(out)
}

// Dedupe normalises bases and removes repeats, preserving order
func Dedupe(bases []string) []string {
	seen := make(map[string]struct{}, len(bases))
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		b = client.NormalizeBase(b)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}

// Prober finds the first reachable relay among its candidates
type Prober struct {
	Candidates []string
	Timeout    time.Duration
	HealthPath string

	http   *resty.Client
	logger *zap.Logger

	mu      sync.RWMutex
	current string
}

// ProberOption configures a Prober
type ProberOption func(*Prober)

// WithLogger sets the prober logger
func WithLogger(l *zap.Logger) ProberOption {
	return func(p *Prober) { p.logger = l }
}

// WithHTTPClient probes through hc
func WithHTTPClient(hc *http.Client) ProberOption {
	return func(p *Prober) { p.http = resty.NewWithClient(hc) }
}

// WithFallback seeds the base kept when every probe fails
func WithFallback(base string) ProberOption {
	return func(p *Prober) { p.current = client.NormalizeBase(base) }
}

// NewProber creates a prober over candidates
func NewProber(candidates []string, opts ...ProberOption) *Prober {
	p := &Prober{
		Candidates: Dedupe(candidates),
		Timeout:    DefaultProbeTimeout,
		HealthPath: DefaultHealthPath,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.http == nil {
		p.http = resty.New()
	}
	p.http.SetRetryCount(0)
	return p
}

// Current returns the last discovered base, or the fallback
func (p *Prober) Current() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Discover probes candidates in order and caches the first that answers
// 200. When none do, the previous base is kept and ErrNoBackend returned.
func (p *Prober) Discover(ctx context.Context) (string, error) {
	for _, base := range p.Candidates {
		if err := ctx.Err(); err != nil {
			return p.Current(), err
		}
		if !p.probe(ctx, base) {
			continue
		}
		p.mu.Lock()
		p.current = base
		p.mu.Unlock()
		p.logger.Info("Relay discovered", zap.String("base", base))
		return base, nil
	}

	p.logger.Warn("No relay reachable",
		zap.Strings("candidates", p.Candidates),
		zap.String("kept", p.Current()))
	return p.Current(), ErrNoBackend
}

// Reprobe runs discovery again on demand
func (p *Prober) Reprobe(ctx context.Context) (string, error) {
	return p.Discover(ctx)
}

func (p *Prober) probe(ctx context.Context, base string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	resp, err := p.http.R().SetContext(ctx).Get(base + p.HealthPath)
	if err != nil {
		p.logger.Debug("Probe failed", zap.String("base", base), zap.Error(err))
		return false
	}
	return resp.StatusCode() == http.StatusOK
}
