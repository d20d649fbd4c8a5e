package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/AuraOS/internal/ai"
	apihttp "github.com/GriffinCanCode/AuraOS/internal/api/http"
	"github.com/GriffinCanCode/AuraOS/internal/api/middleware"
	"github.com/GriffinCanCode/AuraOS/internal/api/ws"
	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/domain/tools"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	handler  http.Handler
	store    *state.Store
	provider ai.Provider
	breaker  *resilience.Breaker
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// Option customises server construction
type Option func(*options)

type options struct {
	provider ai.Provider
	logger   *logging.Logger
}

// WithProvider replaces the Gemini provider
func WithProvider(p ai.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithLogger replaces the logger built from config
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewFromLevel(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing Aura relay",
		zap.String("addr", cfg.Addr()),
		zap.String("chat_model", cfg.AI.ChatModel),
		zap.Strings("origins", cfg.CORS.Origins),
	)

	// Metrics first; the store and provider report into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("aura-relay", logger.Logger)

	seed, err := loadSeed(cfg)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	store := state.NewStore(seed).WithMetrics(metrics)

	var breaker *resilience.Breaker
	if cfg.Breaker.Enabled {
		breaker = newBreaker(cfg.Breaker, logger)
	}

	provider := o.provider
	if provider == nil {
		if !cfg.HasAPIKey() {
			logger.Warn("Gemini API key missing; set API_KEY. Model calls will fail until it is configured.")
		}
		provider, err = ai.NewGemini(ctx, ai.Config{
			APIKey:      cfg.EffectiveAPIKey(),
			BaseURL:     cfg.AI.BaseURL,
			ChatModel:   cfg.AI.ChatModel,
			MapsModel:   cfg.AI.MapsModel,
			SpeechModel: cfg.AI.SpeechModel,
			Voice:       cfg.AI.Voice,
			Timeout:     cfg.AI.Timeout,
		},
			ai.WithBreaker(breaker),
			ai.WithMetrics(metrics),
			ai.WithTracer(tracer),
			ai.WithLogger(logger.Named("ai").Logger),
		)
		if err != nil {
			tracer.Close()
			return nil, fmt.Errorf("failed to create model provider: %w", err)
		}
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	corsCfg := middleware.DefaultCORSConfig(cfg.CORS.Origins)

	router.Use(middleware.Recovery(logger.Logger))
	router.Use(middleware.Logger(logger.Named("http").Logger))
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PrivateNetwork())
	router.Use(middleware.CORS(corsCfg))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}
	router.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	handlers := apihttp.NewHandlers(store, provider, tools.DefaultRegistry(), metrics, breaker, logger.Logger)
	apihttp.RegisterRoutes(router, handlers)

	wsHandler := ws.NewHandler(store, metrics, logger.Named("ws").Logger, originAllowed(corsCfg.AllowOrigins))
	router.GET("/api/system/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	var handler http.Handler = router
	if cfg.Server.Compress {
		handler = gzhttp.GzipHandler(router)
	}

	logger.Info("Relay initialized")

	return &Server{
		router:   router,
		handler:  handler,
		store:    store,
		provider: provider,
		breaker:  breaker,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Store exposes the relay state
func (s *Server) Store() *state.Store {
	return s.store
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.Close()
	return err
}

// Close releases background resources
func (s *Server) Close() {
	s.tracer.Close()
	_ = s.logger.Sync()
}

func loadSeed(cfg *config.Config) (types.SystemState, error) {
	now := time.Now()
	if cfg.State.SeedFile == "" {
		return state.DefaultSeed(now), nil
	}
	seed, err := state.LoadSeed(cfg.State.SeedFile, now)
	if err != nil {
		return types.SystemState{}, fmt.Errorf("failed to load seed file: %w", err)
	}
	return seed, nil
}

func newBreaker(cfg config.BreakerConfig, logger *logging.Logger) *resilience.Breaker {
	threshold := cfg.FailureThreshold
	return resilience.New("gemini", resilience.Settings{
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		IsSuccessful: resilience.IgnoreCancellation,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

func originAllowed(origins []string) func(string) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
}
