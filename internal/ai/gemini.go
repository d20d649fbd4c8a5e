package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/tracing"
)

// Config configures the Gemini provider
type Config struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	MapsModel   string
	SpeechModel string
	Voice       string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Gemini implements Provider on the Google GenAI SDK
type Gemini struct {
	client  *genai.Client
	cfg     Config
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	logger  *zap.Logger
}

// Option configures optional collaborators
type Option func(*Gemini)

// WithBreaker guards every model call with a circuit breaker
func WithBreaker(b *resilience.Breaker) Option {
	return func(g *Gemini) { g.breaker = b }
}

// WithMetrics records call counts and latency
func WithMetrics(m *monitoring.Metrics) Option {
	return func(g *Gemini) { g.metrics = m }
}

// WithTracer emits a child span per model call
func WithTracer(t *tracing.Tracer) Option {
	return func(g *Gemini) { g.tracer = t }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(g *Gemini) { g.logger = l }
}

// NewGemini creates a provider. The API key may be a placeholder; calls
// then fail upstream and surface as errors.
func NewGemini(ctx context.Context, cfg Config, opts ...Option) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		cc.HTTPOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	g := &Gemini{
		client: client,
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Chat implements Provider
func (g *Gemini) Chat(ctx context.Context, req ChatInput) (*ChatResult, error) {
	contents, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}

	instruction := req.Instruction
	if instruction == "" {
		instruction = DefaultChatInstruction
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}
	if len(req.Tools) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: req.Tools}}
	}

	resp, err := g.generate(ctx, OpChat, g.cfg.ChatModel, contents, config)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Text:      responseText(resp),
		ToolCalls: responseToolCalls(resp),
	}, nil
}

// Terminal implements Provider
func (g *Gemini) Terminal(ctx context.Context, command string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(TerminalInstruction, genai.RoleUser),
	}
	resp, err := g.generate(ctx, OpTerminal, g.cfg.ChatModel, genai.Text(TerminalPrompt(command)), config)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// Maps implements Provider. Coordinates bias retrieval only when both are set.
func (g *Gemini) Maps(ctx context.Context, query string, lat, lng *float64) (*MapsResult, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(MapsInstruction, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
	}
	if lat != nil && lng != nil {
		config.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: lat, Longitude: lng},
			},
		}
	}

	resp, err := g.generate(ctx, OpMaps, g.cfg.MapsModel, genai.Text(query), config)
	if err != nil {
		return nil, err
	}

	return &MapsResult{
		Text:    responseText(resp),
		Sources: responseSources(resp),
	}, nil
}

// Speak implements Provider and returns base64 encoded audio
func (g *Gemini) Speak(ctx context.Context, text string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.cfg.Voice},
			},
		},
	}

	resp, err := g.generate(ctx, OpSpeak, g.cfg.SpeechModel, genai.Text(text), config)
	if err != nil {
		return "", err
	}

	audio := responseAudio(resp)
	if len(audio) == 0 {
		g.metrics.RecordAIError(OpSpeak, "no_audio")
		return "", ErrNoAudio
	}
	return base64.StdEncoding.EncodeToString(audio), nil
}

// generate runs one model call under the breaker with metrics and a span
func (g *Gemini) generate(ctx context.Context, op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var span *tracing.Span
	if g.tracer != nil {
		span, ctx = g.tracer.StartSpan(ctx, "ai."+op)
		span.SetTag("model", model)
		defer func() {
			span.Finish()
			g.tracer.Submit(span)
		}()
	}

	timer := monitoring.NewTimer(g.metrics, op)
	resp, err := resilience.Call(ctx, g.breaker, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, model, contents, config)
	})
	if err != nil {
		timer.Stop("error")
		if span != nil {
			span.SetError(err)
		}
		g.metrics.RecordAIError(op, errorType(err))
		g.logger.Warn("Model call failed",
			zap.String("operation", op),
			zap.String("model", model),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	timer.Stop("success")
	return resp, nil
}

func errorType(err error) string {
	var apiErr genai.APIError
	switch {
	case errors.Is(err, resilience.ErrCircuitOpen), errors.Is(err, resilience.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("http_%d", apiErr.Code)
	default:
		return "unknown"
	}
}

var _ Provider = (*Gemini)(nil)
