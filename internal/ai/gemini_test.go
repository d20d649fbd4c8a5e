package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// fakeModel records request bodies and replies with a canned response
type fakeModel struct {
	mu       sync.Mutex
	paths    []string
	bodies   []map[string]any
	status   int
	response string
}

func (f *fakeModel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, body)
	status, response := f.status, f.response
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

func (f *fakeModel) lastBody(t *testing.T) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.bodies)
	return f.bodies[len(f.bodies)-1]
}

func (f *fakeModel) lastPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.paths) == 0 {
		return ""
	}
	return f.paths[len(f.paths)-1]
}

func newTestGemini(t *testing.T, fake *fakeModel, opts ...Option) *Gemini {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	g, err := NewGemini(context.Background(), Config{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		ChatModel:   "chat-model",
		MapsModel:   "maps-model",
		SpeechModel: "tts-model",
		Voice:       "Kore",
		Timeout:     5 * time.Second,
	}, opts...)
	require.NoError(t, err)
	return g
}

func textResponse(parts string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[` + parts + `]}}]}`
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), Config{})
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	fake := &fakeModel{response: textResponse(
		`{"text":"Dispatching now."},` +
			`{"functionCall":{"name":"create_email","args":{"recipient":"ops@aura","subject":"Hi","body":"Yo"}}}`,
	)}
	metrics := monitoring.NewMetrics()
	g := newTestGemini(t, fake, WithMetrics(metrics))

	res, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{
			{Role: types.RoleUser, Content: "email ops"},
			{Role: types.RoleAssistant, Content: "sure"},
			{Role: types.RoleFriend, Content: ""},
		},
		Tools: []*genai.FunctionDeclaration{{Name: "create_email"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dispatching now.", res.Text)
	require.Len(t, res.ToolCalls, 1)
	assert.Equal(t, "create_email", res.ToolCalls[0].Name)
	assert.Equal(t, "ops@aura", res.ToolCalls[0].Args["recipient"])

	assert.Contains(t, fake.lastPath(), "models/chat-model:generateContent")

	body := fake.lastBody(t)
	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 2, "empty message is skipped")
	assert.Equal(t, "user", contents[0].(map[string]any)["role"])
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])
	assert.Contains(t, body, "tools")
	assert.Contains(t, body, "systemInstruction")
}

func TestChatNoToolCalls(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"Hello "},{"text":"there","thought":true},{"text":"world"}`)}
	g := newTestGemini(t, fake)

	res, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{{Role: types.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", res.Text)
	assert.NotNil(t, res.ToolCalls)
	assert.Empty(t, res.ToolCalls)
	assert.NotContains(t, fake.lastBody(t), "tools")
}

func TestChatWithAttachment(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"A PNG."}`)}
	g := newTestGemini(t, fake)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{{
			Role:    types.RoleUser,
			Content: "what is this",
			Attachments: []types.Attachment{
				{Name: "shot.png", Base64: base64.StdEncoding.EncodeToString(png)},
			},
		}},
	})
	require.NoError(t, err)

	contents := fake.lastBody(t)["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	inline := parts[1].(map[string]any)["inlineData"].(map[string]any)
	assert.Equal(t, "image/png", inline["mimeType"])
	assert.NotContains(t, inline, "displayName")
}

func TestChatWithNamedPDF(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"A report."}`)}
	g := newTestGemini(t, fake)

	res, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{{
			Role:    types.RoleUser,
			Content: "summarise",
			Attachments: []types.Attachment{
				{Name: "doc.pdf", IsPDF: true, Base64: base64.StdEncoding.EncodeToString([]byte("%PDF-1.4\n"))},
			},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "A report.", res.Text)

	contents := fake.lastBody(t)["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	inline := parts[1].(map[string]any)["inlineData"].(map[string]any)
	assert.Equal(t, "application/pdf", inline["mimeType"])
	assert.NotContains(t, inline, "displayName")
}

func TestChatBadAttachment(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"x"}`)}
	g := newTestGemini(t, fake)

	_, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{{
			Role:        types.RoleUser,
			Attachments: []types.Attachment{{Base64: "%%%not base64%%%"}},
		}},
	})
	assert.ErrorIs(t, err, ErrInvalidAttachment)
	assert.Empty(t, fake.lastPath(), "no upstream call for invalid input")
}

func TestChatUpstreamError(t *testing.T) {
	fake := &fakeModel{
		status:   http.StatusInternalServerError,
		response: `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`,
	}
	metrics := monitoring.NewMetrics()
	g := newTestGemini(t, fake, WithMetrics(metrics))

	_, err := g.Chat(context.Background(), ChatInput{
		Messages: []types.Message{{Role: types.RoleUser, Content: "hi"}},
	})
	require.Error(t, err)

	var apiErr genai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Code)
	assert.Equal(t, int64(1), metrics.Snapshot().AIFailures)
}

func TestBreakerOpens(t *testing.T) {
	fake := &fakeModel{
		status:   http.StatusServiceUnavailable,
		response: `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`,
	}
	breaker := resilience.New("gemini", resilience.Settings{
		Timeout:     time.Minute,
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
	g := newTestGemini(t, fake, WithBreaker(breaker))

	for i := 0; i < 2; i++ {
		_, err := g.Terminal(context.Background(), "ls")
		require.Error(t, err)
	}

	_, err := g.Terminal(context.Background(), "ls")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, resilience.StateOpen, breaker.State())
}

func TestTerminal(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"bin  etc  home"}`)}
	g := newTestGemini(t, fake)

	out, err := g.Terminal(context.Background(), "ls /")
	require.NoError(t, err)
	assert.Equal(t, "bin  etc  home", out)

	raw, err := json.Marshal(fake.lastBody(t)["contents"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Simulate a terminal response for the command: ls /")
}

func TestMaps(t *testing.T) {
	fake := &fakeModel{response: `{"candidates":[{
		"content":{"role":"model","parts":[{"text":"Try Blue Bottle."}]},
		"groundingMetadata":{"groundingChunks":[
			{"maps":{"title":"Blue Bottle","uri":"https://maps.google.com/?cid=1","placeId":"places/abc"}},
			{"web":{"title":"Guide","uri":"https://example.com/guide"}},
			{}
		]}
	}]}`}
	g := newTestGemini(t, fake)

	lat, lng := 37.77, -122.41
	res, err := g.Maps(context.Background(), "coffee", &lat, &lng)
	require.NoError(t, err)

	assert.Equal(t, "Try Blue Bottle.", res.Text)
	assert.Equal(t, []types.GroundingSource{
		{Title: "Blue Bottle", URI: "https://maps.google.com/?cid=1", PlaceID: "places/abc"},
		{Title: "Guide", URI: "https://example.com/guide"},
	}, res.Sources)

	body := fake.lastBody(t)
	assert.Contains(t, fake.lastPath(), "models/maps-model:generateContent")
	assert.Contains(t, body, "toolConfig")
}

func TestMapsWithoutCoordinates(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"Somewhere."}`)}
	g := newTestGemini(t, fake)

	lat := 1.0
	res, err := g.Maps(context.Background(), "coffee", &lat, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Sources)
	assert.NotNil(t, res.Sources)
	assert.NotContains(t, fake.lastBody(t), "toolConfig")
}

func TestSpeak(t *testing.T) {
	audio := []byte{0x01, 0x02, 0x03, 0x04}
	encoded := base64.StdEncoding.EncodeToString(audio)
	fake := &fakeModel{response: textResponse(`{"inlineData":{"mimeType":"audio/L16;rate=24000","data":"` + encoded + `"}}`)}
	g := newTestGemini(t, fake)

	got, err := g.Speak(context.Background(), "Systems nominal")
	require.NoError(t, err)
	assert.Equal(t, encoded, got)

	raw, err := json.Marshal(fake.lastBody(t)["generationConfig"])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "AUDIO"))
	assert.Contains(t, string(raw), "Kore")
}

func TestSpeakNoAudio(t *testing.T) {
	fake := &fakeModel{response: textResponse(`{"text":"no audio here"}`)}
	g := newTestGemini(t, fake)

	_, err := g.Speak(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestDecodeBase64(t *testing.T) {
	data, err := decodeBase64("data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	data, err = decodeBase64(base64.RawStdEncoding.EncodeToString([]byte("hey")))
	require.NoError(t, err)
	assert.Equal(t, []byte("hey"), data)
}

func TestAttachmentPartPDF(t *testing.T) {
	part, err := attachmentPart(types.Attachment{IsPDF: true, Base64: base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", part.InlineData.MIMEType)

	part, err = attachmentPart(types.Attachment{Base64: base64.StdEncoding.EncodeToString([]byte("plain words"))})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", part.InlineData.MIMEType)
}
