package types

// ChatRequest is the body of POST /api/chat.
// Messages is bound as a required field so an absent or empty list is rejected.
type ChatRequest struct {
	Messages    []Message `json:"messages" binding:"required,min=1"`
	Instruction string    `json:"instruction,omitempty"`
}

// ToolCall is a structured action requested by the model
type ToolCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ChatResponse is returned by POST /api/chat
type ChatResponse struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"toolCalls"`
}

// TerminalRequest is the body of POST /api/terminal
type TerminalRequest struct {
	Command string `json:"command" binding:"required"`
}

// TerminalResponse is returned by POST /api/terminal
type TerminalResponse struct {
	Output string `json:"output"`
}

// MapsRequest is the body of POST /api/maps
type MapsRequest struct {
	Query string   `json:"query" binding:"required"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
}

// GroundingSource is a location or web citation attached to a maps answer
type GroundingSource struct {
	Title   string `json:"title,omitempty"`
	URI     string `json:"uri,omitempty"`
	PlaceID string `json:"placeId,omitempty"`
}

// MapsResponse is returned by POST /api/maps
type MapsResponse struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

// SpeakRequest is the body of POST /api/speak
type SpeakRequest struct {
	Text string `json:"text" binding:"required"`
}

// SpeakResponse is returned by POST /api/speak
type SpeakResponse struct {
	AudioData string `json:"audioData"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Stats     *Stats `json:"stats,omitempty"`
}

// ErrorResponse is the body of every non-2xx relay response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StreamEvent is a frame pushed on the state stream
type StreamEvent struct {
	Type  string       `json:"type"`
	State *SystemState `json:"state,omitempty"`
}

// LogEntry is a log line shipped by a shell client
type LogEntry struct {
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// LogBatch is the body of POST /api/logs
type LogBatch struct {
	Source  string     `json:"source" binding:"required"`
	Entries []LogEntry `json:"entries"`
}
