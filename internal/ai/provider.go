package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

var (
	// ErrNoAudio is returned when a speech reply carries no audio part
	ErrNoAudio = errors.New("speech response contained no audio")
	// ErrInvalidAttachment is returned for attachments that are not valid base64
	ErrInvalidAttachment = errors.New("attachment is not valid base64")
)

// Provider is the external generative model behind the relay
type Provider interface {
	Chat(ctx context.Context, req ChatInput) (*ChatResult, error)
	Terminal(ctx context.Context, command string) (string, error)
	Maps(ctx context.Context, query string, lat, lng *float64) (*MapsResult, error)
	Speak(ctx context.Context, text string) (string, error)
}

// ChatInput is a chat turn forwarded to the model
type ChatInput struct {
	Messages    []types.Message
	Instruction string
	Tools       []*genai.FunctionDeclaration
}

// ChatResult is the model's reply with any declared tool calls
type ChatResult struct {
	Text      string
	ToolCalls []types.ToolCall
}

// MapsResult is a location-grounded answer
type MapsResult struct {
	Text    string
	Sources []types.GroundingSource
}

// Operation names used for metrics, spans and breaker logging
const (
	OpChat     = "chat"
	OpTerminal = "terminal"
	OpMaps     = "maps"
	OpSpeak    = "speak"
)

// Default prompts
const (
	DefaultChatInstruction = "You are Aura, the neural core of Aura OS. Be concise and helpful. " +
		"When the user asks you to send or compose an email, call create_email."
	TerminalInstruction = "You are the Aura OS kernel shell. Reply only with plausible terminal " +
		"output for the given command. No markdown fences and no commentary."
	MapsInstruction = "You are Aura's navigation module. Answer location questions using Google Maps data."
)

// TerminalPrompt builds the prompt for a simulated command
func TerminalPrompt(command string) string {
	return "Simulate a terminal response for the command: " + command
}
