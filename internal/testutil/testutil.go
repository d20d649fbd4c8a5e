// Package testutil provides mocks and fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/AuraOS/internal/ai"
	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Epoch is the fixed clock used by fixtures
var Epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// MockProvider is a mock implementation of ai.Provider
type MockProvider struct {
	mock.Mock
}

// Chat mocks the Chat method.
func (m *MockProvider) Chat(ctx context.Context, req ai.ChatInput) (*ai.ChatResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.ChatResult), args.Error(1)
}

// Terminal mocks the Terminal method.
func (m *MockProvider) Terminal(ctx context.Context, command string) (string, error) {
	args := m.Called(ctx, command)
	return args.String(0), args.Error(1)
}

// Maps mocks the Maps method.
func (m *MockProvider) Maps(ctx context.Context, query string, lat, lng *float64) (*ai.MapsResult, error) {
	args := m.Called(ctx, query, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.MapsResult), args.Error(1)
}

// Speak mocks the Speak method.
func (m *MockProvider) Speak(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// NewMockProvider creates a mock whose expectations are asserted on cleanup
func NewMockProvider(t *testing.T) *MockProvider {
	t.Helper()
	m := new(MockProvider)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockRelay is a mock of the relay surface the shell panels call
type MockRelay struct {
	mock.Mock
}

// Health mocks the Health method.
func (m *MockRelay) Health(ctx context.Context) (*types.HealthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.HealthResponse), args.Error(1)
}

// SystemState mocks the SystemState method.
func (m *MockRelay) SystemState(ctx context.Context) (*types.SystemState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SystemState), args.Error(1)
}

// Chat mocks the Chat method.
func (m *MockRelay) Chat(ctx context.Context, messages []types.Message, instruction string) (*types.ChatResponse, error) {
	args := m.Called(ctx, messages, instruction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ChatResponse), args.Error(1)
}

// Terminal mocks the Terminal method.
func (m *MockRelay) Terminal(ctx context.Context, command string) (string, error) {
	args := m.Called(ctx, command)
	return args.String(0), args.Error(1)
}

// Maps mocks the Maps method.
func (m *MockRelay) Maps(ctx context.Context, query string, lat, lng *float64) (*types.MapsResponse, error) {
	args := m.Called(ctx, query, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MapsResponse), args.Error(1)
}

// Speak mocks the Speak method.
func (m *MockRelay) Speak(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

// NewMockRelay creates a relay mock whose expectations are asserted on cleanup
func NewMockRelay(t *testing.T) *MockRelay {
	t.Helper()
	m := new(MockRelay)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewSeededStore creates a store holding the default seed at Epoch
func NewSeededStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(state.DefaultSeed(Epoch))
}

// Float returns a pointer to v
func Float(v float64) *float64 {
	return &v
}

// UserMessage builds a single user chat message
func UserMessage(content string) types.Message {
	return types.Message{
		ID:        "m1",
		Role:      types.RoleUser,
		Content:   content,
		Timestamp: Epoch,
	}
}

var _ ai.Provider = (*MockProvider)(nil)
