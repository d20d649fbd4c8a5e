package panels

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/media"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Simulated marks status text produced by a timer rather than real work
const Simulated = "[SIMULATED]"

// DefaultTimeout bounds a relay call made by a panel
const DefaultTimeout = 60 * time.Second

// Default coordinates used by maps when none are configured
const (
	DefaultLatitude  = 37.7749
	DefaultLongitude = -122.4194
)

var errNoRelay = errors.New("relay unavailable")

// Panel is one shell application
type Panel interface {
	tea.Model
	ID() types.AppID
	Title() string
}

// Relay is the part of the relay client panels use
type Relay interface {
	Health(ctx context.Context) (*types.HealthResponse, error)
	SystemState(ctx context.Context) (*types.SystemState, error)
	Chat(ctx context.Context, messages []types.Message, instruction string) (*types.ChatResponse, error)
	Terminal(ctx context.Context, command string) (string, error)
	Maps(ctx context.Context, query string, lat, lng *float64) (*types.MapsResponse, error)
	Speak(ctx context.Context, text string) (string, error)
}

// Deps are the collaborators handed to every panel factory
type Deps struct {
	Relay   Relay
	User    *types.UserProfile
	Devices media.Devices
	Logger  *zap.Logger
	Timeout time.Duration

	Latitude     *float64
	Longitude    *float64
	AssetsDir    string
	HomeInterval time.Duration
	Speech       bool
	Now          func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Timeout <= 0 {
		d.Timeout = DefaultTimeout
	}
	if d.HomeInterval <= 0 {
		d.HomeInterval = discovery.HomeInterval
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.Timeout)
}

// Factory builds a panel
type Factory func(Deps) Panel

// LaunchMsg asks the root model to switch panels
type LaunchMsg struct {
	ID types.AppID
}

// ProfileUpdatedMsg carries a changed profile to be persisted
type ProfileUpdatedMsg struct {
	Profile types.UserProfile
}

// LogoutMsg asks the root model to end the session
type LogoutMsg struct{}

// Launch returns a command that switches to id
func Launch(id types.AppID) tea.Cmd {
	return func() tea.Msg { return LaunchMsg{ID: id} }
}

// UpdateProfile returns a command that reports p
func UpdateProfile(p types.UserProfile) tea.Cmd {
	return func() tea.Msg { return ProfileUpdatedMsg{Profile: p} }
}

// Simulate delivers msg after d
func Simulate(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Registry is the dispatch table from app id to factory
func Registry() map[types.AppID]Factory {
	return map[types.AppID]Factory{
		types.AppHome:       NewHome,
		types.AppChat:       NewChat,
		types.AppTerminal:   NewTerminal,
		types.AppMaps:       NewMaps,
		types.AppInbox:      NewInbox,
		types.AppFiles:      NewFiles,
		types.AppExtensions: NewExtensions,
		types.AppProfile:    NewProfile,
		types.AppStorage:    NewStorage,
		types.AppDJMusic:    NewDJMusic,
		types.AppCamera:     NewCamera,
		types.AppSecurity:   NewSecurity,
		types.AppNetwork:    NewNetwork,
		types.AppContent:    NewContent,
		types.AppVideo:      NewVideo,
		types.AppBooks:      NewBooks,
		types.AppController: NewController,
	}
}

// Build resolves id through registry, falling back to home
func Build(registry map[types.AppID]Factory, id types.AppID, deps Deps) Panel {
	f, ok := registry[id]
	if !ok {
		f = NewHome
	}
	return f(deps.withDefaults())
}
