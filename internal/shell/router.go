package shell

import (
	"encoding/json"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/shell/storage"
)

// LoginDelay is the simulated biometric scan before a login completes
const LoginDelay = 2 * time.Second

// LoginMsg carries the profile produced by a finished login scan
type LoginMsg struct {
	Profile types.UserProfile
}

// Router owns the logged-in profile and the active panel
type Router struct {
	store      storage.Storage
	logger     *zap.Logger
	loginDelay time.Duration

	user   *types.UserProfile
	active types.AppID
}

// NewRouter creates a logged-out router on the home panel
func NewRouter(store storage.Storage, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		store:      store,
		logger:     logger,
		loginDelay: LoginDelay,
		active:     types.AppHome,
	}
}

// Restore logs a persisted user straight in. An unparseable record is
// removed and the router stays logged out.
func (r *Router) Restore() error {
	raw, ok, err := r.store.Get(storage.UserKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok {
		return nil
	}

	var p types.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		r.logger.Warn("Discarding unreadable session", zap.Error(err))
		return r.store.Remove(storage.UserKey)
	}
	r.user = &p
	return nil
}

// Launch switches the active panel. Last write wins; unknown ids render home.
func (r *Router) Launch(id types.AppID) {
	r.active = id
}

// Active returns the active panel id
func (r *Router) Active() types.AppID {
	return r.active
}

// User returns a copy of the profile, or nil when logged out
func (r *Router) User() *types.UserProfile {
	return r.user.Clone()
}

// LoggedIn reports whether a profile is loaded
func (r *Router) LoggedIn() bool {
	return r.user != nil
}

// Login starts the simulated scan and yields a LoginMsg after LoginDelay
func (r *Router) Login(robotName string) tea.Cmd {
	if robotName == "" {
		robotName = types.DefaultRobotName
	}
	p := types.UserProfile{
		Name:          types.DefaultUserName,
		RobotName:     robotName,
		IsLoggedIn:    true,
		BioRegistered: true,
	}
	return tea.Tick(r.loginDelay, func(time.Time) tea.Msg {
		return LoginMsg{Profile: p}
	})
}

// CompleteLogin fills unset defaults, persists the profile and returns home
func (r *Router) CompleteLogin(p types.UserProfile) error {
	if p.Credits == nil {
		credits := types.DefaultCredits
		p.Credits = &credits
	}
	if p.InstalledApps == nil {
		p.InstalledApps = []string{}
	}
	r.user = &p
	r.active = types.AppHome
	return r.persist()
}

// UpdateProfile replaces and persists the profile of a logged-in user
func (r *Router) UpdateProfile(p types.UserProfile) error {
	if r.user == nil {
		return nil
	}
	r.user = p.Clone()
	return r.persist()
}

// Logout forgets the session and returns home
func (r *Router) Logout() error {
	r.user = nil
	r.active = types.AppHome
	return r.store.Remove(storage.UserKey)
}

func (r *Router) persist() error {
	raw, err := json.Marshal(r.user)
	if err != nil {
		return err
	}
	if err := r.store.Set(storage.UserKey, string(raw)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
