package shell

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/shell/panels"
	"github.com/GriffinCanCode/AuraOS/internal/shell/storage"
	"github.com/GriffinCanCode/AuraOS/internal/testutil"
)

type fakeRelay struct {
	bases   []string
	batches []types.LogBatch
	err     error
}

func (f *fakeRelay) SetBaseURL(base string) { f.bases = append(f.bases, base) }

func (f *fakeRelay) SendLogs(_ context.Context, batch types.LogBatch) error {
	f.batches = append(f.batches, batch)
	return f.err
}

// closerPanel records whether the root model released it
type closerPanel struct {
	id     types.AppID
	closed bool
}

func (p *closerPanel) Init() tea.Cmd                       { return nil }
func (p *closerPanel) Update(tea.Msg) (tea.Model, tea.Cmd) { return p, nil }
func (p *closerPanel) View() string                        { return "closer" }
func (p *closerPanel) ID() types.AppID                     { return p.id }
func (p *closerPanel) Title() string                       { return "Closer" }
func (p *closerPanel) Close() error {
	p.closed = true
	return nil
}

var (
	ctrlK = tea.KeyMsg{Type: tea.KeyCtrlK}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returns the value model")
	return out, cmd
}

// drain runs cmd and every batched command, feeding non-nil results back.
// Only for commands that do not tick.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	if msg == nil {
		return m
	}
	m, _ = send(t, m, msg)
	return m
}

func loggedIn(t *testing.T, opts Options) (Model, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	r := NewRouter(store, nil)
	require.NoError(t, r.CompleteLogin(types.UserProfile{
		Name:      types.DefaultUserName,
		RobotName: "Unit-9",
	}))
	opts.Router = r
	opts.Deps.Now = func() time.Time { return testutil.Epoch }
	return New(opts), store
}

func TestLoginFlow(t *testing.T) {
	store := storage.NewMemory()
	r := NewRouter(store, nil)
	r.loginDelay = time.Millisecond
	relay := &fakeRelay{}

	m := New(Options{Router: r, Relay: relay})
	assert.Nil(t, m.Panel())
	assert.Contains(t, m.View(), "AURA OS")

	m, _ = send(t, m, runes("Unit-9"))
	m, cmd := send(t, m, enter)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Scanning biometrics")

	_, again := send(t, m, enter)
	assert.Nil(t, again, "scan already running")

	m, cmd = send(t, m, cmd())
	require.NotNil(t, m.Panel())
	assert.Equal(t, types.AppHome, m.Panel().ID())
	assert.Contains(t, m.View(), "Unit-9")

	drain(t, m, cmd)
	require.Len(t, relay.batches, 1)
	assert.Equal(t, LogSource, relay.batches[0].Source)
	assert.Equal(t, "Operator session started", relay.batches[0].Entries[0].Message)

	raw, ok, err := store.Get(storage.UserKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"robotName":"Unit-9"`)
}

func TestRestoredSessionStartsOnActiveApp(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	require.NotNil(t, m.Panel())
	assert.Equal(t, types.AppHome, m.Panel().ID())
}

func TestPaletteSearch(t *testing.T) {
	m, _ := loggedIn(t, Options{})

	m, cmd := send(t, m, ctrlK)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Ask Aura")

	m, _ = send(t, m, runes("vault"))
	assert.Len(t, m.palette.matches(), 1)

	m, _ = send(t, m, enter)
	assert.False(t, m.palette.open)
	assert.Equal(t, types.AppFiles, m.Panel().ID())
	assert.Equal(t, types.AppFiles, m.router.Active())
}

func TestPaletteCursor(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	m, _ = send(t, m, ctrlK)
	for range Commands {
		m, _ = send(t, m, down)
	}
	m, _ = send(t, m, enter)
	assert.Equal(t, types.AppSecurity, m.Panel().ID(), "cursor stops at the last entry")

	m, _ = send(t, m, ctrlK)
	m, _ = send(t, m, esc)
	assert.False(t, m.palette.open)
	assert.Equal(t, types.AppSecurity, m.Panel().ID())
}

func TestPaletteNoMatch(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	m, _ = send(t, m, ctrlK)
	m, _ = send(t, m, runes("zzz"))
	assert.Contains(t, m.View(), "No matching command")
	m, cmd := send(t, m, enter)
	assert.Nil(t, cmd)
	assert.Equal(t, types.AppHome, m.Panel().ID())
}

func TestLaunchUnknownRendersHome(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	m, _ = send(t, m, panels.LaunchMsg{ID: "warp_drive"})
	assert.Equal(t, types.AppHome, m.Panel().ID())
	assert.Equal(t, types.AppID("warp_drive"), m.router.Active())
}

func TestSwitchingClosesPanel(t *testing.T) {
	closer := &closerPanel{id: types.AppCamera}
	registry := panels.Registry()
	registry[types.AppCamera] = func(panels.Deps) panels.Panel { return closer }

	m, _ := loggedIn(t, Options{Registry: registry})
	m, _ = send(t, m, panels.LaunchMsg{ID: types.AppCamera})
	require.Same(t, closer, m.Panel())
	assert.False(t, closer.closed)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.True(t, closer.closed)
	assert.Equal(t, types.AppHome, m.Panel().ID())
}

func TestDockCycling(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, Dock[1], m.Panel().ID())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, Dock[len(Dock)-1], m.Panel().ID(), "wraps around")
}

func TestProfileUpdatePersists(t *testing.T) {
	m, store := loggedIn(t, Options{})
	p := *m.router.User()
	p.Credits = testutil.Float(42)
	p.InstalledApps = []string{"game_cyber_kart"}

	m, _ = send(t, m, panels.ProfileUpdatedMsg{Profile: p})
	assert.InDelta(t, 42.0, m.router.User().Balance(), 1e-9)
	assert.Contains(t, m.View(), "$42.00")

	raw, _, err := store.Get(storage.UserKey)
	require.NoError(t, err)
	assert.Contains(t, raw, "game_cyber_kart")

	// A rebuilt home shows the installed game
	m, _ = send(t, m, panels.LaunchMsg{ID: types.AppHome})
	assert.Contains(t, m.View(), "Cyber Kart 3000")
}

func TestLogout(t *testing.T) {
	relay := &fakeRelay{err: errors.New("relay down")}
	m, store := loggedIn(t, Options{Relay: relay})

	m, cmd := send(t, m, panels.LogoutMsg{})
	assert.Nil(t, m.Panel())
	assert.False(t, m.router.LoggedIn())
	assert.Contains(t, m.View(), "AURA OS")

	_, ok, err := store.Get(storage.UserKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NotNil(t, cmd)
	assert.Nil(t, cmd(), "shipping failure is swallowed")
	require.Len(t, relay.batches, 1)
	assert.Equal(t, "Unit-9", relay.batches[0].Entries[0].Context["robot"])
}

func TestOfflineBannerAndDiagnostics(t *testing.T) {
	prober := discovery.NewProber([]string{"http://10.0.2.2:3001"}, discovery.WithFallback("http://localhost:3001"))
	m, _ := loggedIn(t, Options{Prober: prober})
	assert.NotContains(t, m.View(), "RELAY OFFLINE")

	m, _ = send(t, m, StatusMsg{Update: discovery.Update{Status: discovery.StatusOffline, Checked: testutil.Epoch}})
	assert.Equal(t, discovery.StatusOffline, m.Status())
	assert.Contains(t, m.View(), "RELAY OFFLINE")
	assert.Contains(t, m.View(), "http://localhost:3001")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	view := m.View()
	assert.Contains(t, view, "LINK DIAGNOSTICS")
	assert.Contains(t, view, "http://10.0.2.2:3001")

	m, _ = send(t, m, StatusMsg{Update: discovery.Update{Status: discovery.StatusOnline}})
	assert.NotContains(t, m.View(), "RELAY OFFLINE")
}

func TestReprobe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	relay := &fakeRelay{}
	prober := discovery.NewProber([]string{dead.URL, srv.URL})
	m, _ := loggedIn(t, Options{Prober: prober, Relay: relay})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, discovery.StatusChecking, m.Status())

	_, again := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, again, "probe already running")

	m, _ = send(t, m, cmd())
	assert.Equal(t, srv.URL, m.Base())
	assert.Equal(t, discovery.StatusOnline, m.Status())
	assert.Equal(t, []string{srv.URL}, relay.bases)
}

func TestReprobeAllFail(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	prober := discovery.NewProber([]string{dead.URL}, discovery.WithFallback("http://localhost:3001"))
	m, _ := loggedIn(t, Options{Prober: prober})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = send(t, m, cmd())
	assert.Equal(t, discovery.StatusOffline, m.Status())
	assert.Equal(t, "http://localhost:3001", m.Base())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Contains(t, m.View(), discovery.ErrNoBackend.Error())
}

func TestPanelReceivesOtherKeys(t *testing.T) {
	m, _ := loggedIn(t, Options{})
	m, _ = send(t, m, panels.LaunchMsg{ID: types.AppProfile})
	_, cmd := send(t, m, runes("L"))
	require.NotNil(t, cmd)
	assert.Equal(t, panels.LogoutMsg{}, cmd())
}

func TestQuitClosesPanel(t *testing.T) {
	closer := &closerPanel{id: types.AppSecurity}
	registry := panels.Registry()
	registry[types.AppSecurity] = func(panels.Deps) panels.Panel { return closer }

	m, _ := loggedIn(t, Options{Registry: registry})
	m, _ = send(t, m, panels.LaunchMsg{ID: types.AppSecurity})
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.True(t, closer.closed)
}
