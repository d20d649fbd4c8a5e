package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/shell/panels"
)

// LogSource names the shell in shipped log batches
const LogSource = "aura-shell"

// Dock is the sidebar order cycled by next/prev app
var Dock = []types.AppID{
	types.AppHome,
	types.AppChat,
	types.AppInbox,
	types.AppFiles,
	types.AppMaps,
	types.AppTerminal,
	types.AppExtensions,
	types.AppStorage,
	types.AppSecurity,
	types.AppCamera,
	types.AppProfile,
}

// Relay is what the root model needs from the relay client
type Relay interface {
	SetBaseURL(base string)
	SendLogs(ctx context.Context, batch types.LogBatch) error
}

// StatusMsg delivers a shell monitor result into the program
type StatusMsg struct {
	Update discovery.Update
}

type probeDoneMsg struct {
	base   string
	err    error
	update discovery.Update
}

// Options wires the root model
type Options struct {
	Router   *Router
	Registry map[types.AppID]panels.Factory
	Deps     panels.Deps
	Prober   *discovery.Prober
	Monitor  *discovery.Monitor
	Relay    Relay
	Logger   *zap.Logger
}

// Model is the root bubbletea model: login gate, sidebar and the active panel
type Model struct {
	router   *Router
	registry map[types.AppID]panels.Factory
	deps     panels.Deps
	prober   *discovery.Prober
	monitor  *discovery.Monitor
	relay    Relay
	logger   *zap.Logger

	keys    KeyMap
	help    help.Model
	palette palette
	login   textinput.Model
	width   int
	height  int

	panel    panels.Panel
	scanning bool

	status      discovery.Status
	checked     time.Time
	base        string
	probing     bool
	probeErr    error
	diagnostics bool
}

// New creates the root model. A router restored from storage starts on home.
func New(o Options) Model {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Registry == nil {
		o.Registry = panels.Registry()
	}
	if o.Deps.Logger == nil {
		o.Deps.Logger = o.Logger
	}
	if o.Deps.Now == nil {
		o.Deps.Now = time.Now
	}
	if o.Deps.Timeout <= 0 {
		o.Deps.Timeout = panels.DefaultTimeout
	}

	in := textinput.New()
	in.Placeholder = types.DefaultRobotName
	in.Prompt = "Robot unit > "
	in.CharLimit = 32
	in.Focus()

	m := Model{
		router:   o.Router,
		registry: o.Registry,
		deps:     o.Deps,
		prober:   o.Prober,
		monitor:  o.Monitor,
		relay:    o.Relay,
		logger:   o.Logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		palette:  newPalette(),
		login:    in,
		status:   discovery.StatusChecking,
	}
	if o.Prober != nil {
		m.base = o.Prober.Current()
	}
	if m.router.LoggedIn() {
		m.build(m.router.Active())
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.panel != nil {
		return m.panel.Init()
	}
	return textinput.Blink
}

// Panel returns the active panel, nil while logged out
func (m Model) Panel() panels.Panel {
	return m.panel
}

// Status returns the last known relay status
func (m Model) Status() discovery.Status {
	return m.status
}

// Base returns the relay base URL in use
func (m Model) Base() string {
	return m.base
}

// Close releases the active panel's devices
func (m Model) Close() {
	m.closePanel()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m.forward(msg)

	case StatusMsg:
		m.applyStatus(msg.Update)
		return nil

	case probeDoneMsg:
		m.probing = false
		m.base, m.probeErr = msg.base, msg.err
		m.applyStatus(msg.update)
		return nil

	case LoginMsg:
		m.scanning = false
		if err := m.router.CompleteLogin(msg.Profile); err != nil {
			m.logger.Error("Failed to persist session", zap.Error(err))
		}
		return tea.Batch(
			m.open(types.AppHome),
			m.ship("info", "Operator session started", map[string]any{"robot": msg.Profile.RobotName}),
		)

	case panels.LaunchMsg:
		return m.open(msg.ID)

	case panels.ProfileUpdatedMsg:
		if err := m.router.UpdateProfile(msg.Profile); err != nil {
			m.logger.Error("Failed to persist profile", zap.Error(err))
		}
		return nil

	case panels.LogoutMsg:
		return m.logout()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.closePanel()
		return tea.Quit
	}

	if !m.router.LoggedIn() {
		return m.updateLogin(msg)
	}
	if m.palette.open {
		return m.updatePalette(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Palette):
		m.palette.show()
		return textinput.Blink
	case key.Matches(msg, m.keys.Home):
		return m.open(types.AppHome)
	case key.Matches(msg, m.keys.NextApp):
		return m.open(m.dockStep(1))
	case key.Matches(msg, m.keys.PrevApp):
		return m.open(m.dockStep(-1))
	case key.Matches(msg, m.keys.Diagnostics):
		m.diagnostics = !m.diagnostics
		return nil
	case key.Matches(msg, m.keys.Reprobe):
		return m.reprobe()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	return m.forward(msg)
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		if m.scanning {
			return nil
		}
		m.scanning = true
		return m.router.Login(strings.TrimSpace(m.login.Value()))
	}
	if m.scanning {
		return nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return cmd
}

func (m *Model) updatePalette(msg tea.KeyMsg) tea.Cmd {
	cmds := m.palette.matches()
	switch msg.Type {
	case tea.KeyEsc:
		m.palette.hide()
		return nil
	case tea.KeyUp:
		if m.palette.cursor > 0 {
			m.palette.cursor--
		}
		return nil
	case tea.KeyDown:
		if m.palette.cursor < len(cmds)-1 {
			m.palette.cursor++
		}
		return nil
	case tea.KeyEnter:
		m.palette.hide()
		if m.palette.cursor >= len(cmds) {
			return nil
		}
		return m.open(cmds[m.palette.cursor].App)
	}
	if key.Matches(msg, m.keys.Palette) {
		m.palette.hide()
		return nil
	}
	var cmd tea.Cmd
	m.palette.input, cmd = m.palette.input.Update(msg)
	m.palette.cursor = 0
	return cmd
}

// open switches to id, releasing the previous panel first
func (m *Model) open(id types.AppID) tea.Cmd {
	m.build(id)
	return m.panel.Init()
}

func (m *Model) build(id types.AppID) {
	m.closePanel()
	m.router.Launch(id)
	deps := m.deps
	deps.User = m.router.User()
	m.panel = panels.Build(m.registry, id, deps)
}

func (m *Model) closePanel() {
	c, ok := m.panel.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.logger.Warn("Panel close failed", zap.String("app", string(m.panel.ID())), zap.Error(err))
	}
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	if m.panel == nil {
		return nil
	}
	next, cmd := m.panel.Update(msg)
	if p, ok := next.(panels.Panel); ok {
		m.panel = p
	}
	return cmd
}

func (m *Model) logout() tea.Cmd {
	robot := ""
	if u := m.router.User(); u != nil {
		robot = u.RobotName
	}
	m.closePanel()
	m.panel = nil
	m.palette.hide()
	if err := m.router.Logout(); err != nil {
		m.logger.Error("Failed to clear session", zap.Error(err))
	}
	m.login.SetValue("")
	m.login.Focus()
	return m.ship("info", "Operator session ended", map[string]any{"robot": robot})
}

func (m Model) dockStep(delta int) types.AppID {
	cur := 0
	if m.panel != nil {
		for i, id := range Dock {
			if id == m.panel.ID() {
				cur = i
				break
			}
		}
	}
	n := len(Dock)
	return Dock[((cur+delta)%n+n)%n]
}

func (m *Model) applyStatus(u discovery.Update) {
	if u.Status != "" {
		m.status = u.Status
	}
	m.checked = u.Checked
}

// reprobe re-runs discovery, points the relay client at the winner and
// rechecks health
func (m *Model) reprobe() tea.Cmd {
	if m.prober == nil || m.probing {
		return nil
	}
	m.probing = true
	m.status = discovery.StatusChecking

	prober, relay, monitor, timeout := m.prober, m.relay, m.monitor, m.deps.Timeout
	now := m.deps.Now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		base, err := prober.Reprobe(ctx)
		if relay != nil && base != "" {
			relay.SetBaseURL(base)
		}
		if monitor != nil {
			return probeDoneMsg{base: base, err: err, update: monitor.Check(ctx)}
		}
		status := discovery.StatusOnline
		if err != nil {
			status = discovery.StatusOffline
		}
		return probeDoneMsg{base: base, err: err, update: discovery.Update{Status: status, Checked: now()}}
	}
}

// ship sends one entry to the relay log endpoint. Failures only reach the
// local log.
func (m Model) ship(level, message string, fields map[string]any) tea.Cmd {
	if m.relay == nil {
		return nil
	}
	batch := types.LogBatch{
		Source: LogSource,
		Entries: []types.LogEntry{{
			Level:     level,
			Message:   message,
			Context:   fields,
			Timestamp: m.deps.Now().UTC().Format(time.RFC3339),
		}},
	}
	relay, logger, timeout := m.relay, m.logger, m.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := relay.SendLogs(ctx, batch); err != nil {
			logger.Debug("Log shipping failed", zap.Error(err))
		}
		return nil
	}
}

// View implements tea.Model
func (m Model) View() string {
	if !m.router.LoggedIn() {
		return m.viewLogin()
	}

	var top []string
	if m.status == discovery.StatusOffline {
		top = append(top, bannerStyle.Render("RELAY OFFLINE  "+m.base+"  ctrl+r re-probe  ctrl+d diagnostics"))
	}
	if m.diagnostics {
		top = append(top, m.viewDiagnostics())
	}

	content := ""
	if m.panel != nil {
		content = m.panel.View()
	}
	if m.palette.open {
		content = lipgloss.JoinVertical(lipgloss.Left, m.palette.view(), "", content)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), contentStyle.Render(content))
	return lipgloss.JoinVertical(lipgloss.Left, append(top, body, m.help.View(m.keys))...)
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AURA OS") + "\n")
	b.WriteString(mutedStyle.Render("Neural identity gateway") + "\n\n")
	if m.scanning {
		b.WriteString(warnStyle.Render("Scanning biometrics... "+panels.Simulated) + "\n")
	} else {
		b.WriteString(m.login.View() + "\n\n")
		b.WriteString(mutedStyle.Render("enter to authenticate"))
	}
	box := loginStyle.Render(b.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	u := m.router.User()
	b.WriteString(titleStyle.Render(u.RobotName) + "\n")
	b.WriteString(mutedStyle.Render(u.Name) + "\n")
	b.WriteString(okStyle.Render(fmt.Sprintf("$%.2f", u.Balance())) + "\n\n")

	active := types.AppID("")
	if m.panel != nil {
		active = m.panel.ID()
	}
	for _, id := range Dock {
		if id == active {
			b.WriteString(activeStyle.Render("> "+string(id)) + "\n")
		} else {
			b.WriteString("  " + string(id) + "\n")
		}
	}

	b.WriteString("\n" + statusLabel(m.status))
	return sidebarStyle.Render(b.String())
}

func (m Model) viewDiagnostics() string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("LINK DIAGNOSTICS") + "\n")
	fmt.Fprintf(&b, "base     %s\n", orDash(m.base))
	fmt.Fprintf(&b, "status   %s\n", m.status)
	if !m.checked.IsZero() {
		fmt.Fprintf(&b, "checked  %s\n", m.checked.Format("15:04:05"))
	}
	if m.probeErr != nil {
		fmt.Fprintf(&b, "probe    %v\n", m.probeErr)
	}
	if m.prober != nil {
		b.WriteString("candidates\n")
		for _, c := range m.prober.Candidates {
			b.WriteString("  " + c + "\n")
		}
	}
	if m.probing {
		b.WriteString(mutedStyle.Render("probing..."))
	}
	return diagStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func statusLabel(s discovery.Status) string {
	switch s {
	case discovery.StatusOnline:
		return okStyle.Render("● online")
	case discovery.StatusOffline:
		return bannerStyle.Render("● offline")
	default:
		return warnStyle.Render("● checking")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
