package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// MapsFailure is shown when a maps query fails
const MapsFailure = "SYSTEM_ERROR: CORE_ACCESS_DENIED"

const navigateDelay = 2500 * time.Millisecond

type mapsResultMsg struct {
	query string
	resp  *types.MapsResponse
	err   error
}

type navigateDoneMsg struct{ target string }

// Maps answers location questions grounded in map data
type Maps struct {
	deps  Deps
	modes modes
	input textinput.Model
	lat   float64
	lng   float64

	loading bool
	text    string
	sources []types.GroundingSource
	cursor  int
	route   string
	arrived bool
}

// NewMaps creates the maps panel
func NewMaps(d Deps) Panel {
	d = d.withDefaults()
	in := textinput.New()
	in.Placeholder = "Search places..."
	in.Focus()

	m := &Maps{
		deps:  d,
		modes: newModes("search", "results", "navigate"),
		input: in,
		lat:   DefaultLatitude,
		lng:   DefaultLongitude,
	}
	if d.Latitude != nil && d.Longitude != nil {
		m.lat, m.lng = *d.Latitude, *d.Longitude
	}
	return m
}

func (m *Maps) ID() types.AppID { return types.AppMaps }
func (m *Maps) Title() string   { return "Tactical" }
func (m *Maps) Init() tea.Cmd   { return textinput.Blink }

// Result returns the last answer text and its sources
func (m *Maps) Result() (string, []types.GroundingSource) {
	return m.text, m.sources
}

func (m *Maps) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mapsResultMsg:
		m.loading = false
		if msg.err != nil {
			m.deps.Logger.Warn("Maps query failed", zap.String("query", msg.query), zap.Error(msg.err))
			m.text, m.sources = MapsFailure, nil
		} else {
			m.text, m.sources = msg.resp.Text, msg.resp.Sources
		}
		m.cursor = 0
		m.modes.set("results")
		return m, nil

	case navigateDoneMsg:
		if m.route == msg.target {
			m.arrived = true
		}
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "tab" {
			m.modes.next()
			return m, nil
		}
		if key == "esc" {
			return m, Launch(types.AppHome)
		}
		switch m.modes.current() {
		case "search":
			if key == "enter" {
				return m, m.search(m.input.Value())
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		case "results":
			switch key {
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < len(m.sources)-1 {
					m.cursor++
				}
			case "enter":
				if len(m.sources) == 0 {
					return m, nil
				}
				m.route, m.arrived = m.sources[m.cursor].Title, false
				m.modes.set("navigate")
				return m, Simulate(navigateDelay, navigateDoneMsg{target: m.route})
			}
		}
	}
	return m, nil
}

func (m *Maps) search(q string) tea.Cmd {
	if strings.TrimSpace(q) == "" || m.loading {
		return nil
	}
	m.loading = true

	d, lat, lng := m.deps, m.lat, m.lng
	return func() tea.Msg {
		if d.Relay == nil {
			return mapsResultMsg{query: q, err: errNoRelay}
		}
		ctx, cancel := d.context()
		defer cancel()
		resp, err := d.Relay.Maps(ctx, q, &lat, &lng)
		return mapsResultMsg{query: q, resp: resp, err: err}
	}
}

func (m *Maps) View() string {
	var b strings.Builder
	b.WriteString(header("TACTICAL NAV", m.modes))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("position %.4f, %.4f", m.lat, m.lng)) + "\n\n")

	switch m.modes.current() {
	case "search":
		b.WriteString(m.input.View())
		if m.loading {
			b.WriteString("\n" + mutedStyle.Render("Querying navigation uplink..."))
		}
	case "results":
		if m.text == "" {
			b.WriteString(mutedStyle.Render("No results yet."))
			break
		}
		b.WriteString(RenderMarkdown(m.text, DefaultWrap) + "\n\n")
		for i, s := range m.sources {
			b.WriteString(cursorLine(i == m.cursor, s.Title+"  "+mutedStyle.Render(s.URI)) + "\n")
		}
	case "navigate":
		switch {
		case m.route == "":
			b.WriteString(mutedStyle.Render("Select a result to navigate."))
		case m.arrived:
			b.WriteString(okStyle.Render("Route locked: "+m.route) + " " + Simulated)
		default:
			b.WriteString("Plotting route to " + m.route + "... " + Simulated)
		}
	}
	return b.String()
}
