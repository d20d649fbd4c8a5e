package panels

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

var homeGen atomic.Uint64

// homeSyncMsg carries one telemetry poll for a home instance
type homeSyncMsg struct {
	gen    uint64
	update discovery.Update
}

type homeTickMsg struct{ gen uint64 }

// Home shows live telemetry and the launcher grid
type Home struct {
	deps    Deps
	gen     uint64
	monitor *discovery.Monitor

	status discovery.Status
	state  *types.SystemState
	tiles  []Tile
	cursor int
}

// NewHome creates the home panel with its own telemetry monitor
func NewHome(d Deps) Panel {
	d = d.withDefaults()
	h := &Home{
		deps:   d,
		gen:    homeGen.Add(1),
		status: discovery.StatusChecking,
		tiles:  append([]Tile{}, Launcher...),
	}
	if d.Relay != nil {
		h.monitor = discovery.NewMonitor(d.Relay, d.HomeInterval, d.Logger.Named("home"))
		h.monitor.FetchState = true
	}
	for _, id := range d.User.Apps() {
		if g, ok := gameByID(id); ok {
			h.tiles = append(h.tiles, Tile{App: types.AppController, Label: g.Title, Sub: "Installed Game"})
		}
	}
	return h
}

func (h *Home) ID() types.AppID { return types.AppHome }
func (h *Home) Title() string   { return "Aura Home" }

func (h *Home) Init() tea.Cmd {
	return h.sync()
}

func (h *Home) sync() tea.Cmd {
	if h.monitor == nil {
		return nil
	}
	gen, m, d := h.gen, h.monitor, h.deps
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		return homeSyncMsg{gen: gen, update: m.Check(ctx)}
	}
}

func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case homeSyncMsg:
		if msg.gen != h.gen {
			return h, nil
		}
		h.status = msg.update.Status
		if msg.update.State != nil {
			h.state = msg.update.State
		}
		gen := h.gen
		return h, tea.Tick(h.deps.HomeInterval, func(time.Time) tea.Msg { return homeTickMsg{gen: gen} })

	case homeTickMsg:
		if msg.gen != h.gen {
			return h, nil
		}
		return h, h.sync()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "left", "h":
			if h.cursor > 0 {
				h.cursor--
			}
		case "down", "j", "right", "l":
			if h.cursor < len(h.tiles)-1 {
				h.cursor++
			}
		case "enter":
			return h, Launch(h.tiles[h.cursor].App)
		}
	}
	return h, nil
}

// Telemetry returns the four dashboard values
func (h *Home) Telemetry() [4]string {
	if h.state == nil {
		return [4]string{"Syncing...", "0", "---", "0"}
	}
	return [4]string{
		fmt.Sprintf("%d Evt", len(h.state.Logs)),
		fmt.Sprintf("%d", len(h.state.Emails)),
		fmt.Sprintf("%d Nodes", len(h.state.Files)),
		fmt.Sprintf("%d", len(h.state.Contacts)),
	}
}

func (h *Home) View() string {
	t := h.Telemetry()
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render("Neural Hub\n"+titleStyle.Render(t[0])+"\n"+mutedStyle.Render("Mesh Network Active")),
		cardStyle.Render("Comms Load\n"+titleStyle.Render(t[1])+"\n"+mutedStyle.Render("Neural Inbox Healthy")),
		cardStyle.Render("Stored Pulse\n"+titleStyle.Render(t[2])+"\n"+mutedStyle.Render("Vault Integrity Stable")),
		cardStyle.Render("Mesh Peers\n"+titleStyle.Render(t[3])+"\n"+mutedStyle.Render("Inter-Bot Linkage Open")),
	)

	var grid strings.Builder
	for i, tile := range h.tiles {
		grid.WriteString(cursorLine(i == h.cursor, fmt.Sprintf("%-22s %s", tile.Label, mutedStyle.Render(tile.Sub))))
		grid.WriteString("\n")
	}

	var events strings.Builder
	if h.state != nil {
		events.WriteString(titleStyle.Render("NEURAL_TELEMETRY_STREAM") + "\n")
		for i, log := range h.state.Logs {
			if i == 4 {
				break
			}
			fmt.Fprintf(&events, "%s  %s\n", mutedStyle.Render(fmt.Sprintf("0%d", i+1)), log)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("AURA HOME")+"  "+mutedStyle.Render("relay "+string(h.status)),
		cards,
		"",
		grid.String(),
		events.String(),
	)
}
