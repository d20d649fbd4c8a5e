package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

const (
	analysisDelay = 2 * time.Second
	fetchDelay    = 2 * time.Second
	syncDelay     = 1500 * time.Millisecond
)

type analysisDoneMsg struct{ id string }

type trackFetchedMsg struct{ track types.Track }

type syncDoneMsg struct{}

// DJMusic is the track deck with simulated analysis and sync
type DJMusic struct {
	deps  Deps
	modes modes

	tracks    []types.Track
	cursor    int
	search    textinput.Model
	analyzing string
	fetching  bool
	syncing   bool
	synced    bool
}

// NewDJMusic creates the DJ panel
func NewDJMusic(d Deps) Panel {
	d = d.withDefaults()
	now := d.Now()
	search := textinput.New()
	search.Prompt = "fetch> "
	search.Placeholder = "track url or name"
	search.Focus()

	return &DJMusic{
		deps:   d,
		modes:  newModes("browse", "analysis", "sync"),
		search: search,
		tracks: []types.Track{
			{
				FileAsset: types.FileAsset{ID: "t1", Name: "Cyber_Synth_Loop_124.mp3", Type: "audio", Category: "music", Timestamp: now, Size: "12.4 MB"},
				BPM:       124, Key: "Am", Cues: []float64{10, 32, 64}, BeatgridSet: true, PhraseSet: true, Format: "mp3",
			},
			{
				FileAsset: types.FileAsset{ID: "t2", Name: "Deep_Neural_Bass.wav", Type: "audio", Category: "music", Timestamp: now.Add(-time.Hour), Size: "48.2 MB"},
				BPM:       128, Key: "Fm", Format: "wav",
			},
		},
	}
}

func (m *DJMusic) ID() types.AppID { return types.AppDJMusic }
func (m *DJMusic) Title() string   { return "DJ Deck" }
func (m *DJMusic) Init() tea.Cmd   { return nil }

// Tracks returns the deck's tracks
func (m *DJMusic) Tracks() []types.Track {
	return m.tracks
}

func (m *DJMusic) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisDoneMsg:
		if m.analyzing != msg.id {
			return m, nil
		}
		m.analyzing = ""
		for i := range m.tracks {
			if m.tracks[i].ID == msg.id {
				m.tracks[i].BeatgridSet = true
				m.tracks[i].PhraseSet = true
				if len(m.tracks[i].Cues) == 0 {
					m.tracks[i].Cues = []float64{0, 16, 32}
				}
			}
		}
		return m, nil

	case trackFetchedMsg:
		m.fetching = false
		m.tracks = append([]types.Track{msg.track}, m.tracks...)
		return m, nil

	case syncDoneMsg:
		m.syncing, m.synced = false, true
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "tab":
			m.modes.next()
			return m, nil
		case "esc":
			return m, Launch(types.AppStorage)
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.tracks)-1 {
				m.cursor++
			}
			return m, nil
		}

		switch m.modes.current() {
		case "browse":
			if key == "enter" {
				return m, m.fetch(m.search.Value())
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		case "analysis":
			if key == "enter" && m.analyzing == "" && len(m.tracks) > 0 {
				m.analyzing = m.tracks[m.cursor].ID
				return m, Simulate(analysisDelay, analysisDoneMsg{id: m.analyzing})
			}
		case "sync":
			if key == "enter" && !m.syncing {
				m.syncing, m.synced = true, false
				return m, Simulate(syncDelay, syncDoneMsg{})
			}
		}
	}
	return m, nil
}

func (m *DJMusic) fetch(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" || m.fetching {
		return nil
	}
	m.fetching = true
	m.search.SetValue("")

	name := query
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		name = "Downloaded_Track"
	}
	track := types.Track{
		FileAsset: types.FileAsset{
			ID:        fmt.Sprintf("t%d", m.deps.Now().UnixNano()),
			Name:      name + ".mp3",
			Type:      "audio",
			Category:  "music",
			Timestamp: m.deps.Now(),
			Size:      "15.0 MB",
		},
		BPM: 126, Key: "Cm", Format: "mp3",
	}
	return Simulate(fetchDelay, trackFetchedMsg{track: track})
}

func (m *DJMusic) View() string {
	var b strings.Builder
	b.WriteString(header("NEURAL DJ", m.modes))

	for i, t := range m.tracks {
		grid := "--"
		if t.BeatgridSet {
			grid = "GRID"
		}
		line := fmt.Sprintf("%-28s %5.0f BPM  %-3s %-4s cues:%d", t.Name, t.BPM, t.Key, grid, len(t.Cues))
		if m.analyzing == t.ID {
			line += " analyzing... " + Simulated
		}
		b.WriteString(cursorLine(i == m.cursor, line) + "\n")
	}
	b.WriteString("\n")

	switch m.modes.current() {
	case "browse":
		b.WriteString(m.search.View())
		if m.fetching {
			b.WriteString("\nFetching track... " + Simulated)
		}
	case "analysis":
		b.WriteString(mutedStyle.Render("enter analyze selected track"))
	case "sync":
		switch {
		case m.syncing:
			b.WriteString("Syncing library to deck... " + Simulated)
		case m.synced:
			b.WriteString(okStyle.Render("Library synced " + Simulated))
		default:
			b.WriteString(mutedStyle.Render("enter sync library"))
		}
	}
	return b.String()
}
