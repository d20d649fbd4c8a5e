package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

var storageLog = []struct{ time, msg, status string }{
	{"04:20:11", "Synced [DEEP_HOUSE_01.MP3] to Serato", "STABLE"},
	{"04:18:55", "Analyzing Beatgrid for [NEURAL_BASS]", "ACTIVE"},
	{"03:44:02", "Cloud Vault backup initiated", "COMPLETE"},
	{"02:11:59", "Encryption protocols refreshed", "STABLE"},
}

// Storage shows drive usage and hands off to the DJ deck
type Storage struct {
	deps  Deps
	modes modes
	local int
}

// NewStorage creates the storage panel
func NewStorage(d Deps) Panel {
	d = d.withDefaults()
	s := &Storage{deps: d, modes: newModes("overview", "music")}
	if d.AssetsDir != "" {
		if assets, err := LocalAssets(d.AssetsDir, d.Now()); err == nil {
			s.local = len(assets)
		}
	}
	return s
}

func (s *Storage) ID() types.AppID { return types.AppStorage }
func (s *Storage) Title() string   { return "Storage" }
func (s *Storage) Init() tea.Cmd   { return nil }

func (s *Storage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			s.modes.next()
		case "esc":
			return s, Launch(types.AppHome)
		case "enter", "d":
			if s.modes.current() == "music" {
				return s, Launch(types.AppDJMusic)
			}
		}
	}
	return s, nil
}

func (s *Storage) View() string {
	var b strings.Builder
	b.WriteString(header("DATA CORE", s.modes))
	switch s.modes.current() {
	case "overview":
		fmt.Fprintf(&b, "Local assets indexed  %d\n\n", s.local)
		for _, l := range storageLog {
			fmt.Fprintf(&b, "%s  %-40s %s\n", mutedStyle.Render(l.time), l.msg, l.status)
		}
	case "music":
		b.WriteString("Neural DJ deck ready.\n" + mutedStyle.Render("enter launch DJ  esc back"))
	}
	return b.String()
}
