package panels

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Action is a simulated operation offered by a generic panel
type Action struct {
	Label string
	Delay time.Duration
	Done  string
}

type genericDef struct {
	id      types.AppID
	title   string
	heading string
	modes   []string
	actions map[string][]Action
}

type actionDoneMsg struct {
	app   types.AppID
	label string
}

// Generic is a panel whose work is entirely simulated
type Generic struct {
	def    genericDef
	deps   Deps
	modes  modes
	cursor int

	running string
	done    map[string]bool
	status  string
}

func newGeneric(def genericDef, d Deps) *Generic {
	return &Generic{
		def:   def,
		deps:  d.withDefaults(),
		modes: newModes(def.modes...),
		done:  map[string]bool{},
	}
}

// NewNetwork creates the robot mesh panel
func NewNetwork(d Deps) Panel {
	return newGeneric(genericDef{
		id: types.AppNetwork, title: "Robot Network", heading: "ROBOT MESH",
		modes: []string{"peers", "pairing"},
		actions: map[string][]Action{
			"peers": {
				{"Ping Nexus-7", time.Second, "Nexus-7 responded in 12ms"},
				{"Ping Zero-One", time.Second, "Zero-One unreachable"},
			},
			"pairing": {
				{"Pair new unit", 2 * time.Second, "Unit paired to mesh"},
			},
		},
	}, d)
}

// NewContent creates the social feed panel
func NewContent(d Deps) Panel {
	return newGeneric(genericDef{
		id: types.AppContent, title: "Social", heading: "MESH FEED",
		modes: []string{"feed", "live", "games", "networking"},
		actions: map[string][]Action{
			"feed":       {{"Refresh feed", time.Second, "Feed synchronized"}},
			"live":       {{"Raise hand", 500 * time.Millisecond, "Hand Raised // Awaiting Host Permission"}},
			"games":      {{"Sync controller", 500 * time.Millisecond, "Aura-Link: PS5 Controller Synchronized Globally."}},
			"networking": {{"Join lounge", time.Second, "Joined networking lounge"}},
		},
	}, d)
}

// NewVideo creates the cinema panel
func NewVideo(d Deps) Panel {
	return newGeneric(genericDef{
		id: types.AppVideo, title: "Cinema", heading: "CINEMA",
		modes: []string{"explore", "playlist", "my-vault"},
		actions: map[string][]Action{
			"explore":  {{"Purchase Neon Genesis", time.Second, "TRANSACTION_SECURE // Video Access Granted."}},
			"playlist": {{"Play queue", 2 * time.Second, "Queue playing"}},
			"my-vault": {{"Download to vault", 2 * time.Second, "Video stored in vault"}},
		},
	}, d)
}

// NewBooks creates the library panel
func NewBooks(d Deps) Panel {
	return newGeneric(genericDef{
		id: types.AppBooks, title: "Books", heading: "KNOWLEDGE LIBRARY",
		modes: []string{"newspaper", "library", "store"},
		actions: map[string][]Action{
			"newspaper": {{"Fetch morning edition", time.Second, "Edition downloaded"}},
			"library":   {{"Open last book", 500 * time.Millisecond, "Resumed at chapter 4"}},
			"store":     {{"Purchase Neural Networks Vol. 2", time.Second, "TRANSACTION_SECURE // Knowledge Node Decrypted."}},
		},
	}, d)
}

// NewController creates the peripherals panel
func NewController(d Deps) Panel {
	return newGeneric(genericDef{
		id: types.AppController, title: "Controller", heading: "PERIPHERALS",
		modes: []string{"peripherals", "tv", "settings"},
		actions: map[string][]Action{
			"peripherals": {{"Pair controller", 2 * time.Second, "Controller linked"}},
			"tv":          {{"Pair TV", 2 * time.Second, "TV connected"}},
			"settings":    {{"Recalibrate sticks", time.Second, "Calibration stored"}},
		},
	}, d)
}

func (g *Generic) ID() types.AppID { return g.def.id }
func (g *Generic) Title() string   { return g.def.title }
func (g *Generic) Init() tea.Cmd   { return nil }

// Status returns the last completion message
func (g *Generic) Status() string {
	return g.status
}

func (g *Generic) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case actionDoneMsg:
		if msg.app != g.def.id || msg.label != g.running {
			return g, nil
		}
		g.running = ""
		g.done[msg.label] = true
		for _, acts := range g.def.actions {
			for _, a := range acts {
				if a.Label == msg.label {
					g.status = a.Done
				}
			}
		}
		return g, nil

	case tea.KeyMsg:
		actions := g.def.actions[g.modes.current()]
		switch msg.String() {
		case "tab":
			g.modes.next()
			g.cursor = 0
		case "up", "k":
			if g.cursor > 0 {
				g.cursor--
			}
		case "down", "j":
			if g.cursor < len(actions)-1 {
				g.cursor++
			}
		case "esc":
			return g, Launch(types.AppHome)
		case "enter":
			if g.running != "" || g.cursor >= len(actions) {
				return g, nil
			}
			a := actions[g.cursor]
			g.running = a.Label
			return g, Simulate(a.Delay, actionDoneMsg{app: g.def.id, label: a.Label})
		}
	}
	return g, nil
}

func (g *Generic) View() string {
	var b strings.Builder
	b.WriteString(header(g.def.heading, g.modes))
	for i, a := range g.def.actions[g.modes.current()] {
		state := ""
		switch {
		case g.running == a.Label:
			state = " working... " + Simulated
		case g.done[a.Label]:
			state = " " + okStyle.Render("done")
		}
		b.WriteString(cursorLine(i == g.cursor, a.Label+state) + "\n")
	}
	if g.status != "" {
		b.WriteString("\n" + fmt.Sprintf("%s %s", okStyle.Render(g.status), Simulated))
	}
	return b.String()
}
