package panels

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

const installDelay = 3 * time.Second

type installDoneMsg struct{ game Game }

// Extensions is the market: gift cards and games
type Extensions struct {
	deps  Deps
	modes modes
	user  *types.UserProfile

	cursor     int
	installing string
	status     string
}

// NewExtensions creates the market panel
func NewExtensions(d Deps) Panel {
	d = d.withDefaults()
	user := d.User.Clone()
	if user == nil {
		user = &types.UserProfile{}
	}
	return &Extensions{
		deps:  d,
		modes: newModes("all", "games", "gift-card"),
		user:  user,
	}
}

func (e *Extensions) ID() types.AppID { return types.AppExtensions }
func (e *Extensions) Title() string   { return "Market" }
func (e *Extensions) Init() tea.Cmd   { return nil }

// User returns the panel's view of the profile
func (e *Extensions) User() *types.UserProfile {
	return e.user.Clone()
}

type marketItem struct {
	game   *Game
	amount float64
}

func (e *Extensions) items() []marketItem {
	var out []marketItem
	mode := e.modes.current()
	if mode == "all" || mode == "games" {
		for i := range Games {
			out = append(out, marketItem{game: &Games[i]})
		}
	}
	if mode == "all" || mode == "gift-card" {
		for _, a := range GiftCards {
			out = append(out, marketItem{amount: a})
		}
	}
	return out
}

func (e *Extensions) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case installDoneMsg:
		if e.installing != msg.game.ID {
			return e, nil
		}
		e.installing = ""
		e.user.InstalledApps = append(e.user.InstalledApps, msg.game.ID)
		e.status = fmt.Sprintf("INSTALLATION_COMPLETE: %s synced to Home Desktop.", msg.game.Title)
		return e, UpdateProfile(*e.user.Clone())

	case tea.KeyMsg:
		items := e.items()
		switch msg.String() {
		case "tab":
			e.modes.next()
			e.cursor = 0
		case "up", "k":
			if e.cursor > 0 {
				e.cursor--
			}
		case "down", "j":
			if e.cursor < len(items)-1 {
				e.cursor++
			}
		case "esc":
			return e, Launch(types.AppHome)
		case "enter":
			if e.cursor >= len(items) {
				return e, nil
			}
			item := items[e.cursor]
			if item.game != nil {
				return e, e.install(*item.game)
			}
			return e, e.purchase(item.amount)
		}
	}
	return e, nil
}

func (e *Extensions) purchase(amount float64) tea.Cmd {
	credits := e.user.Balance() + amount
	e.user.Credits = &credits
	e.status = fmt.Sprintf("TRANSACTION_SUCCESS: $%.0f added to %s's core wallet.", amount, e.user.RobotName)
	return UpdateProfile(*e.user.Clone())
}

func (e *Extensions) install(g Game) tea.Cmd {
	if e.user.HasApp(g.ID) || e.installing != "" {
		return nil
	}
	e.installing = g.ID
	return Simulate(installDelay, installDoneMsg{game: g})
}

func (e *Extensions) View() string {
	var b strings.Builder
	b.WriteString(header("AURA_MARKET", e.modes))
	b.WriteString(okStyle.Render(fmt.Sprintf("Active balance $%.2f", e.user.Balance())) + "\n\n")

	for i, item := range e.items() {
		var line string
		if item.game != nil {
			state := item.game.Price
			switch {
			case e.user.HasApp(item.game.ID):
				state = "INSTALLED"
			case e.installing == item.game.ID:
				state = "installing... " + Simulated
			}
			line = fmt.Sprintf("%-22s %s", item.game.Title, state)
		} else {
			line = fmt.Sprintf("Gift card $%-12.0f add credit", item.amount)
		}
		b.WriteString(cursorLine(i == e.cursor, line) + "\n")
	}
	if e.status != "" {
		b.WriteString("\n" + okStyle.Render(e.status))
	}
	return b.String()
}
