package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Profile shows the identity card and ends the session
type Profile struct {
	deps  Deps
	modes modes
	user  *types.UserProfile
}

// NewProfile creates the profile panel
func NewProfile(d Deps) Panel {
	d = d.withDefaults()
	return &Profile{deps: d, modes: newModes("identity", "settings"), user: d.User.Clone()}
}

func (p *Profile) ID() types.AppID { return types.AppProfile }
func (p *Profile) Title() string   { return "Profile" }
func (p *Profile) Init() tea.Cmd   { return nil }

func (p *Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			p.modes.next()
		case "esc":
			return p, Launch(types.AppHome)
		case "L":
			return p, func() tea.Msg { return LogoutMsg{} }
		}
	}
	return p, nil
}

func (p *Profile) View() string {
	var b strings.Builder
	b.WriteString(header("IDENTITY CORE", p.modes))
	if p.user == nil {
		return b.String() + mutedStyle.Render("No active session.")
	}
	switch p.modes.current() {
	case "identity":
		fmt.Fprintf(&b, "Operator   %s\nUnit       %s\nBiometric  %t\nCredits    $%.2f\nInstalled  %d\n",
			p.user.Name, p.user.RobotName, p.user.BioRegistered, p.user.Balance(), len(p.user.InstalledApps))
	case "settings":
		b.WriteString(mutedStyle.Render("Session is stored locally. Press L to disconnect.") + "\n")
	}
	b.WriteString("\n" + mutedStyle.Render("L logout  esc back"))
	return b.String()
}
