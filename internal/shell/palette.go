package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Command is a palette entry
type Command struct {
	Label string
	Hint  string
	App   types.AppID
}

// Commands are the palette entries in display order
var Commands = []Command{
	{"Ask Aura", "Neural chat", types.AppChat},
	{"Search Comms", "Inbox", types.AppInbox},
	{"Vault Access", "Files", types.AppFiles},
	{"Sentinel Guard", "Security", types.AppSecurity},
}

type palette struct {
	open   bool
	input  textinput.Model
	cursor int
}

func newPalette() palette {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Search commands..."
	return palette{input: in}
}

func (p *palette) show() {
	p.open = true
	p.cursor = 0
	p.input.SetValue("")
	p.input.Focus()
}

func (p *palette) hide() {
	p.open = false
	p.input.Blur()
}

// matches filters Commands by a case-insensitive substring of label or hint
func (p *palette) matches() []Command {
	q := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if q == "" {
		return Commands
	}
	var out []Command
	for _, c := range Commands {
		if strings.Contains(strings.ToLower(c.Label), q) || strings.Contains(strings.ToLower(c.Hint), q) {
			out = append(out, c)
		}
	}
	return out
}

func (p *palette) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("COMMAND") + "\n")
	b.WriteString(p.input.View() + "\n\n")
	cmds := p.matches()
	if len(cmds) == 0 {
		b.WriteString(mutedStyle.Render("No matching command"))
	}
	for i, c := range cmds {
		line := c.Label + "  " + mutedStyle.Render(c.Hint)
		if i == p.cursor {
			line = activeStyle.Render("> "+c.Label) + "  " + mutedStyle.Render(c.Hint)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return paletteStyle.Render(b.String())
}
