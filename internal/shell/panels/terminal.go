package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// TerminalFailure replaces the output of a failed command
const TerminalFailure = "SYSTEM_ERROR: CMD_NOT_FOUND"

var bootLines = []string{
	"[INIT] AURA_PRO_KERNEL_LOADED_X64",
	"[BOOT] PRIMARY_SUBSYSTEMS_ONLINE",
	"[INFO] SYSTEM ENCRYPTED // TYPE 'HELP' FOR MODULES.",
}

// Exchange is one command and its output
type Exchange struct {
	Cmd    string
	Output string
}

type terminalOutputMsg struct {
	cmd    string
	output string
	err    error
}

// Terminal forwards commands to the relay's simulated kernel
type Terminal struct {
	deps    Deps
	modes   modes
	input   textinput.Model
	history []Exchange
	loading bool
}

// NewTerminal creates the terminal panel
func NewTerminal(d Deps) Panel {
	in := textinput.New()
	in.Prompt = "AURA@SYSTEM_CMD> "
	in.Focus()
	return &Terminal{
		deps:  d.withDefaults(),
		modes: newModes("shell", "modules"),
		input: in,
	}
}

func (t *Terminal) ID() types.AppID { return types.AppTerminal }
func (t *Terminal) Title() string   { return "System" }
func (t *Terminal) Init() tea.Cmd   { return textinput.Blink }

// History returns completed exchanges
func (t *Terminal) History() []Exchange {
	return t.history
}

func (t *Terminal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case terminalOutputMsg:
		t.loading = false
		out := msg.output
		if msg.err != nil {
			t.deps.Logger.Warn("Terminal command failed", zap.String("cmd", msg.cmd), zap.Error(msg.err))
			out = TerminalFailure
		}
		t.history = append(t.history, Exchange{Cmd: msg.cmd, Output: out})
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			t.modes.next()
			return t, nil
		case "enter":
			return t, t.run(t.input.Value())
		}
		if t.modes.current() == "shell" {
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return t, cmd
		}
	}
	return t, nil
}

func (t *Terminal) run(cmd string) tea.Cmd {
	if strings.TrimSpace(cmd) == "" || t.loading {
		return nil
	}
	t.input.SetValue("")
	t.loading = true

	d := t.deps
	return func() tea.Msg {
		if d.Relay == nil {
			return terminalOutputMsg{cmd: cmd, err: errNoRelay}
		}
		ctx, cancel := d.context()
		defer cancel()
		out, err := d.Relay.Terminal(ctx, cmd)
		return terminalOutputMsg{cmd: cmd, output: out, err: err}
	}
}

func (t *Terminal) View() string {
	var b strings.Builder
	b.WriteString(header("AURA_SHELL_V2.5", t.modes))

	if t.modes.current() == "modules" {
		for _, tile := range Launcher {
			b.WriteString("  " + string(tile.App) + "  " + mutedStyle.Render(tile.Sub) + "\n")
		}
		return b.String()
	}

	for _, l := range bootLines {
		b.WriteString(mutedStyle.Render(l) + "\n")
	}
	for _, h := range t.history {
		b.WriteString("\n" + errorStyle.Render("AURA@SYSTEM_CMD>") + " " + h.Cmd + "\n")
		b.WriteString("  " + strings.ReplaceAll(h.Output, "\n", "\n  ") + "\n")
	}
	if t.loading {
		b.WriteString(errorStyle.Render("[PROCESSING...]") + "\n")
	}
	b.WriteString("\n" + t.input.View())
	return b.String()
}
