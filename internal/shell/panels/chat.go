package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Chat strings shown to the user
const (
	ChatGreeting    = "Neural linkage established. I can manage your social mesh or assist with core tasks."
	ChatFailure     = "Kernel linkage failure."
	storylineLength = 50
	callConnectWait = 2 * time.Second
)

type chatReplyMsg struct {
	id    string
	reply *types.ChatResponse
	err   error
}

type speechMsg struct {
	audio string
	err   error
}

type callConnectedMsg struct{ contact string }

// Chat talks to the neural core and a small contact mesh
type Chat struct {
	deps  Deps
	modes modes
	input textinput.Model
	spin  spinner.Model

	messages []types.Message
	pending  string
	voice    string

	contacts []types.Contact
	cursor   int
	call     string
	inCall   bool
}

// NewChat creates the chat panel
func NewChat(d Deps) Panel {
	d = d.withDefaults()
	in := textinput.New()
	in.Placeholder = "Message Aura..."
	in.CharLimit = 4000
	in.Focus()

	return &Chat{
		deps:  d,
		modes: newModes("chat", "contacts", "calls"),
		input: in,
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		messages: []types.Message{{
			ID:        uuid.NewString(),
			Role:      types.RoleAssistant,
			Content:   ChatGreeting,
			Timestamp: d.Now(),
		}},
		contacts: []types.Contact{
			{ID: "c1", Name: "Nexus-7", Phone: "+1-555-0199", Status: "online"},
			{ID: "c2", Name: "Zero-One", Phone: "+1-555-0182", Status: "offline"},
		},
	}
}

func (c *Chat) ID() types.AppID { return types.AppChat }
func (c *Chat) Title() string   { return "AI Link" }

func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Messages returns the conversation so far
func (c *Chat) Messages() []types.Message {
	return c.messages
}

// Busy reports whether a reply is outstanding
func (c *Chat) Busy() bool {
	return c.pending != ""
}

func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		return c, c.applyReply(msg)

	case speechMsg:
		if msg.err != nil {
			c.deps.Logger.Debug("Speech failed", zap.Error(msg.err))
			c.voice = ""
		} else {
			c.voice = msg.audio
		}
		return c, nil

	case callConnectedMsg:
		if c.call == msg.contact {
			c.inCall = true
		}
		return c, nil

	case spinner.TickMsg:
		if !c.Busy() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		if msg.String() == "tab" {
			c.modes.next()
			return c, nil
		}
		switch c.modes.current() {
		case "chat":
			return c, c.updateChat(msg)
		case "contacts":
			return c, c.updateContacts(msg)
		case "calls":
			if msg.String() == "esc" {
				c.call, c.inCall = "", false
				c.modes.set("contacts")
			}
		}
	}
	return c, nil
}

func (c *Chat) updateChat(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "enter" {
		return c.send(c.input.Value())
	}
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *Chat) updateContacts(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.contacts)-1 {
			c.cursor++
		}
	case "b":
		c.contacts[c.cursor].IsBlocked = !c.contacts[c.cursor].IsBlocked
	case "enter":
		contact := c.contacts[c.cursor]
		if contact.IsBlocked {
			return nil
		}
		c.call, c.inCall = contact.Name, false
		c.modes.set("calls")
		return Simulate(callConnectWait, callConnectedMsg{contact: contact.Name})
	}
	return nil
}

// send appends the user turn and asks the relay with the full history
func (c *Chat) send(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" || c.Busy() {
		return nil
	}
	c.input.SetValue("")

	user := types.Message{
		ID:          uuid.NewString(),
		Role:        types.RoleUser,
		Content:     text,
		Timestamp:   c.deps.Now(),
		IsStoryline: len(text) > storylineLength,
	}
	c.messages = append(c.messages, user)
	history := append([]types.Message(nil), c.messages...)

	c.pending = uuid.NewString()
	c.messages = append(c.messages, types.Message{ID: c.pending, Role: types.RoleAssistant, Timestamp: c.deps.Now()})

	id, d := c.pending, c.deps
	ask := func() tea.Msg {
		if d.Relay == nil {
			return chatReplyMsg{id: id, err: errNoRelay}
		}
		ctx, cancel := d.context()
		defer cancel()
		reply, err := d.Relay.Chat(ctx, history, "")
		return chatReplyMsg{id: id, reply: reply, err: err}
	}
	return tea.Batch(ask, c.spin.Tick)
}

func (c *Chat) applyReply(msg chatReplyMsg) tea.Cmd {
	if msg.id != c.pending {
		return nil
	}
	c.pending = ""

	content := ChatFailure
	if msg.err != nil {
		c.deps.Logger.Warn("Chat failed", zap.Error(msg.err))
	} else {
		content = msg.reply.Text
	}
	for i := range c.messages {
		if c.messages[i].ID == msg.id {
			c.messages[i].Content = content
		}
	}

	if msg.err != nil || !c.deps.Speech || c.deps.Relay == nil || content == "" {
		return nil
	}
	d := c.deps
	return func() tea.Msg {
		ctx, cancel := d.context()
		defer cancel()
		audio, err := d.Relay.Speak(ctx, content)
		return speechMsg{audio: audio, err: err}
	}
}

func (c *Chat) View() string {
	var body string
	switch c.modes.current() {
	case "contacts":
		body = c.viewContacts()
	case "calls":
		body = c.viewCall()
	default:
		body = c.viewChat()
	}
	return header("AI LINK", c.modes) + body
}

func (c *Chat) viewChat() string {
	var b strings.Builder
	for _, m := range c.messages {
		switch {
		case m.ID == c.pending:
			b.WriteString(c.spin.View() + mutedStyle.Render(" Aura is thinking...") + "\n")
		case m.Role == types.RoleAssistant:
			b.WriteString(titleStyle.Render("AURA") + "\n" + RenderMarkdown(m.Content, DefaultWrap) + "\n\n")
		default:
			label := "YOU"
			if m.IsStoryline {
				label += " " + mutedStyle.Render("[storyline]")
			}
			b.WriteString(okStyle.Render(label) + "\n" + m.Content + "\n\n")
		}
	}
	if c.voice != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("voice reply ready (%d bytes base64)", len(c.voice))) + "\n")
	}
	b.WriteString(c.input.View())
	return b.String()
}

func (c *Chat) viewContacts() string {
	var b strings.Builder
	b.WriteString(mutedStyle.Render("NEURAL_DIRECTORY  enter call  b block") + "\n")
	for i, ct := range c.contacts {
		line := fmt.Sprintf("%-10s %-13s %s", ct.Name, ct.Phone, ct.Status)
		if ct.IsBlocked {
			line += " " + errorStyle.Render("BLOCKED")
		}
		b.WriteString(cursorLine(i == c.cursor, line) + "\n")
	}
	return b.String()
}

func (c *Chat) viewCall() string {
	if c.call == "" {
		return mutedStyle.Render("No active call. Pick a contact.")
	}
	state := "Connecting to " + c.call + "... " + Simulated
	if c.inCall {
		state = okStyle.Render("Linked with "+c.call) + " " + Simulated
	}
	return lipgloss.JoinVertical(lipgloss.Left, state, mutedStyle.Render("esc to hang up"))
}
