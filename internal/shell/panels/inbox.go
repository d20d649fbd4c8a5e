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

const (
	sendDelay  = 1500 * time.Millisecond
	printDelay = 2 * time.Second
)

type inboxStateMsg struct {
	emails []types.Email
	err    error
}

type emailSentMsg struct{ email types.Email }

type printDoneMsg struct{ id string }

// Inbox lists relay emails and composes simulated replies
type Inbox struct {
	deps  Deps
	modes modes

	emails   []types.Email
	cursor   int
	loadErr  string
	printing string
	printed  string

	fields  []textinput.Model
	focus   int
	sending bool
	status  string
}

// NewInbox creates the inbox panel
func NewInbox(d Deps) Panel {
	fields := make([]textinput.Model, 3)
	for i, p := range []string{"To", "Subject", "Body"} {
		fields[i] = textinput.New()
		fields[i].Placeholder = p
		fields[i].Prompt = fmt.Sprintf("%-8s", p+":")
	}
	return &Inbox{
		deps:   d.withDefaults(),
		modes:  newModes("list", "read", "compose"),
		fields: fields,
	}
}

func (i *Inbox) ID() types.AppID { return types.AppInbox }
func (i *Inbox) Title() string   { return "Inbox" }

func (i *Inbox) Init() tea.Cmd {
	d := i.deps
	return func() tea.Msg {
		if d.Relay == nil {
			return inboxStateMsg{err: errNoRelay}
		}
		ctx, cancel := d.context()
		defer cancel()
		st, err := d.Relay.SystemState(ctx)
		if err != nil {
			return inboxStateMsg{err: err}
		}
		return inboxStateMsg{emails: st.Emails}
	}
}

// Emails returns the loaded inbox
func (i *Inbox) Emails() []types.Email {
	return i.emails
}

func (i *Inbox) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case inboxStateMsg:
		if msg.err != nil {
			i.deps.Logger.Warn("Inbox sync failed", zap.Error(msg.err))
			i.loadErr = "Comms uplink offline"
			return i, nil
		}
		// Locally sent mail stays on top of the relay copy
		local := make([]types.Email, 0)
		for _, e := range i.emails {
			if e.Sender == types.DefaultUserName {
				local = append(local, e)
			}
		}
		i.emails, i.loadErr = append(local, msg.emails...), ""
		return i, nil

	case emailSentMsg:
		i.sending = false
		i.emails = append([]types.Email{msg.email}, i.emails...)
		i.status = "Transmission sent to " + msg.email.Recipient + " " + Simulated
		for k := range i.fields {
			i.fields[k].SetValue("")
		}
		i.modes.set("list")
		return i, nil

	case printDoneMsg:
		if i.printing == msg.id {
			i.printing, i.printed = "", msg.id
		}
		return i, nil

	case tea.KeyMsg:
		if msg.String() == "tab" {
			i.modes.next()
			i.syncFocus()
			return i, nil
		}
		switch i.modes.current() {
		case "list":
			return i, i.updateList(msg)
		case "read":
			return i, i.updateRead(msg)
		case "compose":
			return i, i.updateCompose(msg)
		}
	}
	return i, nil
}

func (i *Inbox) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if i.cursor > 0 {
			i.cursor--
		}
	case "down", "j":
		if i.cursor < len(i.emails)-1 {
			i.cursor++
		}
	case "enter":
		if len(i.emails) == 0 {
			return nil
		}
		i.emails[i.cursor].IsRead = true
		i.modes.set("read")
	case "c":
		i.modes.set("compose")
		i.syncFocus()
	}
	return nil
}

func (i *Inbox) updateRead(msg tea.KeyMsg) tea.Cmd {
	if len(i.emails) == 0 {
		return nil
	}
	e := i.emails[i.cursor]
	switch msg.String() {
	case "esc":
		i.modes.set("list")
	case "p":
		if i.printing != "" {
			return nil
		}
		i.printing = e.ID
		return Simulate(printDelay, printDoneMsg{id: e.ID})
	case "r":
		i.fields[0].SetValue(e.Sender)
		i.fields[1].SetValue("Re: " + e.Subject)
		i.modes.set("compose")
		i.focus = 2
		i.syncFocus()
	}
	return nil
}

func (i *Inbox) updateCompose(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		i.modes.set("list")
		return nil
	case "enter":
		if i.focus < len(i.fields)-1 {
			i.focus++
			i.syncFocus()
			return nil
		}
		return i.send()
	}
	var cmd tea.Cmd
	i.fields[i.focus], cmd = i.fields[i.focus].Update(msg)
	return cmd
}

func (i *Inbox) syncFocus() {
	for k := range i.fields {
		if k == i.focus && i.modes.current() == "compose" {
			i.fields[k].Focus()
		} else {
			i.fields[k].Blur()
		}
	}
}

func (i *Inbox) send() tea.Cmd {
	to := strings.TrimSpace(i.fields[0].Value())
	if to == "" || i.sending {
		i.status = "Recipient required"
		return nil
	}
	i.sending = true
	i.focus = 0
	email := types.Email{
		ID:        fmt.Sprintf("local_%d", i.deps.Now().UnixNano()),
		Sender:    types.DefaultUserName,
		Recipient: to,
		Subject:   i.fields[1].Value(),
		Body:      i.fields[2].Value(),
		Timestamp: i.deps.Now(),
		IsRead:    true,
	}
	return Simulate(sendDelay, emailSentMsg{email: email})
}

func (i *Inbox) View() string {
	var b strings.Builder
	b.WriteString(header("NEURAL INBOX", i.modes))
	if i.status != "" {
		b.WriteString(okStyle.Render(i.status) + "\n\n")
	}

	switch i.modes.current() {
	case "list":
		if i.loadErr != "" {
			b.WriteString(errorStyle.Render(i.loadErr) + "\n")
		}
		if len(i.emails) == 0 {
			b.WriteString(mutedStyle.Render("Inbox empty.") + "\n")
		}
		for k, e := range i.emails {
			flag := " "
			if !e.IsRead {
				flag = "*"
			}
			b.WriteString(cursorLine(k == i.cursor, fmt.Sprintf("%s %-14s %s", flag, e.Sender, e.Subject)) + "\n")
		}
		b.WriteString("\n" + mutedStyle.Render("enter read  c compose"))
	case "read":
		if len(i.emails) == 0 {
			b.WriteString(mutedStyle.Render("Nothing selected."))
			break
		}
		e := i.emails[i.cursor]
		fmt.Fprintf(&b, "From: %s\nTo: %s\nSubject: %s\n\n%s\n", e.Sender, e.Recipient, e.Subject, Sanitize(e.Body))
		for _, a := range e.Attachments {
			b.WriteString(mutedStyle.Render("attachment "+a.Name+" ("+a.MimeType+")") + "\n")
		}
		switch {
		case i.printing == e.ID:
			b.WriteString("\nPrinting... " + Simulated)
		case i.printed == e.ID:
			b.WriteString("\n" + okStyle.Render("Printed "+Simulated))
		}
		b.WriteString("\n" + mutedStyle.Render("r reply  p print  esc back"))
	case "compose":
		for _, f := range i.fields {
			b.WriteString(f.View() + "\n")
		}
		if i.sending {
			b.WriteString("\nTransmitting... " + Simulated)
		}
	}
	return b.String()
}
