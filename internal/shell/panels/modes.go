package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// modes is a panel's local view switcher
type modes struct {
	names []string
	idx   int
}

func newModes(names ...string) modes {
	return modes{names: names}
}

func (m modes) current() string {
	return m.names[m.idx]
}

func (m *modes) next() {
	m.idx = (m.idx + 1) % len(m.names)
}

func (m *modes) set(name string) {
	for i, n := range m.names {
		if n == name {
			m.idx = i
			return
		}
	}
}

func (m modes) tabs() string {
	parts := make([]string, len(m.names))
	for i, n := range m.names {
		if i == m.idx {
			parts[i] = activeTabStyle.Render(strings.ToUpper(n))
		} else {
			parts[i] = tabStyle.Render(strings.ToUpper(n))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
