package panels

import (
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/testutil"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*[a-zA-Z]")

// stripANSI drops terminal styling so assertions see plain text
func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testDeps(relay Relay) Deps {
	return Deps{
		Relay:   relay,
		Timeout: time.Second,
		Now:     func() time.Time { return testutil.Epoch },
	}
}

// exec runs cmd and flattens batches. Only use it on commands that do not tick.
func exec(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, exec(t, c)...)
	}
	return out
}

func find[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "message not produced", "%T not in %v", zero, msgs)
	return zero
}

func TestRegistryCoversEveryApp(t *testing.T) {
	reg := Registry()
	for _, id := range types.AllAppIDs() {
		t.Run(string(id), func(t *testing.T) {
			_, ok := reg[id]
			require.True(t, ok)
			p := Build(reg, id, testDeps(nil))
			assert.Equal(t, id, p.ID())
			assert.NotEmpty(t, p.Title())
			assert.NotEmpty(t, p.View())
		})
	}
}

func TestBuildUnknownFallsBackHome(t *testing.T) {
	p := Build(Registry(), types.AppID("holodeck"), Deps{})
	assert.Equal(t, types.AppHome, p.ID())
}

func TestLaunchAndSimulate(t *testing.T) {
	assert.Equal(t, LaunchMsg{ID: types.AppMaps}, Launch(types.AppMaps)())

	p := types.UserProfile{Name: "Admin"}
	assert.Equal(t, ProfileUpdatedMsg{Profile: p}, UpdateProfile(p)())

	start := time.Now()
	msg := Simulate(10*time.Millisecond, "done")()
	assert.Equal(t, "done", msg)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestModes(t *testing.T) {
	m := newModes("a", "b", "c")
	assert.Equal(t, "a", m.current())
	m.next()
	m.next()
	assert.Equal(t, "c", m.current())
	m.next()
	assert.Equal(t, "a", m.current())
	m.set("b")
	assert.Equal(t, "b", m.current())
	m.set("missing")
	assert.Equal(t, "b", m.current())
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "bold **md**", Sanitize("<b>bold</b> **md**"))
	assert.Equal(t, "Tom & Jerry", Sanitize("Tom & Jerry"))
	assert.NotContains(t, Sanitize(`<img src=x onerror="alert(1)">hi`), "onerror")
}

func TestRenderMarkdown(t *testing.T) {
	out := stripANSI(RenderMarkdown("**Systems** nominal <i>now</i>", 40))
	assert.Contains(t, out, "Systems")
	assert.Contains(t, out, "nominal now")
	assert.NotContains(t, out, "<i>")

	assert.Contains(t, stripANSI(RenderMarkdown("fallback width", 0)), "fallback width")
}

func TestProfileLogout(t *testing.T) {
	credits := 5.0
	d := testDeps(nil)
	d.User = &types.UserProfile{Name: "Admin", RobotName: "Unit-9", Credits: &credits}
	p := NewProfile(d)

	assert.Contains(t, p.View(), "Unit-9")

	_, cmd := p.Update(runes("L"))
	require.NotNil(t, cmd)
	assert.Equal(t, LogoutMsg{}, cmd())

	_, cmd = p.Update(esc)
	assert.Equal(t, LaunchMsg{ID: types.AppHome}, cmd())
}

func TestStorageOpensDeck(t *testing.T) {
	s := NewStorage(testDeps(nil))
	_, cmd := s.Update(enter)
	assert.Nil(t, cmd, "overview has no deck link")

	s.Update(tab)
	_, cmd = s.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, LaunchMsg{ID: types.AppDJMusic}, cmd())
}

func TestGenericAction(t *testing.T) {
	g := NewNetwork(testDeps(nil)).(*Generic)

	_, cmd := g.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, "Ping Nexus-7", g.running)

	_, cmd = g.Update(enter)
	assert.Nil(t, cmd, "one action at a time")

	g.Update(actionDoneMsg{app: types.AppContent, label: "Ping Nexus-7"})
	assert.Empty(t, g.Status(), "other panel's completion is ignored")

	g.Update(actionDoneMsg{app: types.AppNetwork, label: "Ping Nexus-7"})
	assert.Equal(t, "Nexus-7 responded in 12ms", g.Status())
	assert.Contains(t, g.View(), Simulated)
}

func TestDJMusicAnalysis(t *testing.T) {
	m := NewDJMusic(testDeps(nil)).(*DJMusic)
	require.Len(t, m.Tracks(), 2)

	m.Update(tab)
	m.Update(down)
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)

	m.Update(analysisDoneMsg{id: "t2"})
	t2 := m.Tracks()[1]
	assert.True(t, t2.BeatgridSet)
	assert.True(t, t2.PhraseSet)
	assert.Equal(t, []float64{0, 16, 32}, t2.Cues)

	_, cmd = m.Update(esc)
	assert.Equal(t, LaunchMsg{ID: types.AppStorage}, cmd())
}

func TestDJMusicFetch(t *testing.T) {
	m := NewDJMusic(testDeps(nil)).(*DJMusic)
	m.search.SetValue("https://cdn.example/tracks/night_drive")
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, m.fetching)

	m.Update(trackFetchedMsg{track: types.Track{FileAsset: types.FileAsset{ID: "t9", Name: "night_drive.mp3"}}})
	assert.False(t, m.fetching)
	assert.Equal(t, "t9", m.Tracks()[0].ID)
}
