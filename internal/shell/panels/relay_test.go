package panels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuraOS/internal/discovery"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/testutil"
)

var _ Relay = (*testutil.MockRelay)(nil)

var errUpstream = errors.New("upstream exploded")

func TestChatSend(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	relay.On("Chat", mock.Anything, mock.MatchedBy(func(ms []types.Message) bool {
		return len(ms) == 2 && ms[0].Content == ChatGreeting && ms[1].Content == "status report"
	}), "").Return(&types.ChatResponse{Text: "All **systems** nominal."}, nil).Once()

	c := NewChat(testDeps(relay)).(*Chat)
	c.input.SetValue("status report")
	_, cmd := c.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, c.Busy())
	require.Len(t, c.Messages(), 3, "user turn plus pending placeholder")

	reply := find[chatReplyMsg](t, exec(t, cmd))
	_, cmd = c.Update(reply)
	assert.Nil(t, cmd, "speech disabled")

	assert.False(t, c.Busy())
	msgs := c.Messages()
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, "All **systems** nominal.", msgs[2].Content)
	assert.Empty(t, c.input.Value())
}

func TestChatFailure(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	relay.On("Chat", mock.Anything, mock.Anything, "").Return(nil, errUpstream).Once()

	c := NewChat(testDeps(relay)).(*Chat)
	cmd := c.send("hello")
	c.Update(find[chatReplyMsg](t, exec(t, cmd)))

	msgs := c.Messages()
	assert.Equal(t, ChatFailure, msgs[len(msgs)-1].Content)
	assert.False(t, c.Busy())
}

func TestChatIgnoresBlankAndStale(t *testing.T) {
	c := NewChat(testDeps(nil)).(*Chat)
	assert.Nil(t, c.send("   "))

	cmd := c.send("x")
	require.NotNil(t, cmd)
	assert.Nil(t, c.send("again"), "one request in flight")

	c.Update(chatReplyMsg{id: "someone-else", reply: &types.ChatResponse{Text: "nope"}})
	assert.True(t, c.Busy())

	// No relay configured surfaces as the failure text
	c.Update(find[chatReplyMsg](t, exec(t, cmd)))
	msgs := c.Messages()
	assert.Equal(t, ChatFailure, msgs[len(msgs)-1].Content)
}

func TestChatSpeaksReplies(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	relay.On("Chat", mock.Anything, mock.Anything, "").Return(&types.ChatResponse{Text: "Hi"}, nil).Once()
	relay.On("Speak", mock.Anything, "Hi").Return("AAAA", nil).Once()

	d := testDeps(relay)
	d.Speech = true
	c := NewChat(d).(*Chat)

	_, cmd := c.Update(find[chatReplyMsg](t, exec(t, c.send("hello"))))
	require.NotNil(t, cmd)
	c.Update(cmd())
	assert.Equal(t, "AAAA", c.voice)
}

func TestChatLongMessageIsStoryline(t *testing.T) {
	c := NewChat(testDeps(nil)).(*Chat)
	c.send("this message is comfortably longer than fifty characters in total")
	assert.True(t, c.Messages()[1].IsStoryline)
}

func TestChatContacts(t *testing.T) {
	c := NewChat(testDeps(nil)).(*Chat)
	c.Update(tab)
	c.Update(runes("b"))
	assert.True(t, c.contacts[0].IsBlocked)

	_, cmd := c.Update(enter)
	assert.Nil(t, cmd, "blocked contacts cannot be called")

	c.Update(down)
	_, cmd = c.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, "Zero-One", c.call)

	c.Update(callConnectedMsg{contact: "Zero-One"})
	assert.True(t, c.inCall)
	assert.Contains(t, c.View(), "Linked with Zero-One")
}

func TestTerminal(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	relay.On("Terminal", mock.Anything, "ls").Return("bin etc", nil).Once()
	relay.On("Terminal", mock.Anything, "rm -rf /").Return("", errUpstream).Once()

	term := NewTerminal(testDeps(relay)).(*Terminal)
	for _, c := range []string{"ls", "rm -rf /"} {
		term.input.SetValue(c)
		_, cmd := term.Update(enter)
		require.NotNil(t, cmd)
		term.Update(cmd())
	}

	assert.Equal(t, []Exchange{
		{Cmd: "ls", Output: "bin etc"},
		{Cmd: "rm -rf /", Output: TerminalFailure},
	}, term.History())
	assert.Contains(t, term.View(), TerminalFailure)
}

func TestMaps(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	atDefault := mock.MatchedBy(func(p *float64) bool { return p != nil && *p == DefaultLatitude })
	relay.On("Maps", mock.Anything, "coffee", atDefault, mock.Anything).Return(&types.MapsResponse{
		Text:    "Try Blue Bottle.",
		Sources: []types.GroundingSource{{Title: "Blue Bottle", URI: "https://maps.example/1"}},
	}, nil).Once()

	m := NewMaps(testDeps(relay)).(*Maps)
	m.input.SetValue("coffee")
	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	text, sources := m.Result()
	assert.Equal(t, "Try Blue Bottle.", text)
	require.Len(t, sources, 1)
	assert.Equal(t, "results", m.modes.current())

	_, cmd = m.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, "navigate", m.modes.current())
	m.Update(navigateDoneMsg{target: "Blue Bottle"})
	assert.True(t, m.arrived)
}

func TestMapsFailureAndCoordinates(t *testing.T) {
	lat, lng := 51.5, -0.12
	relay := testutil.NewMockRelay(t)
	relay.On("Maps", mock.Anything, "tea", mock.MatchedBy(func(p *float64) bool { return *p == lat }),
		mock.MatchedBy(func(p *float64) bool { return *p == lng })).Return(nil, errUpstream).Once()

	d := testDeps(relay)
	d.Latitude, d.Longitude = &lat, &lng
	m := NewMaps(d).(*Maps)
	m.Update(m.search("tea")())

	text, sources := m.Result()
	assert.Equal(t, MapsFailure, text)
	assert.Empty(t, sources)
}

func TestHomeTelemetry(t *testing.T) {
	state := &types.SystemState{
		Emails:   []types.Email{{ID: "e1"}, {ID: "e2"}},
		Files:    []types.FileAsset{{ID: "f1"}},
		Contacts: []types.Contact{{ID: "c1"}},
		Logs:     []string{"boot", "sync", "scan"},
	}
	relay := testutil.NewMockRelay(t)
	relay.On("Health", mock.Anything).Return(&types.HealthResponse{Status: "online"}, nil).Once()
	relay.On("SystemState", mock.Anything).Return(state, nil).Once()

	h := NewHome(testDeps(relay)).(*Home)
	assert.Equal(t, [4]string{"Syncing...", "0", "---", "0"}, h.Telemetry())

	msg := h.Init()()
	_, cmd := h.Update(msg)
	assert.NotNil(t, cmd, "next poll scheduled")

	assert.Equal(t, discovery.StatusOnline, h.status)
	assert.Equal(t, [4]string{"3 Evt", "2", "1 Nodes", "1"}, h.Telemetry())
}

func TestHomeIgnoresOtherInstances(t *testing.T) {
	h := NewHome(testDeps(nil)).(*Home)
	assert.Nil(t, h.Init(), "no relay, no polling")

	_, cmd := h.Update(homeSyncMsg{gen: h.gen + 1, update: discovery.Update{State: &types.SystemState{Logs: []string{"x"}}}})
	assert.Nil(t, cmd)
	assert.Equal(t, "Syncing...", h.Telemetry()[0])

	_, cmd = h.Update(homeTickMsg{gen: h.gen - 1})
	assert.Nil(t, cmd)
}

func TestHomeInstalledGames(t *testing.T) {
	d := testDeps(nil)
	d.User = &types.UserProfile{InstalledApps: []string{"game_cyber_kart", "unknown_app"}}
	h := NewHome(d).(*Home)

	require.Len(t, h.tiles, len(Launcher)+1)
	last := h.tiles[len(h.tiles)-1]
	assert.Equal(t, "Cyber Kart 3000", last.Label)

	h.cursor = len(h.tiles) - 1
	_, cmd := h.Update(enter)
	assert.Equal(t, LaunchMsg{ID: types.AppController}, cmd())
}

func TestInbox(t *testing.T) {
	relay := testutil.NewMockRelay(t)
	relay.On("SystemState", mock.Anything).Return(&types.SystemState{
		Emails: []types.Email{{ID: "e1", Sender: "ops@aura", Subject: "Patch"}},
	}, nil).Once()

	i := NewInbox(testDeps(relay)).(*Inbox)
	i.Update(i.Init()())
	require.Len(t, i.Emails(), 1)

	i.Update(enter)
	assert.True(t, i.Emails()[0].IsRead)
	i.Update(runes("r"))
	assert.Equal(t, "compose", i.modes.current())
	assert.Equal(t, "ops@aura", i.fields[0].Value())
	assert.Equal(t, "Re: Patch", i.fields[1].Value())

	_, cmd := i.Update(enter)
	require.NotNil(t, cmd)
	assert.True(t, i.sending)

	i.Update(emailSentMsg{email: types.Email{ID: "local_1", Sender: types.DefaultUserName, Recipient: "ops@aura"}})
	assert.Equal(t, "list", i.modes.current())
	require.Len(t, i.Emails(), 2)
	assert.Equal(t, "local_1", i.Emails()[0].ID)
	assert.Empty(t, i.fields[0].Value())
}

func TestInboxOffline(t *testing.T) {
	i := NewInbox(testDeps(nil)).(*Inbox)
	i.Update(i.Init()())
	assert.Empty(t, i.Emails())
	assert.Equal(t, "Comms uplink offline", i.loadErr)

	i.Update(runes("c"))
	_, cmd := i.Update(enter)
	assert.Nil(t, cmd)
	i.Update(enter)
	_, cmd = i.Update(enter)
	assert.Nil(t, cmd, "recipient required")
	assert.Equal(t, "Recipient required", i.status)
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLocalAssets(t *testing.T) {
	dir := t.TempDir()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	writeFile(t, filepath.Join(dir, "shots", "selfie.png"), png)
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("remember the milk"))

	assets, err := LocalAssets(dir, testutil.Epoch)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	byName := map[string]types.FileAsset{}
	for _, a := range assets {
		byName[a.Name] = a
	}
	assert.Equal(t, "image", byName["selfie.png"].Type)
	assert.Equal(t, "photo", byName["selfie.png"].Category)
	assert.Equal(t, "document", byName["notes.txt"].Type)
	assert.Equal(t, "17 B", byName["notes.txt"].Size)
}

func TestFilesMergeAndFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "local.txt"), []byte("hi"))

	relay := testutil.NewMockRelay(t)
	relay.On("SystemState", mock.Anything).Return(&types.SystemState{
		Files: []types.FileAsset{
			{ID: "f1", Name: "Neural_Map.png", Type: "image"},
			{ID: "f2", Name: "Beat.mp3", Type: "audio"},
		},
	}, nil).Once()

	d := testDeps(relay)
	d.AssetsDir = dir
	f := NewFiles(d).(*Files)
	f.Update(f.Init()())
	require.Len(t, f.Visible(), 3)
	assert.Equal(t, "local.txt", f.Visible()[0].Name)

	f.filter.SetValue("*.png")
	visible := f.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "f1", visible[0].ID)

	f.filter.SetValue("*.mp3")
	f.Update(enter)
	assert.Equal(t, "detail", f.modes.current())

	_, cmd := f.Update(runes("d"))
	require.NotNil(t, cmd)
	f.Update(downloadDoneMsg{id: "f2"})
	assert.True(t, f.downloaded["f2"])

	_, cmd = f.Update(runes("m"))
	assert.Equal(t, LaunchMsg{ID: types.AppDJMusic}, cmd())
}

func TestFilesUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, path, []byte("quarterly"))

	f := NewFiles(testDeps(nil)).(*Files)
	f.Update(f.Init()())
	assert.Contains(t, f.status, "offline")

	f.upload(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Contains(t, f.status, "Upload failed")

	f.upload(path)
	require.Len(t, f.Visible(), 1)
	assert.Equal(t, "report.txt", f.Visible()[0].Name)
	assert.Equal(t, "vault", f.modes.current())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "2.0 MB", HumanSize(2<<20))
	assert.Equal(t, "1.0 GB", HumanSize(1<<30))
}
