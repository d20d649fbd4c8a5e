package state

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed(fixedNow)

	assert.Equal(t, "Admin", seed.User.Name)
	assert.Equal(t, "Aura-X", seed.User.RobotName)
	assert.Equal(t, 12450.75, seed.User.Credits)
	assert.Equal(t, 100, seed.User.Health)
	require.Len(t, seed.Emails, 1)
	assert.Equal(t, "Nexus_Systems", seed.Emails[0].Sender)
	assert.Equal(t, "core_manifest.pdf", seed.Files[0].Name)
	assert.Equal(t, "Nexus-7", seed.Contacts[0].Name)
	assert.Equal(t, []string{InitLog}, seed.Logs)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := NewStore(DefaultSeed(fixedNow))

	snap := s.Snapshot()
	snap.Logs[0] = "tampered"
	snap.Emails = append(snap.Emails, types.Email{ID: "x"})

	assert.Empty(t, cmp.Diff(DefaultSeed(fixedNow), s.Snapshot()))
}

func TestApplyEmailPrependsBoth(t *testing.T) {
	s := NewStore(DefaultSeed(fixedNow))
	before := s.Stats()

	s.ApplyEmail(types.Email{ID: "new", Subject: "hello"}, "[AI] Email dispatched to bob")

	after := s.Snapshot()
	assert.Equal(t, before.Emails+1, len(after.Emails))
	assert.Equal(t, before.Logs+1, len(after.Logs))
	assert.Equal(t, "new", after.Emails[0].ID)
	assert.Equal(t, "[AI] Email dispatched to bob", after.Logs[0])
	assert.Equal(t, InitLog, after.Logs[1])
}

func TestPrependOrder(t *testing.T) {
	s := NewStore(types.SystemState{})

	s.PrependLog("first")
	s.PrependLog("second")
	s.PrependFile(types.FileAsset{ID: "f"})
	s.PrependContact(types.Contact{ID: "c"})
	s.PrependEmail(types.Email{ID: "e"})

	snap := s.Snapshot()
	assert.Equal(t, []string{"second", "first"}, snap.Logs)
	assert.Equal(t, types.Stats{Emails: 1, Files: 1, Contacts: 1, Logs: 2}, s.Stats())
}

func TestConcurrentMutationsAreNotLost(t *testing.T) {
	s := NewStore(types.SystemState{})
	const n = 100

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.ApplyEmail(types.Email{ID: fmt.Sprint(i)}, fmt.Sprint("log ", i))
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	stats := s.Stats()
	assert.Equal(t, n, stats.Emails)
	assert.Equal(t, n, stats.Logs)
}

func TestSubscribeReceivesLatest(t *testing.T) {
	s := NewStore(types.SystemState{})
	ch, cancel := s.Subscribe()
	defer cancel()

	assert.Equal(t, 1, s.Subscribers())

	s.PrependLog("a")
	s.PrependLog("b")

	select {
	case snap := <-ch:
		assert.Equal(t, []string{"b", "a"}, snap.Logs)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestSubscribeCancel(t *testing.T) {
	s := NewStore(types.SystemState{})
	ch, cancel := s.Subscribe()

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, s.Subscribers())

	// Mutations after cancel must not panic on the closed channel.
	s.PrependLog("after")
}
