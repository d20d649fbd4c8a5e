package state

import (
	"sync"

	"github.com/GriffinCanCode/AuraOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Store owns the relay's shared SystemState.
// Every mutation is a single critical section; readers get deep copies.
type Store struct {
	mu      sync.RWMutex
	state   types.SystemState // Protected by mu
	subs    map[int]chan types.SystemState
	nextSub int
	metrics *monitoring.Metrics
}

// NewStore creates a store holding a copy of seed
func NewStore(seed types.SystemState) *Store {
	return &Store{
		state: seed.Clone(),
		subs:  make(map[int]chan types.SystemState),
	}
}

// WithMetrics adds collection-size gauges to the store
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.mu.Lock()
	s.metrics = metrics
	stats := s.state.Stats()
	s.mu.Unlock()

	metrics.SetStateSizes(stats.Emails, stats.Files, stats.Contacts, stats.Logs)
	return s
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() types.SystemState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Stats returns the current collection sizes
func (s *Store) Stats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Stats()
}

// User returns the relay user block
func (s *Store) User() types.RelayUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User
}

// PrependLog adds a log line at index 0
func (s *Store) PrependLog(line string) {
	s.mutate(func(st *types.SystemState) {
		st.Logs = prepend(st.Logs, line)
	})
}

// PrependEmail adds an email at index 0
func (s *Store) PrependEmail(email types.Email) {
	s.mutate(func(st *types.SystemState) {
		st.Emails = prepend(st.Emails, email)
	})
}

// PrependFile adds a file at index 0
func (s *Store) PrependFile(file types.FileAsset) {
	s.mutate(func(st *types.SystemState) {
		st.Files = prepend(st.Files, file)
	})
}

// PrependContact adds a contact at index 0
func (s *Store) PrependContact(contact types.Contact) {
	s.mutate(func(st *types.SystemState) {
		st.Contacts = prepend(st.Contacts, contact)
	})
}

// ApplyEmail prepends an email and its log line together, so observers
// never see one without the other.
func (s *Store) ApplyEmail(email types.Email, logLine string) {
	s.mutate(func(st *types.SystemState) {
		st.Emails = prepend(st.Emails, email)
		st.Logs = prepend(st.Logs, logLine)
	})
}

// Subscribe registers for a snapshot after every mutation.
// The channel holds only the latest snapshot; a slow reader skips
// intermediate states. cancel must be called to release the slot.
func (s *Store) Subscribe() (<-chan types.SystemState, func()) {
	ch := make(chan types.SystemState, 1)

	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, key)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.subs)
}

func (s *Store) mutate(fn func(*types.SystemState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)

	stats := s.state.Stats()
	if s.metrics != nil {
		s.metrics.SetStateSizes(stats.Emails, stats.Files, stats.Contacts, stats.Logs)
	}

	if len(s.subs) == 0 {
		return
	}
	snap := s.state.Clone()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func prepend[T any](list []T, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, v)
	return append(out, list...)
}
