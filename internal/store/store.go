// package store owns the persisted application state.
//
// State is a single JSON document held in memory and written through a
// [Persister] on every mutation. Named actions are the only mutation
// surface; each one mutates, persists, then notifies subscribers, in that
// order and synchronously. Persistence failures are logged and never
// surfaced to callers, so the app keeps running on in-memory state.
package store

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// StateKey is the well-known key the state document is persisted under.
const StateKey = "app-state"

// GeneratedVideo records one completed generation.
type GeneratedVideo struct {
	ID        string    `json:"id"`
	FilterID  string    `json:"filter_id"`
	URL       string    `json:"url"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AppState is the durable application state.
type AppState struct {
	Credits                int              `json:"credits"`
	HasCompletedOnboarding bool             `json:"hasCompletedOnboarding"`
	UnlockedFilters        []string         `json:"unlockedFilters"`
	GeneratedVideos        []GeneratedVideo `json:"generatedVideos"`
}

func defaultState() AppState {
	return AppState{
		UnlockedFilters: []string{},
		GeneratedVideos: []GeneratedVideo{},
	}
}

func (s AppState) clone() AppState {
	s.UnlockedFilters = slices.Clone(s.UnlockedFilters)
	s.GeneratedVideos = slices.Clone(s.GeneratedVideos)
	return s
}

// Persister reads and writes the raw state document.
type Persister interface {
	// Load returns the persisted document, or (nil, nil) when absent.
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// Store holds the in-memory mirror of the persisted state.
type Store struct {
	mu        sync.Mutex
	state     AppState
	persister Persister
	logger    *log.Logger
	listeners map[int]func()
	nextID    int
}

// New creates a Store and loads persisted state through the persister.
// A missing or corrupt document falls back silently to defaults, and loaded
// fields are merged over defaults so old saves survive schema growth.
func New(p Persister, logger *log.Logger) *Store {
	s := &Store{
		persister: p,
		logger:    logger,
		listeners: make(map[int]func()),
	}
	s.state = s.load()
	return s
}

func (s *Store) load() AppState {
	state := defaultState()

	data, err := s.persister.Load()
	if err != nil {
		s.logf("failed to load store", "error", err)
		return state
	}
	if data == nil {
		return state
	}

	// Unmarshal over the defaults so fields missing from an old save keep
	// their default values.
	if err := json.Unmarshal(data, &state); err != nil {
		s.logf("failed to parse stored state, using defaults", "error", err)
		return defaultState()
	}
	if state.UnlockedFilters == nil {
		state.UnlockedFilters = []string{}
	}
	if state.GeneratedVideos == nil {
		state.GeneratedVideos = []GeneratedVideo{}
	}
	if state.Credits < 0 {
		state.Credits = 0
	}
	return state
}

// save must be called with the mutex held.
func (s *Store) save() {
	data, err := json.Marshal(s.state)
	if err != nil {
		s.logf("failed to serialize state", "error", err)
		return
	}
	if err := s.persister.Save(data); err != nil {
		s.logf("failed to persist state", "error", err)
	}
}

func (s *Store) logf(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Error(msg, kv...)
	}
}

// notify must be called without the mutex held.
func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

// State returns a snapshot copy of the current state. Callers must re-fetch
// after any action rather than holding on to a snapshot.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// GeneratedVideos returns the recorded generations, oldest first.
func (s *Store) GeneratedVideos() []GeneratedVideo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.GeneratedVideos)
}

// Subscribe registers a change listener and returns its unsubscribe func.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// CompleteOnboarding marks first-run onboarding as done on this device.
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	s.state.HasCompletedOnboarding = true
	s.save()
	s.mu.Unlock()
	s.notify()
}

// AddCredits adds purchased credits to the balance.
func (s *Store) AddCredits(amount int) {
	s.mu.Lock()
	s.state.Credits += amount
	if s.state.Credits < 0 {
		s.state.Credits = 0
	}
	s.save()
	s.mu.Unlock()
	s.notify()
}

// UseCredit decrements the balance if a credit is available and reports
// whether one was. The balance never goes negative.
func (s *Store) UseCredit() bool {
	s.mu.Lock()
	if s.state.Credits <= 0 {
		s.mu.Unlock()
		return false
	}
	s.state.Credits--
	s.save()
	s.mu.Unlock()
	s.notify()
	return true
}

// UnlockFilter adds a filter id to the unlocked set. Unlocking an already
// unlocked filter is a no-op.
func (s *Store) UnlockFilter(id string) {
	s.mu.Lock()
	if slices.Contains(s.state.UnlockedFilters, id) {
		s.mu.Unlock()
		return
	}
	s.state.UnlockedFilters = append(s.state.UnlockedFilters, id)
	s.save()
	s.mu.Unlock()
	s.notify()
}

// IsFilterUnlocked reports whether the filter id is in the unlocked set.
func (s *Store) IsFilterUnlocked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.UnlockedFilters, id)
}

// AddGeneratedVideo appends a generation record.
func (s *Store) AddGeneratedVideo(v GeneratedVideo) {
	s.mu.Lock()
	s.state.GeneratedVideos = append(s.state.GeneratedVideos, v)
	s.save()
	s.mu.Unlock()
	s.notify()
}

// Reset restores defaults and clears the persisted document. Intended for
// the dev reset path and tests.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = defaultState()
	if err := s.persister.Clear(); err != nil {
		s.logf("failed to clear persisted state", "error", err)
	}
	s.mu.Unlock()
	s.notify()
}
