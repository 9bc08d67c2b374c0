// package platform abstracts ambient environment capabilities behind small
// interfaces so the flow and shell logic stay testable without a terminal
// or a live backend.
package platform

import (
	"context"
	"sync"
	"time"
)

// Connectivity reports whether the generation backend is reachable.
type Connectivity interface {
	// Online returns the last known connectivity state.
	Online() bool
	// Changes delivers state transitions. The channel closes when the
	// monitor is closed.
	Changes() <-chan bool
	Close()
}

// HealthMonitor polls a health check on an interval and publishes
// transitions. The initial state is probed synchronously at construction so
// Online is meaningful immediately.
type HealthMonitor struct {
	check    func(context.Context) bool
	interval time.Duration

	mu     sync.Mutex
	online bool

	changes chan bool
	stop    chan struct{}
	once    sync.Once
}

var _ Connectivity = (*HealthMonitor)(nil)

// NewHealthMonitor starts a monitor with the given probe.
func NewHealthMonitor(check func(context.Context) bool, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	m := &HealthMonitor{
		check:    check,
		interval: interval,
		changes:  make(chan bool, 4),
		stop:     make(chan struct{}),
	}
	m.online = check(context.Background())

	go m.loop()
	return m
}

func (m *HealthMonitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			close(m.changes)
			return
		case <-ticker.C:
			next := m.check(context.Background())

			m.mu.Lock()
			changed := next != m.online
			m.online = next
			m.mu.Unlock()

			if changed {
				select {
				case m.changes <- next:
				default:
				}
			}
		}
	}
}

func (m *HealthMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

func (m *HealthMonitor) Changes() <-chan bool { return m.changes }

func (m *HealthMonitor) Close() {
	m.once.Do(func() { close(m.stop) })
}

// StaticConnectivity is a fixed-state Connectivity for tests and the mock
// service path.
type StaticConnectivity bool

var _ Connectivity = StaticConnectivity(true)

func (s StaticConnectivity) Online() bool         { return bool(s) }
func (s StaticConnectivity) Changes() <-chan bool { return nil }
func (s StaticConnectivity) Close()               {}

// SessionSlot is the short-lived session-scoped holder for the filter id a
// detail page selected before entering onboarding. Cleared when the flow
// completes; never persisted.
type SessionSlot struct {
	mu       sync.Mutex
	filterID string
}

func (s *SessionSlot) Set(filterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterID = filterID
}

func (s *SessionSlot) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filterID
}

func (s *SessionSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterID = ""
}
