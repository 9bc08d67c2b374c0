// package app holds the top-level composition root.
//
// The Shell subscribes to the Router and decides, per route change, whether
// the onboarding Flow or a standalone page owns the screen. It also owns
// the cross-navigation concerns no single page can: scroll-position memory,
// the offline banner, the first-run onboarding gate, and the guarantee that
// at most one Flow instance is alive.
package app

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/glowstack/reel/internal/flow"
	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
)

// ScrollPort reads and writes the scroll offset of whatever view is
// currently on screen. The UI layer implements it with its viewport.
type ScrollPort interface {
	Offset() int
	SetOffset(offset int)
}

// Dispatch tells the UI layer what to put on screen. When Route is an
// onboarding route, Flow is the live flow instance; otherwise Flow is nil
// and the page named by the route renders. Restore carries the saved scroll
// offset for back navigations; the UI applies it after the next render so
// layout has settled.
type Dispatch struct {
	Route         router.Route
	IsBack        bool
	Flow          *flow.Flow
	Restore       bool
	RestoreOffset int
}

// Config carries the Shell's dependencies.
type Config struct {
	Router       *router.Router
	Store        *store.Store
	Engine       *tasks.Engine
	Connectivity platform.Connectivity
	Session      *platform.SessionSlot
	Generation   shared.GenerationConfig
	Service      shared.ServiceConfig
	Logger       *log.Logger
}

// Shell is the top-level controller.
type Shell struct {
	cfg Config

	mu         sync.Mutex
	flow       *flow.Flow
	scroll     map[string]int
	currentKey string
	offline    bool

	scrollPort   ScrollPort
	onDispatch   func(Dispatch)
	onInvalidate func()
	onOffline    func(bool)

	unsubscribe func()
	stop        chan struct{}
	stopOnce    sync.Once
}

// New creates a Shell. Call [Shell.Start] after wiring the UI hooks so the
// initial dispatch reaches a listening UI.
func New(cfg Config) *Shell {
	return &Shell{
		cfg:    cfg,
		scroll: make(map[string]int),
		stop:   make(chan struct{}),
	}
}

// SetDispatchHook registers the UI's dispatch handler.
func (s *Shell) SetDispatchHook(fn func(Dispatch)) { s.onDispatch = fn }

// SetInvalidateHook registers the UI's redraw trigger, used when flow state
// changes without a route change.
func (s *Shell) SetInvalidateHook(fn func()) { s.onInvalidate = fn }

// SetOfflineHook registers the offline banner toggle.
func (s *Shell) SetOfflineHook(fn func(offline bool)) { s.onOffline = fn }

// SetScrollPort registers the UI's scroll surface.
func (s *Shell) SetScrollPort(sp ScrollPort) { s.scrollPort = sp }

// Start subscribes to the Router, applies the first-run gate, and begins
// watching connectivity. A device that has not completed onboarding is
// forced into the flow regardless of the requested route.
func (s *Shell) Start() {
	s.unsubscribe = s.cfg.Router.Subscribe(s.handleRoute)

	if s.cfg.Connectivity != nil {
		s.setOffline(!s.cfg.Connectivity.Online())
		go s.watchConnectivity()
	}

	if !s.cfg.Store.State().HasCompletedOnboarding {
		s.cfg.Router.Navigate(router.Onboarding(router.StepIntro))
		return
	}
	s.handleRoute(s.cfg.Router.Current(), false)
}

// Close detaches from the router and stops the connectivity watcher.
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.stopOnce.Do(func() { close(s.stop) })
}

// Offline reports whether the offline banner should show.
func (s *Shell) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// Flow returns the live flow instance, nil outside onboarding.
func (s *Shell) Flow() *flow.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow
}

func (s *Shell) watchConnectivity() {
	changes := s.cfg.Connectivity.Changes()
	if changes == nil {
		return
	}
	for {
		select {
		case <-s.stop:
			return
		case online, ok := <-changes:
			if !ok {
				return
			}
			s.setOffline(!online)
		}
	}
}

func (s *Shell) setOffline(offline bool) {
	s.mu.Lock()
	changed := s.offline != offline
	s.offline = offline
	s.mu.Unlock()

	if changed && s.onOffline != nil {
		s.onOffline(offline)
	}
}

// handleRoute is the single route-change handler. It saves the outgoing
// page's scroll offset, swaps the flow or page in, and hands the saved
// destination offset to the UI only for back navigations.
func (s *Shell) handleRoute(route router.Route, isBack bool) {
	key := route.Key()

	s.mu.Lock()
	if s.scrollPort != nil && s.currentKey != "" {
		s.scroll[s.currentKey] = s.scrollPort.Offset()
	}

	d := Dispatch{Route: route, IsBack: isBack}

	if route.Page == router.PageOnboarding {
		if s.flow == nil {
			s.flow = s.newFlow()
		}
		d.Flow = s.flow
	} else {
		// Leaving onboarding discards the flow and its transient state.
		s.flow = nil

		if isBack {
			if offset, ok := s.scroll[key]; ok {
				d.Restore = true
				d.RestoreOffset = offset
			}
		}
	}

	s.currentKey = key
	onDispatch := s.onDispatch
	activeFlow := s.flow
	s.mu.Unlock()

	if activeFlow != nil {
		activeFlow.SetStep(route.Step)
	}
	if onDispatch != nil {
		onDispatch(d)
	}
}

// newFlow must be called with the mutex held.
func (s *Shell) newFlow() *flow.Flow {
	return flow.New(flow.Config{
		Router:       s.cfg.Router,
		Store:        s.cfg.Store,
		Engine:       s.cfg.Engine,
		Connectivity: s.cfg.Connectivity,
		Session:      s.cfg.Session,
		Generation:   s.cfg.Generation,
		Logger:       s.cfg.Logger,
		Timeout:      s.cfg.Service.Timeout(),
		MaxRetries:   s.cfg.Service.MaxRetries,
		OnRender: func() {
			if s.onInvalidate != nil {
				s.onInvalidate()
			}
		},
	})
}
