package router

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Listener receives every committed route change along with whether the
// change was caused by back navigation.
type Listener func(route Route, isBack bool)

// Transition selects the visual style for a route swap.
type Transition int

const (
	TransitionFade Transition = iota
	TransitionSlide
)

// Transitioner wraps the visual swap of a route change. Implementations run
// swap exactly once, optionally animating around it. A nil Transitioner on
// the Router skips the animation layer entirely.
type Transitioner interface {
	Apply(t Transition, swap func())
}

// Router is the single source of truth for the current route.
//
// Construct one explicitly per process (or per test) with [New]; there is no
// package-level instance. All committed changes, whether from [Router.Navigate],
// [Router.Back], or [Router.Open], funnel through one dispatch routine so the
// back-navigation flag always reflects the triggering action.
type Router struct {
	mu          sync.Mutex
	current     Route
	history     []Route
	pendingBack bool
	listeners   map[int]Listener
	nextID      int
	transition  Transitioner
	logger      *log.Logger
}

// New creates a Router positioned at the home route. The transitioner may be
// nil when no animation layer is available.
func New(transition Transitioner, logger *log.Logger) *Router {
	return &Router{
		current:    Home(),
		listeners:  make(map[int]Listener),
		transition: transition,
		logger:     logger,
	}
}

// Current returns the last committed route.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers a listener and returns its unsubscribe func. Calling
// the returned func more than once is safe.
func (r *Router) Subscribe(l Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = l

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Navigate commits a forward navigation to the given route. The previous
// route is pushed onto the history stack and listeners are notified
// synchronously with isBack=false.
func (r *Router) Navigate(route Route) {
	r.mu.Lock()
	r.pendingBack = false
	r.history = append(r.history, r.current)
	r.mu.Unlock()

	r.dispatch(route)
}

// Open parses a fragment and navigates to the resulting route.
func (r *Router) Open(fragment string) {
	r.Navigate(Parse(fragment))
}

// Back pops one entry off the history stack and commits it as a
// back navigation. With an empty stack it is a no-op.
func (r *Router) Back() {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return
	}
	dest := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.pendingBack = true
	r.mu.Unlock()

	r.dispatch(dest)
}

// dispatch is the single notification routine. Ordering invariant: read the
// direction flag, wrap the swap in the transition primitive, commit the new
// current route, notify every listener with (route, isBack), then reset the
// flag so the next change starts clean.
func (r *Router) dispatch(route Route) {
	r.mu.Lock()
	isBack := r.pendingBack
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	transition := r.transition
	r.mu.Unlock()

	swap := func() {
		r.mu.Lock()
		r.current = route
		r.mu.Unlock()

		if r.logger != nil {
			r.logger.Debug("route change", "fragment", route.Fragment(), "back", isBack)
		}

		for _, l := range listeners {
			l(route, isBack)
		}
	}

	if transition != nil {
		style := TransitionFade
		if isBack {
			style = TransitionSlide
		}
		transition.Apply(style, swap)
	} else {
		swap()
	}

	r.mu.Lock()
	r.pendingBack = false
	r.mu.Unlock()
}
