package app

import (
	"testing"

	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/services"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
)

type fakeScrollPort struct {
	offset int
}

func (f *fakeScrollPort) Offset() int          { return f.offset }
func (f *fakeScrollPort) SetOffset(offset int) { f.offset = offset }

type shellFixture struct {
	shell      *Shell
	router     *router.Router
	store      *store.Store
	session    *platform.SessionSlot
	port       *fakeScrollPort
	dispatches []Dispatch
}

func newShellFixture(t *testing.T, onboarded bool) *shellFixture {
	t.Helper()

	st := store.New(store.NewMemoryPersister(nil), nil)
	if onboarded {
		st.CompleteOnboarding()
	}

	r := router.New(nil, nil)
	session := &platform.SessionSlot{}
	engine := tasks.NewEngine(&services.MockVideoService{Healthy: true}, st, shared.DefaultConfig().Media, nil)

	f := &shellFixture{
		router:  r,
		store:   st,
		session: session,
		port:    &fakeScrollPort{},
	}
	f.shell = New(Config{
		Router:       r,
		Store:        st,
		Engine:       engine,
		Connectivity: platform.StaticConnectivity(true),
		Session:      session,
		Generation:   shared.DefaultConfig().Generation,
		Service:      shared.DefaultConfig().Service,
	})
	f.shell.SetScrollPort(f.port)
	f.shell.SetDispatchHook(func(d Dispatch) {
		f.dispatches = append(f.dispatches, d)
	})
	t.Cleanup(f.shell.Close)
	return f
}

func (f *shellFixture) last(t *testing.T) Dispatch {
	t.Helper()
	if len(f.dispatches) == 0 {
		t.Fatal("expected at least one dispatch")
	}
	return f.dispatches[len(f.dispatches)-1]
}

func TestShellOnboardingGate(t *testing.T) {
	t.Run("With Fresh Device", func(t *testing.T) {
		f := newShellFixture(t, false)
		f.shell.Start()

		d := f.last(t)
		if d.Route.Page != router.PageOnboarding || d.Route.Step != router.StepIntro {
			t.Errorf("expected onboarding intro, got %q", d.Route.Fragment())
		}
		if d.Flow == nil {
			t.Error("expected a flow instance on onboarding routes")
		}
		if f.router.Current().Fragment() != "#/onboarding/intro" {
			t.Errorf("expected router forced to onboarding, got %q", f.router.Current().Fragment())
		}
	})

	t.Run("With Completed Onboarding", func(t *testing.T) {
		f := newShellFixture(t, true)
		f.shell.Start()

		d := f.last(t)
		if d.Route.Page != router.PageHome {
			t.Errorf("expected home, got %q", d.Route.Fragment())
		}
		if d.Flow != nil {
			t.Error("expected no flow outside onboarding")
		}
	})
}

func TestShellFlowLifecycle(t *testing.T) {
	t.Run("With Single Instance Across Steps", func(t *testing.T) {
		f := newShellFixture(t, false)
		f.shell.Start()

		first := f.shell.Flow()
		f.router.Navigate(router.Onboarding(router.StepUpload))

		if f.shell.Flow() != first {
			t.Error("expected the same flow instance across onboarding steps")
		}
		if f.last(t).Flow != first {
			t.Error("expected dispatch to carry the live flow")
		}
		if first.Step() != router.StepUpload {
			t.Errorf("expected flow stepped to upload, got %v", first.Step())
		}
	})

	t.Run("With Discard On Leaving Onboarding", func(t *testing.T) {
		f := newShellFixture(t, false)
		f.shell.Start()

		f.router.Navigate(router.Home())
		if f.shell.Flow() != nil {
			t.Error("expected flow discarded after leaving onboarding")
		}

		f.router.Navigate(router.Onboarding(router.StepIntro))
		if f.shell.Flow() == nil {
			t.Fatal("expected a fresh flow on re-entry")
		}
	})
}

func TestShellScrollMemory(t *testing.T) {
	t.Run("With Restore Only On Back", func(t *testing.T) {
		f := newShellFixture(t, true)
		f.shell.Start()

		f.port.offset = 42
		f.router.Navigate(router.Route{Page: router.PageFeed})

		// Forward navigation back to home must not restore.
		f.router.Navigate(router.Home())
		if d := f.last(t); d.Restore {
			t.Error("expected no restore on forward navigation")
		}

		f.router.Navigate(router.Route{Page: router.PageFeed})
		f.router.Back()
		d := f.last(t)
		if !d.IsBack {
			t.Error("expected a back dispatch")
		}
		if !d.Restore || d.RestoreOffset != 42 {
			t.Errorf("expected restore to offset 42, got restore=%v offset=%d", d.Restore, d.RestoreOffset)
		}
	})

	t.Run("With Per Page Offsets", func(t *testing.T) {
		f := newShellFixture(t, true)
		f.shell.Start()

		f.router.Navigate(router.Route{Page: router.PageFeed})
		f.port.offset = 10
		f.router.Navigate(router.Home())
		f.port.offset = 99

		f.router.Back()
		d := f.last(t)
		if !d.Restore || d.RestoreOffset != 10 {
			t.Errorf("expected feed restored to 10, got restore=%v offset=%d", d.Restore, d.RestoreOffset)
		}
	})
}

func TestShellConnectivity(t *testing.T) {
	t.Run("With Offline Start", func(t *testing.T) {
		f := newShellFixture(t, true)
		f.shell.cfg.Connectivity = platform.StaticConnectivity(false)

		var seen []bool
		f.shell.SetOfflineHook(func(offline bool) { seen = append(seen, offline) })
		f.shell.Start()

		if !f.shell.Offline() {
			t.Error("expected shell offline")
		}
		if len(seen) != 1 || !seen[0] {
			t.Errorf("expected one offline notification, got %v", seen)
		}
	})

	t.Run("With Online Start", func(t *testing.T) {
		f := newShellFixture(t, true)
		f.shell.Start()
		if f.shell.Offline() {
			t.Error("expected shell online")
		}
	})
}
