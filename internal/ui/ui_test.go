package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glowstack/reel/internal/app"
	"github.com/glowstack/reel/internal/flow"
	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/services"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
)

// testModel builds a Model with an in-memory store and a live router, plus a
// Flow the dispatch can carry. The model is not bound to a program, so
// commands returned by Update are inspected rather than executed.
func testModel(t *testing.T) (*Model, *router.Router, *flow.Flow) {
	t.Helper()

	st := store.New(store.NewMemoryPersister(nil), nil)
	rt := router.New(nil, nil)
	engine := tasks.NewEngine(&services.MockVideoService{Healthy: true}, st, shared.DefaultConfig().Media, nil)

	fl := flow.New(flow.Config{
		Router:       rt,
		Store:        st,
		Engine:       engine,
		Connectivity: platform.StaticConnectivity(true),
	})

	m := NewModel(Config{
		Router:  rt,
		Store:   st,
		Session: &platform.SessionSlot{},
		Engine:  engine,
	})
	return m, rt, fl
}

func TestProcessingSettled(t *testing.T) {
	t.Run("Cancelled Attempt Returns To Upload", func(t *testing.T) {
		m, rt, fl := testModel(t)
		rt.Navigate(router.Onboarding(router.StepProcessing))
		m.handleDispatch(app.Dispatch{Route: router.Onboarding(router.StepProcessing), Flow: fl})

		m.Update(generationDoneMsg{err: shared.ErrCancelled})

		got := rt.Current()
		if got.Page != router.PageOnboarding || got.Step != router.StepUpload {
			t.Errorf("expected route onboarding/upload, got %q", got.Fragment())
		}
		if m.genErr != nil {
			t.Errorf("expected no lingering error, got %v", m.genErr)
		}
	})

	t.Run("Failure Stays On Processing", func(t *testing.T) {
		m, rt, fl := testModel(t)
		rt.Navigate(router.Onboarding(router.StepProcessing))
		m.handleDispatch(app.Dispatch{Route: router.Onboarding(router.StepProcessing), Flow: fl})

		m.Update(generationDoneMsg{err: shared.ErrGenerationFailed})

		got := rt.Current()
		if got.Page != router.PageOnboarding || got.Step != router.StepProcessing {
			t.Errorf("expected route onboarding/processing, got %q", got.Fragment())
		}
		if m.genErr == nil {
			t.Error("expected the failure to be shown")
		}
	})

	t.Run("Status Cycler Stops", func(t *testing.T) {
		m, _, fl := testModel(t)
		m.handleDispatch(app.Dispatch{Route: router.Onboarding(router.StepProcessing), Flow: fl})
		gen := m.tickGen

		m.Update(generationDoneMsg{err: shared.ErrGenerationFailed})

		if m.tickGen == gen {
			t.Error("expected the settled attempt to invalidate its ticks")
		}

		m.statusIdx = 1
		_, cmd := m.Update(statusTickMsg{gen: gen})
		if cmd != nil {
			t.Error("expected the stale status tick to be dropped")
		}
		if m.statusIdx != 1 {
			t.Errorf("expected status index unchanged, got %d", m.statusIdx)
		}
	})
}

func TestSendQueue(t *testing.T) {
	t.Run("Preserves Message Order", func(t *testing.T) {
		const count = 100

		done := make(chan struct{})
		var got []int
		send := sendQueue(func(msg tea.Msg) {
			n := msg.(int)
			got = append(got, n)
			if n == count-1 {
				close(done)
			}
		})

		for i := 0; i < count; i++ {
			send(i)
		}
		<-done

		for i, n := range got {
			if n != i {
				t.Fatalf("expected message %d at position %d, got %d", i, i, n)
			}
		}
	})
}
