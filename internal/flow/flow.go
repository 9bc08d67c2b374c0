// package flow drives the onboarding and purchase step sequence.
//
// A Flow instance owns the transient per-session state: the uploaded photo,
// the generated video reference, and the filter id selected before entering
// the flow. It is created fresh when the app first routes into onboarding
// and discarded when the user completes or abandons it. Step changes always
// travel through the Router so the fragment reflects the current step.
package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/services"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
)

// Callbacks is the surface a screen gets to talk back to its Flow. It is
// built once per Flow instance, not per render, so screens never capture a
// stale closure.
type Callbacks struct {
	// OnNavigate requests a route change to the given step via the Router.
	OnNavigate func(step router.Step)
	// OnSetImage stores the uploaded photo and re-renders.
	OnSetImage func(dataURL string)
	GetImage   func() string
	// OnSetVideo stores the generation result without forcing a re-render;
	// the result screen reads it later.
	OnSetVideo func(url, id string)
	GetVideo   func() string
	// OnComplete marks onboarding done, unlocks the selected filter, clears
	// the session slot, and navigates home.
	OnComplete func()
}

// Config carries the dependencies and tunables for a Flow.
type Config struct {
	Router       *router.Router
	Store        *store.Store
	Engine       *tasks.Engine
	Connectivity platform.Connectivity
	Session      *platform.SessionSlot
	Generation   shared.GenerationConfig
	Logger       *log.Logger

	// OnRender is invoked whenever the active step should re-render.
	OnRender func()

	// Timeout bounds one generation attempt. Defaults to two minutes.
	Timeout time.Duration
	// MaxRetries caps retries after a failed attempt. Defaults to 2.
	MaxRetries int
	// SuccessDelay lets success feedback register before advancing to the
	// result step. Defaults to 500ms.
	SuccessDelay time.Duration
}

// Flow sequences the onboarding steps and owns their shared transient state.
type Flow struct {
	cfg       Config
	callbacks Callbacks

	mu         sync.Mutex
	step       router.Step
	image      string
	videoURL   string
	videoID    string
	filterID   string
	retries    int
	generating bool
	cancel     context.CancelFunc
}

// New creates a Flow starting at the intro step. The pre-selected filter id,
// if any, is read from the session slot once at construction.
func New(cfg Config) *Flow {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.SuccessDelay <= 0 {
		cfg.SuccessDelay = 500 * time.Millisecond
	}

	f := &Flow{cfg: cfg, step: router.StepIntro}
	if cfg.Session != nil {
		f.filterID = cfg.Session.Get()
	}
	f.callbacks = f.buildCallbacks()
	return f
}

func (f *Flow) buildCallbacks() Callbacks {
	return Callbacks{
		OnNavigate: func(step router.Step) {
			f.cfg.Router.Navigate(router.Onboarding(step))
		},
		OnSetImage: func(dataURL string) {
			f.mu.Lock()
			f.image = dataURL
			f.mu.Unlock()
			f.render()
		},
		GetImage: func() string {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.image
		},
		OnSetVideo: func(url, id string) {
			f.mu.Lock()
			f.videoURL = url
			f.videoID = id
			f.mu.Unlock()
		},
		GetVideo: func() string {
			f.mu.Lock()
			defer f.mu.Unlock()
			return f.videoURL
		},
		OnComplete: func() {
			f.cfg.Store.CompleteOnboarding()

			f.mu.Lock()
			filterID := f.filterID
			f.mu.Unlock()

			if filterID != "" {
				f.cfg.Store.UnlockFilter(filterID)
			}
			if f.cfg.Session != nil {
				f.cfg.Session.Clear()
			}
			f.cfg.Router.Navigate(router.Home())
		},
	}
}

// Callbacks returns the callback surface handed to each screen.
func (f *Flow) Callbacks() Callbacks { return f.callbacks }

// Step returns the current step.
func (f *Flow) Step() router.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// FilterID returns the session-selected filter id, empty when the flow was
// entered without one.
func (f *Flow) FilterID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filterID
}

// SetStep commits a step change and re-renders. This is the only external
// transition entry point; the shell calls it for every onboarding route
// change.
func (f *Flow) SetStep(step router.Step) {
	f.mu.Lock()
	f.step = step
	f.mu.Unlock()
	f.render()
}

func (f *Flow) render() {
	if f.cfg.OnRender != nil {
		f.cfg.OnRender()
	}
}

// Retries returns how many failed attempts have been consumed.
func (f *Flow) Retries() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.retries
}

// RetriesExhausted reports whether the retry affordance should offer a way
// back to upload instead of another attempt.
func (f *Flow) RetriesExhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.retries >= f.cfg.MaxRetries
}

// RunGeneration performs one remote generation attempt for the processing
// step. It blocks until the attempt settles, so callers run it off the UI
// goroutine. Only one attempt may be in flight; a second call while one is
// pending fails with ErrBusy.
//
// Server and network failures consume a retry. Cancellation and timeout do
// not: they stop the attempt and hand control back to the user.
func (f *Flow) RunGeneration(ctx context.Context, progress chan<- tasks.ProgressUpdate) error {
	f.mu.Lock()
	if f.generating {
		f.mu.Unlock()
		return shared.ErrBusy
	}
	if f.image == "" {
		f.mu.Unlock()
		f.callbacks.OnNavigate(router.StepUpload)
		return fmt.Errorf("%w: returning to upload", shared.ErrNoImage)
	}
	if f.cfg.Connectivity != nil && !f.cfg.Connectivity.Online() {
		f.mu.Unlock()
		return shared.ErrNoConnection
	}

	f.generating = true
	image := f.image
	filterID := f.filterID
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	f.cancel = cancel
	f.mu.Unlock()

	defer func() {
		cancel()
		f.mu.Lock()
		f.generating = false
		f.cancel = nil
		f.mu.Unlock()
	}()

	opts := services.GenerateOptions{
		FilterID:   filterID,
		Prompt:     f.cfg.Generation.Prompt,
		Model:      f.cfg.Generation.Model,
		Duration:   f.cfg.Generation.Duration,
		Resolution: f.cfg.Generation.Resolution,
	}

	video, err := f.cfg.Engine.Run(ctx, progress, image, opts)
	if err != nil {
		if errors.Is(err, shared.ErrCancelled) || errors.Is(err, shared.ErrTimeout) {
			f.logf("generation attempt abandoned", "error", err)
			return err
		}

		f.mu.Lock()
		f.retries++
		f.mu.Unlock()
		f.logf("generation attempt failed", "error", err, "retries", f.Retries())
		return err
	}

	f.callbacks.OnSetVideo(video.URL, video.ID)

	// Let the success feedback register before moving on.
	select {
	case <-time.After(f.cfg.SuccessDelay):
	case <-ctx.Done():
	}

	f.callbacks.OnNavigate(router.StepResult)
	return nil
}

// CancelGeneration aborts the in-flight attempt, if any.
func (f *Flow) CancelGeneration() {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Generating reports whether an attempt is currently in flight.
func (f *Flow) Generating() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generating
}

func (f *Flow) logf(msg string, kv ...any) {
	if f.cfg.Logger != nil {
		f.cfg.Logger.Warn(msg, kv...)
	}
}
