package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/glowstack/reel/internal/app"
	"github.com/glowstack/reel/internal/filters"
	"github.com/glowstack/reel/internal/flow"
	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
)

const (
	fakeTickInterval   = 125 * time.Millisecond
	fakeTickStep       = 0.05
	statusTickInterval = 5 * time.Second
)

// statusLines rotate while a remote generation is pending.
var statusLines = []string{
	"Sending photo to the AI...",
	"Generating your video...",
	"Downloading the result...",
}

// creditPack is one simulated purchase option on the payment step.
type creditPack struct {
	credits int
	price   float64
}

var creditPacks = []creditPack{
	{credits: 1, price: 4.99},
	{credits: 5, price: 9.99},
	{credits: 15, price: 19.99},
}

// Config carries the Model's dependencies.
type Config struct {
	Shell   *app.Shell
	Router  *router.Router
	Store   *store.Store
	Session *platform.SessionSlot
	Engine  *tasks.Engine
	Share   platform.ShareSheet
	Haptics platform.Haptics
	Logger  *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	cfg Config

	width    int
	height   int
	dispatch app.Dispatch
	offline  bool

	filterList list.Model
	videoList  list.Model
	pathInput  textinput.Model
	spin       spinner.Model
	bar        progress.Model

	fakePercent  float64
	statusIdx    int
	payIdx       int
	tickGen      int
	progressChan chan tasks.ProgressUpdate
	phase        string
	genErr       error
	uploadErr    error
	notice       string

	help help.Model
	keys keyMap
	send func(tea.Msg)
}

// interface check: the Model is the Shell's scroll surface.
var _ app.ScrollPort = (*Model)(nil)

// NewModel creates a new TUI model with the provided dependencies. Call
// [Model.Bind] with the running program before [tea.Program.Run] so Shell
// dispatches reach the Elm loop.
func NewModel(cfg Config) *Model {
	if cfg.Share == nil {
		cfg.Share = platform.SystemShare{}
	}
	if cfg.Haptics == nil {
		cfg.Haptics = platform.SilentHaptics{}
	}

	catalog := filters.All()
	items := make([]list.Item, len(catalog))
	for i, f := range catalog {
		items[i] = filterItem{filter: f}
	}
	filterList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	filterList.Title = "Filters"
	filterList.SetShowHelp(false)

	videoList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	videoList.Title = "Your Videos"
	videoList.SetShowHelp(false)

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/photo.jpg"
	pathInput.CharLimit = 512

	return &Model{
		cfg:        cfg,
		filterList: filterList,
		videoList:  videoList,
		pathInput:  pathInput,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:        progress.New(progress.WithDefaultGradient()),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Bind connects the model to a running program and registers the Shell
// hooks. Hook callbacks post messages from outside the Elm loop, so they go
// through [tea.Program.Send] on a single forwarding goroutine that keeps
// dispatches in the order the Shell produced them.
func (m *Model) Bind(p *tea.Program) {
	m.send = sendQueue(p.Send)

	m.cfg.Shell.SetScrollPort(m)
	m.cfg.Shell.SetDispatchHook(func(d app.Dispatch) { m.send(routeMsg{dispatch: d}) })
	m.cfg.Shell.SetInvalidateHook(func() { m.send(invalidateMsg{}) })
	m.cfg.Shell.SetOfflineHook(func(offline bool) { m.send(offlineMsg{offline: offline}) })
}

// sendQueue returns a sender backed by one forwarding goroutine, so messages
// are delivered in the order they were handed in. Hooks fire synchronously
// inside Update, where a direct Send would block the Elm loop on itself.
func sendQueue(deliver func(tea.Msg)) func(tea.Msg) {
	queue := make(chan tea.Msg, 64)
	go func() {
		for msg := range queue {
			deliver(msg)
		}
	}()
	return func(msg tea.Msg) { queue <- msg }
}

// Offset reports the scroll position of the page currently on screen.
func (m *Model) Offset() int {
	switch m.dispatch.Route.Page {
	case router.PageFeed:
		return m.videoList.Index()
	case router.PageHome:
		return m.filterList.Index()
	}
	return 0
}

// SetOffset restores a saved scroll position on the current page.
func (m *Model) SetOffset(offset int) {
	switch m.dispatch.Route.Page {
	case router.PageFeed:
		m.videoList.Select(offset)
	case router.PageHome:
		m.filterList.Select(offset)
	}
}

// Init starts the Shell, which posts the first dispatch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		m.cfg.Shell.Start()
		return nil
	})
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filterList.SetSize(msg.Width-4, msg.Height-8)
		m.videoList.SetSize(msg.Width-4, msg.Height-8)
		m.bar.Width = min(msg.Width-8, 50)
		m.help.Width = msg.Width
		return m, nil

	case routeMsg:
		return m.handleDispatch(msg.dispatch)

	case invalidateMsg:
		return m, nil

	case offlineMsg:
		m.offline = msg.offline
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.onStep(router.StepProcessing) {
			return m, cmd
		}
		return m, nil

	case fakeTickMsg:
		if msg.gen != m.tickGen || !m.onStep(router.StepFakeProcessing) {
			return m, nil
		}
		m.fakePercent += fakeTickStep
		if m.fakePercent >= 1.0 {
			m.fakePercent = 1.0
			m.cfg.Router.Navigate(router.Onboarding(router.StepPreview))
			return m, nil
		}
		return m, m.fakeTick()

	case statusTickMsg:
		if msg.gen != m.tickGen || !m.onStep(router.StepProcessing) {
			return m, nil
		}
		m.statusIdx = (m.statusIdx + 1) % len(statusLines)
		return m, m.statusTick()

	case progressMsg:
		m.phase = msg.update.Message
		return m, m.waitForProgress()

	case generationDoneMsg:
		m.progressChan = nil
		m.phase = ""
		// The settled attempt's status cycler must not keep re-arming.
		m.tickGen++
		if msg.err != nil {
			m.cfg.Haptics.Error()
			if errors.Is(msg.err, shared.ErrCancelled) && m.onStep(router.StepProcessing) {
				// Abandoning the attempt returns the user to upload.
				if fl := m.dispatch.Flow; fl != nil {
					fl.Callbacks().OnNavigate(router.StepUpload)
				}
				return m, nil
			}
			m.genErr = msg.err
			return m, nil
		}
		m.genErr = nil
		m.cfg.Haptics.Success()
		return m, nil

	case photoPreparedMsg:
		if msg.err != nil {
			m.uploadErr = msg.err
			return m, nil
		}
		m.uploadErr = nil
		if fl := m.dispatch.Flow; fl != nil {
			fl.Callbacks().OnSetImage(msg.dataURL)
			fl.Callbacks().OnNavigate(router.StepFakeProcessing)
		}
		return m, nil

	case downloadDoneMsg:
		if msg.err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("Download failed: %v", msg.err))
		} else {
			m.notice = styles.ok.Render(fmt.Sprintf("Saved to %s", msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateLists(msg)
}

// handleDispatch applies a route change from the Shell. Bumping tickGen
// invalidates any tick scheduled for the screen being left.
func (m *Model) handleDispatch(d app.Dispatch) (tea.Model, tea.Cmd) {
	m.dispatch = d
	m.tickGen++
	m.notice = ""

	switch {
	case d.Route.Page == router.PageFeed:
		m.reloadVideos()
		if d.Restore {
			m.videoList.Select(d.RestoreOffset)
		}
		return m, nil

	case d.Route.Page == router.PageHome:
		if d.Restore {
			m.filterList.Select(d.RestoreOffset)
		}
		return m, nil

	case d.Route.Page != router.PageOnboarding:
		return m, nil
	}

	switch d.Route.Step {
	case router.StepUpload:
		m.uploadErr = nil
		m.pathInput.Focus()
		return m, textinput.Blink

	case router.StepFakeProcessing:
		m.fakePercent = 0
		return m, m.fakeTick()

	case router.StepProcessing:
		m.statusIdx = 0
		m.genErr = nil
		m.phase = ""
		return m, tea.Batch(m.startGeneration(), m.statusTick(), m.spin.Tick)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	route := m.dispatch.Route

	// The upload step owns the keyboard while the path input is focused.
	typing := route.Page == router.PageOnboarding && route.Step == router.StepUpload

	if !typing && key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch route.Page {
	case router.PageHome:
		return m.handleHomeKeys(msg)
	case router.PageFeed:
		return m.handleFeedKeys(msg)
	case router.PageCreate:
		return m.handleCreateKeys(msg)
	case router.PageFilter:
		return m.handleFilterKeys(msg)
	case router.PageOnboarding:
		return m.handleOnboardingKeys(msg)
	}
	return m, nil
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.filterList.SelectedItem().(filterItem); ok {
			m.cfg.Session.Set(item.filter.ID)
			m.cfg.Router.Navigate(router.Filter(item.filter.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.feed):
		m.cfg.Router.Navigate(router.Route{Page: router.PageFeed})
		return m, nil
	case key.Matches(msg, m.keys.create):
		m.cfg.Router.Navigate(router.Route{Page: router.PageCreate})
		return m, nil
	}

	var cmd tea.Cmd
	m.filterList, cmd = m.filterList.Update(msg)
	return m, cmd
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		m.cfg.Router.Back()
		return m, nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.cfg.Router.Back()
	case key.Matches(msg, m.keys.enter):
		// A session started from the create page has no pre-selected filter.
		m.cfg.Session.Clear()
		m.cfg.Router.Navigate(router.Onboarding(router.StepIntro))
	}
	return m, nil
}

func (m *Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.cfg.Router.Back()
	case key.Matches(msg, m.keys.enter):
		m.cfg.Router.Navigate(router.Onboarding(router.StepIntro))
	}
	return m, nil
}

func (m *Model) handleOnboardingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fl := m.dispatch.Flow
	if fl == nil {
		return m, nil
	}

	switch m.dispatch.Route.Step {
	case router.StepIntro:
		switch {
		case key.Matches(msg, m.keys.back):
			m.cfg.Router.Back()
		case key.Matches(msg, m.keys.enter):
			fl.Callbacks().OnNavigate(router.StepUpload)
		}
		return m, nil

	case router.StepUpload:
		switch {
		case key.Matches(msg, m.keys.back):
			m.cfg.Router.Back()
			return m, nil
		case key.Matches(msg, m.keys.enter):
			path := m.pathInput.Value()
			if path == "" {
				m.uploadErr = shared.ErrNoImage
				return m, nil
			}
			return m, m.preparePhoto(path)
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd

	case router.StepPreview:
		switch {
		case key.Matches(msg, m.keys.back):
			m.cfg.Router.Back()
		case key.Matches(msg, m.keys.enter):
			fl.Callbacks().OnNavigate(router.StepPayment)
		}
		return m, nil

	case router.StepPayment:
		return m.handlePaymentKeys(msg, fl)

	case router.StepProcessing:
		return m.handleProcessingKeys(msg, fl)

	case router.StepResult:
		return m.handleResultKeys(msg, fl)
	}
	return m, nil
}

func (m *Model) handlePaymentKeys(msg tea.KeyMsg, fl *flow.Flow) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.cfg.Router.Back()
	case key.Matches(msg, m.keys.up):
		if m.payIdx > 0 {
			m.payIdx--
		}
	case key.Matches(msg, m.keys.down):
		if m.payIdx < len(creditPacks)-1 {
			m.payIdx++
		}
	case key.Matches(msg, m.keys.enter):
		// Simulated purchase: credit the pack, spend one on this session.
		m.cfg.Store.AddCredits(creditPacks[m.payIdx].credits)
		m.cfg.Store.UseCredit()
		fl.Callbacks().OnNavigate(router.StepProcessing)
	}
	return m, nil
}

func (m *Model) handleProcessingKeys(msg tea.KeyMsg, fl *flow.Flow) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		if fl.Generating() {
			fl.CancelGeneration()
			return m, nil
		}
		m.cfg.Router.Back()
		return m, nil

	case key.Matches(msg, m.keys.retry):
		if fl.Generating() {
			return m, nil
		}
		if fl.RetriesExhausted() {
			fl.Callbacks().OnNavigate(router.StepUpload)
			return m, nil
		}
		m.genErr = nil
		m.statusIdx = 0
		m.tickGen++
		return m, tea.Batch(m.startGeneration(), m.statusTick(), m.spin.Tick)
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg, fl *flow.Flow) (tea.Model, tea.Cmd) {
	videoURL := fl.Callbacks().GetVideo()

	switch {
	case key.Matches(msg, m.keys.enter):
		fl.Callbacks().OnComplete()
		return m, nil

	case key.Matches(msg, m.keys.copy):
		if err := m.cfg.Share.CopyLink(videoURL); err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("Copy failed: %v", err))
		} else {
			m.notice = styles.ok.Render("Link copied")
		}
		return m, nil

	case key.Matches(msg, m.keys.open):
		if err := m.cfg.Share.OpenViewer(videoURL); err != nil {
			m.notice = styles.err.Render(fmt.Sprintf("Open failed: %v", err))
		}
		return m, nil

	case key.Matches(msg, m.keys.download):
		return m, m.downloadVideo(videoURL)
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.dispatch.Route.Page {
	case router.PageHome:
		m.filterList, cmd = m.filterList.Update(msg)
	case router.PageFeed:
		m.videoList, cmd = m.videoList.Update(msg)
	}
	return m, cmd
}

func (m *Model) reloadVideos() {
	videos := m.cfg.Store.State().GeneratedVideos
	items := make([]list.Item, len(videos))
	for i, v := range videos {
		name := v.FilterID
		if f, ok := filters.ByID(v.FilterID); ok {
			name = f.Name
		} else if name == "" {
			name = "Custom"
		}
		items[i] = videoItem{video: v, name: name}
	}
	m.videoList.SetItems(items)
}

func (m *Model) onStep(step router.Step) bool {
	return m.dispatch.Route.Page == router.PageOnboarding && m.dispatch.Route.Step == step
}

func (m *Model) fakeTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(fakeTickInterval, func(time.Time) tea.Msg {
		return fakeTickMsg{gen: gen}
	})
}

func (m *Model) statusTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(statusTickInterval, func(time.Time) tea.Msg {
		return statusTickMsg{gen: gen}
	})
}

func (m *Model) preparePhoto(path string) tea.Cmd {
	return func() tea.Msg {
		dataURL, err := m.cfg.Engine.PreparePhoto(path)
		return photoPreparedMsg{dataURL: dataURL, err: err}
	}
}

func (m *Model) startGeneration() tea.Cmd {
	fl := m.dispatch.Flow
	if fl == nil || m.send == nil {
		return nil
	}

	m.progressChan = make(chan tasks.ProgressUpdate, 16)
	ch := m.progressChan
	send := m.send

	go func() {
		err := fl.RunGeneration(context.Background(), ch)
		close(ch)
		send(generationDoneMsg{err: err})
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{update: update}
	}
}

func (m *Model) downloadVideo(videoURL string) tea.Cmd {
	fl := m.dispatch.Flow
	if fl == nil || videoURL == "" {
		return nil
	}
	dest := filepath.Join("videos", filepath.Base(videoURL))

	return func() tea.Msg {
		path, err := m.cfg.Engine.Download(context.Background(), videoURL, dest)
		return downloadDoneMsg{path: path, err: err}
	}
}
