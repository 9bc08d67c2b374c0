package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/glowstack/reel/internal/filters"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/shared"
)

// View renders the UI based on the current route.
func (m *Model) View() string {
	var b strings.Builder

	if m.offline {
		b.WriteString(styles.warn.Render("⚠ You're offline. Video generation is unavailable."))
		b.WriteString("\n\n")
	}

	switch m.dispatch.Route.Page {
	case router.PageHome:
		b.WriteString(m.renderHome())
	case router.PageFeed:
		b.WriteString(m.renderFeed())
	case router.PageCreate:
		b.WriteString(m.renderCreate())
	case router.PageFilter:
		b.WriteString(m.renderFilterDetail())
	case router.PageOnboarding:
		b.WriteString(m.renderOnboarding())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(m.notice)
	}

	return b.String()
}

func (m *Model) renderHome() string {
	credits := m.cfg.Store.State().Credits
	header := styles.help.Render(fmt.Sprintf("Credits: %d", credits))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.feed, m.keys.create, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", header, m.filterList.View(), helpView)
}

func (m *Model) renderFeed() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, m.keys.back, m.keys.quit})
	if len(m.videoList.Items()) == 0 {
		title := styles.title.Render("Your Videos")
		empty := styles.help.Render("Nothing here yet. Pick a filter and make your first video.")
		return fmt.Sprintf("%s\n%s\n\n%s", title, empty, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

func (m *Model) renderCreate() string {
	title := styles.title.Render("Create")
	body := "Turn a photo into a short AI video.\n\nYou'll pick a photo, preview it, and we'll generate the rest."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderFilterDetail() string {
	f, ok := filters.ByID(m.dispatch.Route.FilterID)
	if !ok {
		return styles.err.Render(fmt.Sprintf("Unknown filter %q\n\nPress esc to go back", m.dispatch.Route.FilterID))
	}

	title := styles.title.Render(fmt.Sprintf("%s %s", f.Icon, f.Name))
	var lines []string
	lines = append(lines, fmt.Sprintf("By %s • %s likes", f.CreatorName, formatLikes(f.Likes)))
	if f.IsPremium {
		if m.cfg.Store.IsFilterUnlocked(f.ID) {
			lines = append(lines, styles.ok.Render("Unlocked"))
		} else {
			lines = append(lines, fmt.Sprintf("Premium • $%.2f", f.Price))
		}
	}
	if f.AIEnabled {
		lines = append(lines, "AI-powered video generation")
	}

	startKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "try it"))
	helpView := m.help.ShortHelpView([]key.Binding{startKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(lines, "\n"), helpView)
}

func (m *Model) renderOnboarding() string {
	fl := m.dispatch.Flow
	if fl == nil {
		return ""
	}

	switch m.dispatch.Route.Step {
	case router.StepIntro:
		return m.renderIntro()
	case router.StepUpload:
		return m.renderUpload()
	case router.StepFakeProcessing:
		return m.renderFakeProcessing()
	case router.StepPreview:
		return m.renderPreview()
	case router.StepPayment:
		return m.renderPayment()
	case router.StepProcessing:
		return m.renderProcessing()
	case router.StepResult:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) renderIntro() string {
	title := "Make an AI video"
	subtitle := "Upload a photo and watch it come alive"
	if f, ok := filters.ByID(m.dispatch.Flow.FilterID()); ok {
		title = f.IntroTitle
		subtitle = f.IntroSubtitle
	}

	continueKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue"))
	helpView := m.help.ShortHelpView([]key.Binding{continueKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render(title), subtitle, helpView)
}

func (m *Model) renderUpload() string {
	title := styles.title.Render("Pick a photo")
	prompt := fmt.Sprintf("Enter the path to a photo (jpg, png, or webp):\n\n%s", m.pathInput.View())

	var errLine string
	if m.uploadErr != nil {
		errLine = "\n\n" + styles.err.Render(uploadErrorMessage(m.uploadErr))
	}

	useKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use photo"))
	helpView := m.help.ShortHelpView([]key.Binding{useKey, m.keys.back})
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, prompt, errLine, helpView)
}

func uploadErrorMessage(err error) string {
	switch {
	case errors.Is(err, shared.ErrNoImage):
		return "Pick a photo first"
	case errors.Is(err, shared.ErrImageTooLarge):
		return "That photo is too large"
	case errors.Is(err, shared.ErrInvalidImage):
		return "That doesn't look like a photo we can use"
	default:
		return fmt.Sprintf("Couldn't read that photo: %v", err)
	}
}

func (m *Model) renderFakeProcessing() string {
	title := styles.title.Render("Applying filter")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.bar.ViewAs(m.fakePercent), styles.help.Render("Analyzing your photo..."))
}

func (m *Model) renderPreview() string {
	title := styles.title.Render("Looking good")

	info := "Your photo is ready."
	if image := m.dispatch.Flow.Callbacks().GetImage(); image != "" {
		info = fmt.Sprintf("Your photo is ready (%d KB processed).", len(image)/1024)
	}

	continueKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue"))
	helpView := m.help.ShortHelpView([]key.Binding{continueKey, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

func (m *Model) renderPayment() string {
	title := styles.title.Render("Get credits")

	var b strings.Builder
	for i, pack := range creditPacks {
		cursor := "  "
		line := fmt.Sprintf("%d credit%s for $%.2f", pack.credits, plural(pack.credits), pack.price)
		if i == m.payIdx {
			cursor = "> "
			line = styles.ok.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	balance := styles.help.Render(fmt.Sprintf("Balance: %d credits", m.cfg.Store.State().Credits))
	buyKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "buy"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.up, m.keys.down, buyKey, m.keys.back})
	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, b.String(), balance, helpView)
}

func (m *Model) renderProcessing() string {
	fl := m.dispatch.Flow

	if m.genErr != nil {
		return m.renderGenerationError(m.genErr)
	}

	title := styles.title.Render("Creating your video")
	status := statusLines[m.statusIdx]
	if m.phase != "" {
		status = m.phase
	}

	var cancelHint string
	if fl.Generating() {
		cancelHint = "\n\n" + styles.help.Render("esc to cancel")
	}
	return fmt.Sprintf("%s\n%s %s%s", title, m.spin.View(), status, cancelHint)
}

func (m *Model) renderGenerationError(err error) string {
	fl := m.dispatch.Flow

	var headline string
	switch {
	case errors.Is(err, shared.ErrCancelled):
		headline = "Generation cancelled"
	case errors.Is(err, shared.ErrTimeout):
		headline = "This is taking too long"
	case errors.Is(err, shared.ErrNoConnection):
		headline = "You're offline"
	default:
		headline = "Something went wrong"
	}

	var hint string
	if fl.RetriesExhausted() {
		hint = "Press r to start over with a different photo"
	} else {
		hint = "Press r to try again"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.retry, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", styles.err.Render(headline), hint, helpView)
}

func (m *Model) renderResult() string {
	title := styles.ok.Render("✓ Your video is ready!")
	videoURL := m.dispatch.Flow.Callbacks().GetVideo()

	doneKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done"))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.copy, m.keys.open, m.keys.download, doneKey})
	return fmt.Sprintf("%s\n\n%s\n\n%s", title, videoURL, helpView)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
