package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/glowstack/reel/internal/shared"
)

// ShareSheet exposes ways to hand a generated video URL to the user.
type ShareSheet interface {
	// CopyLink places the URL on the system clipboard.
	CopyLink(url string) error
	// OpenViewer opens the URL in the default browser.
	OpenViewer(url string) error
}

// SystemShare implements [ShareSheet] with the host clipboard and browser.
type SystemShare struct{}

var _ ShareSheet = SystemShare{}

func (SystemShare) CopyLink(url string) error {
	if err := clipboard.WriteAll(url); err != nil {
		return fmt.Errorf("failed to copy link: %w", err)
	}
	return nil
}

func (SystemShare) OpenViewer(url string) error {
	return shared.OpenBrowser(url)
}

// NoopShare is used in tests and headless environments.
type NoopShare struct {
	Copied []string
	Opened []string
}

var _ ShareSheet = (*NoopShare)(nil)

func (n *NoopShare) CopyLink(url string) error {
	n.Copied = append(n.Copied, url)
	return nil
}

func (n *NoopShare) OpenViewer(url string) error {
	n.Opened = append(n.Opened, url)
	return nil
}
