package ui

import (
	"github.com/glowstack/reel/internal/app"
	"github.com/glowstack/reel/internal/tasks"
)

// routeMsg carries a Shell dispatch into the Elm loop.
type routeMsg struct {
	dispatch app.Dispatch
}

// invalidateMsg forces a repaint after out-of-band flow state changes.
type invalidateMsg struct{}

// offlineMsg toggles the offline banner.
type offlineMsg struct {
	offline bool
}

// fakeTickMsg advances the preview processing bar. gen guards against ticks
// scheduled before the screen was left.
type fakeTickMsg struct {
	gen int
}

// statusTickMsg rotates the long-running generation status line.
type statusTickMsg struct {
	gen int
}

// progressMsg carries one engine progress update.
type progressMsg struct {
	update tasks.ProgressUpdate
}

// generationDoneMsg reports the settled generation attempt.
type generationDoneMsg struct {
	err error
}

// photoPreparedMsg reports the upload step's file read and compression.
type photoPreparedMsg struct {
	dataURL string
	err     error
}

// downloadDoneMsg reports a video download to disk.
type downloadDoneMsg struct {
	path string
	err  error
}
