// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI renders whatever route the Shell dispatches:
//  1. Home : Browse the filter catalog
//  2. Feed : Scroll previously generated videos
//  3. Filter detail : Inspect a filter before starting a session
//  4. Onboarding steps : intro, upload, preview processing, photo preview,
//     credit purchase, remote generation, and the final result
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Route changes arrive as messages posted by the Shell's dispatch hook, and
// generation progress flows through a channel from the Engine, providing
// non-blocking status reporting while a video renders remotely.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
