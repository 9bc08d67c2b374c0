package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/glowstack/reel/internal/app"
	"github.com/glowstack/reel/internal/platform"
	"github.com/glowstack/reel/internal/router"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal app.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: generation service not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/reel-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	st, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	connectivity := platform.NewHealthMonitor(r.service.CheckHealth, 30*time.Second)
	defer connectivity.Close()

	session := &platform.SessionSlot{}
	engine := r.newEngine(st)
	rt := router.New(nil, fileLogger)

	shell := app.New(app.Config{
		Router:       rt,
		Store:        st,
		Engine:       engine,
		Connectivity: connectivity,
		Session:      session,
		Generation:   r.config.Generation,
		Service:      r.config.Service,
		Logger:       fileLogger,
	})
	defer shell.Close()

	model := ui.NewModel(ui.Config{
		Shell:   shell,
		Router:  rt,
		Store:   st,
		Session: session,
		Engine:  engine,
		Share:   platform.SystemShare{},
		Haptics: platform.TerminalBell{},
		Logger:  fileLogger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.Bind(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
