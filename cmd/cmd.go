// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles initial configuration and database setup.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// generateCommand runs a one-shot generation from the command line.
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a video from a photo",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Usage:    "Path to the source photo (jpg, png, or webp)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Filter ID to apply",
			},
			&cli.StringFlag{
				Name:  "prompt",
				Usage: "Extra prompt text for the model",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Model to use (ltx-2, veo3, wan-25)",
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "Clip length in seconds (0 uses the model default)",
			},
			&cli.StringFlag{
				Name:  "resolution",
				Usage: "Output resolution (empty uses the model default)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Download the result to this path",
			},
		},
		Action: r.Generate,
	}
}

// healthCommand checks the generation backend.
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check whether the generation backend is reachable",
		Action: r.Health,
	}
}

// filtersCommand lists the filter catalog.
func filtersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "List available filters",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Filters,
	}
}

// videosCommand lists and exports generated videos.
func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "videos",
		Usage: "List previously generated videos",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Export format: csv, md, or txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output path for the export",
			},
		},
		Action: r.Videos,
	}
}

// resetCommand clears persisted application state.
func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear credits, unlocks, and the video library",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the confirmation prompt",
			},
		},
		Action: r.Reset,
	}
}

// serveCommand runs the local generation backend.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local video generation backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on",
				Value: ":8001",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory for generated videos",
				Value: "videos",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive app",
		Action:  r.TUI,
	}
}
