package main

import (
	"context"

	"github.com/glowstack/reel/internal/filters"
	"github.com/urfave/cli/v3"
)

// Filters lists the filter catalog grouped by section.
func (r *Runner) Filters(ctx context.Context, cmd *cli.Command) error {
	sections := filters.Sections()

	if cmd.Bool("json") {
		return r.writeJSON(sections, cmd.Bool("pretty"))
	}

	for _, section := range sections {
		r.writePlainHeader(section.Title)
		for _, f := range section.Filters {
			line := f.ID
			if f.IsPremium {
				line = line + " (premium)"
			}
			r.writePlain("%s %s - %s\n", f.Icon, f.Name, line)
		}
		r.writePlain("\n")
	}

	return nil
}
