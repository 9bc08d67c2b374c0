package main

import (
	"context"
	"fmt"

	"github.com/glowstack/reel/internal/formatter"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/urfave/cli/v3"
)

// Videos lists the generated-video library, optionally exporting it.
func (r *Runner) Videos(ctx context.Context, cmd *cli.Command) error {
	st, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	videos := st.State().GeneratedVideos

	if format := cmd.String("export"); format != "" {
		return r.exportVideos(videos, format, cmd.String("output"))
	}

	if cmd.Bool("json") {
		return r.writeJSON(videos, true)
	}

	if len(videos) == 0 {
		r.writePlain("No videos yet. Run 'reel generate' or 'reel tui' to make one.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Your Videos (%d)", len(videos)))
	for i, video := range videos {
		r.writePlain("%d. %s\n", i+1, video.URL)
		r.writePlain("   filter=%s model=%s created=%s\n", video.FilterID, video.Model, video.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func (r *Runner) exportVideos(videos []store.GeneratedVideo, format, output string) error {
	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(videos, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d videos\n", len(videos))
		r.writePlain("CSV: %s\n", result.VideosFile)
		r.writePlain("JSON: %s\n", result.MetadataFile)
		return nil

	case "md", "markdown":
		path, err := formatter.WriteMarkdownExport(videos, output, "")
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d videos to %s\n", len(videos), path)
		return nil

	case "txt", "text":
		path, err := formatter.WriteTextExport(videos, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d videos to %s\n", len(videos), path)
		return nil
	}

	return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidInput, format)
}
