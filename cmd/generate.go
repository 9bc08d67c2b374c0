package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/glowstack/reel/internal/filters"
	"github.com/glowstack/reel/internal/services"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
	"github.com/glowstack/reel/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Generate runs a one-shot photo-to-video generation and records the result
// in the local library. Server and network failures are retried up to the
// configured cap, like the interactive processing step.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	imagePath := cmd.String("image")
	filterID := cmd.String("filter")
	outputPath := cmd.String("output")

	if filterID != "" {
		if _, ok := filters.ByID(filterID); !ok {
			return fmt.Errorf("%w: %s", shared.ErrFilterNotFound, filterID)
		}
	}

	opts := services.GenerateOptions{
		FilterID:   filterID,
		Prompt:     cmd.String("prompt"),
		Model:      cmd.String("model"),
		Duration:   int(cmd.Int("duration")),
		Resolution: cmd.String("resolution"),
	}
	if opts.Model == "" {
		opts.Model = r.config.Generation.Model
	}
	if opts.Prompt == "" {
		opts.Prompt = r.config.Generation.Prompt
	}

	st, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	engine := r.newEngine(st)

	r.logger.Info("starting generation", "image", imagePath, "filter", filterID, "model", opts.Model)
	r.writePlain("Generating video...\n")
	r.writePlain("Photo: %s\n\n", imagePath)

	var video *store.GeneratedVideo
	for attempt := 0; ; attempt++ {
		video, err = r.runGenerateAttempt(ctx, engine, imagePath, opts)
		if err == nil {
			break
		}
		if attempt >= r.config.Service.MaxRetries || !retryableGeneration(err) {
			return err
		}
		r.logger.Warn("generation attempt failed", "error", err, "attempt", attempt+1)
		r.writePlain("✗ Attempt failed: %v. Retrying...\n\n", err)
	}

	r.writePlain("\n")
	r.writePlainHeader("Generation Complete!")
	r.writePlain("Video: %s\n", video.URL)
	if video.Model != "" {
		r.writePlain("Model: %s\n", video.Model)
	}

	if outputPath != "" {
		path, err := engine.Download(ctx, video.URL, outputPath)
		if err != nil {
			return fmt.Errorf("generation succeeded but download failed: %w", err)
		}
		r.writePlain("Saved: %s\n", path)
	}

	return nil
}

// runGenerateAttempt performs one bounded generation attempt, streaming
// phase updates to the output writer while it runs.
func (r *Runner) runGenerateAttempt(ctx context.Context, engine *tasks.Engine, imagePath string, opts services.GenerateOptions) (*store.GeneratedVideo, error) {
	progressCh := make(chan tasks.ProgressUpdate, 16)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for update := range progressCh {
			switch update.Phase {
			case tasks.PreparePhoto:
				r.writePlain("🖼  %s\n", update.Message)
			case tasks.RequestVideo:
				r.writePlain("🚀 %s\n", update.Message)
			case tasks.ResolveResult:
				r.writePlain("📦 %s\n", update.Message)
			case tasks.Download:
				r.writePlain("⬇  %s\n", update.Message)
			}
		}
	}()

	genCtx, cancel := context.WithTimeout(ctx, r.config.Service.Timeout())
	defer cancel()

	video, err := engine.RunFile(genCtx, progressCh, imagePath, opts)
	close(progressCh)
	<-drained

	return video, err
}

// retryableGeneration reports whether a failed attempt earns another one.
// Cancellation, timeout, and bad input stop immediately.
func retryableGeneration(err error) bool {
	for _, sentinel := range []error{
		shared.ErrCancelled,
		shared.ErrTimeout,
		shared.ErrNoImage,
		shared.ErrInvalidImage,
		shared.ErrImageTooLarge,
		shared.ErrInvalidInput,
	} {
		if errors.Is(err, sentinel) {
			return false
		}
	}
	return true
}
