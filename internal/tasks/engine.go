// package tasks implements generation operations against the video backend.
//
// The core abstraction is Engine, which orchestrates photo preparation, the
// remote generation call, and result recording. Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glowstack/reel/internal/media"
	"github.com/glowstack/reel/internal/services"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
)

// Engine runs generation operations and records results in the store.
type Engine struct {
	service    services.VideoService
	store      *store.Store
	media      shared.MediaConfig
	httpClient *http.Client
	logger     *log.Logger
}

// NewEngine creates an Engine. The store may be nil when results should not
// be recorded (dry runs in tests).
func NewEngine(svc services.VideoService, st *store.Store, mediaCfg shared.MediaConfig, logger *log.Logger) *Engine {
	return &Engine{
		service:    svc,
		store:      st,
		media:      mediaCfg,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// Run submits an already-encoded photo (data URL) for generation and records
// the result. Returns the recorded video.
func (e *Engine) Run(ctx context.Context, progress chan<- ProgressUpdate, image string, opts services.GenerateOptions) (*store.GeneratedVideo, error) {
	if image == "" {
		return nil, fmt.Errorf("%w: no photo provided", shared.ErrNoImage)
	}

	emit(progress, ProgressUpdate{Phase: RequestVideo, Message: "Sending to AI..."})

	gen, err := e.service.Generate(ctx, image, opts)
	if err != nil {
		return nil, err
	}

	emit(progress, ProgressUpdate{Phase: ResolveResult, Message: "Saving result..."})

	video := store.GeneratedVideo{
		ID:        gen.VideoID,
		FilterID:  opts.FilterID,
		URL:       gen.VideoURL,
		Model:     gen.Model,
		CreatedAt: time.Now(),
	}
	if video.ID == "" {
		video.ID = shared.GenerateID()
	}

	if e.store != nil {
		e.store.AddGeneratedVideo(video)
	}
	if e.logger != nil {
		e.logger.Info("video generated", "id", video.ID, "filter", opts.FilterID, "model", video.Model)
	}

	return &video, nil
}

// RunFile validates and encodes a photo from disk, then runs generation.
// Used by the one-shot CLI path; the TUI encodes at upload time instead.
func (e *Engine) RunFile(ctx context.Context, progress chan<- ProgressUpdate, path string, opts services.GenerateOptions) (*store.GeneratedVideo, error) {
	emit(progress, ProgressUpdate{Phase: PreparePhoto, Message: "Preparing photo..."})

	image, err := e.PreparePhoto(path)
	if err != nil {
		return nil, err
	}

	return e.Run(ctx, progress, image, opts)
}

// PreparePhoto validates a photo file and returns it as a compressed data URL.
func (e *Engine) PreparePhoto(path string) (string, error) {
	if err := media.ValidateFile(path, e.media.MaxFileBytes()); err != nil {
		return "", err
	}

	dataURL, err := media.ReadAsDataURL(path)
	if err != nil {
		return "", err
	}

	return media.Compress(dataURL, e.media.MaxWidth, e.media.JPEGQuality)
}

// Download fetches a generated video to destPath, creating parent
// directories as needed. Returns the written path.
func (e *Engine) Download(ctx context.Context, videoURL, destPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to write video: %w", err)
	}

	return destPath, nil
}
