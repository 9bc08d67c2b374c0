// package services defines interface VideoService for the remote video
// generation backend.
package services

import "context"

// GenerateOptions carries per-request generation parameters. Zero values
// defer to the backend's per-model defaults.
type GenerateOptions struct {
	FilterID   string
	Prompt     string
	Model      string // ltx-2, veo3, wan-25
	Duration   int
	Resolution string
}

// Generation is the result of a completed generation request. VideoURL is
// always absolute, resolved against the service base URL when the backend
// returned a relative path.
type Generation struct {
	VideoURL string
	VideoID  string
	Model    string
}

// VideoService is the boundary to the external video generation service.
type VideoService interface {
	// Generate submits an image (as a data URL or remote URL) and blocks
	// until the backend returns a video or the context ends. Cancellation
	// and deadline expiry surface as shared.ErrCancelled / shared.ErrTimeout,
	// distinct from server-reported and network failures.
	Generate(ctx context.Context, image string, opts GenerateOptions) (*Generation, error)

	// CheckHealth reports backend availability. It never returns an error:
	// network failure and non-2xx statuses both read as unavailable.
	CheckHealth(ctx context.Context) bool

	// Name returns the service name for display.
	Name() string
}
