// Video generation backend implementation of [VideoService]
//
// Communicates with the FastAPI generation server wrapping fal.ai
// image-to-video models (ltx-2, veo3, wan-25).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/glowstack/reel/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultGenBaseURL  = "http://localhost:8001"
	healthCheckTimeout = 5 * time.Second
)

// VideoGenService implements [VideoService] over the backend's HTTP API.
type VideoGenService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ VideoService = (*VideoGenService)(nil)

// NewVideoGenService creates a client for the generation backend.
// requestsPerMinute caps how fast retries may hit POST /generate; zero or
// negative disables the limiter.
func NewVideoGenService(baseURL string, client *http.Client, requestsPerMinute int) *VideoGenService {
	if baseURL == "" {
		baseURL = defaultGenBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}

	return &VideoGenService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
	}
}

// Name returns the service name.
func (v *VideoGenService) Name() string {
	return "reel backend"
}

type generateRequest struct {
	Image      string `json:"image"`
	FilterID   string `json:"filter_id"`
	Prompt     string `json:"prompt,omitempty"`
	Model      string `json:"model,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

type generateResponse struct {
	VideoURL string `json:"video_url"`
	VideoID  string `json:"video_id"`
	Model    string `json:"model"`
}

// Generate submits the image to POST /generate and returns the resolved
// video location.
func (v *VideoGenService) Generate(ctx context.Context, image string, opts GenerateOptions) (*Generation, error) {
	if image == "" {
		return nil, fmt.Errorf("%w: image is required", shared.ErrInvalidInput)
	}

	if v.limiter != nil {
		if err := v.limiter.Wait(ctx); err != nil {
			return nil, classifyCtxErr(ctx, err)
		}
	}

	body, err := json.Marshal(generateRequest{
		Image:      image,
		FilterID:   opts.FilterID,
		Prompt:     opts.Prompt,
		Model:      opts.Model,
		Duration:   opts.Duration,
		Resolution: opts.Resolution,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		if ctxErr := classifyCtxErr(ctx, err); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", shared.ErrGenerationFailed, errorMessage(resp))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	videoURL, err := v.resolveURL(genResp.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("invalid video URL %q: %w", genResp.VideoURL, err)
	}

	return &Generation{
		VideoURL: videoURL,
		VideoID:  genResp.VideoID,
		Model:    genResp.Model,
	}, nil
}

// CheckHealth calls GET /health with a short budget. Any failure reads as
// unavailable.
func (v *VideoGenService) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// resolveURL makes a backend-returned video URL absolute. Absolute URLs
// pass through unchanged.
func (v *VideoGenService) resolveURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return raw, nil
	}

	base, err := url.Parse(v.baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(u).String(), nil
}

// errorMessage extracts a human-readable message from a non-2xx response,
// trying the backend's structured error body first.
func errorMessage(resp *http.Response) string {
	var errBody struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
		if errBody.Detail != "" {
			return errBody.Detail
		}
		if errBody.Message != "" {
			return errBody.Message
		}
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// classifyCtxErr maps context termination onto the shared cancellation and
// timeout sentinels. Returns nil when the context is still live.
func classifyCtxErr(ctx context.Context, cause error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %v", shared.ErrCancelled, cause)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", shared.ErrTimeout, cause)
	default:
		return nil
	}
}
