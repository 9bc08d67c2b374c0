package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/glowstack/reel/internal/models"
	"github.com/glowstack/reel/internal/repositories"
	"github.com/glowstack/reel/internal/shared"
)

const defaultModel = "ltx-2"

// knownModels lists the model identifiers the backend accepts.
var knownModels = map[string]bool{
	"ltx-2":  true,
	"veo3":   true,
	"wan-25": true,
}

// placeholderMP4 is a minimal MP4 container written for each generated video.
// The local backend fakes the render step, so the bytes only need to look
// like a video to downstream tooling.
var placeholderMP4 = []byte{
	0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p',
	'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	'a', 'v', 'c', '1', 'm', 'p', '4', '1',
	0x00, 0x00, 0x00, 0x08, 'm', 'd', 'a', 't',
}

// GenerateHandler accepts generation requests and records completed jobs.
// Implements the Handler interface for registration with a Router.
type GenerateHandler struct {
	repo     *repositories.JobRepository
	videoDir string
	logger   *log.Logger
}

// NewGenerateHandler creates a generation handler writing videos into videoDir.
func NewGenerateHandler(repo *repositories.JobRepository, videoDir string, logger *log.Logger) *GenerateHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &GenerateHandler{
		repo:     repo,
		videoDir: videoDir,
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *GenerateHandler) Routes() []string {
	return []string{"/generate"}
}

// ServeHTTP handles a generation request.
//
// Decodes the request, validates the image and model, writes a placeholder
// video file, records the job, and responds with the video location.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Image == "" {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}

	model := req.Model
	if model == "" {
		model = defaultModel
	}
	if !knownModels[model] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown model: %s", model))
		return
	}

	videoID := shared.GenerateID()
	filename := videoID + ".mp4"

	if err := os.MkdirAll(h.videoDir, 0o755); err != nil {
		h.logger.Error("failed to create video directory", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store video")
		return
	}
	if err := os.WriteFile(filepath.Join(h.videoDir, filename), placeholderMP4, 0o644); err != nil {
		h.logger.Error("failed to write video", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store video")
		return
	}

	job := models.NewGenerationJob(req.FilterID, model, req.Prompt, filename)
	if err := h.repo.Create(job); err != nil {
		h.logger.Error("failed to record job", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record job")
		return
	}

	h.logger.Info("generated video", "id", videoID, "model", model, "filter", req.FilterID)

	writeResponse(w, http.StatusOK, models.GenerateResponse{
		VideoURL: "/videos/" + filename,
		VideoID:  videoID,
		Model:    model,
	})
}

// HealthHandler reports backend availability.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP responds with the backend status and default model.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, http.StatusOK, models.HealthResponse{
		Status: "ok",
		Model:  defaultModel,
	})
}

// VideoHandler serves generated video files from the video directory.
type VideoHandler struct {
	fs http.Handler
}

// NewVideoHandler creates a handler serving files under videoDir at /videos/.
func NewVideoHandler(videoDir string) *VideoHandler {
	return &VideoHandler{
		fs: http.StripPrefix("/videos/", http.FileServer(http.Dir(videoDir))),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *VideoHandler) Routes() []string {
	return []string{"/videos/"}
}

// ServeHTTP delegates to the underlying file server.
func (h *VideoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.fs.ServeHTTP(w, r)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeResponse(w, status, models.ErrorResponse{Detail: detail})
}

func writeResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
