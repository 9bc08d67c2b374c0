package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glowstack/reel/internal/models"
	"github.com/glowstack/reel/internal/repositories"
	"github.com/glowstack/reel/internal/shared"
)

type backendFixture struct {
	server   *httptest.Server
	repo     *repositories.JobRepository
	videoDir string
}

func newBackend(t *testing.T) *backendFixture {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	shared.ConfigureDatabase(db, 1, 1)

	repo, err := repositories.NewJobRepository(db)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	videoDir := t.TempDir()

	router := NewBasicRouter()
	router.Handler(NewGenerateHandler(repo, videoDir, nil))
	router.Handler(&HealthHandler{})
	router.Handler(NewVideoHandler(videoDir))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &backendFixture{server: srv, repo: repo, videoDir: videoDir}
}

func postGenerate(t *testing.T, fx *backendFixture, req models.GenerateRequest) *http.Response {
	t.Helper()

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to encode request: %v", err)
	}

	resp, err := http.Post(fx.server.URL+"/generate", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestGenerateHandler(t *testing.T) {
	t.Run("Generates Video", func(t *testing.T) {
		fx := newBackend(t)

		resp := postGenerate(t, fx, models.GenerateRequest{
			Image:    "data:image/jpeg;base64,abc",
			FilterID: "glam-ai-1",
			Model:    "veo3",
			Prompt:   "a glam makeover",
		})

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var genResp models.GenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if !strings.HasPrefix(genResp.VideoURL, "/videos/") {
			t.Errorf("Expected relative video URL, got %s", genResp.VideoURL)
		}
		if genResp.VideoID == "" {
			t.Error("Expected video ID, got empty string")
		}
		if genResp.Model != "veo3" {
			t.Errorf("Expected model veo3, got %s", genResp.Model)
		}

		path := filepath.Join(fx.videoDir, genResp.VideoID+".mp4")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected video file at %s: %v", path, err)
		}

		jobs, err := fx.repo.List(nil)
		if err != nil {
			t.Fatalf("Failed to list jobs: %v", err)
		}
		if len(jobs) != 1 {
			t.Fatalf("Expected 1 recorded job, got %d", len(jobs))
		}
		if jobs[0].FilterID() != "glam-ai-1" {
			t.Errorf("Expected filter glam-ai-1, got %s", jobs[0].FilterID())
		}
	})

	t.Run("Defaults Model", func(t *testing.T) {
		fx := newBackend(t)

		resp := postGenerate(t, fx, models.GenerateRequest{Image: "data:image/jpeg;base64,abc"})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", resp.StatusCode)
		}

		var genResp models.GenerateResponse
		if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if genResp.Model != "ltx-2" {
			t.Errorf("Expected default model ltx-2, got %s", genResp.Model)
		}
	})

	t.Run("Rejects Missing Image", func(t *testing.T) {
		fx := newBackend(t)

		resp := postGenerate(t, fx, models.GenerateRequest{Model: "ltx-2"})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", resp.StatusCode)
		}

		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !strings.Contains(errResp.Detail, "image") {
			t.Errorf("Expected image error detail, got %q", errResp.Detail)
		}
	})

	t.Run("Rejects Unknown Model", func(t *testing.T) {
		fx := newBackend(t)

		resp := postGenerate(t, fx, models.GenerateRequest{
			Image: "data:image/jpeg;base64,abc",
			Model: "sora-9000",
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("Rejects GET", func(t *testing.T) {
		fx := newBackend(t)

		resp, err := http.Get(fx.server.URL + "/generate")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Fatalf("Expected status 405, got %d", resp.StatusCode)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	fx := newBackend(t)

	resp, err := http.Get(fx.server.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Expected status ok, got %s", health.Status)
	}
}

func TestVideoHandler(t *testing.T) {
	fx := newBackend(t)

	resp := postGenerate(t, fx, models.GenerateRequest{Image: "data:image/jpeg;base64,abc"})
	var genResp models.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	videoResp, err := http.Get(fx.server.URL + genResp.VideoURL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer videoResp.Body.Close()

	if videoResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", videoResp.StatusCode)
	}

	data, err := io.ReadAll(videoResp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !bytes.Contains(data, []byte("ftyp")) {
		t.Error("Expected MP4 container bytes")
	}
}

func TestRouterMiddleware(t *testing.T) {
	t.Run("Applies In Order", func(t *testing.T) {
		router := NewBasicRouter()

		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router.Use(tag("first"), tag("second"))
		router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("Expected middleware order [first second], got %v", order)
		}
	})

	t.Run("Filters Method", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("POST", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status 405, got %d", rec.Code)
		}
	})
}
