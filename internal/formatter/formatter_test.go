package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glowstack/reel/internal/store"
)

func sampleLibrary() []store.GeneratedVideo {
	created := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	return []store.GeneratedVideo{
		{
			ID:        "vid1",
			FilterID:  "glam-ai-1",
			URL:       "http://localhost:8001/videos/vid1.mp4",
			Model:     "ltx-2",
			CreatedAt: created,
		},
		{
			ID:        "vid2",
			FilterID:  "no-such-filter",
			URL:       "http://localhost:8001/videos/vid2.mp4",
			Model:     "veo3",
			CreatedAt: created.Add(time.Hour),
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleLibrary())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Filter,Model,URL,Created") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "vid1") {
			t.Errorf("CSV missing vid1 ID")
		}
		if !strings.Contains(output, "Glam AI") {
			t.Errorf("CSV should resolve filter IDs to display names, got: %s", output)
		}
		if !strings.Contains(output, "no-such-filter") {
			t.Errorf("CSV should fall back to raw ID for unknown filters")
		}
		if !strings.Contains(output, "2026-08-01T12:30:00Z") {
			t.Errorf("CSV missing RFC3339 timestamp, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleLibrary(), "My Library")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# My Library") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Videos**: 2") {
			t.Errorf("Markdown missing video count")
		}
		if !strings.Contains(output, "(ltx-2)") {
			t.Errorf("Markdown missing model annotation")
		}
		if !strings.Contains(output, "http://localhost:8001/videos/vid1.mp4") {
			t.Errorf("Markdown missing video link")
		}
	})

	t.Run("ExportToMarkdown With Default Title", func(t *testing.T) {
		data, err := ExportToMarkdown(nil, "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "# Generated Videos") {
			t.Errorf("expected default title, got: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleLibrary())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Videos: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. Glam AI - ") {
			t.Errorf("text missing numbered entry, got: %s", output)
		}
	})

	t.Run("ToLibraryJSON", func(t *testing.T) {
		data, err := ToLibraryJSON(sampleLibrary())
		if err != nil {
			t.Fatalf("ToLibraryJSON failed: %v", err)
		}

		var decoded []store.GeneratedVideo
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("library JSON did not round trip: %v", err)
		}
		if len(decoded) != 2 || decoded[0].ID != "vid1" {
			t.Errorf("unexpected decoded library: %+v", decoded)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "out")

		result, err := WriteCSVExport(sampleLibrary(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.VideosFile != base+"_videos.csv" {
			t.Errorf("unexpected videos file: %s", result.VideosFile)
		}
		for _, file := range []string{result.VideosFile, result.MetadataFile} {
			if _, err := os.Stat(file); err != nil {
				t.Errorf("expected %s to exist: %v", file, err)
			}
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.md")

		written, err := WriteMarkdownExport(sampleLibrary(), path, "")
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read markdown file: %v", err)
		}
		if !strings.Contains(string(data), "## Videos") {
			t.Errorf("markdown file missing videos section")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "library.txt")

		written, err := WriteTextExport(sampleLibrary(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		data, err := os.ReadFile(written)
		if err != nil {
			t.Fatalf("failed to read text file: %v", err)
		}
		if !strings.Contains(string(data), "Videos: 2") {
			t.Errorf("text file missing count")
		}
	})
}
