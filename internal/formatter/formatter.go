// package formatter provides functions to export the generated-video library to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/glowstack/reel/internal/filters"
	"github.com/glowstack/reel/internal/shared"
	"github.com/glowstack/reel/internal/store"
)

// filterName resolves a filter ID to its display name, falling back to the
// raw ID for videos generated by filters no longer in the catalog.
func filterName(id string) string {
	if f, ok := filters.ByID(id); ok {
		return f.Name
	}
	return id
}

// ExportToCSV converts a video library to CSV format with columns: ID, Filter, Model, URL, Created
func ExportToCSV(videos []store.GeneratedVideo) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Filter", "Model", "URL", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range videos {
		record := []string{
			video.ID,
			filterName(video.FilterID),
			video.Model,
			video.URL,
			video.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a video library to Markdown format
func ExportToMarkdown(videos []store.GeneratedVideo, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Generated Videos"
	}
	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(videos)))

	buf.WriteString("## Videos\n\n")
	for i, video := range videos {
		modelPart := ""
		if video.Model != "" {
			modelPart = fmt.Sprintf(" (%s)", video.Model)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s - %s\n", i+1, filterName(video.FilterID), video.URL, modelPart, video.CreatedAt.Format("2006-01-02 15:04")))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a video library to plain text format
func ExportToText(videos []store.GeneratedVideo) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Videos: %d\n\n", len(videos)))

	for i, video := range videos {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, filterName(video.FilterID), video.URL))
	}

	return buf.Bytes(), nil
}

// ToLibraryJSON generates a JSON representation of the video library
func ToLibraryJSON(videos []store.GeneratedVideo) ([]byte, error) {
	return shared.MarshalJSON(videos, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	VideosFile   string
	MetadataFile string
}

// WriteCSVExport exports the video library to CSV format with an accompanying JSON file.
//
// Defaults to "library" as the base filename & creates {base}_videos.csv and {base}_library.json
func WriteCSVExport(videos []store.GeneratedVideo, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "library"
	}

	csvData, err := ExportToCSV(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	videosFile := baseFilepath + "_videos.csv"
	if err := os.WriteFile(videosFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	libraryJSON, err := ToLibraryJSON(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to generate library JSON: %w", err)
	}

	metadataFile := baseFilepath + "_library.json"
	if err := os.WriteFile(metadataFile, libraryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write library file: %w", err)
	}

	return &CSVExportResult{
		VideosFile:   videosFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports the video library to Markdown format.
//
// Defaults to library.md as the filename.
func WriteMarkdownExport(videos []store.GeneratedVideo, filepath string, title string) (string, error) {
	if filepath == "" {
		filepath = "library.md"
	}

	mdData, err := ExportToMarkdown(videos, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports the video library to plain text format.
//
// Defaults to library.txt as the filename.
func WriteTextExport(videos []store.GeneratedVideo, filepath string) (string, error) {
	if filepath == "" {
		filepath = "library.txt"
	}

	textData, err := ExportToText(videos)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
