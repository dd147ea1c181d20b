// package formatter exports an ordered setlist to CSV, Markdown lyric sheets, and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

// SetlistExport is a setlist together with its songs in position order.
type SetlistExport struct {
	Setlist models.Setlist
	Songs   []models.SetlistSong
}

// Format names an export file format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "text"
)

// ParseFormat accepts csv, markdown (or md), and text (or txt), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "text", "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension used for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}

// ExportToCSV converts a SetlistExport to CSV format with columns: Position, ID, Title, Added
func ExportToCSV(export *SetlistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Added"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range export.Songs {
		added := ""
		if !song.AddedAt.IsZero() {
			added = song.AddedAt.UTC().Format("2006-01-02T15:04:05Z")
		}
		record := []string{
			strconv.Itoa(song.Position),
			strconv.FormatInt(song.ID, 10),
			song.Title,
			added,
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

// ExportToMarkdown renders a lyric sheet: one section per song, in setlist order, with its body.
func ExportToMarkdown(export *SetlistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Setlist.Name)
	fmt.Fprintf(&buf, "**Songs**: %d\n", len(export.Songs))
	if !export.Setlist.UpdatedAt.IsZero() {
		fmt.Fprintf(&buf, "**Updated**: %s\n", export.Setlist.UpdatedAt.Format("Jan 2, 2006"))
	}
	buf.WriteString("\n")

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "## %d. %s\n\n", i+1, song.Title)
		if body := strings.TrimSpace(song.Body); body != "" {
			// two trailing spaces keep lyric line breaks in rendered Markdown
			buf.WriteString(strings.ReplaceAll(body, "\n", "  \n"))
			buf.WriteString("\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SetlistExport to a plain numbered list
func ExportToText(export *SetlistExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Setlist: %s\n", export.Setlist.Name)
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(export.Songs))

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, song.Title)
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of setlist metadata (without songs)
func ToMetadataJSON(setlist models.Setlist) ([]byte, error) {
	data, err := json.MarshalIndent(setlist, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

// Render produces the export in the given format.
func Render(export *SetlistExport, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ExportToCSV(export)
	case Markdown:
		return ExportToMarkdown(export)
	case Text:
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportResult contains the paths of files created by WriteExport
type ExportResult struct {
	File         string
	MetadataFile string
}

// WriteExport writes the export to path in the given format, plus a metadata JSON file beside it for CSV.
//
// Defaults to setlist-{id}.{ext} in the working directory. Parent directories are created as needed.
func WriteExport(export *SetlistExport, format Format, path string) (*ExportResult, error) {
	if path == "" {
		path = fmt.Sprintf("setlist-%d.%s", export.Setlist.ID, format.Extension())
	}

	data, err := Render(export, format)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s file: %w", format, err)
	}

	result := &ExportResult{File: path}
	if format != CSV {
		return result, nil
	}

	metadataJSON, err := ToMetadataJSON(export.Setlist)
	if err != nil {
		return nil, err
	}

	metadataFile := strings.TrimSuffix(path, filepath.Ext(path)) + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}
	result.MetadataFile = metadataFile

	return result, nil
}
