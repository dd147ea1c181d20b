package formatter

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
	tu "github.com/desertthunder/setlists/internal/testing"
)

func testExport() *SetlistExport {
	added := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return &SetlistExport{
		Setlist: models.Setlist{
			ID:        7,
			Name:      "Easter Morning",
			SongCount: 2,
			UpdatedAt: added,
		},
		Songs: []models.SetlistSong{
			{
				Song:     models.Song{ID: 12, Title: "Christ the Lord Is Risen Today", Body: "Christ the Lord is risen today\nAlleluia"},
				Position: 0,
				AddedAt:  added,
			},
			{
				Song:     models.Song{ID: 3, Title: "In Christ Alone", Body: "In Christ alone my hope is found"},
				Position: 1,
				AddedAt:  added,
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines: %s", len(lines), data)
		}
		if lines[0] != "Position,ID,Title,Added" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "0,12,Christ the Lord Is Risen Today,2025-03-14T09:30:00Z" {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if !strings.HasPrefix(lines[2], "1,3,In Christ Alone,") {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("ExportToCSV quotes titles with commas", func(t *testing.T) {
		export := testExport()
		export.Songs[0].Title = "Holy, Holy, Holy"

		data, err := ExportToCSV(export)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"Holy, Holy, Holy"`) {
			t.Errorf("expected quoted title, got: %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Easter Morning",
			"**Songs**: 2",
			"**Updated**: Mar 14, 2025",
			"## 1. Christ the Lord Is Risen Today",
			"Christ the Lord is risen today  \nAlleluia",
			"## 2. In Christ Alone",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}

		if strings.Index(output, "## 1.") > strings.Index(output, "## 2.") {
			t.Error("songs out of order")
		}
	})

	t.Run("ExportToMarkdown empty setlist", func(t *testing.T) {
		data, err := ExportToMarkdown(&SetlistExport{Setlist: models.Setlist{Name: "Empty"}})
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		if !strings.Contains(string(data), "**Songs**: 0") {
			t.Errorf("unexpected output: %s", data)
		}
		if strings.Contains(string(data), "**Updated**") {
			t.Error("zero updated time should be omitted")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		expected := "Setlist: Easter Morning\nSongs: 2\n\n1. Christ the Lord Is Risen Today\n2. In Christ Alone\n"
		if string(data) != expected {
			t.Errorf("expected %q, got %q", expected, data)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(testExport().Setlist)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}
		if !strings.Contains(string(data), `"name": "Easter Morning"`) || !strings.Contains(string(data), `"songCount": 2`) {
			t.Errorf("metadata JSON missing expected fields: %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"csv", CSV},
		{"CSV", CSV},
		{"markdown", Markdown},
		{"md", Markdown},
		{" text ", Text},
		{"txt", Text},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("CSV writes metadata beside the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "easter.csv")

		result, err := WriteExport(testExport(), CSV, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		if result.File != path {
			t.Errorf("expected file %s, got %s", path, result.File)
		}
		wantMeta := filepath.Join(filepath.Dir(path), "easter_metadata.json")
		if result.MetadataFile != wantMeta {
			t.Errorf("expected metadata file %s, got %s", wantMeta, result.MetadataFile)
		}

		tu.AssertFileExists(t, result.File)
		tu.AssertFileExists(t, result.MetadataFile)
		if !strings.Contains(tu.MustReadFile(t, result.File), "In Christ Alone") {
			t.Error("CSV missing song data")
		}
		if !strings.Contains(tu.MustReadFile(t, result.MetadataFile), "Easter Morning") {
			t.Error("metadata JSON missing setlist name")
		}
	})

	t.Run("Markdown has no metadata file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sheet.md")

		result, err := WriteExport(testExport(), Markdown, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if result.MetadataFile != "" {
			t.Errorf("expected no metadata file, got %s", result.MetadataFile)
		}
		if !strings.HasPrefix(tu.MustReadFile(t, path), "# Easter Morning") {
			t.Error("unexpected Markdown content")
		}
	})

	t.Run("default path", func(t *testing.T) {
		t.Chdir(t.TempDir())

		result, err := WriteExport(testExport(), Text, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if result.File != "setlist-7.txt" {
			t.Errorf("expected setlist-7.txt, got %s", result.File)
		}
		tu.AssertFileExists(t, result.File)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := WriteExport(testExport(), Format("pdf"), filepath.Join(t.TempDir(), "x.pdf"))
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
