package tasks

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/setlists/internal/formatter"
	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestName     = "export_manifest.json"
)

// SetlistSource reads setlists and their ordered songs.
type SetlistSource interface {
	Setlist(ctx context.Context, setlistID int64) (*models.Setlist, error)
	Setlists(ctx context.Context) ([]*models.Setlist, error)
	Members(ctx context.Context, setlistID int64) ([]models.SetlistSong, error)
}

// BulkExportOpts contains configuration for bulk setlist exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format (default: markdown)
	OutputDir  string           // Output directory (default: setlists_export_{epoch})
	NumWorkers int              // Concurrent writers (default: 4, max: 10)
	RateLimit  float64          // Setlist fetches per second (default: 5)
}

// SetlistExportResult is the outcome of exporting one setlist.
type SetlistExportResult struct {
	SetlistID    int64    `json:"setlistId"`
	Name         string   `json:"name"`
	Songs        int      `json:"songs"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	ErrorMessage string   `json:"error,omitempty"`
	Error        error    `json:"-"`
}

// BulkExportResult summarizes a bulk export. It is also the manifest written to the output directory.
type BulkExportResult struct {
	TotalSetlists     int                   `json:"totalSetlists"`
	SuccessfulExports int                   `json:"successfulExports"`
	FailedExports     int                   `json:"failedExports"`
	Format            formatter.Format      `json:"format"`
	OutputDirectory   string                `json:"outputDirectory"`
	ExportedAt        time.Time             `json:"exportedAt"`
	Results           []SetlistExportResult `json:"results"`
	ManifestPath      string                `json:"-"`
}

type exportJob struct {
	export *formatter.SetlistExport
}

// Exporter writes setlists read from a [SetlistSource] to files.
type Exporter struct {
	source SetlistSource
	logger *log.Logger
}

// NewExporter creates an Exporter. A nil logger discards output.
func NewExporter(source SetlistSource, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Exporter{source: source, logger: logger}
}

// BulkExport exports the setlists named by ids, or every setlist when ids is empty, into opts.OutputDir.
//
// Fetches are throttled and file writes run on a worker pool. A setlist that fails to fetch or write
// is recorded in the result and does not stop the others. Results are ordered by setlist ID.
func (e *Exporter) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []int64,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: setlist source not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.Markdown
	}
	format, err := formatter.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("setlists_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	known := map[int64]*models.Setlist{}
	if len(ids) == 0 {
		e.sendProgress(prog, fetchingSetlistsUpdate())
		setlists, err := e.source.Setlists(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list setlists: %w", err)
		}
		for _, setlist := range setlists {
			ids = append(ids, setlist.ID)
			known[setlist.ID] = setlist
		}
		e.sendProgress(prog, foundSetlistsUpdate(len(ids)))
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSetlists:   len(ids),
		Format:          opts.Format,
		OutputDirectory: opts.OutputDir,
		ExportedAt:      time.Now().UTC(),
		Results:         make([]SetlistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(ids))
	results := make(chan SetlistExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)

		for i, setlistID := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			export, err := e.fetch(ctx, setlistID, known[setlistID])
			if err != nil {
				results <- SetlistExportResult{
					SetlistID: setlistID,
					Name:      fmt.Sprintf("Unknown (%d)", setlistID),
					Error:     fmt.Errorf("failed to fetch setlist: %w", err),
				}
				continue
			}

			jobs <- exportJob{export: export}
			e.sendProgress(prog, exportingSetlistUpdate(i+1, len(ids), export.Setlist.Name))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.Name, len(res.Files)))
		} else {
			result.FailedExports++
			res.ErrorMessage = res.Error.Error()
			e.logger.Warn("setlist export failed", "setlist", res.SetlistID, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.Name, res.Error))
		}
		result.Results = append(result.Results, res)
	}

	slices.SortFunc(result.Results, func(a, b SetlistExportResult) int {
		return cmp.Compare(a.SetlistID, b.SetlistID)
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted after %d of %d setlists: %w", completed, len(ids), err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished",
		"dir", opts.OutputDir, "succeeded", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// fetch reads the setlist record (unless already known) and its songs in order.
func (e *Exporter) fetch(ctx context.Context, setlistID int64, setlist *models.Setlist) (*formatter.SetlistExport, error) {
	if setlist == nil {
		var err error
		if setlist, err = e.source.Setlist(ctx, setlistID); err != nil {
			return nil, err
		}
	}

	songs, err := e.source.Members(ctx, setlistID)
	if err != nil {
		return nil, err
	}
	return &formatter.SetlistExport{Setlist: *setlist, Songs: songs}, nil
}

// exportWorker writes setlists from the jobs channel until it closes.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- SetlistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.exportSingleSetlist(job, opts)
	}
}

// exportSingleSetlist writes one setlist as setlist-{id}.{ext} in the output directory.
func (e *Exporter) exportSingleSetlist(j exportJob, opts BulkExportOpts) SetlistExportResult {
	setlist := j.export.Setlist
	result := SetlistExportResult{
		SetlistID: setlist.ID,
		Name:      setlist.Name,
		Songs:     len(j.export.Songs),
		Files:     []string{},
	}

	path := filepath.Join(opts.OutputDir, fmt.Sprintf("setlist-%d.%s", setlist.ID, opts.Format.Extension()))
	written, err := formatter.WriteExport(j.export, opts.Format, path)
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	result.Files = append(result.Files, written.File)
	if written.MetadataFile != "" {
		result.Files = append(result.Files, written.MetadataFile)
	}
	result.Success = true
	return result
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// sendProgress drops the update when prog is nil or full.
func (e *Exporter) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	select {
	case prog <- update:
	default:
	}
}
