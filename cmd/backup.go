package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/setlists/internal/formatter"
	"github.com/desertthunder/setlists/internal/tasks"
)

// Backup exports setlists into one directory and writes a manifest.
func (r *Runner) Backup(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  float64(cmd.Int("rate")),
	}

	r.logger.Info("starting backup", "format", format, "dir", opts.OutputDir)
	r.writePlain("Exporting setlists...\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			r.writePlain("   %s\n", update.Message)
		}
	}()

	result, err := tasks.NewExporter(r.api, r.logger).BulkExport(ctx, progressCh, cmd.Int64Slice("setlist"), opts)
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	r.writePlain("\n✓ Exported %d/%d setlists to %s\n", result.SuccessfulExports, result.TotalSetlists, result.OutputDirectory)
	r.writePlain("  Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d setlists:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.Name, res.Error)
			}
		}
	}
	return nil
}
