// Package tasks runs long operations over many setlists with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes a file per setlist into one directory:
//   - With no IDs it exports every setlist the source knows about
//   - A producer fetches each setlist and its ordered songs, throttled by a rate limiter
//   - A pool of workers renders and writes the files through the formatter package
//   - A failed setlist is recorded in the result and the rest continue
//   - An export_manifest.json summarizing every setlist is written last
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on a caller-owned channel.
// Sends never block. Updates are dropped when the channel is full or nil.
package tasks
