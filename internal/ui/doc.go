// Package ui implements the interactive setlist reorder view using bubbletea's Elm architecture.
//
// A keyboard drag replaces the pointer gesture: space grabs the row under the cursor, the arrow keys (or j/k) carry it,
// and space or enter drops it. On drop the [Model] computes the complete resulting ordering with
// [models.Ordering.Move], shows it immediately, and submits it through [SetlistClient] as one request.
//
// The optimistic order is speculative. The server's response replaces it on success; on failure the order from
// before the drop is restored and the error is shown. Only one submission is in flight at a time.
//
// Results arrive as the Msg union type; contextual help is rendered with charmbracelet/bubbles/help.
package ui
