package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Phase identifies the stage of an operation.
type Phase int

const (
	FetchSetlists Phase = iota
	ExportSetlist
)

func (p Phase) String() string {
	switch p {
	case FetchSetlists:
		return "fetch_setlists"
	case ExportSetlist:
		return "export_setlist"
	default:
		return ""
	}
}

func fetchingSetlistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSetlists,
		Message: "Fetching setlists...",
	}
}

func foundSetlistsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSetlists,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Found %d setlists", total),
	}
}

func exportingSetlistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSetlist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSetlist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSetlist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
