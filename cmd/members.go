package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/setlists/internal/formatter"
	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

// MembersList prints the songs of a setlist in order.
func (r *Runner) MembersList(ctx context.Context, cmd *cli.Command) error {
	setlistID := cmd.Int64("setlist")

	songs, err := r.api.Members(ctx, setlistID)
	if err != nil {
		return fmt.Errorf("failed to list setlist %d: %w", setlistID, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}
	if len(songs) == 0 {
		return r.writePlain("Setlist %d has no songs\n", setlistID)
	}
	return r.writePlain("%s\n", renderMembers(songs))
}

// MembersAdd appends a song to a setlist.
func (r *Runner) MembersAdd(ctx context.Context, cmd *cli.Command) error {
	setlistID, songID := cmd.Int64("setlist"), cmd.Int64("song")

	added, err := r.api.AddMember(ctx, setlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to add song %d to setlist %d: %w", songID, setlistID, err)
	}

	r.logger.Debug("song added", "setlist", setlistID, "song", songID, "position", added.Position)
	return r.writePlain("✓ Added %q to setlist %d at position %d\n", added.Title, setlistID, added.Position)
}

// MembersRemove removes a song from a setlist.
func (r *Runner) MembersRemove(ctx context.Context, cmd *cli.Command) error {
	setlistID, songID := cmd.Int64("setlist"), cmd.Int64("song")

	if err := r.api.RemoveMember(ctx, setlistID, songID); err != nil {
		return fmt.Errorf("failed to remove song %d from setlist %d: %w", songID, setlistID, err)
	}
	return r.writePlain("✓ Removed song %d from setlist %d\n", songID, setlistID)
}

// MembersReorder submits a complete ordering given as comma-separated song IDs.
func (r *Runner) MembersReorder(ctx context.Context, cmd *cli.Command) error {
	setlistID := cmd.Int64("setlist")

	ordering, err := parseOrdering(cmd.String("order"))
	if err != nil {
		return err
	}
	return r.submitOrdering(ctx, setlistID, ordering)
}

// MembersMove moves one song and submits the whole resulting ordering, the same way the TUI does on drop.
func (r *Runner) MembersMove(ctx context.Context, cmd *cli.Command) error {
	setlistID := cmd.Int64("setlist")
	from, to := cmd.Int("from"), cmd.Int("to")

	songs, err := r.api.Members(ctx, setlistID)
	if err != nil {
		return fmt.Errorf("failed to list setlist %d: %w", setlistID, err)
	}

	ordering, err := models.OrderingOf(songs).Move(from, to)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}
	if from == to {
		return r.writePlain("Song already at position %d\n", to)
	}
	return r.submitOrdering(ctx, setlistID, ordering)
}

func (r *Runner) submitOrdering(ctx context.Context, setlistID int64, ordering models.Ordering) error {
	songs, err := r.api.Reorder(ctx, setlistID, ordering)
	if err != nil {
		return fmt.Errorf("failed to reorder setlist %d: %w", setlistID, err)
	}

	r.logger.Debug("setlist reordered", "setlist", setlistID, "songs", len(songs))
	return r.writePlain("%s\n", renderMembers(songs))
}

// parseOrdering reads "3, 1, 2" as an ordering. IDs must be positive integers.
func parseOrdering(s string) (models.Ordering, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: --order needs at least one song ID", shared.ErrMissingArgument)
	}

	parts := strings.Split(s, ",")
	ordering := make(models.Ordering, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q is not a song ID", shared.ErrInvalidFlag, strings.TrimSpace(part))
		}
		ordering = append(ordering, id)
	}
	return ordering, nil
}

// MembersExport writes the setlist in order to a file.
func (r *Runner) MembersExport(ctx context.Context, cmd *cli.Command) error {
	setlistID := cmd.Int64("setlist")

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	setlist, err := r.api.Setlist(ctx, setlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch setlist %d: %w", setlistID, err)
	}
	songs, err := r.api.Members(ctx, setlistID)
	if err != nil {
		return fmt.Errorf("failed to list setlist %d: %w", setlistID, err)
	}

	result, err := formatter.WriteExport(&formatter.SetlistExport{Setlist: *setlist, Songs: songs}, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("setlist exported", "setlist", setlistID, "format", format, "file", result.File)
	if result.MetadataFile != "" {
		return r.writePlain("✓ Exported %d songs to %s (metadata: %s)\n", len(songs), result.File, result.MetadataFile)
	}
	return r.writePlain("✓ Exported %d songs to %s\n", len(songs), result.File)
}
