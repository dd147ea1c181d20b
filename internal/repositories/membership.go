package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

// MembershipRepository persists the ordered song membership of setlists.
//
// Positions within a setlist are unique. Writes that would collide, duplicate a membership,
// or reference a missing song or setlist fail with a [ConstraintError].
type MembershipRepository struct {
	db DBTX
}

// NewMembershipRepository creates a MembershipRepository over a database or an open transaction.
func NewMembershipRepository(db DBTX) *MembershipRepository {
	return &MembershipRepository{db: db}
}

const selectSetlistSongs = `
	SELECT s.id, s.title, s.body, s.created_at, ss.position, ss.added_at
	FROM setlist_songs ss
	JOIN songs s ON s.id = ss.song_id
`

// Insert appends songID to the end of the setlist and returns the new membership.
//
// The position is computed as one past the current maximum, or 0 for an empty setlist, in the same statement as the insert.
func (r *MembershipRepository) Insert(ctx context.Context, setlistID, songID int64) (*models.Membership, error) {
	var m *models.Membership
	err := inTx(ctx, r.db, func(q DBTX) error {
		query := `
			INSERT INTO setlist_songs (setlist_id, song_id, position)
			VALUES (?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM setlist_songs WHERE setlist_id = ?))
		`
		if _, err := q.ExecContext(ctx, query, setlistID, songID, setlistID); err != nil {
			return fmt.Errorf("failed to insert membership: %w", classify(err))
		}

		row := q.QueryRowContext(ctx, `
			SELECT setlist_id, song_id, position, added_at
			FROM setlist_songs
			WHERE setlist_id = ? AND song_id = ?
		`, setlistID, songID)

		var inserted models.Membership
		if err := row.Scan(&inserted.SetlistID, &inserted.SongID, &inserted.Position, &inserted.AddedAt); err != nil {
			return fmt.Errorf("failed to read inserted membership: %w", err)
		}
		m = &inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns one member of a setlist joined with its song.
func (r *MembershipRepository) Get(ctx context.Context, setlistID, songID int64) (*models.SetlistSong, error) {
	query := selectSetlistSongs + `WHERE ss.setlist_id = ? AND ss.song_id = ?`

	var s models.SetlistSong
	err := r.db.QueryRowContext(ctx, query, setlistID, songID).Scan(
		&s.ID, &s.Title, &s.Body, &s.CreatedAt, &s.Position, &s.AddedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrMembershipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &s, nil
}

// ListOrdered returns the setlist's songs sorted by ascending position.
//
// An empty or unknown setlist yields an empty, non-nil slice.
func (r *MembershipRepository) ListOrdered(ctx context.Context, setlistID int64) ([]models.SetlistSong, error) {
	query := selectSetlistSongs + `WHERE ss.setlist_id = ? ORDER BY ss.position ASC`

	rows, err := r.db.QueryContext(ctx, query, setlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list setlist songs: %w", err)
	}
	defer rows.Close()

	songs := []models.SetlistSong{}
	for rows.Next() {
		var s models.SetlistSong
		if err := rows.Scan(&s.ID, &s.Title, &s.Body, &s.CreatedAt, &s.Position, &s.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setlist song: %w", err)
		}
		songs = append(songs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setlist songs: %w", err)
	}
	return songs, nil
}

// SongIDs returns the IDs of the setlist's members in position order.
func (r *MembershipRepository) SongIDs(ctx context.Context, setlistID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT song_id FROM setlist_songs WHERE setlist_id = ? ORDER BY position ASC`, setlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list setlist members: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan song id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetlistIDs returns the IDs of every setlist songID belongs to.
func (r *MembershipRepository) SetlistIDs(ctx context.Context, songID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT setlist_id FROM setlist_songs WHERE song_id = ? ORDER BY setlist_id ASC`, songID)
	if err != nil {
		return nil, fmt.Errorf("failed to list setlists for song: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan setlist id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Contains reports whether songID is a member of the setlist.
func (r *MembershipRepository) Contains(ctx context.Context, setlistID, songID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM setlist_songs WHERE setlist_id = ? AND song_id = ?)`
	if err := r.db.QueryRowContext(ctx, query, setlistID, songID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// Count returns the number of songs in the setlist.
func (r *MembershipRepository) Count(ctx context.Context, setlistID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM setlist_songs WHERE setlist_id = ?`, setlistID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count setlist songs: %w", err)
	}
	return n, nil
}

// Remove deletes one membership. Remaining positions are left as they are; see [MembershipRepository.Compact].
func (r *MembershipRepository) Remove(ctx context.Context, setlistID, songID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM setlist_songs WHERE setlist_id = ? AND song_id = ?`, setlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return checkAffected(result, shared.ErrMembershipNotFound)
}

// SetPositions applies every update or none of them.
//
// Rows are first parked on distinct negative positions and then moved to their targets,
// so a permutation never trips the per-setlist uniqueness of positions midway.
// An update naming a song that is not a member fails the whole batch.
func (r *MembershipRepository) SetPositions(ctx context.Context, setlistID int64, updates []models.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return inTx(ctx, r.db, func(q DBTX) error {
		query := `UPDATE setlist_songs SET position = ? WHERE setlist_id = ? AND song_id = ?`

		for i, u := range updates {
			result, err := q.ExecContext(ctx, query, -(i + 1), setlistID, u.SongID)
			if err != nil {
				return fmt.Errorf("failed to park song %d: %w", u.SongID, classify(err))
			}
			if err := checkAffected(result, fmt.Errorf("song %d: %w", u.SongID, shared.ErrMembershipNotFound)); err != nil {
				return err
			}
		}

		// Every row was found while parking, so affected rows need no second check.
		for _, u := range updates {
			if _, err := q.ExecContext(ctx, query, u.Position, setlistID, u.SongID); err != nil {
				return fmt.Errorf("failed to set position of song %d: %w", u.SongID, classify(err))
			}
		}
		return nil
	})
}

// Compact renumbers the setlist's positions to 0..n-1, keeping their relative order.
func (r *MembershipRepository) Compact(ctx context.Context, setlistID int64) error {
	return inTx(ctx, r.db, func(q DBTX) error {
		tx := NewMembershipRepository(q)
		ids, err := tx.SongIDs(ctx, setlistID)
		if err != nil {
			return err
		}
		return tx.SetPositions(ctx, setlistID, models.Ordering(ids).Positions())
	})
}
