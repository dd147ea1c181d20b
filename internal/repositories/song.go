package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

var _ models.Repository[*models.Song] = (*SongRepository)(nil)

// SongRepository implements models.Repository[*models.Song] for the song catalog.
type SongRepository struct {
	db DBTX
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db DBTX) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song and fills in its ID and creation time
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO songs (title, body) VALUES (?, ?)`, song.Title, song.Body)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get song id: %w", err)
	}

	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*song = *created
	return nil
}

// Get retrieves a song by ID
func (r *SongRepository) Get(ctx context.Context, id int64) (*models.Song, error) {
	query := `SELECT id, title, body, created_at FROM songs WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Update replaces a song's title and body
func (r *SongRepository) Update(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE songs SET title = ?, body = ? WHERE id = ?`, song.Title, song.Body, song.ID)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", classify(err))
	}
	return checkAffected(result, shared.ErrSongNotFound)
}

// Delete removes a song. Its setlist memberships go with it.
func (r *SongRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return checkAffected(result, shared.ErrSongNotFound)
}

// List retrieves all songs, newest first
func (r *SongRepository) List(ctx context.Context) ([]*models.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, created_at FROM songs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	defer rows.Close()

	songs := []*models.Song{}
	for rows.Next() {
		song, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating songs: %w", err)
	}
	return songs, nil
}

// Exists reports whether a song with the given ID is stored
func (r *SongRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = ?)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check song existence: %w", err)
	}
	return exists, nil
}

func (r *SongRepository) scanOne(row *sql.Row) (*models.Song, error) {
	var s models.Song
	err := row.Scan(&s.ID, &s.Title, &s.Body, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSongNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return &s, nil
}

func (r *SongRepository) scanRow(rows *sql.Rows) (*models.Song, error) {
	var s models.Song
	if err := rows.Scan(&s.ID, &s.Title, &s.Body, &s.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return &s, nil
}
