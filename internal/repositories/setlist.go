package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

var _ models.Repository[*models.Setlist] = (*SetlistRepository)(nil)

// SetlistRepository implements models.Repository[*models.Setlist].
//
// Reads include the number of member songs.
type SetlistRepository struct {
	db DBTX
}

// NewSetlistRepository creates a new SetlistRepository with the given database connection
func NewSetlistRepository(db DBTX) *SetlistRepository {
	return &SetlistRepository{db: db}
}

const selectSetlists = `
	SELECT s.id, s.name, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM setlist_songs ss WHERE ss.setlist_id = s.id) AS song_count
	FROM setlists s
`

// Create inserts a new setlist and fills in its ID and timestamps
func (r *SetlistRepository) Create(ctx context.Context, setlist *models.Setlist) error {
	if err := setlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `INSERT INTO setlists (name) VALUES (?)`, setlist.Name)
	if err != nil {
		return fmt.Errorf("failed to insert setlist: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get setlist id: %w", err)
	}

	created, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	*setlist = *created
	return nil
}

// Get retrieves a setlist by ID
func (r *SetlistRepository) Get(ctx context.Context, id int64) (*models.Setlist, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectSetlists+`WHERE s.id = ?`, id))
}

// Update renames a setlist and bumps its updated_at
func (r *SetlistRepository) Update(ctx context.Context, setlist *models.Setlist) error {
	if err := setlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE setlists SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, setlist.Name, setlist.ID)
	if err != nil {
		return fmt.Errorf("failed to update setlist: %w", classify(err))
	}
	return checkAffected(result, shared.ErrSetlistNotFound)
}

// Touch bumps a setlist's updated_at after its membership changes.
func (r *SetlistRepository) Touch(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE setlists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to touch setlist: %w", err)
	}
	return checkAffected(result, shared.ErrSetlistNotFound)
}

// Delete removes a setlist along with all of its memberships. The songs themselves are kept.
func (r *SetlistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM setlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete setlist: %w", err)
	}
	return checkAffected(result, shared.ErrSetlistNotFound)
}

// List retrieves all setlists, newest first
func (r *SetlistRepository) List(ctx context.Context) ([]*models.Setlist, error) {
	rows, err := r.db.QueryContext(ctx, selectSetlists+`ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list setlists: %w", err)
	}
	defer rows.Close()

	setlists := []*models.Setlist{}
	for rows.Next() {
		var s models.Setlist
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.SongCount); err != nil {
			return nil, fmt.Errorf("failed to scan setlist: %w", err)
		}
		setlists = append(setlists, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setlists: %w", err)
	}
	return setlists, nil
}

// Exists reports whether a setlist with the given ID is stored
func (r *SetlistRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM setlists WHERE id = ?)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check setlist existence: %w", err)
	}
	return exists, nil
}

func (r *SetlistRepository) scanOne(row *sql.Row) (*models.Setlist, error) {
	var s models.Setlist
	err := row.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt, &s.SongCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSetlistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan setlist: %w", err)
	}
	return &s, nil
}
