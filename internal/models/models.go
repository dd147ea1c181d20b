// package models defines the data model for the setlist service
package models

import (
	"context"
	"time"
)

// Model defines the base interface for all persistent models in the setlist service.
type Model interface {
	// GetID returns the store-assigned surrogate key, zero until persisted.
	GetID() int64
	// Validate checks if the model's data is valid and returns an error if not.
	Validate() error
}

// Repository defines the interface for catalog data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	// Create inserts a new model and assigns its ID.
	Create(ctx context.Context, model T) error
	// Get retrieves a model by its ID.
	Get(ctx context.Context, id int64) (T, error)
	// Update modifies an existing model.
	Update(ctx context.Context, model T) error
	// Delete removes a model, cascading to its memberships.
	Delete(ctx context.Context, id int64) error
	// List retrieves all models, newest first.
	List(ctx context.Context) ([]T, error)
	// Exists reports whether a model with the given ID is stored.
	Exists(ctx context.Context, id int64) (bool, error)
}

// Song is a catalog entry that can appear in any number of setlists.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"` // lyrics
	CreatedAt time.Time `json:"createdAt"`
}

// Setlist is a named, ordered group of songs.
type Setlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SongCount int       `json:"songCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Membership is the join record linking one song to one setlist at an ordinal position.
type Membership struct {
	SetlistID int64     `json:"setlistId"`
	SongID    int64     `json:"songId"`
	Position  int       `json:"position"`
	AddedAt   time.Time `json:"addedAt"`
}

// SetlistSong is a membership joined with its song, as returned by ordered listings.
type SetlistSong struct {
	Song
	Position int       `json:"position"`
	AddedAt  time.Time `json:"addedAt"`
}

// PositionUpdate assigns a position to one member of a setlist.
type PositionUpdate struct {
	SongID   int64 `json:"itemId"`
	Position int   `json:"position"`
}
