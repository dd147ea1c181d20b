package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/repositories"
	"github.com/desertthunder/setlists/internal/shared"
)

// MembershipService enforces the setlist membership rules on top of [repositories.MembershipRepository].
//
// Every mutation runs in one transaction: existence checks, the write, renumbering,
// and the setlist's updated_at bump commit together or not at all.
type MembershipService struct {
	db     *sql.DB
	logger *log.Logger
}

// NewMembershipService creates a MembershipService backed by db.
func NewMembershipService(db *sql.DB, logger *log.Logger) *MembershipService {
	return &MembershipService{db: db, logger: shared.WithLogger(defaultLogger(logger), "service", "membership")}
}

// txRepos groups the repositories bound to one transaction.
type txRepos struct {
	members  *repositories.MembershipRepository
	songs    *repositories.SongRepository
	setlists *repositories.SetlistRepository
}

func (s *MembershipService) inTx(ctx context.Context, fn func(r txRepos) error) error {
	return repositories.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(txRepos{
			members:  repositories.NewMembershipRepository(tx),
			songs:    repositories.NewSongRepository(tx),
			setlists: repositories.NewSetlistRepository(tx),
		})
	})
}

func requireSetlist(ctx context.Context, r txRepos, setlistID int64) error {
	ok, err := r.setlists.Exists(ctx, setlistID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrSetlistNotFound
	}
	return nil
}

func requireSong(ctx context.Context, r txRepos, songID int64) error {
	ok, err := r.songs.Exists(ctx, songID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrSongNotFound
	}
	return nil
}

// ListSetlistSongs returns the setlist's songs in position order.
func (s *MembershipService) ListSetlistSongs(ctx context.Context, setlistID int64) ([]models.SetlistSong, error) {
	ok, err := repositories.NewSetlistRepository(s.db).Exists(ctx, setlistID)
	if err != nil {
		return nil, translate(s.logger, "list setlist songs", err)
	}
	if !ok {
		return nil, shared.ErrSetlistNotFound
	}

	songs, err := repositories.NewMembershipRepository(s.db).ListOrdered(ctx, setlistID)
	if err != nil {
		return nil, translate(s.logger, "list setlist songs", err)
	}
	return songs, nil
}

// AddToSetlist appends a song to the end of a setlist and returns the new member.
//
// Fails with [shared.ErrSetlistNotFound], [shared.ErrSongNotFound], or [shared.ErrAlreadyMember].
func (s *MembershipService) AddToSetlist(ctx context.Context, setlistID, songID int64) (*models.SetlistSong, error) {
	var added *models.SetlistSong
	err := s.inTx(ctx, func(r txRepos) error {
		if err := requireSetlist(ctx, r, setlistID); err != nil {
			return err
		}
		if err := requireSong(ctx, r, songID); err != nil {
			return err
		}

		member, err := r.members.Contains(ctx, setlistID, songID)
		if err != nil {
			return err
		}
		if member {
			return shared.ErrAlreadyMember
		}

		if _, err := r.members.Insert(ctx, setlistID, songID); err != nil {
			return err
		}
		if err := r.setlists.Touch(ctx, setlistID); err != nil {
			return err
		}

		added, err = r.members.Get(ctx, setlistID, songID)
		return err
	})
	if err != nil {
		return nil, translate(s.logger, "add to setlist", err)
	}

	s.logger.Info("song added", "setlist", setlistID, "song", songID, "position", added.Position)
	return added, nil
}

// RemoveFromSetlist removes a song from a setlist and closes the gap it leaves.
//
// Fails with [shared.ErrSetlistNotFound], [shared.ErrSongNotFound], or [shared.ErrMembershipNotFound].
func (s *MembershipService) RemoveFromSetlist(ctx context.Context, setlistID, songID int64) error {
	err := s.inTx(ctx, func(r txRepos) error {
		if err := requireSetlist(ctx, r, setlistID); err != nil {
			return err
		}
		if err := requireSong(ctx, r, songID); err != nil {
			return err
		}
		if err := r.members.Remove(ctx, setlistID, songID); err != nil {
			return err
		}
		if err := r.members.Compact(ctx, setlistID); err != nil {
			return err
		}
		return r.setlists.Touch(ctx, setlistID)
	})
	if err != nil {
		return translate(s.logger, "remove from setlist", err)
	}

	s.logger.Info("song removed", "setlist", setlistID, "song", songID)
	return nil
}

// Reorder replaces the setlist's order with ordering and returns the reordered songs.
//
// ordering must list every current member exactly once, or the call fails with
// [shared.ErrOrderingMismatch]. On any failure the previous order is left intact.
func (s *MembershipService) Reorder(ctx context.Context, setlistID int64, ordering models.Ordering) ([]models.SetlistSong, error) {
	var songs []models.SetlistSong
	err := s.inTx(ctx, func(r txRepos) error {
		if err := requireSetlist(ctx, r, setlistID); err != nil {
			return err
		}

		current, err := r.members.SongIDs(ctx, setlistID)
		if err != nil {
			return err
		}
		if !ordering.SameMembers(current) {
			return fmt.Errorf("%w: got %d ids for %d members", shared.ErrOrderingMismatch, len(ordering), len(current))
		}

		if err := r.members.SetPositions(ctx, setlistID, ordering.Positions()); err != nil {
			return err
		}
		if err := r.setlists.Touch(ctx, setlistID); err != nil {
			return err
		}

		songs, err = r.members.ListOrdered(ctx, setlistID)
		return err
	})
	if err != nil {
		return nil, translate(s.logger, "reorder setlist", err)
	}

	s.logger.Info("setlist reordered", "setlist", setlistID, "songs", len(songs))
	return songs, nil
}
