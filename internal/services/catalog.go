package services

import (
	"context"
	"database/sql"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/repositories"
	"github.com/desertthunder/setlists/internal/shared"
)

// CatalogService manages the songs and setlists that memberships refer to.
type CatalogService struct {
	db       *sql.DB
	songs    *repositories.SongRepository
	setlists *repositories.SetlistRepository
	logger   *log.Logger
}

// NewCatalogService creates a CatalogService backed by db.
func NewCatalogService(db *sql.DB, logger *log.Logger) *CatalogService {
	return &CatalogService{
		db:       db,
		songs:    repositories.NewSongRepository(db),
		setlists: repositories.NewSetlistRepository(db),
		logger:   shared.WithLogger(defaultLogger(logger), "service", "catalog"),
	}
}

// Ping checks that the database is reachable.
func (s *CatalogService) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return translate(s.logger, "ping", err)
	}
	return nil
}

func (s *CatalogService) ListSongs(ctx context.Context) ([]*models.Song, error) {
	songs, err := s.songs.List(ctx)
	return songs, translate(s.logger, "list songs", err)
}

func (s *CatalogService) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	song, err := s.songs.Get(ctx, id)
	if err != nil {
		return nil, translate(s.logger, "get song", err)
	}
	return song, nil
}

func (s *CatalogService) CreateSong(ctx context.Context, title, body string) (*models.Song, error) {
	song := &models.Song{Title: title, Body: body}
	if err := s.songs.Create(ctx, song); err != nil {
		return nil, translate(s.logger, "create song", err)
	}

	s.logger.Info("song created", "song", song.ID)
	return song, nil
}

// UpdateSong replaces a song's title and body and returns the stored song.
func (s *CatalogService) UpdateSong(ctx context.Context, id int64, title, body string) (*models.Song, error) {
	song := &models.Song{ID: id, Title: title, Body: body}
	if err := s.songs.Update(ctx, song); err != nil {
		return nil, translate(s.logger, "update song", err)
	}
	return s.GetSong(ctx, id)
}

// DeleteSong removes a song from the catalog and from every setlist that contained it.
//
// Setlists that lose a member are renumbered so their positions stay contiguous.
func (s *CatalogService) DeleteSong(ctx context.Context, id int64) error {
	err := repositories.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		members := repositories.NewMembershipRepository(tx)
		affected, err := members.SetlistIDs(ctx, id)
		if err != nil {
			return err
		}
		if err := repositories.NewSongRepository(tx).Delete(ctx, id); err != nil {
			return err
		}

		setlists := repositories.NewSetlistRepository(tx)
		for _, setlistID := range affected {
			if err := members.Compact(ctx, setlistID); err != nil {
				return err
			}
			if err := setlists.Touch(ctx, setlistID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return translate(s.logger, "delete song", err)
	}

	s.logger.Info("song deleted", "song", id)
	return nil
}

func (s *CatalogService) ListSetlists(ctx context.Context) ([]*models.Setlist, error) {
	setlists, err := s.setlists.List(ctx)
	return setlists, translate(s.logger, "list setlists", err)
}

func (s *CatalogService) GetSetlist(ctx context.Context, id int64) (*models.Setlist, error) {
	setlist, err := s.setlists.Get(ctx, id)
	if err != nil {
		return nil, translate(s.logger, "get setlist", err)
	}
	return setlist, nil
}

func (s *CatalogService) CreateSetlist(ctx context.Context, name string) (*models.Setlist, error) {
	setlist := &models.Setlist{Name: name}
	if err := s.setlists.Create(ctx, setlist); err != nil {
		return nil, translate(s.logger, "create setlist", err)
	}

	s.logger.Info("setlist created", "setlist", setlist.ID)
	return setlist, nil
}

// RenameSetlist changes a setlist's name and returns the stored setlist.
func (s *CatalogService) RenameSetlist(ctx context.Context, id int64, name string) (*models.Setlist, error) {
	setlist := &models.Setlist{ID: id, Name: name}
	if err := s.setlists.Update(ctx, setlist); err != nil {
		return nil, translate(s.logger, "rename setlist", err)
	}
	return s.GetSetlist(ctx, id)
}

// DeleteSetlist removes a setlist and its memberships. The songs stay in the catalog.
func (s *CatalogService) DeleteSetlist(ctx context.Context, id int64) error {
	if err := s.setlists.Delete(ctx, id); err != nil {
		return translate(s.logger, "delete setlist", err)
	}

	s.logger.Info("setlist deleted", "setlist", id)
	return nil
}
