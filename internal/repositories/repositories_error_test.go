package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/setlists/internal/models"
	"github.com/desertthunder/setlists/internal/shared"
)

func TestSongRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)

			err := NewSongRepository(db).Create(ctx, &models.Song{Title: "   ", Body: "words"})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)

			_, err := NewSongRepository(db).Get(ctx, 42)
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Fatalf("expected ErrSongNotFound, got %v", err)
			}
			if !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrSongNotFound to match ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)

			err := NewSongRepository(db).Update(ctx, &models.Song{ID: 42, Title: "A", Body: "B"})
			if !errors.Is(err, shared.ErrSongNotFound) {
				t.Fatalf("expected ErrSongNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)

			if err := NewSongRepository(db).Delete(ctx, 42); !errors.Is(err, shared.ErrSongNotFound) {
				t.Fatalf("expected ErrSongNotFound, got %v", err)
			}
		})
	})
}

func TestSetlistRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)

			err := NewSetlistRepository(db).Create(ctx, &models.Setlist{Name: "\t"})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)

			if _, err := NewSetlistRepository(db).Get(ctx, 42); !errors.Is(err, shared.ErrSetlistNotFound) {
				t.Fatalf("expected ErrSetlistNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)

			if err := NewSetlistRepository(db).Delete(ctx, 42); !errors.Is(err, shared.ErrSetlistNotFound) {
				t.Fatalf("expected ErrSetlistNotFound, got %v", err)
			}
		})
	})
}

func TestMembershipRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, db *sql.DB, titles ...string) (*models.Setlist, []*models.Song) {
		t.Helper()

		setlist := createSetlist(t, db, "Friday Gig")
		repo := NewMembershipRepository(db)
		songs := make([]*models.Song, 0, len(titles))
		for _, title := range titles {
			song := createSong(t, db, title)
			if _, err := repo.Insert(ctx, setlist.ID, song.ID); err != nil {
				t.Fatalf("failed to insert %s: %v", title, err)
			}
			songs = append(songs, song)
		}
		return setlist, songs
	}

	t.Run("Insert", func(t *testing.T) {
		t.Run("Duplicate", func(t *testing.T) {
			db := setupTestDB(t)
			setlist, songs := seed(t, db, "A")

			_, err := NewMembershipRepository(db).Insert(ctx, setlist.ID, songs[0].ID)
			if !errors.Is(err, ErrConstraintViolation) {
				t.Fatalf("expected ErrConstraintViolation, got %v", err)
			}
			if !IsConstraint(err, ConstraintUnique) {
				t.Fatalf("expected unique constraint, got %v", err)
			}
		})

		t.Run("Duplicate is a duplicate member", func(t *testing.T) {
			db := setupTestDB(t)
			setlist, songs := seed(t, db, "A")

			_, err := NewMembershipRepository(db).Insert(ctx, setlist.ID, songs[0].ID)
			if !IsDuplicateMember(err) {
				t.Fatalf("expected duplicate member, got %v", err)
			}
		})

		t.Run("MissingSong", func(t *testing.T) {
			db := setupTestDB(t)
			setlist := createSetlist(t, db, "Friday Gig")

			_, err := NewMembershipRepository(db).Insert(ctx, setlist.ID, 999)
			if !IsConstraint(err, ConstraintForeignKey) {
				t.Fatalf("expected foreign key constraint, got %v", err)
			}
		})

		t.Run("MissingSetlist", func(t *testing.T) {
			db := setupTestDB(t)
			song := createSong(t, db, "A")

			_, err := NewMembershipRepository(db).Insert(ctx, 999, song.ID)
			if !IsConstraint(err, ConstraintForeignKey) {
				t.Fatalf("expected foreign key constraint, got %v", err)
			}
		})
	})

	t.Run("SetPositions", func(t *testing.T) {
		t.Run("NonMember", func(t *testing.T) {
			db := setupTestDB(t)
			setlist, songs := seed(t, db, "A", "B")
			outsider := createSong(t, db, "C")

			updates := models.Ordering{songs[1].ID, outsider.ID, songs[0].ID}.Positions()
			err := NewMembershipRepository(db).SetPositions(ctx, setlist.ID, updates)
			if !errors.Is(err, shared.ErrMembershipNotFound) {
				t.Fatalf("expected ErrMembershipNotFound, got %v", err)
			}
			assertIDs(t, songIDs(t, db, setlist.ID), songs[0].ID, songs[1].ID)
		})

		t.Run("CollidesWithUntouchedRow", func(t *testing.T) {
			db := setupTestDB(t)
			setlist, songs := seed(t, db, "A", "B", "C")

			updates := []models.PositionUpdate{{SongID: songs[0].ID, Position: 2}}
			err := NewMembershipRepository(db).SetPositions(ctx, setlist.ID, updates)
			if !IsConstraint(err, ConstraintUnique) {
				t.Fatalf("expected unique constraint, got %v", err)
			}
			if IsDuplicateMember(err) {
				t.Errorf("a position collision is not a duplicate member: %v", err)
			}
			assertIDs(t, songIDs(t, db, setlist.ID), songs[0].ID, songs[1].ID, songs[2].ID)
		})

		t.Run("MidwayFailureRollsBack", func(t *testing.T) {
			db := setupTestDB(t)
			setlist, songs := seed(t, db, "A", "B", "C")

			trigger := fmt.Sprintf(`
				CREATE TRIGGER fail_final_position BEFORE UPDATE OF position ON setlist_songs
				WHEN NEW.song_id = %d AND NEW.position >= 0
				BEGIN
					SELECT RAISE(ABORT, 'injected failure');
				END
			`, songs[0].ID)
			if _, err := db.Exec(trigger); err != nil {
				t.Fatalf("failed to create trigger: %v", err)
			}

			reversed := models.Ordering{songs[2].ID, songs[1].ID, songs[0].ID}
			err := NewMembershipRepository(db).SetPositions(ctx, setlist.ID, reversed.Positions())
			if !IsConstraint(err, ConstraintTrigger) {
				t.Fatalf("expected trigger abort, got %v", err)
			}

			songs2, err := NewMembershipRepository(db).ListOrdered(ctx, setlist.ID)
			if err != nil {
				t.Fatalf("failed to list: %v", err)
			}
			for i, s := range songs2 {
				if s.ID != songs[i].ID || s.Position != i {
					t.Errorf("expected original order to survive, got %s at %d in slot %d", s.Title, s.Position, i)
				}
			}
		})
	})

	t.Run("RunInTx", func(t *testing.T) {
		t.Run("RollsBackOnError", func(t *testing.T) {
			db := setupTestDB(t)
			setlist := createSetlist(t, db, "Friday Gig")
			song := createSong(t, db, "A")
			boom := errors.New("boom")

			err := RunInTx(ctx, db, func(tx *sql.Tx) error {
				if _, err := NewMembershipRepository(tx).Insert(ctx, setlist.ID, song.ID); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected fn error to be returned, got %v", err)
			}

			if n, err := NewMembershipRepository(db).Count(ctx, setlist.ID); err != nil || n != 0 {
				t.Errorf("expected insert to be rolled back, got %d members (err %v)", n, err)
			}
		})
	})
}

func TestConstraintKind(t *testing.T) {
	tests := []struct {
		kind ConstraintKind
		want string
	}{
		{ConstraintUnique, "unique"},
		{ConstraintForeignKey, "foreign key"},
		{ConstraintCheck, "check"},
		{ConstraintNotNull, "not null"},
		{ConstraintTrigger, "trigger"},
		{ConstraintOther, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("classify passes through other errors", func(t *testing.T) {
		plain := errors.New("plain")
		if got := classify(plain); got != plain {
			t.Errorf("expected error unchanged, got %v", got)
		}
		if classify(nil) != nil {
			t.Error("expected nil to stay nil")
		}
	})
}
