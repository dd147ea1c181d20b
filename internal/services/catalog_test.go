package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/setlists/internal/shared"
)

func TestCatalogService(t *testing.T) {
	ctx := context.Background()

	t.Run("songs", func(t *testing.T) {
		_, catalog, _ := newServices(t, ":memory:")

		song, err := catalog.CreateSong(ctx, "Wagon Wheel", "Headed down south")
		require.NoError(t, err)
		assert.NotZero(t, song.ID)

		updated, err := catalog.UpdateSong(ctx, song.ID, "Wagon Wheel (live)", "Headed down south")
		require.NoError(t, err)
		assert.Equal(t, "Wagon Wheel (live)", updated.Title)

		songs, err := catalog.ListSongs(ctx)
		require.NoError(t, err)
		assert.Len(t, songs, 1)

		require.NoError(t, catalog.DeleteSong(ctx, song.ID))
		_, err = catalog.GetSong(ctx, song.ID)
		assert.ErrorIs(t, err, shared.ErrSongNotFound)
	})

	t.Run("song validation", func(t *testing.T) {
		_, catalog, _ := newServices(t, ":memory:")

		_, err := catalog.CreateSong(ctx, "", "body")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		_, err = catalog.CreateSong(ctx, "title", "  ")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		_, err = catalog.UpdateSong(ctx, 42, "title", "body")
		assert.ErrorIs(t, err, shared.ErrSongNotFound)
	})

	t.Run("setlists", func(t *testing.T) {
		_, catalog, _ := newServices(t, ":memory:")

		setlist, err := catalog.CreateSetlist(ctx, "  Friday Gig ")
		require.NoError(t, err)
		assert.Equal(t, "Friday Gig", setlist.Name)

		renamed, err := catalog.RenameSetlist(ctx, setlist.ID, "Saturday Gig")
		require.NoError(t, err)
		assert.Equal(t, "Saturday Gig", renamed.Name)

		_, err = catalog.RenameSetlist(ctx, setlist.ID, " ")
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		setlists, err := catalog.ListSetlists(ctx)
		require.NoError(t, err)
		require.Len(t, setlists, 1)
		assert.Equal(t, 0, setlists[0].SongCount)

		require.NoError(t, catalog.DeleteSetlist(ctx, setlist.ID))
		assert.ErrorIs(t, catalog.DeleteSetlist(ctx, setlist.ID), shared.ErrSetlistNotFound)
	})

	t.Run("deleting a setlist removes its memberships", func(t *testing.T) {
		svc, catalog, _ := newServices(t, ":memory:")
		keep := seedSetlist(t, catalog)
		doomed := seedSetlist(t, catalog)
		songs := seedSongs(t, catalog, "A", "B")
		addAll(t, svc, keep, songs...)
		addAll(t, svc, doomed, songs...)

		require.NoError(t, catalog.DeleteSetlist(ctx, doomed))

		_, err := svc.ListSetlistSongs(ctx, doomed)
		assert.ErrorIs(t, err, shared.ErrSetlistNotFound)

		list, err := svc.ListSetlistSongs(ctx, keep)
		require.NoError(t, err)
		assert.Equal(t, songs, idsOf(list))

		for _, id := range songs {
			_, err := catalog.GetSong(ctx, id)
			assert.NoError(t, err)
		}
	})

	t.Run("deleting a song removes it from every setlist", func(t *testing.T) {
		svc, catalog, _ := newServices(t, ":memory:")
		first := seedSetlist(t, catalog)
		second := seedSetlist(t, catalog)
		songs := seedSongs(t, catalog, "A", "B", "C")
		addAll(t, svc, first, songs...)
		addAll(t, svc, second, songs[0], songs[2])

		require.NoError(t, catalog.DeleteSong(ctx, songs[0]))

		list, err := svc.ListSetlistSongs(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, []int64{songs[1], songs[2]}, idsOf(list))
		assert.Equal(t, []int{0, 1}, positionsOf(list))

		list, err = svc.ListSetlistSongs(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, []int64{songs[2]}, idsOf(list))
		assert.Equal(t, []int{0}, positionsOf(list))

		setlist, err := catalog.GetSetlist(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, 2, setlist.SongCount)
	})

	t.Run("ping", func(t *testing.T) {
		_, catalog, _ := newServices(t, ":memory:")
		assert.NoError(t, catalog.Ping(ctx))
	})
}
