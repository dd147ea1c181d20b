package models

import (
	"testing"

	"github.com/desertthunder/setlists/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdering(t *testing.T) {
	t.Run("Move", func(t *testing.T) {
		tc := []struct {
			name     string
			from, to int
			want     Ordering
		}{
			{name: "last to first", from: 2, to: 0, want: Ordering{3, 1, 2}},
			{name: "first to last", from: 0, to: 2, want: Ordering{2, 3, 1}},
			{name: "adjacent down", from: 0, to: 1, want: Ordering{2, 1, 3}},
			{name: "same index", from: 1, to: 1, want: Ordering{1, 2, 3}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				original := Ordering{1, 2, 3}
				got, err := original.Move(tt.from, tt.to)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.Equal(t, Ordering{1, 2, 3}, original, "receiver must not be mutated")
			})
		}

		t.Run("out of range", func(t *testing.T) {
			_, err := Ordering{1, 2}.Move(0, 2)
			assert.ErrorIs(t, err, shared.ErrInvalidArgument)

			_, err = Ordering{}.Move(0, 0)
			assert.ErrorIs(t, err, shared.ErrInvalidArgument)
		})
	})

	t.Run("Positions", func(t *testing.T) {
		got := Ordering{30, 10, 20}.Positions()
		assert.Equal(t, []PositionUpdate{{SongID: 30, Position: 0}, {SongID: 10, Position: 1}, {SongID: 20, Position: 2}}, got)
	})

	t.Run("SameMembers", func(t *testing.T) {
		members := []int64{1, 2, 3}
		assert.True(t, Ordering{3, 1, 2}.SameMembers(members))
		assert.False(t, Ordering{1, 3}.SameMembers(members), "missing member")
		assert.False(t, Ordering{1, 2, 9}.SameMembers(members), "unknown member")
		assert.False(t, Ordering{1, 1, 2}.SameMembers(members), "duplicate member")
		assert.True(t, Ordering{}.SameMembers(nil))
	})

	t.Run("OrderingFromPositions", func(t *testing.T) {
		got, err := OrderingFromPositions([]PositionUpdate{
			{SongID: 1, Position: 5},
			{SongID: 2, Position: 0},
			{SongID: 3, Position: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, Ordering{2, 3, 1}, got)

		_, err = OrderingFromPositions([]PositionUpdate{{SongID: 1, Position: 0}, {SongID: 2, Position: 0}})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)

		_, err = OrderingFromPositions([]PositionUpdate{{SongID: 1, Position: 0}, {SongID: 1, Position: 1}})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("OrderingOf", func(t *testing.T) {
		songs := []SetlistSong{{Song: Song{ID: 7}}, {Song: Song{ID: 4}}}
		assert.Equal(t, Ordering{7, 4}, OrderingOf(songs))
	})
}

func TestValidate(t *testing.T) {
	t.Run("Song", func(t *testing.T) {
		assert.NoError(t, (&Song{Title: "Intro", Body: "la la"}).Validate())
		assert.ErrorIs(t, (&Song{Title: " ", Body: "la"}).Validate(), shared.ErrInvalidArgument)
		assert.ErrorIs(t, (&Song{Title: "Intro"}).Validate(), shared.ErrInvalidArgument)
	})

	t.Run("Setlist", func(t *testing.T) {
		s := &Setlist{Name: "  Friday  "}
		require.NoError(t, s.Validate())
		assert.Equal(t, "Friday", s.Name)
		assert.ErrorIs(t, (&Setlist{Name: "   "}).Validate(), shared.ErrInvalidArgument)
	})
}
