package models

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/desertthunder/setlists/internal/shared"
)

// Ordering is a complete target order for a setlist: song IDs from first to last.
//
// Orderings are values. Methods never mutate the receiver; they return a new Ordering.
type Ordering []int64

// OrderingOf extracts the current ordering from a listing sorted by position.
func OrderingOf(songs []SetlistSong) Ordering {
	o := make(Ordering, len(songs))
	for i, s := range songs {
		o[i] = s.ID
	}
	return o
}

// Move returns the ordering produced by dragging the element at index from to index to.
//
// The element is removed and reinserted, so every element between the two indices shifts by one.
func (o Ordering) Move(from, to int) (Ordering, error) {
	if from < 0 || from >= len(o) || to < 0 || to >= len(o) {
		return nil, fmt.Errorf("%w: move %d -> %d out of range for %d songs", shared.ErrInvalidArgument, from, to, len(o))
	}

	next := slices.Clone(o)
	if from == to {
		return next, nil
	}

	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	return next, nil
}

// Positions converts the ordering into one position update per song, position = index.
func (o Ordering) Positions() []PositionUpdate {
	updates := make([]PositionUpdate, len(o))
	for i, id := range o {
		updates[i] = PositionUpdate{SongID: id, Position: i}
	}
	return updates
}

// Equal reports whether both orderings list the same IDs in the same order.
func (o Ordering) Equal(other Ordering) bool {
	return slices.Equal(o, other)
}

// SameMembers reports whether o is a permutation of members: same IDs, each exactly once.
func (o Ordering) SameMembers(members []int64) bool {
	if len(o) != len(members) {
		return false
	}

	want := make(map[int64]bool, len(members))
	for _, id := range members {
		want[id] = true
	}

	seen := make(map[int64]bool, len(o))
	for _, id := range o {
		if !want[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return len(seen) == len(want)
}

// OrderingFromPositions sorts position updates by position and returns the resulting ordering.
//
// Duplicate song IDs or duplicate positions are rejected; positions need not be contiguous.
func OrderingFromPositions(updates []PositionUpdate) (Ordering, error) {
	sorted := slices.Clone(updates)
	slices.SortStableFunc(sorted, func(a, b PositionUpdate) int {
		return cmp.Compare(a.Position, b.Position)
	})

	o := make(Ordering, 0, len(sorted))
	ids := make(map[int64]bool, len(sorted))
	for i, u := range sorted {
		if ids[u.SongID] {
			return nil, fmt.Errorf("%w: song %d listed more than once", shared.ErrInvalidArgument, u.SongID)
		}
		if i > 0 && sorted[i-1].Position == u.Position {
			return nil, fmt.Errorf("%w: position %d assigned more than once", shared.ErrInvalidArgument, u.Position)
		}
		ids[u.SongID] = true
		o = append(o, u.SongID)
	}
	return o, nil
}
