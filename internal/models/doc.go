// Package models defines domain entities and persistence interfaces for the setlist service.
//
// Catalog entities:
//   - [Song] : a catalog entry (title and lyrics body)
//   - [Setlist] : a named collection of songs
//
// Membership entities:
//   - [Membership] : the join record of one song in one setlist, carrying its position
//   - [SetlistSong] : a membership joined with its song, as returned by ordered listings
//   - [PositionUpdate] : one (song, position) assignment within a reorder
//
// [Ordering] is the value type clients compute when reordering: the complete list of song IDs
// in their new order. It is never edited in place; [Ordering.Move] returns a fresh ordering.
//
// Persistent entities implement [Model], and catalog repositories implement [Repository].
package models
