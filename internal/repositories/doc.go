// Package repositories implements SQLite persistence for songs, setlists, and setlist membership.
//
// Key Implementations:
//   - [SongRepository] : song catalog CRUD
//   - [SetlistRepository] : setlist CRUD with member counts
//   - [MembershipRepository] : ordered song membership of a setlist
//
// Repositories accept a [DBTX] so the same code runs standalone against a [database/sql.DB]
// or inside a caller's transaction opened with [RunInTx].
// Constraint failures surface as [ConstraintError] values that callers can classify without parsing driver messages.
package repositories
