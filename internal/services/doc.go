// Package services holds the domain layer of the setlist application and a client for its HTTP API.
//
// # Membership
//
// [MembershipService] is the only component that knows the membership rules:
//   - adding requires the setlist and song to exist and the song not to be a member yet; new members go to the end
//   - removing requires an existing membership and closes the gap it leaves
//   - reordering takes a complete [models.Ordering] that must list every current member exactly once
//
// Each operation is a single transaction, so a failed reorder leaves the previous order untouched.
//
// # Catalog
//
// [CatalogService] provides create, read, update, and delete for songs and setlists.
// Deleting either side removes the affected memberships.
//
// # Error Handling
//
// Services return errors from the shared taxonomy, testable with [errors.Is]:
//   - [shared.ErrNotFound] : setlist, song, or membership absent
//   - [shared.ErrConflict] : song already in the setlist
//   - [shared.ErrInvalidArgument] : malformed input or an ordering that does not match the members
//   - [shared.ErrInternal] : storage failure; the cause is logged, not exposed
//
// # API Client
//
// [APIService] talks to the HTTP server. Non-2xx responses become [APIError] values that unwrap to the same taxonomy.
package services
