package shared

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure returned by the membership service wraps exactly one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrSetlistNotFound    = fmt.Errorf("setlist %w", ErrNotFound)
	ErrSongNotFound       = fmt.Errorf("song %w", ErrNotFound)
	ErrMembershipNotFound = fmt.Errorf("song %w in setlist", ErrNotFound)

	ErrAlreadyMember = fmt.Errorf("song already in setlist: %w", ErrConflict)

	ErrOrderingMismatch = fmt.Errorf("ordering does not match setlist members: %w", ErrInvalidArgument)
	ErrInvalidID        = fmt.Errorf("id must be a positive integer: %w", ErrInvalidArgument)
	ErrInvalidInput     = fmt.Errorf("invalid input: %w", ErrInvalidArgument)
)

var (
	// Configuration errors
	ErrMissingConfig = errors.New("configuration not found")
	ErrInvalidConfig = errors.New("invalid configuration")

	// CLI errors
	ErrMissingArgument    = errors.New("missing required argument")
	ErrInvalidFlag        = errors.New("invalid flag value")
	ErrServiceUnavailable = errors.New("service unavailable")
)
