package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrConstraintViolation matches every [ConstraintError] via [errors.Is].
var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintKind identifies which integrity rule a write broke.
type ConstraintKind int

const (
	ConstraintOther ConstraintKind = iota
	ConstraintUnique
	ConstraintForeignKey
	ConstraintCheck
	ConstraintNotNull
	ConstraintTrigger
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign key"
	case ConstraintCheck:
		return "check"
	case ConstraintNotNull:
		return "not null"
	case ConstraintTrigger:
		return "trigger"
	default:
		return "other"
	}
}

// ConstraintError is a typed store-level integrity failure.
type ConstraintError struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violation: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{ErrConstraintViolation, e.Err}
}

// IsConstraint reports whether err is a [ConstraintError] of the given kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == kind
}

// IsDuplicateMember reports whether err is the song-once-per-setlist rule failing,
// as opposed to the per-setlist position uniqueness.
func IsDuplicateMember(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == ConstraintUnique && strings.Contains(ce.Err.Error(), "setlist_songs.song_id")
}

// classify wraps SQLite constraint failures in a [ConstraintError] and returns other errors unchanged.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if err == nil || !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}

	kind := ConstraintOther
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		kind = ConstraintUnique
	case sqlite3.ErrConstraintForeignKey:
		kind = ConstraintForeignKey
	case sqlite3.ErrConstraintCheck:
		kind = ConstraintCheck
	case sqlite3.ErrConstraintNotNull:
		kind = ConstraintNotNull
	case sqlite3.ErrConstraintTrigger:
		kind = ConstraintTrigger
	}
	return &ConstraintError{Kind: kind, Err: err}
}
