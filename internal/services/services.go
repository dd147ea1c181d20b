package services

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/setlists/internal/repositories"
	"github.com/desertthunder/setlists/internal/shared"
)

// translate maps a storage error onto the shared error taxonomy.
//
// Errors that already belong to the taxonomy pass through unchanged. Constraint violations become
// the domain error for their kind and anything else is wrapped with [shared.ErrInternal] after being logged.
// A position collision is a store bug, not a duplicate song, so it is internal.
func translate(logger *log.Logger, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrConflict), errors.Is(err, shared.ErrInvalidArgument):
		return err
	case repositories.IsDuplicateMember(err):
		return shared.ErrAlreadyMember
	case repositories.IsConstraint(err, repositories.ConstraintForeignKey):
		return fmt.Errorf("%w: setlist or song no longer exists", shared.ErrNotFound)
	case repositories.IsConstraint(err, repositories.ConstraintCheck), repositories.IsConstraint(err, repositories.ConstraintNotNull):
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	logger.Error("storage failure", "op", op, "err", err)
	return fmt.Errorf("%s: %w: %w", op, shared.ErrInternal, err)
}

func defaultLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
