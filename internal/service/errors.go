package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a referenced user, recipe or book that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports a malformed request rejected before any work.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden reports a mutation attempted by someone other than the owner.
	ErrForbidden = errors.New("forbidden")
)

func notFound(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// lookupErr converts gorm.ErrRecordNotFound into ErrNotFound.
func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("%s", what)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
