package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested record does not exist
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry is returned when a write violates a unique constraint
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrNoVacancy is returned when approving would exceed a position's count
	ErrNoVacancy = errors.New("repository: no vacant slots")
	// ErrStatusConflict is returned when an application is no longer PENDING at write time
	ErrStatusConflict = errors.New("repository: application is not pending")
	// ErrCountBelowApproved is returned when a position's count would drop below its approved applications
	ErrCountBelowApproved = errors.New("repository: count below approved applications")
)

// translateError maps driver errors onto the repository sentinels
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicateEntry
	}
	return err
}

// isUniqueViolation covers drivers opened without TranslateError
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value")
}
