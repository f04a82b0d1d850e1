package core

import (
	"errors"
	"fmt"
)

// LoadErrorMessage is the single user-facing message for a failed load.
const LoadErrorMessage = "Failed to fetch repositories. Please try again later."

var (
	// ErrUnknownSortKey is returned by ParseSortKey.
	ErrUnknownSortKey = errors.New("unknown sort key")

	// ErrStaleRefresh is returned when a newer refresh superseded this one.
	ErrStaleRefresh = errors.New("refresh superseded by a newer one")

	// ErrNotFound is returned when a repository id is in neither list.
	ErrNotFound = errors.New("repository not found")
)

// ToggleError wraps a star store write failure during a toggle.
type ToggleError struct {
	ID  int64
	Op  string // "star" or "unstar"
	Err error
}

func (e *ToggleError) Error() string {
	return fmt.Sprintf("%s repository %d: %v", e.Op, e.ID, e.Err)
}

func (e *ToggleError) Unwrap() error {
	return e.Err
}
