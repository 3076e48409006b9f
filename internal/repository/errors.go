package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task row does not exist
	ErrTaskNotFound = errors.New("task not found")

	// ErrPlacementMismatch is returned when the stored column/position of a
	// task differs from the placement the move was computed against
	ErrPlacementMismatch = errors.New("stored task placement does not match board")
)
