package board

import "errors"

// Move rejection reasons. They are returned inside a MoveResult, never as
// the error value of RequestMove.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrColumnNotFound   = errors.New("column not found")
	ErrCapacityExceeded = errors.New("column capacity exceeded")
)

// Build errors.
var (
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrDuplicateTask   = errors.New("duplicate task")
	ErrInvalidTask     = errors.New("invalid task")
)

// InvariantViolation is the panic value raised when the board ends up with
// a task in no column or in two. It means a bug in the move path; the
// state is not repaired.
type InvariantViolation struct {
	Detail string
}

func (v InvariantViolation) Error() string {
	return "board invariant violated: " + v.Detail
}
