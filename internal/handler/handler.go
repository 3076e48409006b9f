package handler

import (
	"context"

	"taskboard/internal/board"
)

// BoardService is the engine surface the HTTP layer needs.
type BoardService interface {
	Snapshot() board.Snapshot
	FindColumnOf(taskID string) (string, bool)
	RequestMove(ctx context.Context, req board.MoveRequest) (board.MoveResult, error)
}

var _ BoardService = (*board.Coordinator)(nil)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
