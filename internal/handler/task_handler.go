package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/board"
	"taskboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	svc BoardService
	log *logrus.Entry
}

func NewTaskHandler(svc BoardService, log *logrus.Entry) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// TaskMoveRequest представляет запрос на перемещение задачи
type TaskMoveRequest struct {
	ColumnID string `json:"column_id" binding:"required"`
	Position *int   `json:"position" binding:"required"`
}

// TaskMoveResponse представляет результат успешного перемещения
type TaskMoveResponse struct {
	TaskID   string         `json:"task_id"`
	ColumnID string         `json:"column_id"`
	Position int            `json:"position"`
	Warning  string         `json:"warning,omitempty"`
	Board    board.Snapshot `json:"board"`
}

// TaskColumnResponse показывает, в какой колонке находится задача
type TaskColumnResponse struct {
	TaskID   string `json:"task_id"`
	ColumnID string `json:"column_id"`
}

// GetColumn возвращает колонку, в которой сейчас находится задача
// @Summary      Column holding a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  TaskColumnResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/column [get]
func (h *TaskHandler) GetColumn(c *gin.Context) {
	taskID := c.Param("id")

	columnID, ok := h.svc.FindColumnOf(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found", Reason: "task_not_found"})
		return
	}

	c.JSON(http.StatusOK, TaskColumnResponse{TaskID: taskID, ColumnID: columnID})
}

// MoveTask перемещает задачу в колонку на указанную позицию
// @Summary      Move a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Task ID"
// @Param        body  body      TaskMoveRequest  true  "Destination"
// @Success      200   {object}  TaskMoveResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	taskID := c.Param("id")

	// Парсим запрос
	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
		return
	}

	moveReq := board.MoveRequest{
		TaskID:   taskID,
		ColumnID: req.ColumnID,
		Index:    *req.Position,
	}
	if userID, ok := middleware.CurrentUser(c); ok {
		moveReq.Actor = userID.String()
	}

	res, err := h.svc.RequestMove(c.Request.Context(), moveReq)
	if err != nil {
		_ = c.Error(err)
		h.log.WithError(err).WithField("task_id", taskID).Error("move failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to move task"})
		return
	}

	if !res.Applied() {
		status, body := rejectionResponse(res.Reason)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, TaskMoveResponse{
		TaskID:   taskID,
		ColumnID: res.Move.ToColumn,
		Position: res.Move.ToIndex,
		Warning:  res.Warning,
		Board:    *res.Snapshot,
	})
}

func rejectionResponse(reason error) (int, ErrorResponse) {
	switch {
	case errors.Is(reason, board.ErrTaskNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Task not found", Reason: "task_not_found"}
	case errors.Is(reason, board.ErrColumnNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Column not found", Reason: "column_not_found"}
	case errors.Is(reason, board.ErrCapacityExceeded):
		return http.StatusConflict, ErrorResponse{Error: "Column is at its WIP limit", Reason: "capacity_exceeded"}
	}
	return http.StatusUnprocessableEntity, ErrorResponse{Error: "Move rejected"}
}
