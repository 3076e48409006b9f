package handler

import (
	"net/http"

	"taskboard/internal/board"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc       BoardService
	projector *board.Projector
}

func NewBoardHandler(svc BoardService, projector *board.Projector) *BoardHandler {
	return &BoardHandler{svc: svc, projector: projector}
}

// GetSnapshot возвращает текущее состояние доски
// @Summary      Board snapshot
// @Tags         Board
// @Produce      json
// @Success      200  {object}  board.Snapshot
// @Router       /board [get]
func (h *BoardHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// GetView возвращает сводку по колонкам: количество задач, загрузку и просроченные задачи
// @Summary      Board view
// @Tags         Board
// @Produce      json
// @Success      200  {object}  board.View
// @Router       /board/view [get]
func (h *BoardHandler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.projector.Project(h.svc.Snapshot()))
}
