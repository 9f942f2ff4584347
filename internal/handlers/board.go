package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(db *gorm.DB) *BoardHandler {
	return &BoardHandler{boardService: services.NewBoardService(db)}
}

// List returns the project's boards in position order
// GET /api/projects/:projectId/boards
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boardService.List(c.Request.Context(), middleware.GetPermissions(c).ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, boards)
}

// Create adds a board to the project named in the body
// POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req services.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), middleware.GetPermissions(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, board)
}

// Delete deletes a board and its tasks
// DELETE /api/boards/:boardId
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.boardService.Delete(c.Request.Context(), c.Param("boardId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "board deleted successfully"})
}
