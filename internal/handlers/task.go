package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{taskService: services.NewTaskService(db)}
}

// List returns every task of the project
// GET /api/projects/:projectId/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListByProject(c.Request.Context(), middleware.GetPermissions(c).ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create adds a task to the board named in the body
// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), middleware.GetPermissions(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, task)
}

// Update edits, moves or reassigns a task
// PUT /api/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), middleware.GetPermissions(c), c.Param("taskId"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// Delete deletes a task
// DELETE /api/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("taskId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "task deleted successfully"})
}
