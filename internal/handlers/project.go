package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the projects the caller owns or belongs to
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	items, err := h.projectService.ListForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// Get returns a project with the caller's role and capabilities
// GET /api/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	detail, err := h.projectService.Get(c.Request.Context(), middleware.GetPermissions(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, detail)
}

// Create creates a project owned by the caller
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The route is not gated, so the audit trail learns the project here.
	c.Set(logger.ContextProjectID, project.ID)
	response.Created(c, project)
}

// Update updates a project
// PUT /api/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), middleware.GetPermissions(c).ProjectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Delete deletes a project
// DELETE /api/projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Request.Context(), middleware.GetPermissions(c).ProjectID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted successfully"})
}
