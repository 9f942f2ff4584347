package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(db *gorm.DB) *RoleHandler {
	return &RoleHandler{roleService: services.NewRoleService(db)}
}

// List returns the project's roles
// GET /api/projects/:projectId/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context(), middleware.GetPermissions(c).ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, roles)
}

// Get returns one role
// GET /api/projects/:projectId/roles/:roleId
func (h *RoleHandler) Get(c *gin.Context) {
	role, err := h.roleService.Get(c.Request.Context(), middleware.GetPermissions(c).ProjectID, c.Param("roleId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, role)
}

// Create defines a new role
// POST /api/projects/:projectId/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req services.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), middleware.GetPermissions(c).ProjectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, role)
}

// Update changes a role; a stale version is rejected with 409
// PUT /api/projects/:projectId/roles/:roleId
func (h *RoleHandler) Update(c *gin.Context) {
	var req services.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), middleware.GetPermissions(c).ProjectID, c.Param("roleId"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, role)
}

// Delete deletes a role and unbinds it from members
// DELETE /api/projects/:projectId/roles/:roleId
func (h *RoleHandler) Delete(c *gin.Context) {
	if err := h.roleService.Delete(c.Request.Context(), middleware.GetPermissions(c).ProjectID, c.Param("roleId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "role deleted successfully"})
}
