package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
)

type AuditLogHandler struct {
	auditService *services.AuditService
}

func NewAuditLogHandler(svc *services.AuditService) *AuditLogHandler {
	return &AuditLogHandler{auditService: svc}
}

// List returns the project's audit trail, newest first
// GET /api/projects/:projectId/audit-logs
func (h *AuditLogHandler) List(c *gin.Context) {
	var req services.AuditLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.auditService.List(c.Request.Context(), middleware.GetPermissions(c).ProjectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}
