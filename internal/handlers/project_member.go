package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{memberService: services.NewMemberService(db)}
}

// List returns the owner followed by the project's members
// GET /api/projects/:projectId/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context(), middleware.GetPermissions(c).ProjectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Add adds a user to the project by email
// POST /api/projects/:projectId/members
func (h *MemberHandler) Add(c *gin.Context) {
	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(c.Request.Context(), middleware.GetPermissions(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

// Update changes a member's role or bound project role
// PUT /api/projects/:projectId/members/:memberId
func (h *MemberHandler) Update(c *gin.Context) {
	var req services.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), middleware.GetPermissions(c), c.Param("memberId"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, member)
}

// Remove removes a member from the project
// DELETE /api/projects/:projectId/members/:memberId
func (h *MemberHandler) Remove(c *gin.Context) {
	if err := h.memberService.Remove(c.Request.Context(), middleware.GetPermissions(c), c.Param("memberId")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed successfully"})
}
