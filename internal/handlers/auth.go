package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services"
	"github.com/huangang/boardmaster/pkg/response"
	"gorm.io/gorm"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{userService: services.NewUserService(db)}
}

// GetCurrentUser returns the caller's profile
// GET /api/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}

// UpdateProfile applies a partial update to the caller's profile
// PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, user)
}
