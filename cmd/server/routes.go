package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/boardmaster/internal/handlers"
	"github.com/huangang/boardmaster/internal/middleware"
	"github.com/huangang/boardmaster/internal/services/access"
	"github.com/huangang/boardmaster/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(svc.db)
	r.GET("/health", healthHandler.CheckHealth)
	r.GET("/metrics", handlers.Metrics())

	gate := svc.gate
	can := func(c access.Capability, resolve middleware.TargetResolver) gin.HandlerFunc {
		return middleware.RequireCapability(gate, c, resolve)
	}
	project := middleware.ProjectParam("projectId")

	// API routes
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	if svc.limiter != nil {
		api.Use(svc.limiter.Middleware())
	}
	if svc.cfg.Audit.Enabled {
		api.Use(middleware.AuditLog(svc.auditService))
	}
	{
		// Auth
		authHandler := handlers.NewAuthHandler(svc.db)
		api.GET("/auth/me", authHandler.GetCurrentUser)
		api.PUT("/auth/profile", authHandler.UpdateProfile)

		// Projects
		projectHandler := handlers.NewProjectHandler(svc.db)
		api.GET("/projects", projectHandler.List)
		api.POST("/projects", projectHandler.Create)
		api.GET("/projects/:projectId", can(access.ViewProject, project), projectHandler.Get)
		api.PUT("/projects/:projectId", can(access.ManageProject, project), projectHandler.Update)
		api.DELETE("/projects/:projectId", can(access.IsOwnerOnly, project), projectHandler.Delete)

		// Members
		memberHandler := handlers.NewMemberHandler(svc.db)
		api.GET("/projects/:projectId/members", can(access.ViewProject, project), memberHandler.List)
		api.POST("/projects/:projectId/members", can(access.ManageMembers, project), memberHandler.Add)
		api.PUT("/projects/:projectId/members/:memberId", can(access.ManageMembers, project), memberHandler.Update)
		api.DELETE("/projects/:projectId/members/:memberId", can(access.ManageMembers, project), memberHandler.Remove)

		// Roles
		roleHandler := handlers.NewRoleHandler(svc.db)
		api.GET("/projects/:projectId/roles", can(access.ViewProject, project), roleHandler.List)
		api.GET("/projects/:projectId/roles/:roleId", can(access.ViewProject, project), roleHandler.Get)
		api.POST("/projects/:projectId/roles", can(access.ManageRoles, project), roleHandler.Create)
		api.PUT("/projects/:projectId/roles/:roleId", can(access.ManageRoles, project), roleHandler.Update)
		api.DELETE("/projects/:projectId/roles/:roleId", can(access.ManageRoles, project), roleHandler.Delete)

		// Boards
		boardHandler := handlers.NewBoardHandler(svc.db)
		api.GET("/projects/:projectId/boards", can(access.ViewProject, project), boardHandler.List)
		api.POST("/boards", can(access.EditContent, middleware.BodyField("project_id", access.ProjectTarget)), boardHandler.Create)
		api.DELETE("/boards/:boardId", can(access.ManageProject, middleware.BoardParam("boardId")), boardHandler.Delete)

		// Tasks
		taskHandler := handlers.NewTaskHandler(svc.db)
		api.GET("/projects/:projectId/tasks", can(access.ViewProject, project), taskHandler.List)
		api.POST("/tasks", can(access.EditContent, middleware.BodyField("board_id", access.BoardTarget)), taskHandler.Create)
		api.PUT("/tasks/:taskId", can(access.EditContent, middleware.TaskParam("taskId")), taskHandler.Update)
		api.DELETE("/tasks/:taskId", can(access.DeleteTasks, middleware.TaskParam("taskId")), taskHandler.Delete)

		// Audit logs
		auditLogHandler := handlers.NewAuditLogHandler(svc.auditService)
		api.GET("/projects/:projectId/audit-logs", can(access.ManageProject, project), auditLogHandler.List)
	}
}
