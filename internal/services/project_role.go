package services

import (
	"context"
	"errors"
	"strings"

	"github.com/huangang/boardmaster/internal/models"
	"gorm.io/gorm"
)

// RoleService is the registry of project-scoped custom roles. Callers gate
// writes with the ManageRoles capability; the service itself only enforces
// data invariants.
type RoleService struct {
	db *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{db: db}
}

type CreateRoleRequest struct {
	Name             string  `json:"name" binding:"required,max=255"`
	Description      *string `json:"description"`
	PermissionLevel  string  `json:"permission_level" binding:"required,oneof=full edit comment view"`
	CanManageMembers bool    `json:"can_manage_members"`
	CanManageRoles   bool    `json:"can_manage_roles"`
	CanAssignTasks   bool    `json:"can_assign_tasks"`
	CanDeleteTasks   bool    `json:"can_delete_tasks"`
	CanManageProject bool    `json:"can_manage_project"`
}

// UpdateRoleRequest is a partial update; nil fields are left untouched.
// When Version is set the update only applies to that version.
type UpdateRoleRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=255"`
	Description      *string `json:"description"`
	PermissionLevel  *string `json:"permission_level" binding:"omitempty,oneof=full edit comment view"`
	CanManageMembers *bool   `json:"can_manage_members"`
	CanManageRoles   *bool   `json:"can_manage_roles"`
	CanAssignTasks   *bool   `json:"can_assign_tasks"`
	CanDeleteTasks   *bool   `json:"can_delete_tasks"`
	CanManageProject *bool   `json:"can_manage_project"`
	Version          *int    `json:"version"`
}

func (r *UpdateRoleRequest) updates() (map[string]interface{}, error) {
	u := make(map[string]interface{})
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u["name"] = name
	}
	if r.Description != nil {
		u["description"] = *r.Description
	}
	if r.PermissionLevel != nil {
		u["permission_level"] = *r.PermissionLevel
	}
	if r.CanManageMembers != nil {
		u["can_manage_members"] = *r.CanManageMembers
	}
	if r.CanManageRoles != nil {
		u["can_manage_roles"] = *r.CanManageRoles
	}
	if r.CanAssignTasks != nil {
		u["can_assign_tasks"] = *r.CanAssignTasks
	}
	if r.CanDeleteTasks != nil {
		u["can_delete_tasks"] = *r.CanDeleteTasks
	}
	if r.CanManageProject != nil {
		u["can_manage_project"] = *r.CanManageProject
	}
	return u, nil
}

// List returns the project's roles in creation order.
func (s *RoleService) List(ctx context.Context, projectID string) ([]models.ProjectRole, error) {
	var roles []models.ProjectRole
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, name ASC").
		Find(&roles).Error
	return roles, err
}

func (s *RoleService) Get(ctx context.Context, projectID, roleID string) (*models.ProjectRole, error) {
	var role models.ProjectRole
	err := s.db.WithContext(ctx).Where("id = ? AND project_id = ?", roleID, projectID).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Create adds a role; a name already used in the project is a conflict.
func (s *RoleService) Create(ctx context.Context, projectID string, req *CreateRoleRequest) (*models.ProjectRole, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !models.IsValidPermissionLevel(req.PermissionLevel) {
		return nil, ErrInvalidPermissionLevel
	}

	role := &models.ProjectRole{
		ProjectID:        projectID,
		Name:             name,
		Description:      req.Description,
		PermissionLevel:  req.PermissionLevel,
		CanManageMembers: req.CanManageMembers,
		CanManageRoles:   req.CanManageRoles,
		CanAssignTasks:   req.CanAssignTasks,
		CanDeleteTasks:   req.CanDeleteTasks,
		CanManageProject: req.CanManageProject,
	}
	if err := s.db.WithContext(ctx).Create(role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleNameTaken
		}
		return nil, err
	}
	return role, nil
}

// Update applies the provided fields and bumps the role's version.
func (s *RoleService) Update(ctx context.Context, projectID, roleID string, req *UpdateRoleRequest) (*models.ProjectRole, error) {
	updates, err := req.updates()
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	updates["version"] = gorm.Expr("version + 1")

	var role models.ProjectRole
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.ProjectRole{}).Where("id = ? AND project_id = ?", roleID, projectID)
		if req.Version != nil {
			query = query.Where("version = ?", *req.Version)
		}

		res := query.Updates(updates)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrRoleNameTaken
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.ProjectRole{}).Where("id = ? AND project_id = ?", roleID, projectID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrRoleNotFound
			}
			return ErrRoleVersionMismatch
		}

		return tx.Where("id = ?", roleID).First(&role).Error
	})
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Delete removes a role. Members bound to it keep their membership and fall
// back to their coarse role.
func (s *RoleService) Delete(ctx context.Context, projectID, roleID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND project_role_id = ?", projectID, roleID).
			Update("project_role_id", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND project_id = ?", roleID, projectID).Delete(&models.ProjectRole{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}
		return nil
	})
}

// SeedDefaults creates the default role set for a new project. tx is the
// caller's transaction.
func (s *RoleService) SeedDefaults(tx *gorm.DB, projectID string) ([]models.ProjectRole, error) {
	roles := models.DefaultProjectRoles()
	for i := range roles {
		roles[i].ProjectID = projectID
	}
	if err := tx.Create(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
