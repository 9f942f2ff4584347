package models

import (
	"time"

	"gorm.io/gorm"
)

// Descriptive permission levels of a ProjectRole. They are shown to users
// but never checked; only the Can* flags gate operations.
const (
	PermissionLevelFull    = "full"
	PermissionLevelEdit    = "edit"
	PermissionLevelComment = "comment"
	PermissionLevelView    = "view"
)

// ProjectRole is a named, project-scoped bundle of capability flags.
type ProjectRole struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID        string    `gorm:"type:varchar(36);uniqueIndex:idx_project_role_name;not null" json:"project_id"`
	Name             string    `gorm:"size:255;uniqueIndex:idx_project_role_name;not null" json:"name"`
	Description      *string   `gorm:"type:text" json:"description"`
	PermissionLevel  string    `gorm:"size:20;not null;default:view" json:"permission_level"`
	CanManageMembers bool      `gorm:"not null;default:false" json:"can_manage_members"`
	CanManageRoles   bool      `gorm:"not null;default:false" json:"can_manage_roles"`
	CanAssignTasks   bool      `gorm:"not null;default:false" json:"can_assign_tasks"`
	CanDeleteTasks   bool      `gorm:"not null;default:false" json:"can_delete_tasks"`
	CanManageProject bool      `gorm:"not null;default:false" json:"can_manage_project"`
	Version          int       `gorm:"not null;default:1" json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (ProjectRole) TableName() string { return "project_roles" }

func (r *ProjectRole) BeforeCreate(tx *gorm.DB) error {
	r.ID = ensureID(r.ID)
	if r.Version == 0 {
		r.Version = 1
	}
	return nil
}

func IsValidPermissionLevel(level string) bool {
	switch level {
	case PermissionLevelFull, PermissionLevelEdit, PermissionLevelComment, PermissionLevelView:
		return true
	}
	return false
}
