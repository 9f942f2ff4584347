package models

import (
	"time"

	"gorm.io/gorm"
)

// Coarse membership roles. The owner is not a membership role.
const (
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
	MemberRoleViewer = "viewer"
)

// ProjectMember represents a user's membership and role within a project.
// A member may additionally be bound to a ProjectRole for fine-grained
// capabilities; deleting that role clears ProjectRoleID.
type ProjectMember struct {
	ID            string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID     string       `gorm:"type:varchar(36);uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID        string       `gorm:"type:varchar(36);uniqueIndex:idx_project_user;not null" json:"user_id"`
	User          *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role          string       `gorm:"size:20;not null;default:member" json:"role"` // admin, member, viewer
	ProjectRoleID *string      `gorm:"type:varchar(36);index" json:"project_role_id"`
	ProjectRole   *ProjectRole `gorm:"foreignKey:ProjectRoleID;constraint:OnDelete:SET NULL" json:"project_role,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (ProjectMember) TableName() string { return "project_members" }

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	m.ID = ensureID(m.ID)
	return nil
}

// IsValidMemberRole reports whether role is assignable to a membership.
func IsValidMemberRole(role string) bool {
	switch role {
	case MemberRoleAdmin, MemberRoleMember, MemberRoleViewer:
		return true
	}
	return false
}
