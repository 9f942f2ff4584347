package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/services/access"
	"gorm.io/gorm"
)

// MemberService manages project memberships. Writes take the caller's
// permissions so that admin grants can be restricted to owners and admins.
type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

type AddMemberRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Role          string  `json:"role" binding:"omitempty,oneof=admin member viewer"`
	ProjectRoleID *string `json:"project_role_id"`
}

type UpdateMemberRequest struct {
	Role          *string          `json:"role" binding:"omitempty,oneof=admin member viewer"`
	ProjectRoleID Optional[string] `json:"project_role_id"`
}

// MemberView is one row of the member list. The owner appears with a nil
// MembershipID and role "owner".
type MemberView struct {
	MembershipID           *string   `json:"membership_id"`
	UserID                 string    `json:"user_id"`
	Email                  string    `json:"email"`
	FullName               string    `json:"full_name"`
	AvatarURL              string    `json:"avatar_url"`
	JobTitle               string    `json:"job_title"`
	Role                   string    `json:"role"`
	JoinedAt               time.Time `json:"joined_at"`
	ProjectRoleID          *string   `json:"project_role_id"`
	ProjectRoleName        *string   `json:"project_role_name"`
	ProjectRoleDescription *string   `json:"project_role_description"`
}

const (
	ownerRoleName        = "Project Owner"
	ownerRoleDescription = "Full control over the project"
)

// List returns the owner followed by the members in join order.
func (s *MemberService) List(ctx context.Context, projectID string) ([]MemberView, error) {
	db := s.db.WithContext(ctx)

	var project models.Project
	if err := db.Preload("Owner").Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrProjectNotFound
		}
		return nil, err
	}

	views := make([]MemberView, 0, 8)
	owner := MemberView{
		UserID:                 project.OwnerID,
		Role:                   string(access.RoleOwner),
		JoinedAt:               project.CreatedAt,
		ProjectRoleName:        strPtr(ownerRoleName),
		ProjectRoleDescription: strPtr(ownerRoleDescription),
	}
	if project.Owner != nil {
		owner.Email = project.Owner.Email
		owner.FullName = project.Owner.FullName
		owner.AvatarURL = project.Owner.AvatarURL
		owner.JobTitle = project.Owner.JobTitle
	}
	views = append(views, owner)

	var rows []MemberView
	err := db.Table("project_members AS pm").
		Select(`pm.id AS membership_id, u.id AS user_id, u.email, u.full_name, u.avatar_url, u.job_title,
			pm.role, pm.created_at AS joined_at,
			pr.id AS project_role_id, pr.name AS project_role_name, pr.description AS project_role_description`).
		Joins("JOIN users u ON u.id = pm.user_id").
		Joins("LEFT JOIN project_roles pr ON pr.id = pm.project_role_id AND pr.project_id = pm.project_id").
		Where("pm.project_id = ?", projectID).
		Order("pm.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return append(views, rows...), nil
}

// Add makes the user with the given email a member of the project.
func (s *MemberService) Add(ctx context.Context, actor *access.EffectivePermissions, req *AddMemberRequest) (*models.ProjectMember, error) {
	role := req.Role
	if role == "" {
		role = models.MemberRoleMember
	}
	if !models.IsValidMemberRole(role) {
		return nil, ErrInvalidMemberRole
	}
	if role == models.MemberRoleAdmin && !canGrantAdmin(actor) {
		return nil, ErrAdminGrantForbidden
	}

	var member models.ProjectMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		email := strings.TrimSpace(req.Email)
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberUserNotFound
			}
			return err
		}

		var project models.Project
		if err := tx.Select("id", "owner_id").Where("id = ?", actor.ProjectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return access.ErrProjectNotFound
			}
			return err
		}
		if project.OwnerID == user.ID {
			return ErrMemberIsOwner
		}

		var existing int64
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", actor.ProjectID, user.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyMember
		}

		if err := ensureRoleInProject(tx, actor.ProjectID, req.ProjectRoleID); err != nil {
			return err
		}

		member = models.ProjectMember{
			ProjectID:     actor.ProjectID,
			UserID:        user.ID,
			Role:          role,
			ProjectRoleID: nonEmpty(req.ProjectRoleID),
		}
		if err := tx.Create(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyMember
			}
			return err
		}
		member.User = &user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update changes a member's coarse role and/or bound project role. An
// explicit null project_role_id unbinds the role.
func (s *MemberService) Update(ctx context.Context, actor *access.EffectivePermissions, memberID string, req *UpdateMemberRequest) (*models.ProjectMember, error) {
	if req.Role == nil && !req.ProjectRoleID.Set {
		return nil, ErrNoFieldsToUpdate
	}
	if req.Role != nil && !models.IsValidMemberRole(*req.Role) {
		return nil, ErrInvalidMemberRole
	}

	var member models.ProjectMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND project_id = ?", memberID, actor.ProjectID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		updates := make(map[string]interface{})
		if req.Role != nil && *req.Role != member.Role {
			if (*req.Role == models.MemberRoleAdmin || member.Role == models.MemberRoleAdmin) && !canGrantAdmin(actor) {
				return ErrAdminGrantForbidden
			}
			updates["role"] = *req.Role
		}
		if req.ProjectRoleID.Set {
			roleID := nonEmpty(req.ProjectRoleID.Value)
			if err := ensureRoleInProject(tx, actor.ProjectID, roleID); err != nil {
				return err
			}
			updates["project_role_id"] = roleID
		}
		if len(updates) > 0 {
			if err := tx.Model(&member).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Preload("User").Preload("ProjectRole").Where("id = ?", member.ID).First(&member).Error
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Remove deletes a membership. Removing an admin is reserved to owners and
// admins.
func (s *MemberService) Remove(ctx context.Context, actor *access.EffectivePermissions, memberID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.ProjectMember
		if err := tx.Where("id = ? AND project_id = ?", memberID, actor.ProjectID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if member.Role == models.MemberRoleAdmin && !canGrantAdmin(actor) {
			return ErrAdminGrantForbidden
		}
		return tx.Delete(&member).Error
	})
}

// IsParty reports whether userID owns or is a member of the project.
func IsParty(tx *gorm.DB, projectID, userID string) (bool, error) {
	var count int64
	err := tx.Table("projects AS p").
		Where(`p.id = ? AND p.deleted_at IS NULL AND (p.owner_id = ? OR EXISTS (
			SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = ?))`,
			projectID, userID, userID).
		Count(&count).Error
	return count > 0, err
}

func canGrantAdmin(actor *access.EffectivePermissions) bool {
	return actor != nil && (actor.Role == access.RoleOwner || actor.Role == access.RoleAdmin)
}

func ensureRoleInProject(tx *gorm.DB, projectID string, roleID *string) error {
	if roleID == nil || *roleID == "" {
		return nil
	}
	var count int64
	if err := tx.Model(&models.ProjectRole{}).
		Where("id = ? AND project_id = ?", *roleID, projectID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRoleNotInProject
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func strPtr(s string) *string { return &s }
