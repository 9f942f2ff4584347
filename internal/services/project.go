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

type ProjectService struct {
	db    *gorm.DB
	roles *RoleService
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db, roles: NewRoleService(db)}
}

type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// ProjectSummary is a row of the caller's project list. MemberCount
// includes the owner.
type ProjectSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	OwnerEmail  string    `json:"owner_email"`
	OwnerName   string    `json:"owner_name"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectDetail is a project together with the caller's standing on it.
type ProjectDetail struct {
	models.Project
	Role         access.Role         `json:"role"`
	ProjectRole  *access.BoundRole   `json:"project_role,omitempty"`
	Capabilities []access.Capability `json:"capabilities"`
}

// ListForUser returns the projects the user owns or belongs to, newest first.
func (s *ProjectService) ListForUser(ctx context.Context, userID string) ([]ProjectSummary, error) {
	items := make([]ProjectSummary, 0)
	err := s.db.WithContext(ctx).
		Table("projects AS p").
		Select(`p.id, p.name, p.description, p.owner_id,
			u.email AS owner_email, u.full_name AS owner_name,
			(SELECT COUNT(*) FROM project_members pm WHERE pm.project_id = p.id) + 1 AS member_count,
			p.created_at, p.updated_at`).
		Joins("LEFT JOIN users u ON u.id = p.owner_id").
		Where(`p.deleted_at IS NULL AND (p.owner_id = ? OR EXISTS (
			SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = ?))`, userID, userID).
		Order("p.created_at DESC").
		Scan(&items).Error
	return items, err
}

// Get returns the project the permissions were loaded for, shaped by them.
func (s *ProjectService) Get(ctx context.Context, perms *access.EffectivePermissions) (*ProjectDetail, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Preload("Owner").Where("id = ?", perms.ProjectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ProjectDetail{
		Project:      project,
		Role:         perms.Role,
		ProjectRole:  perms.ProjectRole,
		Capabilities: perms.Capabilities(),
	}, nil
}

// Create makes ownerID the owner of a new project and seeds its default
// boards and roles in the same transaction.
func (s *ProjectService) Create(ctx context.Context, ownerID string, req *CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	project := &models.Project{Name: name, Description: req.Description, OwnerID: ownerID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		if _, err := createDefaultBoards(tx, project.ID); err != nil {
			return err
		}
		_, err := s.roles.SeedDefaults(tx, project.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, projectID string, req *UpdateProjectRequest) (*models.Project, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	var project models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", projectID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return access.ErrProjectNotFound
		}
		return tx.Where("id = ?", projectID).First(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete soft-deletes the project with its boards and tasks. Memberships
// and roles are left in place but become unreachable.
func (s *ProjectService) Delete(ctx context.Context, projectID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		boardIDs := tx.Model(&models.Board{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("board_id IN (?)", boardIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Board{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", projectID).Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return access.ErrProjectNotFound
		}
		return nil
	})
}

func createDefaultBoards(tx *gorm.DB, projectID string) ([]models.Board, error) {
	boards := make([]models.Board, len(models.DefaultBoardNames))
	for i, name := range models.DefaultBoardNames {
		boards[i] = models.Board{ProjectID: projectID, Name: name, Position: i}
	}
	if err := tx.Create(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}
