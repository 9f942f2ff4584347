package services

import (
	"context"
	"errors"
	"strings"

	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/services/access"
	"gorm.io/gorm"
)

type BoardService struct {
	db *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{db: db}
}

type CreateBoardRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
	Name      string `json:"name" binding:"required,max=255"`
	Position  *int   `json:"position" binding:"omitempty,min=0"`
}

func (s *BoardService) List(ctx context.Context, projectID string) ([]models.Board, error) {
	boards := make([]models.Board, 0)
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC, created_at ASC").
		Find(&boards).Error
	return boards, err
}

// Create adds a board to the project the permissions were loaded for; without
// a position it goes last. req.ProjectID only addresses the gate.
func (s *BoardService) Create(ctx context.Context, perms *access.EffectivePermissions, req *CreateBoardRequest) (*models.Board, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	board := &models.Board{ProjectID: perms.ProjectID, Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Position != nil {
			board.Position = *req.Position
		} else {
			var next int
			if err := tx.Model(&models.Board{}).
				Where("project_id = ?", perms.ProjectID).
				Select("COALESCE(MAX(position), -1) + 1").
				Scan(&next).Error; err != nil {
				return err
			}
			board.Position = next
		}
		return tx.Create(board).Error
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Delete soft-deletes a board and its tasks.
func (s *BoardService) Delete(ctx context.Context, boardID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", boardID).Delete(&models.Board{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}

// projectOfBoard returns the project a live board belongs to.
func projectOfBoard(tx *gorm.DB, boardID string) (string, error) {
	var board models.Board
	err := tx.Select("id", "project_id").Where("id = ?", boardID).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrBoardNotFound
	}
	if err != nil {
		return "", err
	}
	return board.ProjectID, nil
}
