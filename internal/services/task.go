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

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskRequest struct {
	BoardID     string     `json:"board_id" binding:"required"`
	Title       string     `json:"title" binding:"required,max=500"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *string    `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string             `json:"title" binding:"omitempty,max=500"`
	Description Optional[string]    `json:"description"`
	Priority    *string             `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status      *string             `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	DueDate     Optional[time.Time] `json:"due_date"`
	BoardID     *string             `json:"board_id"`
	Position    *int                `json:"position" binding:"omitempty,min=0"`
	AssigneeID  Optional[string]    `json:"assignee_id"`
}

// ListByProject returns every live task on the project's live boards.
func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := s.db.WithContext(ctx).
		Joins("JOIN boards b ON b.id = tasks.board_id AND b.deleted_at IS NULL").
		Where("b.project_id = ?", projectID).
		Order("tasks.position ASC, tasks.created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// Create adds a task at the end of its board, which must belong to the
// project the permissions were loaded for. Setting an assignee needs the
// AssignTasks capability on top of the EditContent the route checked.
func (s *TaskService) Create(ctx context.Context, perms *access.EffectivePermissions, req *CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		BoardID:     req.BoardID,
		Title:       title,
		Description: req.Description,
		Priority:    priority,
		Status:      models.TaskStatusTodo,
		DueDate:     req.DueDate,
		CreatedBy:   perms.UserID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectID, err := projectOfBoard(tx, req.BoardID)
		if err != nil {
			return err
		}
		if projectID != perms.ProjectID {
			return ErrBoardNotInProject
		}

		if assignee := nonEmpty(req.AssigneeID); assignee != nil {
			if err := s.checkAssignee(tx, perms, assignee); err != nil {
				return err
			}
			task.AssigneeID = assignee
		}

		var next int
		if err := tx.Model(&models.Task{}).
			Where("board_id = ?", req.BoardID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		task.Position = next
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update. Moving the task is limited to boards of
// the same project; changing the assignee needs AssignTasks.
func (s *TaskService) Update(ctx context.Context, perms *access.EffectivePermissions, taskID string, req *UpdateTaskRequest) (*models.Task, error) {
	updates := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		updates["title"] = title
	}
	if req.Description.Set {
		updates["description"] = req.Description.Value
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.DueDate.Set {
		updates["due_date"] = req.DueDate.Value
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if len(updates) == 0 && req.BoardID == nil && !req.AssigneeID.Set {
		return nil, ErrNoFieldsToUpdate
	}

	var task models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", taskID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if req.BoardID != nil && *req.BoardID != task.BoardID {
			projectID, err := projectOfBoard(tx, *req.BoardID)
			if err != nil {
				return err
			}
			if projectID != perms.ProjectID {
				return ErrCrossProjectMove
			}
			updates["board_id"] = *req.BoardID
		}

		if req.AssigneeID.Set {
			assignee := nonEmpty(req.AssigneeID.Value)
			if !sameString(assignee, task.AssigneeID) {
				if err := s.checkAssignee(tx, perms, assignee); err != nil {
					return err
				}
				updates["assignee_id"] = assignee
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&task).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", taskID).First(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	res := s.db.WithContext(ctx).Where("id = ?", taskID).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// checkAssignee enforces AssignTasks and that the assignee is a party to
// the project. A nil assignee (unassigning) still needs AssignTasks.
func (s *TaskService) checkAssignee(tx *gorm.DB, perms *access.EffectivePermissions, assigneeID *string) error {
	if err := access.Require(perms, access.AssignTasks); err != nil {
		return err
	}
	if assigneeID == nil {
		return nil
	}
	ok, err := IsParty(tx, perms.ProjectID, *assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotInProject
	}
	return nil
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
