package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"

	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task belongs to a board and, through it, to one project.
type Task struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	BoardID     string         `gorm:"type:varchar(36);index;not null" json:"board_id"`
	Title       string         `gorm:"size:500;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description"`
	Priority    string         `gorm:"size:20;not null;default:medium" json:"priority"`
	Status      string         `gorm:"size:20;not null;default:todo" json:"status"`
	DueDate     *time.Time     `json:"due_date"`
	Position    int            `gorm:"not null;default:0" json:"position"`
	AssigneeID  *string        `gorm:"type:varchar(36);index" json:"assignee_id"`
	CreatedBy   string         `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	t.ID = ensureID(t.ID)
	return nil
}
