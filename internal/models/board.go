package models

import (
	"time"

	"gorm.io/gorm"
)

// Board is a column of tasks. It belongs to exactly one project.
type Board struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string         `gorm:"type:varchar(36);index;not null" json:"project_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Board) TableName() string { return "boards" }

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	b.ID = ensureID(b.ID)
	return nil
}

// DefaultBoardNames are created, in order, with every new project.
var DefaultBoardNames = []string{"To Do", "In Progress", "Done"}
