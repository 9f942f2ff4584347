package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog records a project-scoped write operation.
type AuditLog struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string    `gorm:"type:varchar(36);index" json:"project_id"`
	UserID    string    `gorm:"type:varchar(36);index" json:"user_id"`
	Module    string    `gorm:"size:100;index" json:"module"`
	Action    string    `gorm:"size:100" json:"action"`
	Method    string    `gorm:"size:10" json:"method"`
	Path      string    `gorm:"size:500" json:"path"`
	Status    int       `json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
	IP        string    `gorm:"size:50" json:"ip"`
	UserAgent string    `gorm:"size:500" json:"user_agent"`
	Extra     string    `gorm:"type:text" json:"extra"` // JSON extra data
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	a.ID = ensureID(a.ID)
	return nil
}
