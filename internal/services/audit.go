package services

import (
	"context"
	"time"

	"github.com/huangang/boardmaster/internal/config"
	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// AuditService stores and queries the per-project audit trail.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

type AuditLogListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Module   string `form:"module"`
	UserID   string `form:"user_id"`
}

type AuditLogListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.AuditLog `json:"items"`
}

func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

// List returns a project's audit entries, newest first.
func (s *AuditService) List(ctx context.Context, projectID string, req *AuditLogListRequest) (*AuditLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.AuditLog{}).Where("project_id = ?", projectID)
	if req.Module != "" {
		query = query.Where("module = ?", req.Module)
	}
	if req.UserID != "" {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.AuditLog
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &AuditLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// CleanupOlderThan deletes entries older than retentionDays and returns the
// number removed. A non-positive retention keeps everything.
func (s *AuditService) CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StartAuditCleanup schedules the retention job. The returned scheduler is
// already running; stop it on shutdown.
func StartAuditCleanup(svc *AuditService, cfg config.AuditConfig) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.CleanupCron, func() {
		runAuditCleanup(svc, cfg.RetentionDays)
	})
	if err != nil {
		return nil, err
	}
	scheduler.Start()
	logger.Info().Str("schedule", cfg.CleanupCron).Int("retention_days", cfg.RetentionDays).Msg("audit cleanup scheduled")
	return scheduler, nil
}

func runAuditCleanup(svc *AuditService, retentionDays int) {
	if retentionDays <= 0 {
		logger.Debug().Msg("audit cleanup disabled (retention_days <= 0)")
		return
	}

	deleted, err := svc.CleanupOlderThan(context.Background(), retentionDays)
	if err != nil {
		logger.Error().Err(err).Msg("audit cleanup failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Int("retention_days", retentionDays).Msg("audit logs cleaned up")
	}
}
