package services

import (
	"context"
	"time"

	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/logger"
	"github.com/hubinova/backend/pkg/metrics"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const accessLogCleanupJob = "access_log_cleanup"

type AccessLogService struct {
	db            *gorm.DB
	retentionDays int
	metrics       *metrics.Metrics
	cronScheduler *cron.Cron
}

func NewAccessLogService(db *gorm.DB, retentionDays int, m *metrics.Metrics) *AccessLogService {
	return &AccessLogService{db: db, retentionDays: retentionDays, metrics: m}
}

type AccessLogListRequest struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Email  string `form:"email"`
	Method string `form:"method"`
}

type AccessLogListResponse struct {
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
	Items []models.AccessLog `json:"items"`
}

// Record stores one entry. It satisfies middleware.AccessRecorder.
func (s *AccessLogService) Record(ctx context.Context, entry *models.AccessLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *AccessLogService) List(ctx context.Context, req *AccessLogListRequest) (*AccessLogListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	query := s.db.WithContext(ctx).Model(&models.AccessLog{})
	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	}
	if req.Method != "" {
		query = query.Where("method = ?", req.Method)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, storeError(err, "access log")
	}

	logs := []models.AccessLog{}
	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, storeError(err, "access log")
	}

	return &AccessLogListResponse{
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
		Items: logs,
	}, nil
}

// Cleanup deletes entries older than the retention window and returns how
// many were removed. A non-positive retention disables cleanup.
func (s *AccessLogService) Cleanup(ctx context.Context, now time.Time) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -s.retentionDays)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AccessLog{})
	if result.Error != nil {
		return 0, storeError(result.Error, "access log")
	}
	return result.RowsAffected, nil
}

func (s *AccessLogService) runCleanup() {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.Cleanup(ctx, start)
	s.metrics.ObserveJob(accessLogCleanupJob, time.Since(start), err)
	if err != nil {
		logger.Error().Err(err).Msg("[AccessLog] cleanup failed")
		return
	}
	logger.Info().Int64("deleted", deleted).Int("retention_days", s.retentionDays).Msg("[AccessLog] cleanup finished")
}

// StartScheduler runs the retention cleanup on expr (standard 5-field cron).
func (s *AccessLogService) StartScheduler(expr string) error {
	if s.retentionDays <= 0 {
		logger.Info().Msg("[AccessLog] retention disabled, cleanup not scheduled")
		return nil
	}
	s.cronScheduler = cron.New()
	if _, err := s.cronScheduler.AddFunc(expr, s.runCleanup); err != nil {
		return err
	}
	s.cronScheduler.Start()
	logger.Info().Str("cron", expr).Msg("[AccessLog] cleanup scheduled")
	return nil
}

func (s *AccessLogService) StopScheduler() {
	if s.cronScheduler != nil {
		<-s.cronScheduler.Stop().Done()
	}
}
