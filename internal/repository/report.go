package repository

import (
	"context"
	"errors"

	"smash/internal/models"

	"gorm.io/gorm"
)

// ReportFilter narrows the admin report queue.
type ReportFilter struct {
	Status     models.ReportStatus
	Reason     models.ReportReason
	TargetType models.TargetType
	ReporterID uint
}

// ReportRepository defines the interface for abuse report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	HasOpenReport(ctx context.Context, reporterID uint, targetType models.TargetType, targetID uint) (bool, error)
	ListByReporter(ctx context.Context, reporterID uint, limit, offset int) ([]*models.Report, error)
	List(ctx context.Context, filter ReportFilter, limit, offset int) ([]*models.Report, int64, error)
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		// The partial unique index rejects a second open report on the
		// same target by the same reporter.
		if isUniqueConstraintError(err) {
			return models.NewConflictError("you already have an open report for this content")
		}
		return err
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("HandledBy").
		First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Report", id)
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) HasOpenReport(
	ctx context.Context,
	reporterID uint,
	targetType models.TargetType,
	targetID uint,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ? AND status IN ?",
			reporterID, targetType, targetID, models.OpenReportStatuses).
		Count(&count).Error
	return count > 0, err
}

func (r *reportRepository) ListByReporter(
	ctx context.Context,
	reporterID uint,
	limit, offset int,
) ([]*models.Report, error) {
	var reports []*models.Report
	err := r.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, err
}

// List returns a filtered page of reports plus the total matching count,
// oldest first so the moderation queue drains in arrival order.
func (r *reportRepository) List(
	ctx context.Context,
	filter ReportFilter,
	limit, offset int,
) ([]*models.Report, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Reason != "" {
		query = query.Where("reason = ?", filter.Reason)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.ReporterID != 0 {
		query = query.Where("reporter_id = ?", filter.ReporterID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []*models.Report
	err := query.
		Preload("Reporter").
		Preload("HandledBy").
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Report", id)
	}
	return nil
}
