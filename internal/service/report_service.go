package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"smash/internal/middleware"
	"smash/internal/models"
	"smash/internal/notifications"
	"smash/internal/observability"
	"smash/internal/repository"
	"smash/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateReportInput is the reporter-facing payload for filing a report.
type CreateReportInput struct {
	TargetType    models.TargetType
	TargetID      uint
	Reason        models.ReportReason
	Description   string
	EvidenceImage string
	EvidenceURL   string
}

// ReportService owns the abuse report lifecycle. State transitions run
// against the *gorm.DB so the status change and the audit fields commit
// atomically.
type ReportService struct {
	db       *gorm.DB
	reports  repository.ReportRepository
	notifier *notifications.Notifier
}

// NewReportService creates a new ReportService.
func NewReportService(
	db *gorm.DB,
	reports repository.ReportRepository,
	notifier *notifications.Notifier,
) *ReportService {
	return &ReportService{db: db, reports: reports, notifier: notifier}
}

// Create files a new report in the pending state after field-level
// validation. Reporters cannot report their own content and may hold at
// most one open report per target.
func (s *ReportService) Create(
	ctx context.Context,
	reporterID uint,
	input CreateReportInput,
) (*models.Report, error) {
	fieldErrs := models.NewFieldErrors()

	if !models.ValidTargetType(input.TargetType) {
		fieldErrs.Add("target_type", "must be one of: post, comment")
	}
	if !models.ValidReportReason(input.Reason) {
		fieldErrs.Add("reason", "unknown reason code")
	}
	if input.EvidenceImage != "" && input.EvidenceURL != "" {
		fieldErrs.Add("evidence_url", "provide either an evidence image or an evidence URL, not both")
	}
	if input.Reason == models.ReasonSARA {
		// Counted on the stripped text so markup cannot pad the minimum.
		if validation.DescriptionLength(input.Description) < validation.MinSARADescriptionLen {
			fieldErrs.Add("description", fmt.Sprintf(
				"SARA reports need a description of at least %d characters",
				validation.MinSARADescriptionLen))
		}
	}
	if fieldErrs.HasErrors() {
		return nil, fieldErrs
	}

	ownerID, err := s.targetOwner(ctx, input.TargetType, input.TargetID)
	if err != nil {
		return nil, err
	}
	if ownerID == reporterID {
		fieldErrs.AddNonField("you cannot report your own content")
		return nil, fieldErrs
	}

	// Friendly whole-form error for the common case; a concurrent create
	// that slips past this check is caught by the partial unique index and
	// surfaces as a conflict from the repository.
	open, err := s.reports.HasOpenReport(ctx, reporterID, input.TargetType, input.TargetID)
	if err != nil {
		return nil, err
	}
	if open {
		fieldErrs.AddNonField("you already have an open report for this content")
		return nil, fieldErrs
	}

	report := &models.Report{
		ReporterID:    reporterID,
		TargetType:    input.TargetType,
		TargetID:      input.TargetID,
		Reason:        input.Reason,
		Description:   input.Description,
		EvidenceImage: input.EvidenceImage,
		EvidenceURL:   input.EvidenceURL,
		Status:        models.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if pubErr := s.notifier.PublishActivity(ctx, notifications.EventReportCreated, map[string]interface{}{
		"report_id":   report.ID,
		"target_type": report.TargetType,
		"target_id":   report.TargetID,
		"reason":      report.Reason,
	}); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish report event", "error", pubErr)
	}

	return report, nil
}

// Get returns the report if the caller is allowed to see it.
func (s *ReportService) Get(ctx context.Context, id, userID uint, isStaff bool) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.CanView(userID, isStaff) {
		return nil, models.NewForbiddenError("you cannot view this report")
	}
	return report, nil
}

// ListMine returns the caller's own reports, newest first.
func (s *ReportService) ListMine(ctx context.Context, userID uint, limit, offset int) ([]*models.Report, error) {
	return s.reports.ListByReporter(ctx, userID, limit, offset)
}

// ListQueue returns the admin moderation queue.
func (s *ReportService) ListQueue(
	ctx context.Context,
	filter repository.ReportFilter,
	limit, offset int,
) ([]*models.Report, int64, error) {
	return s.reports.List(ctx, filter, limit, offset)
}

// UpdateDescription lets a reporter amend a still-pending report.
func (s *ReportService) UpdateDescription(
	ctx context.Context,
	id, userID uint,
	isStaff bool,
	description string,
) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !report.CanEdit(userID, isStaff) {
		return nil, models.NewForbiddenError("this report can no longer be edited")
	}
	if report.Reason == models.ReasonSARA {
		if validation.DescriptionLength(description) < validation.MinSARADescriptionLen {
			fieldErrs := models.NewFieldErrors()
			fieldErrs.Add("description", fmt.Sprintf(
				"SARA reports need a description of at least %d characters",
				validation.MinSARADescriptionLen))
			return nil, fieldErrs
		}
	}
	report.Description = description
	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Withdraw soft-deletes the report if the caller may still withdraw it.
func (s *ReportService) Withdraw(ctx context.Context, id, userID uint, isStaff bool) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !report.CanDelete(userID, isStaff) {
		return models.NewForbiddenError("this report can no longer be withdrawn")
	}
	return s.reports.Delete(ctx, id)
}

// MarkUnderReview moves pending -> under_review and records the claiming
// staff member.
func (s *ReportService) MarkUnderReview(ctx context.Context, id, staffID uint, isStaff bool) (*models.Report, error) {
	return s.transition(ctx, id, staffID, isStaff, models.ReportStatusUnderReview,
		[]models.ReportStatus{models.ReportStatusPending},
		func(report *models.Report, now time.Time) {
			report.HandledByUserID = &staffID
			report.HandledAt = &now
		})
}

// Resolve concludes the report with an action taken. Allowed from pending
// and under_review, and from resolved again so staff can amend the action
// or notes; resolved_at keeps the timestamp of the first resolve.
func (s *ReportService) Resolve(
	ctx context.Context,
	id, staffID uint,
	isStaff bool,
	actionTaken, adminNotes string,
) (*models.Report, error) {
	if actionTaken == "" {
		return nil, models.NewValidationError("action_taken is required when resolving a report")
	}
	return s.transition(ctx, id, staffID, isStaff, models.ReportStatusResolved,
		[]models.ReportStatus{
			models.ReportStatusPending,
			models.ReportStatusUnderReview,
			models.ReportStatusResolved,
		},
		func(report *models.Report, now time.Time) {
			report.HandledByUserID = &staffID
			report.HandledAt = &now
			report.ActionTaken = actionTaken
			report.AdminNotes = adminNotes
			if report.ResolvedAt == nil {
				report.ResolvedAt = &now
			}
		})
}

// Reject concludes the report without action. Allowed from pending and
// under_review.
func (s *ReportService) Reject(
	ctx context.Context,
	id, staffID uint,
	isStaff bool,
	adminNotes string,
) (*models.Report, error) {
	return s.transition(ctx, id, staffID, isStaff, models.ReportStatusRejected,
		models.OpenReportStatuses,
		func(report *models.Report, now time.Time) {
			report.HandledByUserID = &staffID
			report.HandledAt = &now
			report.AdminNotes = adminNotes
		})
}

// Reopen returns a claimed or concluded report to pending and clears the
// handler audit fields so the queue treats it as fresh work.
func (s *ReportService) Reopen(ctx context.Context, id, staffID uint, isStaff bool) (*models.Report, error) {
	return s.transition(ctx, id, staffID, isStaff, models.ReportStatusPending,
		[]models.ReportStatus{
			models.ReportStatusUnderReview,
			models.ReportStatusResolved,
			models.ReportStatusRejected,
		},
		func(report *models.Report, _ time.Time) {
			report.HandledByUserID = nil
			report.HandledAt = nil
			report.ActionTaken = ""
			report.ResolvedAt = nil
		})
}

// transition re-reads the report inside a transaction, checks the caller
// and the allowed source states, applies the mutation, and saves. The
// row lock keeps two moderators from claiming the same report.
func (s *ReportService) transition(
	ctx context.Context,
	id, staffID uint,
	isStaff bool,
	to models.ReportStatus,
	from []models.ReportStatus,
	mutate func(*models.Report, time.Time),
) (*models.Report, error) {
	span, ctx := observability.NewSpan(ctx, "report.transition")
	defer span.End()
	span.AddAttributes(
		attribute.Int("report.id", int(id)),
		attribute.String("report.to_status", string(to)),
	)

	var report models.Report

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&report, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Report", id)
			}
			return err
		}

		if !report.CanResolve(isStaff) {
			return models.NewForbiddenError("only staff can change a report's status")
		}
		if !statusIn(report.Status, from) {
			return models.NewConflictError(fmt.Sprintf(
				"cannot move report from %s to %s", report.Status, to))
		}

		mutate(&report, time.Now().UTC())
		report.Status = to
		return tx.Save(&report).Error
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	middleware.ReportTransitions.WithLabelValues(string(to)).Inc()

	if pubErr := s.notifier.PublishActivity(ctx, notifications.EventReportTransition, map[string]interface{}{
		"report_id":  report.ID,
		"new_status": to,
		"staff_id":   staffID,
	}); pubErr != nil {
		slog.WarnContext(ctx, "failed to publish report transition", "error", pubErr)
	}

	return &report, nil
}

// targetOwner resolves the author of the reported content, confirming
// the target exists along the way.
func (s *ReportService) targetOwner(ctx context.Context, targetType models.TargetType, targetID uint) (uint, error) {
	var row struct{ UserID uint }
	err := s.db.WithContext(ctx).
		Table(targetTable(targetType)).
		Select("user_id").
		Where("id = ? AND deleted_at IS NULL", targetID).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.UserID == 0 {
		return 0, models.NewNotFoundError(targetNoun(targetType), targetID)
	}
	return row.UserID, nil
}

func statusIn(s models.ReportStatus, set []models.ReportStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}
