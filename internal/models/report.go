package models

import (
	"time"

	"gorm.io/gorm"
)

// ReportStatus is the moderation workflow state of a report.
type ReportStatus string

const (
	// ReportStatusPending is the initial state of every report.
	ReportStatusPending ReportStatus = "pending"
	// ReportStatusUnderReview means a staff member claimed the report.
	ReportStatusUnderReview ReportStatus = "under_review"
	// ReportStatusResolved means staff concluded the report with an action.
	ReportStatusResolved ReportStatus = "resolved"
	// ReportStatusRejected means staff concluded the report without action.
	ReportStatusRejected ReportStatus = "rejected"
)

// ReportReason categorizes why content was reported.
type ReportReason string

const (
	// ReasonSARA covers ethnicity/religion/race-based hate content.
	ReasonSARA ReportReason = "sara"
	// ReasonHarassment covers targeted abuse of another member.
	ReasonHarassment ReportReason = "harassment"
	// ReasonSpam covers unsolicited promotional content.
	ReasonSpam ReportReason = "spam"
	// ReasonInappropriate covers content unfit for the community.
	ReasonInappropriate ReportReason = "inappropriate"
	// ReasonCopyright covers content infringing someone's rights.
	ReasonCopyright ReportReason = "copyright"
	// ReasonOther covers everything else; see the description field.
	ReasonOther ReportReason = "other"
)

// ValidReportReason reports whether r is a known reason code.
func ValidReportReason(r ReportReason) bool {
	switch r {
	case ReasonSARA, ReasonHarassment, ReasonSpam, ReasonInappropriate, ReasonCopyright, ReasonOther:
		return true
	}
	return false
}

// OpenReportStatuses are the statuses that count as "open" for the
// one-open-report-per-reporter-per-target rule.
var OpenReportStatuses = []ReportStatus{ReportStatusPending, ReportStatusUnderReview}

// Report is a member's complaint about a post or comment, carrying the
// moderation audit trail as staff work it.
type Report struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ReporterID uint       `gorm:"not null;index" json:"reporter_id"`
	Reporter   User       `gorm:"foreignKey:ReporterID" json:"reporter"`
	TargetType TargetType `gorm:"type:varchar(10);not null;index:idx_report_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;index:idx_report_target" json:"target_id"`

	Reason      ReportReason `gorm:"type:varchar(20);not null" json:"reason"`
	Description string       `gorm:"type:text" json:"description,omitempty"`

	// Evidence: at most one of the two may be set.
	EvidenceImage string `json:"evidence_image,omitempty"`
	EvidenceURL   string `json:"evidence_url,omitempty"`

	Status ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Moderator audit trail.
	HandledByUserID *uint      `json:"handled_by_user_id,omitempty"`
	HandledBy       *User      `gorm:"foreignKey:HandledByUserID" json:"handled_by,omitempty"`
	HandledAt       *time.Time `json:"handled_at,omitempty"`
	AdminNotes      string     `gorm:"type:text" json:"admin_notes,omitempty"`
	ActionTaken     string     `json:"action_taken,omitempty"`
	// ResolvedAt is set on the first resolve only and cleared by reopen.
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Report) TableName() string {
	return "reports"
}

// IsPending reports whether the report has not been touched by staff yet.
func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}

// IsOpen reports whether the report still needs staff attention.
func (r *Report) IsOpen() bool {
	return r.Status == ReportStatusPending || r.Status == ReportStatusUnderReview
}

// IsConcluded reports whether staff finished working the report.
func (r *Report) IsConcluded() bool {
	return r.Status == ReportStatusResolved || r.Status == ReportStatusRejected
}

// DaysSinceCreated returns the report's age in whole days.
func (r *Report) DaysSinceCreated(now time.Time) int {
	return int(now.Sub(r.CreatedAt).Hours() / 24)
}

// CanView reports whether the given user may see the report.
func (r *Report) CanView(userID uint, isStaff bool) bool {
	return isStaff || r.ReporterID == userID
}

// CanEdit reports whether the given user may modify the report.
// Reporters lose edit rights once staff pick the report up.
func (r *Report) CanEdit(userID uint, isStaff bool) bool {
	if isStaff {
		return true
	}
	return r.ReporterID == userID && r.IsPending()
}

// CanDelete reports whether the given user may withdraw the report.
func (r *Report) CanDelete(userID uint, isStaff bool) bool {
	return r.CanEdit(userID, isStaff)
}

// CanResolve reports whether the given user may advance the report's status.
func (r *Report) CanResolve(isStaff bool) bool {
	return isStaff
}
