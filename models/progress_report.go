package models

import "time"

// Progress report statuses. Set by the assigned HOD only.
const (
	ReportSubmitted        = "Submitted"
	ReportValidated        = "Validated"
	ReportRequiresRevision = "Requires Revision"
)

type ProgressReport struct {
	ReportID       int        `gorm:"primaryKey;column:report_id" json:"report_id"`
	ProposalID     int        `gorm:"column:proposal_id" json:"proposal_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Content        string     `gorm:"column:content" json:"content"`
	FinancialUsage float64    `gorm:"column:financial_usage" json:"financial_usage"`
	Document       *string    `gorm:"column:document" json:"document,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	HODFeedback    *string    `gorm:"column:hod_feedback" json:"hod_feedback,omitempty"`
	SubmittedAt    time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (ProgressReport) TableName() string {
	return "progress_reports"
}
