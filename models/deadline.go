package models

import "time"

// Deadline types; one row per (proposal, type) with upsert semantics.
const (
	DeadlineReviewer = "Reviewer"
	DeadlineHOD      = "HOD"
	DeadlineFinal    = "Final Submission"
)

// ValidDeadlineType reports whether t is a known deadline type.
func ValidDeadlineType(t string) bool {
	switch t {
	case DeadlineReviewer, DeadlineHOD, DeadlineFinal:
		return true
	}
	return false
}

type Deadline struct {
	DeadlineID int        `gorm:"primaryKey;column:deadline_id" json:"deadline_id"`
	ProposalID int        `gorm:"column:proposal_id" json:"proposal_id"`
	Type       string     `gorm:"column:type" json:"type"`
	DueDate    time.Time  `gorm:"column:due_date" json:"due_date"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Deadline) TableName() string {
	return "deadlines"
}
