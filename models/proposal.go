package models

import (
	"time"

	"gorm.io/datatypes"
)

// Proposal is the central lifecycle entity. Status strings are owned by the
// services package; rows are never hard-deleted — terminal statuses end the
// lifecycle instead.
type Proposal struct {
	ProposalID      int            `gorm:"primaryKey;column:proposal_id" json:"proposal_id"`
	Title           string         `gorm:"column:title" json:"title"`
	ResearchArea    string         `gorm:"column:research_area" json:"research_area"`
	RequestedBudget float64        `gorm:"column:requested_budget" json:"requested_budget"`
	Status          string         `gorm:"column:status" json:"status"`
	SubmissionDate  *time.Time     `gorm:"column:submission_date" json:"submission_date,omitempty"`
	Document        string         `gorm:"column:document" json:"document"`
	ResearcherID    int            `gorm:"column:researcher_id" json:"researcher_id"`
	CycleID         int            `gorm:"column:cycle_id" json:"cycle_id"`
	ReviewerID      *int           `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	HODID           *int           `gorm:"column:hod_id" json:"hod_id,omitempty"`
	ReviewScore     *int           `gorm:"column:review_score" json:"review_score,omitempty"`
	ReviewFeedback  *string        `gorm:"column:review_feedback" json:"review_feedback,omitempty"`
	ReviewDraft     datatypes.JSON `gorm:"column:review_draft" json:"review_draft,omitempty"`
	ApprovedAmount  *float64       `gorm:"column:approved_amount" json:"approved_amount,omitempty"`
	CreateAt        *time.Time     `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time     `gorm:"column:update_at" json:"update_at"`

	Cycle GrantCycle `gorm:"foreignKey:CycleID;references:CycleID" json:"cycle,omitempty"`
}

// ProposalVersion is an append-only snapshot of a proposal's editable fields.
// Version numbers are strictly increasing per proposal; reverts append a new
// version rather than touching history.
type ProposalVersion struct {
	VersionID       int       `gorm:"primaryKey;column:version_id" json:"version_id"`
	ProposalID      int       `gorm:"column:proposal_id" json:"proposal_id"`
	VersionNumber   int       `gorm:"column:version_number" json:"version_number"`
	Title           string    `gorm:"column:title" json:"title"`
	ResearchArea    string    `gorm:"column:research_area" json:"research_area"`
	RequestedBudget float64   `gorm:"column:requested_budget" json:"requested_budget"`
	Document        string    `gorm:"column:document" json:"document"`
	Note            string    `gorm:"column:note" json:"note"`
	CreateAt        time.Time `gorm:"column:create_at" json:"create_at"`
}

func (Proposal) TableName() string {
	return "proposals"
}

func (ProposalVersion) TableName() string {
	return "proposal_versions"
}
