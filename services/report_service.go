package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/metrics"
	"grant-management-api/models"
)

// Report review decisions accepted from the assigned HOD.
const (
	ReportDecisionValidate = "validate"
	ReportDecisionRevise   = "revise"
)

// ReportInput carries the researcher's progress report fields. Document is an
// optional stored filename token.
type ReportInput struct {
	Title          string
	Content        string
	FinancialUsage float64
	Document       string
}

// SubmitProgressReport appends a progress report on an active project. A
// recorded Final Submission deadline whose due date has passed blocks the
// report before any row is written; with no deadline row reporting stays open.
func SubmitProgressReport(db *gorm.DB, actor Actor, proposalID int, in ReportInput) (*models.ProgressReport, error) {
	if !actor.IsResearcher() {
		return nil, deniedf("only researchers file progress reports")
	}
	if in.Title == "" || in.Content == "" {
		return nil, validationf("report title and content are required")
	}
	if in.FinancialUsage < 0 {
		return nil, validationf("financial usage cannot be negative")
	}

	var report models.ProgressReport
	err := db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := loadOwnedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusApproved {
			return validationf("progress reports require an approved project, status is %q", proposal.Status)
		}

		// No deadline row means reporting stays open; only a recorded due
		// date that has passed blocks the report.
		var deadline models.Deadline
		err := tx.Where("proposal_id = ? AND type = ?", proposalID, models.DeadlineFinal).First(&deadline).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		case finalDeadlinePassed(timeNow(), deadline.DueDate):
			return fmt.Errorf("%w: the final submission deadline %s has passed",
				ErrDeadlineExceeded, deadline.DueDate.Format("2006-01-02"))
		}

		var document *string
		if in.Document != "" {
			document = &in.Document
		}
		report = models.ProgressReport{
			ProposalID:     proposalID,
			Title:          in.Title,
			Content:        in.Content,
			FinancialUsage: in.FinancialUsage,
			Document:       document,
			Status:         models.ReportSubmitted,
			SubmittedAt:    time.Now(),
		}
		if err := tx.Create(&report).Error; err != nil {
			return err
		}
		metrics.ReportsSubmitted.Inc()

		if proposal.HODID == nil {
			return nil
		}
		link := proposalLink(proposalID)
		msg := fmt.Sprintf("A progress report was submitted for proposal '%s'.", proposal.Title)
		return Notify(tx, *proposal.HODID, &actor.UserID, msg, &link)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// finalDeadlinePassed reports whether the due date's campus calendar day is
// behind today's. Submissions on the due date itself still go through.
func finalDeadlinePassed(today, due time.Time) bool {
	return models.DateOf(today).After(models.DateOf(due))
}

// ReviewProgressReport records the HOD's validate/revise call. It touches
// only the report row; the parent proposal's status is unaffected.
func ReviewProgressReport(db *gorm.DB, actor Actor, reportID int, decision, feedback string) (*models.ProgressReport, error) {
	if decision != ReportDecisionValidate && decision != ReportDecisionRevise {
		return nil, validationf("unknown report decision %q", decision)
	}

	var report models.ProgressReport
	err := db.Transaction(func(tx *gorm.DB) error {
		if !actor.IsHOD() {
			return deniedf("only the head of department reviews reports")
		}

		err := tx.First(&report, "report_id = ?", reportID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("progress report %d", reportID)
		}
		if err != nil {
			return err
		}

		var proposal models.Proposal
		if err := tx.First(&proposal, "proposal_id = ?", report.ProposalID).Error; err != nil {
			return err
		}
		if proposal.HODID == nil || *proposal.HODID != actor.UserID {
			return deniedf("report belongs to a project assigned to another head of department")
		}
		if report.Status != models.ReportSubmitted {
			return validationf("report was already reviewed (status %q)", report.Status)
		}

		status := models.ReportValidated
		msg := fmt.Sprintf("Your progress report '%s' was validated.", report.Title)
		if decision == ReportDecisionRevise {
			status = models.ReportRequiresRevision
			msg = fmt.Sprintf("Your progress report '%s' requires revision.", report.Title)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":    status,
			"update_at": &now,
		}
		if feedback != "" {
			updates["hod_feedback"] = feedback
		}
		res := tx.Model(&models.ProgressReport{}).
			Where("report_id = ? AND status = ?", reportID, models.ReportSubmitted).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		report.Status = status
		if feedback != "" {
			report.HODFeedback = &feedback
		}

		link := proposalLink(report.ProposalID)
		return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}
