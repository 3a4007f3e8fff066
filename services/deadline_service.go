package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// UpsertDeadline finds the (proposal, type) row and overwrites its due date,
// creating the row when absent.
func UpsertDeadline(tx *gorm.DB, proposalID int, deadlineType string, due time.Time) error {
	if !models.ValidDeadlineType(deadlineType) {
		return validationf("unknown deadline type %q", deadlineType)
	}

	var existing models.Deadline
	err := tx.Where("proposal_id = ? AND type = ?", proposalID, deadlineType).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.Deadline{
			ProposalID: proposalID,
			Type:       deadlineType,
			DueDate:    due,
		}).Error
	}
	if err != nil {
		return err
	}

	now := time.Now()
	return tx.Model(&existing).Updates(map[string]interface{}{
		"due_date":  due,
		"update_at": &now,
	}).Error
}

// RequestDeadlineExtension forwards the owning researcher's plea for more
// time to the admins. It never changes a deadline row; granting the request
// is a separate admin action.
func RequestDeadlineExtension(db *gorm.DB, actor Actor, proposalID int, reason string) error {
	if !actor.IsResearcher() {
		return deniedf("only the owning researcher requests an extension")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := loadOwnedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}

		var researcher models.User
		if err := tx.First(&researcher, "user_id = ?", actor.UserID).Error; err != nil {
			return err
		}

		link := proposalLink(proposalID)
		msg := fmt.Sprintf("Extension Request: %s requests time for '%s'. Reason: %s",
			researcher.Name, proposal.Title, reason)
		return NotifyAdmins(tx, &actor.UserID, msg, &link)
	})
}

// SetFinalDeadline is the admin operation that opens the progress-reporting
// window on an approved proposal.
func SetFinalDeadline(db *gorm.DB, actor Actor, proposalID int, due time.Time) error {
	if !actor.IsAdmin() {
		return deniedf("only admins set the final submission deadline")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := tx.First(&proposal, "proposal_id = ?", proposalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("proposal %d", proposalID)
			}
			return err
		}
		if ProposalStatus(proposal.Status) != StatusApproved {
			return validationf("final deadline requires an approved proposal, status is %q", proposal.Status)
		}

		if err := UpsertDeadline(tx, proposalID, models.DeadlineFinal, due); err != nil {
			return err
		}

		link := proposalLink(proposalID)
		msg := "The final submission deadline for proposal '" + proposal.Title + "' has been set to " + due.Format("2006-01-02") + "."
		return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)
	})
}
