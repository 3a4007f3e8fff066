package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// AssignEvaluators attaches one reviewer and one HOD to a submitted proposal
// and moves it to Under Review. Both evaluators must belong to the
// researcher's faculty. Also handles proposals a reviewer returned for
// reassignment.
func AssignEvaluators(db *gorm.DB, actor Actor, proposalID, reviewerID, hodID int, reviewerDue, hodDue *time.Time) error {
	if !actor.IsAdmin() {
		return deniedf("only admins assign evaluators")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		err := tx.First(&proposal, "proposal_id = ?", proposalID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("proposal %d", proposalID)
		}
		if err != nil {
			return err
		}

		from := ProposalStatus(proposal.Status)
		if from != StatusSubmitted && from != StatusReturnForReassignment {
			return validationf("proposal in status %q is not awaiting assignment", proposal.Status)
		}

		var researcher models.User
		if err := tx.First(&researcher, "user_id = ?", proposal.ResearcherID).Error; err != nil {
			return err
		}

		reviewer, err := loadUserWithRole(tx, reviewerID, models.RoleReviewer)
		if err != nil {
			return err
		}
		hod, err := loadUserWithRole(tx, hodID, models.RoleHOD)
		if err != nil {
			return err
		}
		if reviewer.Faculty != researcher.Faculty {
			return validationf("reviewer %s is outside faculty %s", reviewer.Name, researcher.Faculty)
		}
		if hod.Faculty != researcher.Faculty {
			return validationf("HOD %s is outside faculty %s", hod.Name, researcher.Faculty)
		}

		extra := map[string]interface{}{
			"reviewer_id": reviewerID,
			"hod_id":      hodID,
		}
		if err := transitionProposal(tx, proposal.ProposalID, from, StatusUnderReview, extra); err != nil {
			return err
		}

		if reviewerDue != nil {
			if err := UpsertDeadline(tx, proposal.ProposalID, models.DeadlineReviewer, *reviewerDue); err != nil {
				return err
			}
		}
		if hodDue != nil {
			if err := UpsertDeadline(tx, proposal.ProposalID, models.DeadlineHOD, *hodDue); err != nil {
				return err
			}
		}

		link := proposalLink(proposal.ProposalID)
		msg := fmt.Sprintf("You have been assigned to screen proposal '%s'.", proposal.Title)
		return Notify(tx, reviewerID, &actor.UserID, msg, &link)
	})
}

func loadUserWithRole(tx *gorm.DB, userID int, role string) (*models.User, error) {
	var user models.User
	err := tx.First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("user %d", userID)
	}
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, validationf("user %s does not hold the %s role", user.Name, role)
	}
	return &user, nil
}
