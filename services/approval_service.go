package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// HOD decisions on a proposal awaiting approval.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Decide records the assigned HOD's approve/reject call on a proposal in
// Pending HOD Approval. Approval creates the Grant row at amount 0 and parks
// the proposal in Pending Grant until allocation.
func Decide(db *gorm.DB, actor Actor, proposalID int, decision string, feedback string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadHODProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusPendingHODApproval {
			return validationf("proposal in status %q is not awaiting a decision", proposal.Status)
		}

		link := proposalLink(proposal.ProposalID)
		switch decision {
		case DecisionApprove:
			if err := transitionProposal(tx, proposal.ProposalID, StatusPendingHODApproval, StatusPendingGrant, nil); err != nil {
				return err
			}
			proposal.Status = string(StatusPendingGrant)

			if err := resetGrant(tx, proposal.ProposalID); err != nil {
				return err
			}
			msg := fmt.Sprintf("Your proposal '%s' was approved and awaits grant allocation.", proposal.Title)
			return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)

		case DecisionReject:
			extra := map[string]interface{}{}
			if feedback != "" {
				extra["review_feedback"] = feedback
			}
			if err := transitionProposal(tx, proposal.ProposalID, StatusPendingHODApproval, StatusRejected, extra); err != nil {
				return err
			}
			proposal.Status = string(StatusRejected)

			msg := fmt.Sprintf("Your proposal '%s' was rejected by the head of department.", proposal.Title)
			if err := Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link); err != nil {
				return err
			}
			adminMsg := fmt.Sprintf("Proposal '%s' was rejected at HOD review.", proposal.Title)
			return NotifyAdmins(tx, &actor.UserID, adminMsg, &link)

		default:
			return validationf("unknown decision %q", decision)
		}
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// AllocateGrant sets the awarded amount and activates the project. The admin
// side is notified so the final submission deadline gets set.
func AllocateGrant(db *gorm.DB, actor Actor, proposalID int, amount float64) (*models.Proposal, error) {
	if amount < 0 {
		return nil, validationf("grant amount cannot be negative")
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadHODProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusPendingGrant {
			return validationf("proposal in status %q is not awaiting allocation", proposal.Status)
		}

		extra := map[string]interface{}{"approved_amount": amount}
		if err := transitionProposal(tx, proposal.ProposalID, StatusPendingGrant, StatusApproved, extra); err != nil {
			return err
		}
		proposal.Status = string(StatusApproved)
		proposal.ApprovedAmount = &amount

		now := time.Now()
		res := tx.Model(&models.Grant{}).
			Where("proposal_id = ?", proposal.ProposalID).
			Updates(map[string]interface{}{"grant_amount": amount, "update_at": &now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFoundf("grant record for proposal %d", proposal.ProposalID)
		}

		link := proposalLink(proposal.ProposalID)
		msg := fmt.Sprintf("A grant of %.2f was allocated to your proposal '%s'.", amount, proposal.Title)
		if err := Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link); err != nil {
			return err
		}
		adminMsg := fmt.Sprintf("Grant allocated for proposal '%s'; set its final submission deadline.", proposal.Title)
		return NotifyAdmins(tx, &actor.UserID, adminMsg, &link)
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdateProjectStatus closes out an active project as Completed or
// Terminated.
func UpdateProjectStatus(db *gorm.DB, actor Actor, proposalID int, target string) (*models.Proposal, error) {
	to := ProposalStatus(target)
	if to != StatusCompleted && to != StatusTerminated {
		return nil, validationf("project status must be %q or %q", StatusCompleted, StatusTerminated)
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadHODProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusApproved {
			return validationf("only approved projects can be marked %q", target)
		}
		if err := transitionProposal(tx, proposal.ProposalID, StatusApproved, to, nil); err != nil {
			return err
		}
		proposal.Status = string(to)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// resetGrant creates the award row at amount 0, or zeroes an existing one if
// the proposal already went through an approval round.
func resetGrant(tx *gorm.DB, proposalID int) error {
	var grant models.Grant
	err := tx.Where("proposal_id = ?", proposalID).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&models.Grant{
			ProposalID:  proposalID,
			GrantAmount: 0,
			AwardedAt:   time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}
	now := time.Now()
	return tx.Model(&grant).Updates(map[string]interface{}{"grant_amount": 0, "update_at": &now}).Error
}

func loadHODProposal(tx *gorm.DB, actor Actor, proposalID int, dst *models.Proposal) error {
	if !actor.IsHOD() {
		return deniedf("only the head of department acts at this stage")
	}
	err := tx.First(dst, "proposal_id = ?", proposalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("proposal %d", proposalID)
	}
	if err != nil {
		return err
	}
	if dst.HODID == nil || *dst.HODID != actor.UserID {
		return deniedf("proposal %d is assigned to another head of department", proposalID)
	}
	return nil
}
