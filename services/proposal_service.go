package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// ProposalInput carries the researcher-editable fields of a proposal.
// Document is the stored filename token; empty means "keep the current one"
// on update.
type ProposalInput struct {
	Title           string
	ResearchArea    string
	RequestedBudget float64
	Document        string
	Submit          bool
}

func (in ProposalInput) validate(creating bool) error {
	if in.Title == "" {
		return validationf("title is required")
	}
	if in.ResearchArea == "" {
		return validationf("research area is required")
	}
	if in.RequestedBudget <= 0 {
		return validationf("requested budget must be positive")
	}
	if creating && in.Document == "" {
		return validationf("proposal document is required")
	}
	return nil
}

// CreateProposal creates a Draft or Submitted proposal inside an open cycle.
// Eligibility: the researcher's faculty must match the cycle's faculty.
func CreateProposal(db *gorm.DB, actor Actor, cycleID int, in ProposalInput) (*models.Proposal, error) {
	if !actor.IsResearcher() {
		return nil, deniedf("only researchers submit proposals")
	}
	if err := in.validate(true); err != nil {
		return nil, err
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		var cycle models.GrantCycle
		if err := tx.First(&cycle, "cycle_id = ?", cycleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("grant cycle %d", cycleID)
			}
			return err
		}

		var researcher models.User
		if err := tx.First(&researcher, "user_id = ?", actor.UserID).Error; err != nil {
			return err
		}
		if researcher.Faculty != cycle.Faculty {
			return deniedf("cycle %q belongs to faculty %s", cycle.Name, cycle.Faculty)
		}
		if cycle.SubmissionClosed(time.Now()) {
			return validationf("grant cycle %q is closed for submissions", cycle.Name)
		}

		status := StatusDraft
		var submitted *time.Time
		if in.Submit {
			status = StatusSubmitted
			now := time.Now()
			submitted = &now
		}

		now := time.Now()
		proposal = models.Proposal{
			Title:           in.Title,
			ResearchArea:    in.ResearchArea,
			RequestedBudget: in.RequestedBudget,
			Status:          string(status),
			SubmissionDate:  submitted,
			Document:        in.Document,
			ResearcherID:    actor.UserID,
			CycleID:         cycle.CycleID,
			CreateAt:        &now,
			UpdateAt:        &now,
		}
		if err := tx.Create(&proposal).Error; err != nil {
			return err
		}

		if err := snapshotVersion(tx, &proposal, "Initial submission"); err != nil {
			return err
		}

		if in.Submit {
			link := proposalLink(proposal.ProposalID)
			msg := fmt.Sprintf("New proposal '%s' submitted by %s and awaiting evaluator assignment.", proposal.Title, researcher.Name)
			if err := NotifyAdmins(tx, &actor.UserID, msg, &link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// UpdateProposal lets the owning researcher edit a Draft/Submitted proposal
// before evaluators are assigned and while the cycle stays open. Any change
// to the editable fields appends a version snapshot.
func UpdateProposal(db *gorm.DB, actor Actor, proposalID int, in ProposalInput) (*models.Proposal, error) {
	if !actor.IsResearcher() {
		return nil, deniedf("only researchers edit proposals")
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadOwnedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}

		from := ProposalStatus(proposal.Status)
		if from != StatusDraft && from != StatusSubmitted {
			return validationf("proposal can no longer be edited in status %q", proposal.Status)
		}
		if proposal.ReviewerID != nil || proposal.HODID != nil {
			return validationf("proposal is already assigned for evaluation")
		}

		var cycle models.GrantCycle
		if err := tx.First(&cycle, "cycle_id = ?", proposal.CycleID).Error; err != nil {
			return err
		}
		if cycle.SubmissionClosed(time.Now()) {
			return validationf("grant cycle %q is closed for submissions", cycle.Name)
		}

		document := proposal.Document
		if in.Document != "" {
			document = in.Document
		}
		changed := in.Title != proposal.Title ||
			in.ResearchArea != proposal.ResearchArea ||
			in.RequestedBudget != proposal.RequestedBudget ||
			document != proposal.Document

		to := StatusDraft
		if in.Submit {
			to = StatusSubmitted
		}
		firstSubmit := from == StatusDraft && to == StatusSubmitted

		extra := map[string]interface{}{
			"title":            in.Title,
			"research_area":    in.ResearchArea,
			"requested_budget": in.RequestedBudget,
			"document":         document,
		}
		if firstSubmit {
			now := time.Now()
			extra["submission_date"] = &now
		}
		if err := transitionProposal(tx, proposal.ProposalID, from, to, extra); err != nil {
			return err
		}

		proposal.Title = in.Title
		proposal.ResearchArea = in.ResearchArea
		proposal.RequestedBudget = in.RequestedBudget
		proposal.Document = document
		proposal.Status = string(to)

		if changed {
			if err := snapshotVersion(tx, &proposal, "Updated proposal"); err != nil {
				return err
			}
		}

		if firstSubmit {
			link := proposalLink(proposal.ProposalID)
			msg := fmt.Sprintf("Proposal '%s' submitted and awaiting evaluator assignment.", proposal.Title)
			if err := NotifyAdmins(tx, &actor.UserID, msg, &link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// WithdrawProposal moves any non-terminal proposal to Withdrawn at the
// owner's request and tells the admins.
func WithdrawProposal(db *gorm.DB, actor Actor, proposalID int) error {
	if !actor.IsResearcher() {
		return deniedf("only the owning researcher withdraws a proposal")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := loadOwnedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}

		from := ProposalStatus(proposal.Status)
		if IsTerminal(from) {
			return validationf("proposal already ended in status %q", proposal.Status)
		}
		if err := transitionProposal(tx, proposal.ProposalID, from, StatusWithdrawn, nil); err != nil {
			return err
		}

		link := proposalLink(proposal.ProposalID)
		msg := fmt.Sprintf("Proposal '%s' was withdrawn by its researcher.", proposal.Title)
		return NotifyAdmins(tx, &actor.UserID, msg, &link)
	})
}

// RevertProposal copies version N's snapshot onto the live proposal and logs
// a fresh version; intervening versions stay untouched.
func RevertProposal(db *gorm.DB, actor Actor, proposalID, versionNumber int) (*models.Proposal, error) {
	if !actor.IsResearcher() {
		return nil, deniedf("only the owning researcher reverts a proposal")
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadOwnedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}

		status := ProposalStatus(proposal.Status)
		if status != StatusDraft && status != StatusSubmitted {
			return validationf("proposal can no longer be edited in status %q", proposal.Status)
		}
		if proposal.ReviewerID != nil || proposal.HODID != nil {
			return validationf("proposal is already assigned for evaluation")
		}

		var version models.ProposalVersion
		err := tx.Where("proposal_id = ? AND version_number = ?", proposalID, versionNumber).First(&version).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("version %d of proposal %d", versionNumber, proposalID)
		}
		if err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"title":            version.Title,
			"research_area":    version.ResearchArea,
			"requested_budget": version.RequestedBudget,
			"document":         version.Document,
			"update_at":        &now,
		}
		if err := tx.Model(&models.Proposal{}).Where("proposal_id = ?", proposalID).Updates(updates).Error; err != nil {
			return err
		}

		proposal.Title = version.Title
		proposal.ResearchArea = version.ResearchArea
		proposal.RequestedBudget = version.RequestedBudget
		proposal.Document = version.Document

		return snapshotVersion(tx, &proposal, fmt.Sprintf("Reverted to Version %d", versionNumber))
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// snapshotVersion appends the next version for the proposal's current
// editable fields.
func snapshotVersion(tx *gorm.DB, p *models.Proposal, note string) error {
	next, err := NextVersionNumber(tx, p.ProposalID)
	if err != nil {
		return err
	}
	return tx.Create(&models.ProposalVersion{
		ProposalID:      p.ProposalID,
		VersionNumber:   next,
		Title:           p.Title,
		ResearchArea:    p.ResearchArea,
		RequestedBudget: p.RequestedBudget,
		Document:        p.Document,
		Note:            note,
		CreateAt:        time.Now(),
	}).Error
}

// NextVersionNumber returns max(version_number)+1 for the proposal.
func NextVersionNumber(tx *gorm.DB, proposalID int) (int, error) {
	var max int
	err := tx.Model(&models.ProposalVersion{}).
		Where("proposal_id = ?", proposalID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func loadOwnedProposal(tx *gorm.DB, actor Actor, proposalID int, dst *models.Proposal) error {
	err := tx.First(dst, "proposal_id = ?", proposalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("proposal %d", proposalID)
	}
	if err != nil {
		return err
	}
	if dst.ResearcherID != actor.UserID {
		return deniedf("proposal %d belongs to another researcher", proposalID)
	}
	return nil
}
