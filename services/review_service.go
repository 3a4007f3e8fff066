package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"grant-management-api/models"
)

// Evaluation rubric bounds: 20 questions scored 1-5 for a 0-100 total.
const (
	EvaluationQuestionCount = 20
	MinAnswerScore          = 1
	MaxAnswerScore          = 5
	MaxReviewScore          = EvaluationQuestionCount * MaxAnswerScore
)

// Screening decisions accepted from the assigned reviewer.
const (
	ScreenEligible      = "eligible"
	ScreenNotEligible   = "not_eligible"
	ScreenNotInterested = "not_interested"
)

// EvaluationForm is the reviewer's rubric payload. Answers map question
// numbers ("1".."20") to scores. The shape is validated here before anything
// trusts it as "all answered".
type EvaluationForm struct {
	Answers  map[string]int `json:"answers"`
	Feedback string         `json:"feedback"`
}

// Validate rejects unknown question keys and out-of-range scores. Missing
// answers are allowed; completeness is checked separately on final submit.
func (f EvaluationForm) Validate() error {
	for key, score := range f.Answers {
		q, err := strconv.Atoi(key)
		if err != nil || q < 1 || q > EvaluationQuestionCount {
			return validationf("unknown question %q", key)
		}
		if score < MinAnswerScore || score > MaxAnswerScore {
			return validationf("question %s score %d outside %d-%d", key, score, MinAnswerScore, MaxAnswerScore)
		}
	}
	return nil
}

// MissingCount returns how many of the 20 questions lack an answer.
func (f EvaluationForm) MissingCount() int {
	answered := 0
	for q := 1; q <= EvaluationQuestionCount; q++ {
		if _, ok := f.Answers[strconv.Itoa(q)]; ok {
			answered++
		}
	}
	return EvaluationQuestionCount - answered
}

// Total sums all answered questions.
func (f EvaluationForm) Total() int {
	total := 0
	for _, score := range f.Answers {
		total += score
	}
	return total
}

// ParseEvaluationDraft decodes a stored draft blob back into a form,
// validating its shape.
func ParseEvaluationDraft(raw datatypes.JSON) (EvaluationForm, error) {
	var form EvaluationForm
	if len(raw) == 0 {
		return EvaluationForm{Answers: map[string]int{}}, nil
	}
	if err := json.Unmarshal(raw, &form); err != nil {
		return form, validationf("malformed evaluation draft: %v", err)
	}
	if form.Answers == nil {
		form.Answers = map[string]int{}
	}
	if err := form.Validate(); err != nil {
		return form, err
	}
	return form, nil
}

// ScreenProposal records the assigned reviewer's eligibility gate decision.
func ScreenProposal(db *gorm.DB, actor Actor, proposalID int, decision string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadAssignedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}

		from := ProposalStatus(proposal.Status)
		if !ScreeningEligible(from) {
			return validationf("proposal in status %q is past screening", proposal.Status)
		}

		link := proposalLink(proposal.ProposalID)
		switch decision {
		case ScreenEligible:
			if err := transitionProposal(tx, proposal.ProposalID, from, StatusPassedScreening, nil); err != nil {
				return err
			}
			proposal.Status = string(StatusPassedScreening)
			msg := fmt.Sprintf("Your proposal '%s' passed screening and moved to detailed evaluation.", proposal.Title)
			return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)

		case ScreenNotEligible:
			if err := transitionProposal(tx, proposal.ProposalID, from, StatusFailedScreening, nil); err != nil {
				return err
			}
			proposal.Status = string(StatusFailedScreening)

			var cycle models.GrantCycle
			if err := tx.First(&cycle, "cycle_id = ?", proposal.CycleID).Error; err != nil {
				return err
			}
			msg := fmt.Sprintf("Your proposal '%s' failed screening.", proposal.Title)
			if !cycle.SubmissionClosed(timeNow()) {
				msg += " You may submit a new proposal before the cycle closes."
			} else {
				msg += " The grant cycle has closed."
			}
			return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)

		case ScreenNotInterested:
			// Clearing the reviewer keeps a declined assignee from acting on
			// the proposal while it waits in the admin queue.
			extra := map[string]interface{}{"reviewer_id": gorm.Expr("NULL")}
			if err := transitionProposal(tx, proposal.ProposalID, from, StatusReturnForReassignment, extra); err != nil {
				return err
			}
			proposal.Status = string(StatusReturnForReassignment)
			proposal.ReviewerID = nil
			msg := fmt.Sprintf("Reviewer declined proposal '%s'; reassignment required.", proposal.Title)
			return NotifyAdmins(tx, &actor.UserID, msg, &link)

		default:
			return validationf("unknown screening decision %q", decision)
		}
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

// SaveEvaluationDraft persists partial rubric answers without touching the
// proposal status.
func SaveEvaluationDraft(db *gorm.DB, actor Actor, proposalID int, form EvaluationForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var proposal models.Proposal
		if err := loadAssignedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusPassedScreening {
			return validationf("evaluation drafts require status %q, proposal is %q", StatusPassedScreening, proposal.Status)
		}

		blob, err := json.Marshal(form)
		if err != nil {
			return err
		}
		now := timeNow()
		return tx.Model(&models.Proposal{}).
			Where("proposal_id = ?", proposal.ProposalID).
			Updates(map[string]interface{}{
				"review_draft": datatypes.JSON(blob),
				"update_at":    &now,
			}).Error
	})
}

// SubmitEvaluation finalises the rubric. All 20 questions must be answered;
// the total routes the proposal to the HOD or to Rejected against the
// configured threshold.
func SubmitEvaluation(db *gorm.DB, actor Actor, proposalID int, form EvaluationForm) (*models.Proposal, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if missing := form.MissingCount(); missing > 0 {
		return nil, validationf("%d of %d questions are unanswered", missing, EvaluationQuestionCount)
	}

	var proposal models.Proposal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadAssignedProposal(tx, actor, proposalID, &proposal); err != nil {
			return err
		}
		if ProposalStatus(proposal.Status) != StatusPassedScreening {
			return validationf("evaluation requires status %q, proposal is %q", StatusPassedScreening, proposal.Status)
		}

		total := form.Total()
		blob, err := json.Marshal(form)
		if err != nil {
			return err
		}
		extra := map[string]interface{}{
			"review_score":    total,
			"review_feedback": form.Feedback,
			"review_draft":    datatypes.JSON(blob),
		}

		link := proposalLink(proposal.ProposalID)
		if total >= PassThreshold() {
			if err := transitionProposal(tx, proposal.ProposalID, StatusPassedScreening, StatusPendingHODApproval, extra); err != nil {
				return err
			}
			proposal.Status = string(StatusPendingHODApproval)
			proposal.ReviewScore = &total

			if proposal.HODID == nil {
				return validationf("proposal %d has no assigned HOD", proposal.ProposalID)
			}
			msg := fmt.Sprintf("Proposal '%s' scored %d and awaits your decision.", proposal.Title, total)
			return Notify(tx, *proposal.HODID, &actor.UserID, msg, &link)
		}

		if err := transitionProposal(tx, proposal.ProposalID, StatusPassedScreening, StatusRejected, extra); err != nil {
			return err
		}
		proposal.Status = string(StatusRejected)
		proposal.ReviewScore = &total
		msg := fmt.Sprintf("Your proposal '%s' was rejected after evaluation (score %d).", proposal.Title, total)
		return Notify(tx, proposal.ResearcherID, &actor.UserID, msg, &link)
	})
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func loadAssignedProposal(tx *gorm.DB, actor Actor, proposalID int, dst *models.Proposal) error {
	if !actor.IsReviewer() {
		return deniedf("only reviewers act at this stage")
	}
	err := tx.First(dst, "proposal_id = ?", proposalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("proposal %d", proposalID)
	}
	if err != nil {
		return err
	}
	if dst.ReviewerID == nil || *dst.ReviewerID != actor.UserID {
		return deniedf("proposal %d is assigned to another reviewer", proposalID)
	}
	return nil
}
