package services

import (
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"grant-management-api/metrics"
	"grant-management-api/models"
)

// ProposalStatus enumerates every status a proposal can hold. No other value
// is ever written to proposals.status.
type ProposalStatus string

const (
	StatusDraft                 ProposalStatus = "Draft"
	StatusSubmitted             ProposalStatus = "Submitted"
	StatusUnderReview           ProposalStatus = "Under Review"
	StatusUnderScreening        ProposalStatus = "Under Screening"
	StatusPassedScreening       ProposalStatus = "Passed Screening"
	StatusFailedScreening       ProposalStatus = "Failed Screening"
	StatusReturnForReassignment ProposalStatus = "Return for Reassignment"
	StatusPendingHODApproval    ProposalStatus = "Pending HOD Approval"
	StatusRejected              ProposalStatus = "Rejected"
	StatusPendingGrant          ProposalStatus = "Pending Grant"
	StatusApproved              ProposalStatus = "Approved"
	StatusCompleted             ProposalStatus = "Completed"
	StatusTerminated            ProposalStatus = "Terminated"
	StatusWithdrawn             ProposalStatus = "Withdrawn"
)

// DefaultPassThreshold is the review score needed to reach the HOD. The value
// changed between deployments (75, later 80), so it is configurable via
// REVIEW_PASS_THRESHOLD rather than fixed.
const DefaultPassThreshold = 75

// PassThreshold returns the configured minimum passing review score.
func PassThreshold() int {
	if raw := os.Getenv("REVIEW_PASS_THRESHOLD"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= MaxReviewScore {
			return v
		}
	}
	return DefaultPassThreshold
}

// terminal statuses end the lifecycle; nothing transitions out of them.
var terminalStatuses = map[ProposalStatus]bool{
	StatusFailedScreening: true,
	StatusRejected:        true,
	StatusWithdrawn:       true,
	StatusCompleted:       true,
	StatusTerminated:      true,
}

// IsTerminal reports whether s ends the proposal lifecycle.
func IsTerminal(s ProposalStatus) bool { return terminalStatuses[s] }

// screeningEligible holds the statuses a reviewer may act on at the screening
// gate. "Under Screening" is a legacy label some rows still carry.
var screeningEligible = map[ProposalStatus]bool{
	StatusSubmitted:      true,
	StatusUnderReview:    true,
	StatusUnderScreening: true,
}

// ScreeningEligible reports whether a reviewer may screen a proposal in s.
func ScreeningEligible(s ProposalStatus) bool { return screeningEligible[s] }

// transitions is the authoritative from → to table. Guard conditions (actor,
// ownership, deadlines) live in the operation functions; this table only
// decides whether the edge exists at all.
var transitions = map[ProposalStatus][]ProposalStatus{
	StatusDraft:     {StatusDraft, StatusSubmitted, StatusWithdrawn},
	StatusSubmitted: {StatusDraft, StatusSubmitted, StatusUnderReview, StatusPassedScreening, StatusFailedScreening, StatusReturnForReassignment, StatusWithdrawn},
	StatusUnderReview: {
		StatusPassedScreening, StatusFailedScreening, StatusReturnForReassignment, StatusWithdrawn,
	},
	StatusUnderScreening:        {StatusPassedScreening, StatusFailedScreening, StatusReturnForReassignment, StatusWithdrawn},
	StatusPassedScreening:       {StatusPendingHODApproval, StatusRejected, StatusWithdrawn},
	StatusReturnForReassignment: {StatusUnderReview, StatusWithdrawn},
	StatusPendingHODApproval:    {StatusPendingGrant, StatusRejected, StatusWithdrawn},
	StatusPendingGrant:          {StatusApproved, StatusWithdrawn},
	StatusApproved:              {StatusCompleted, StatusTerminated, StatusWithdrawn},
}

// TransitionAllowed reports whether the lifecycle permits moving from one
// status to another.
func TransitionAllowed(from, to ProposalStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionProposal performs a guarded conditional status update. The WHERE
// clause pins the expected current status so two actors racing on the same
// proposal cannot both win; zero rows affected surfaces as ErrConflict.
func transitionProposal(tx *gorm.DB, proposalID int, from, to ProposalStatus, extra map[string]interface{}) error {
	if !TransitionAllowed(from, to) {
		return validationf("cannot move proposal from %q to %q", from, to)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    string(to),
		"update_at": &now,
	}
	for k, v := range extra {
		updates[k] = v
	}

	res := tx.Model(&models.Proposal{}).
		Where("proposal_id = ? AND status = ?", proposalID, string(from)).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}

	metrics.ProposalTransitions.WithLabelValues(string(to)).Inc()
	return nil
}
