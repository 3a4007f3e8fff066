package services

import "testing"

func TestTransitionTable(t *testing.T) {
	allowed := []struct {
		from, to ProposalStatus
	}{
		{StatusDraft, StatusSubmitted},
		{StatusSubmitted, StatusUnderReview},
		{StatusUnderReview, StatusPassedScreening},
		{StatusUnderReview, StatusFailedScreening},
		{StatusUnderReview, StatusReturnForReassignment},
		{StatusReturnForReassignment, StatusUnderReview},
		{StatusPassedScreening, StatusPendingHODApproval},
		{StatusPassedScreening, StatusRejected},
		{StatusPendingHODApproval, StatusPendingGrant},
		{StatusPendingHODApproval, StatusRejected},
		{StatusPendingGrant, StatusApproved},
		{StatusApproved, StatusCompleted},
		{StatusApproved, StatusTerminated},
		{StatusSubmitted, StatusWithdrawn},
		{StatusApproved, StatusWithdrawn},
	}
	for _, tc := range allowed {
		if !TransitionAllowed(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	forbidden := []struct {
		from, to ProposalStatus
	}{
		{StatusDraft, StatusUnderReview},
		{StatusDraft, StatusApproved},
		{StatusSubmitted, StatusPendingGrant},
		{StatusRejected, StatusSubmitted},
		{StatusWithdrawn, StatusSubmitted},
		{StatusCompleted, StatusApproved},
		{StatusFailedScreening, StatusPassedScreening},
		{StatusApproved, StatusPendingGrant},
		{StatusPendingGrant, StatusPendingHODApproval},
	}
	for _, tc := range forbidden {
		if TransitionAllowed(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []ProposalStatus{
		StatusDraft, StatusSubmitted, StatusUnderReview, StatusUnderScreening,
		StatusPassedScreening, StatusFailedScreening, StatusReturnForReassignment,
		StatusPendingHODApproval, StatusRejected, StatusPendingGrant,
		StatusApproved, StatusCompleted, StatusTerminated, StatusWithdrawn,
	}
	for _, from := range all {
		if !IsTerminal(from) {
			continue
		}
		for _, to := range all {
			if TransitionAllowed(from, to) {
				t.Errorf("terminal status %s must not transition to %s", from, to)
			}
		}
	}
}

func TestScreeningEligible(t *testing.T) {
	for _, s := range []ProposalStatus{StatusSubmitted, StatusUnderReview, StatusUnderScreening} {
		if !ScreeningEligible(s) {
			t.Errorf("expected %s to be screening-eligible", s)
		}
	}
	for _, s := range []ProposalStatus{StatusDraft, StatusPassedScreening, StatusRejected, StatusApproved} {
		if ScreeningEligible(s) {
			t.Errorf("expected %s not to be screening-eligible", s)
		}
	}
}

func TestPassThreshold(t *testing.T) {
	t.Setenv("REVIEW_PASS_THRESHOLD", "")
	if got := PassThreshold(); got != DefaultPassThreshold {
		t.Fatalf("default threshold: got %d want %d", got, DefaultPassThreshold)
	}

	t.Setenv("REVIEW_PASS_THRESHOLD", "80")
	if got := PassThreshold(); got != 80 {
		t.Fatalf("configured threshold: got %d want 80", got)
	}

	// Garbage falls back to the default.
	t.Setenv("REVIEW_PASS_THRESHOLD", "lots")
	if got := PassThreshold(); got != DefaultPassThreshold {
		t.Fatalf("invalid threshold: got %d want %d", got, DefaultPassThreshold)
	}
	t.Setenv("REVIEW_PASS_THRESHOLD", "500")
	if got := PassThreshold(); got != DefaultPassThreshold {
		t.Fatalf("out-of-range threshold: got %d want %d", got, DefaultPassThreshold)
	}
}
