package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"grant-management-api/metrics"
	"grant-management-api/models"
)

// ReminderWindowDays bounds how far ahead the deadline sweep reminds actors.
const ReminderWindowDays = 7

// Notify inserts a notification inside the caller's transaction so the row
// commits or rolls back together with the transition that caused it.
func Notify(tx *gorm.DB, recipientID int, senderID *int, message string, link *string) error {
	n := models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Message:     message,
		Link:        link,
		IsRead:      false,
		CreateAt:    time.Now(),
	}
	if err := tx.Create(&n).Error; err != nil {
		return err
	}
	metrics.NotificationsCreated.Inc()
	return nil
}

// NotifyAdmins fans a message out to every admin user.
func NotifyAdmins(tx *gorm.DB, senderID *int, message string, link *string) error {
	var adminIDs []int
	if err := tx.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Pluck("user_id", &adminIDs).Error; err != nil {
		return err
	}
	for _, id := range adminIDs {
		if err := Notify(tx, id, senderID, message, link); err != nil {
			return err
		}
	}
	return nil
}

// HasUnreadMessage reports whether the recipient already has the exact same
// message unread. The reminder sweep uses this to stay idempotent per message
// text: re-running the sweep never duplicates "3 days left", but once the
// text ticks down to "2 days left" a fresh row is allowed.
func HasUnreadMessage(db *gorm.DB, recipientID int, message string) (bool, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND message = ? AND is_read = ?", recipientID, message, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReminderMessage builds the days-left text for a pending deadline. Day-count
// changes make distinct messages, which is what lets HasUnreadMessage gate
// duplicates by exact match.
func ReminderMessage(deadlineType, proposalTitle string, daysLeft int) string {
	switch {
	case daysLeft <= 0:
		return fmt.Sprintf("Reminder: %s deadline for proposal '%s' is due today.", deadlineType, proposalTitle)
	case daysLeft == 1:
		return fmt.Sprintf("Reminder: %s deadline for proposal '%s' is due tomorrow.", deadlineType, proposalTitle)
	default:
		return fmt.Sprintf("Reminder: %s deadline for proposal '%s' is due in %d days.", deadlineType, proposalTitle, daysLeft)
	}
}

// DaysUntil counts whole days from today to the due date, by campus calendar
// day.
func DaysUntil(today, due time.Time) int {
	t := models.DateOf(today)
	d := models.DateOf(due)
	return int(d.Sub(t).Hours() / 24)
}

type reminderTarget struct {
	ProposalID int
	Title      string
	Type       string
	DueDate    time.Time
}

// SendDeadlineReminders runs the lazy reminder sweep for one actor. It is
// triggered on dashboard load, not by a timer, so reminders only materialise
// when the actor next visits.
func SendDeadlineReminders(db *gorm.DB, actor Actor, today time.Time) error {
	var targets []reminderTarget

	q := db.Table("deadlines").
		Select("deadlines.proposal_id, proposals.title, deadlines.type, deadlines.due_date").
		Joins("JOIN proposals ON proposals.proposal_id = deadlines.proposal_id")

	switch actor.Role {
	case models.RoleReviewer:
		q = q.Where("deadlines.type = ? AND proposals.reviewer_id = ? AND proposals.status IN ?",
			models.DeadlineReviewer, actor.UserID,
			[]string{string(StatusUnderReview), string(StatusUnderScreening), string(StatusPassedScreening)})
	case models.RoleHOD:
		q = q.Where("deadlines.type = ? AND proposals.hod_id = ? AND proposals.status IN ?",
			models.DeadlineHOD, actor.UserID,
			[]string{string(StatusPendingHODApproval), string(StatusPendingGrant)})
	case models.RoleResearcher:
		q = q.Where("deadlines.type = ? AND proposals.researcher_id = ? AND proposals.status = ?",
			models.DeadlineFinal, actor.UserID, string(StatusApproved))
	default:
		return nil
	}

	if err := q.Scan(&targets).Error; err != nil {
		return err
	}

	for _, t := range targets {
		days := DaysUntil(today, t.DueDate)
		if days < 0 || days > ReminderWindowDays {
			continue
		}
		msg := ReminderMessage(t.Type, t.Title, days)
		dup, err := HasUnreadMessage(db, actor.UserID, msg)
		if err != nil {
			return err
		}
		if dup {
			continue
		}
		link := proposalLink(t.ProposalID)
		if err := Notify(db, actor.UserID, nil, msg, &link); err != nil {
			return err
		}
	}
	return nil
}

func proposalLink(proposalID int) string {
	return fmt.Sprintf("/proposals/%d", proposalID)
}
