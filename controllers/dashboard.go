package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
)

// GetDashboardStats returns role-scoped counters. Loading the dashboard also
// runs the lazy deadline reminder sweep for the caller; reminders exist only
// once a relevant actor shows up.
func GetDashboardStats(c *gin.Context) {
	actor := currentActor(c)

	if err := services.SendDeadlineReminders(config.DB, actor, time.Now()); err != nil {
		// The sweep failing shouldn't take the dashboard down with it.
		log.Printf("deadline reminder sweep failed for user %d: %v", actor.UserID, err)
	}

	stats := gin.H{}
	var err error
	switch actor.Role {
	case models.RoleAdmin:
		stats, err = adminStats()
	case models.RoleResearcher:
		stats, err = countByStatus("researcher_id", actor.UserID)
	case models.RoleReviewer:
		stats, err = countByStatus("reviewer_id", actor.UserID)
	case models.RoleHOD:
		stats, err = countByStatus("hod_id", actor.UserID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func adminStats() (gin.H, error) {
	var pendingAssignment, active, total int64

	if err := config.DB.Model(&models.Proposal{}).
		Where("status IN ?", []string{string(services.StatusSubmitted), string(services.StatusReturnForReassignment)}).
		Count(&pendingAssignment).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.Proposal{}).
		Where("status = ?", string(services.StatusApproved)).
		Count(&active).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Model(&models.Proposal{}).
		Where("status <> ?", string(services.StatusDraft)).
		Count(&total).Error; err != nil {
		return nil, err
	}

	summary, err := services.GetBudgetSummary(config.DB)
	if err != nil {
		return nil, err
	}

	return gin.H{
		"pending_assignment": pendingAssignment,
		"active_projects":    active,
		"total_proposals":    total,
		"budget":             summary,
	}, nil
}

func countByStatus(column string, userID int) (gin.H, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := config.DB.Model(&models.Proposal{}).
		Select("status, COUNT(*) AS count").
		Where(column+" = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byStatus := gin.H{}
	var total int64
	for _, r := range rows {
		byStatus[r.Status] = r.Count
		total += r.Count
	}
	return gin.H{"by_status": byStatus, "total": total}, nil
}
