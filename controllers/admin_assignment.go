package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
)

type AssignEvaluatorsRequest struct {
	ReviewerID       int     `json:"reviewer_id" binding:"required"`
	HODID            int     `json:"hod_id" binding:"required"`
	ReviewerDeadline *string `json:"reviewer_deadline"` // YYYY-MM-DD, optional
	HODDeadline      *string `json:"hod_deadline"`
}

// AssignEvaluators attaches a reviewer and an HOD to a submitted proposal
// (admin).
func AssignEvaluators(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req AssignEvaluatorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerDue, ok := parseOptionalDate(c, req.ReviewerDeadline)
	if !ok {
		return
	}
	hodDue, ok := parseOptionalDate(c, req.HODDeadline)
	if !ok {
		return
	}

	err := services.AssignEvaluators(config.DB, currentActor(c), proposalID, req.ReviewerID, req.HODID, reviewerDue, hodDue)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Evaluators assigned"})
}

type SetDeadlineRequest struct {
	Type    string `json:"type" binding:"required"`
	DueDate string `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// SetProposalDeadline upserts a per-proposal deadline (admin). The Final
// Submission type requires an approved proposal and notifies its researcher.
func SetProposalDeadline(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req SetDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}

	actor := currentActor(c)
	if req.Type == models.DeadlineFinal {
		if err := services.SetFinalDeadline(config.DB, actor, proposalID, due); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Final submission deadline set"})
		return
	}

	if !actor.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	if err := services.UpsertDeadline(config.DB, proposalID, req.Type, due); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deadline set"})
}

type ExtensionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RequestDeadlineExtension lets the owning researcher ask the admins for more
// time on the final submission deadline.
func RequestDeadlineExtension(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req ExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.RequestDeadlineExtension(config.DB, currentActor(c), proposalID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extension request sent to admins"})
}

func parseOptionalDate(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}
