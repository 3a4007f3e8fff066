package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/services"
)

type DecisionRequest struct {
	Decision string `json:"decision" binding:"required"` // approve | reject
	Feedback string `json:"feedback"`
}

// DecideProposal records the HOD's approve/reject call.
func DecideProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := services.Decide(config.DB, currentActor(c), proposalID, req.Decision, req.Feedback)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

type AllocateGrantRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// AllocateGrant sets the awarded amount on an approved-track proposal.
func AllocateGrant(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req AllocateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := services.AllocateGrant(config.DB, currentActor(c), proposalID, *req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

type ProjectStatusRequest struct {
	Status string `json:"status" binding:"required"` // Completed | Terminated
}

// UpdateProjectStatus closes out an active project.
func UpdateProjectStatus(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req ProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := services.UpdateProjectStatus(config.DB, currentActor(c), proposalID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}
