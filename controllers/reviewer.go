package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/services"
)

type ScreenRequest struct {
	Decision string `json:"decision" binding:"required"` // eligible | not_eligible | not_interested
}

// ScreenProposal records the reviewer's eligibility gate decision.
func ScreenProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req ScreenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := services.ScreenProposal(config.DB, currentActor(c), proposalID, req.Decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

type EvaluationRequest struct {
	Answers  map[string]int `json:"answers" binding:"required"`
	Feedback string         `json:"feedback"`
}

// SaveEvaluationDraft stores partial rubric answers without a transition.
func SaveEvaluationDraft(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := services.EvaluationForm{Answers: req.Answers, Feedback: req.Feedback}
	if err := services.SaveEvaluationDraft(config.DB, currentActor(c), proposalID, form); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
}

// GetEvaluationDraft returns the reviewer's stored draft for resumption.
func GetEvaluationDraft(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	proposal, ok := loadVisibleProposal(c, proposalID)
	if !ok {
		return
	}

	form, err := services.ParseEvaluationDraft(proposal.ReviewDraft)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": form})
}

// SubmitEvaluation finalises the 20-question rubric and routes the proposal
// by total score.
func SubmitEvaluation(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := services.EvaluationForm{Answers: req.Answers, Feedback: req.Feedback}
	proposal, err := services.SubmitEvaluation(config.DB, currentActor(c), proposalID, form)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposal": proposal,
		"score":    proposal.ReviewScore,
	})
}
