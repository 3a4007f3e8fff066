package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"
)

// SubmitProgressReport files a periodic report on an approved project
// (researcher, multipart form with optional document).
func SubmitProgressReport(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	usage, err := strconv.ParseFloat(c.DefaultPostForm("financial_usage", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "financial_usage must be a number"})
		return
	}

	in := services.ReportInput{
		Title:          utils.SanitizeInput(c.PostForm("title")),
		Content:        utils.SanitizeInput(c.PostForm("content")),
		FinancialUsage: usage,
	}

	if file, ferr := c.FormFile("document"); ferr == nil {
		token, serr := utils.SaveUploadedFile(c, file, utils.DocumentExtensions)
		if serr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": serr.Error()})
			return
		}
		in.Document = token
	}

	report, err := services.SubmitProgressReport(config.DB, currentActor(c), proposalID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// GetProgressReports lists a proposal's reports, newest first, with the
// project's grant utilization.
func GetProgressReports(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if _, ok := loadVisibleProposal(c, proposalID); !ok {
		return
	}

	var reports []models.ProgressReport
	if err := config.DB.Where("proposal_id = ?", proposalID).
		Order("submitted_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	resp := gin.H{"reports": reports}
	if utilization, err := services.ProjectUtilization(config.DB, proposalID); err == nil {
		resp["utilization_percent"] = utilization
	}

	c.JSON(http.StatusOK, resp)
}

type ReportReviewRequest struct {
	Decision string `json:"decision" binding:"required"` // validate | revise
	Feedback string `json:"feedback"`
}

// ReviewProgressReport records the HOD's validate/revise call on one report.
func ReviewProgressReport(c *gin.Context) {
	reportID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req ReportReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := services.ReviewProgressReport(config.DB, currentActor(c), reportID, req.Decision, req.Feedback)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
