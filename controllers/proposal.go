package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"
)

// bindProposalForm reads the multipart proposal form shared by create and
// update. The document part is optional on update.
func bindProposalForm(c *gin.Context, requireDocument bool) (services.ProposalInput, bool) {
	var in services.ProposalInput

	in.Title = utils.SanitizeInput(c.PostForm("title"))
	in.ResearchArea = utils.SanitizeInput(c.PostForm("research_area"))
	in.Submit = c.PostForm("action") != "draft"

	budget, err := strconv.ParseFloat(c.PostForm("requested_budget"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requested_budget must be a number"})
		return in, false
	}
	in.RequestedBudget = budget

	file, err := c.FormFile("document")
	if err != nil {
		if requireDocument {
			c.JSON(http.StatusBadRequest, gin.H{"error": "proposal document is required"})
			return in, false
		}
		return in, true
	}

	// Store the file before anything references its name; a bad extension
	// fails here with no database writes.
	token, err := utils.SaveUploadedFile(c, file, utils.DocumentExtensions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return in, false
	}
	in.Document = token
	return in, true
}

// CreateProposal submits a new proposal into a cycle (researcher).
func CreateProposal(c *gin.Context) {
	cycleID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	in, ok := bindProposalForm(c, true)
	if !ok {
		return
	}

	proposal, err := services.CreateProposal(config.DB, currentActor(c), cycleID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"proposal": proposal})
}

// UpdateProposal edits a draft/submitted proposal (researcher, owner).
func UpdateProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	in, ok := bindProposalForm(c, false)
	if !ok {
		return
	}

	proposal, err := services.UpdateProposal(config.DB, currentActor(c), proposalID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// GetProposals lists proposals visible to the caller's role. Drafts stay
// private to their researcher.
func GetProposals(c *gin.Context) {
	actor := currentActor(c)
	limit, offset := pagination(c)

	q := config.DB.Model(&models.Proposal{})
	switch actor.Role {
	case models.RoleResearcher:
		q = q.Where("researcher_id = ?", actor.UserID)
	case models.RoleReviewer:
		q = q.Where("reviewer_id = ?", actor.UserID)
	case models.RoleHOD:
		q = q.Where("hod_id = ?", actor.UserID)
	case models.RoleAdmin:
		q = q.Where("status <> ?", string(services.StatusDraft))
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if cycleID := c.Query("cycle_id"); cycleID != "" {
		q = q.Where("cycle_id = ?", cycleID)
	}
	if search := utils.SanitizeInput(c.Query("search")); search != "" {
		q = q.Where("title LIKE ? OR research_area LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list proposals"})
		return
	}

	var proposals []models.Proposal
	if err := q.Order("proposal_id DESC").Limit(limit).Offset(offset).Find(&proposals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list proposals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposals": proposals,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetProposal returns one proposal if the caller may see it.
func GetProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	proposal, ok := loadVisibleProposal(c, proposalID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// GetProposalVersions returns the append-only version history.
func GetProposalVersions(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}
	if _, ok := loadVisibleProposal(c, proposalID); !ok {
		return
	}

	var versions []models.ProposalVersion
	if err := config.DB.Where("proposal_id = ?", proposalID).
		Order("version_number ASC").Find(&versions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list versions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// RevertProposal restores an earlier version's fields (researcher, owner).
func RevertProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req struct {
		VersionNumber int `json:"version_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := services.RevertProposal(config.DB, currentActor(c), proposalID, req.VersionNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"proposal": proposal})
}

// WithdrawProposal ends a non-terminal proposal at the owner's request.
func WithdrawProposal(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := services.WithdrawProposal(config.DB, currentActor(c), proposalID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Proposal withdrawn"})
}

// DownloadProposalDocument streams the current proposal document.
func DownloadProposalDocument(c *gin.Context) {
	proposalID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	proposal, ok := loadVisibleProposal(c, proposalID)
	if !ok {
		return
	}
	if proposal.Document == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No document on file"})
		return
	}

	c.FileAttachment(filepath.Join(utils.UploadPath(), proposal.Document), proposal.Document)
}

// loadVisibleProposal fetches a proposal and enforces role visibility:
// owners always, assigned evaluators theirs, admins everything but drafts.
func loadVisibleProposal(c *gin.Context, proposalID int) (*models.Proposal, bool) {
	var proposal models.Proposal
	if err := config.DB.First(&proposal, "proposal_id = ?", proposalID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		return nil, false
	}

	actor := currentActor(c)
	visible := false
	switch actor.Role {
	case models.RoleResearcher:
		visible = proposal.ResearcherID == actor.UserID
	case models.RoleReviewer:
		visible = proposal.ReviewerID != nil && *proposal.ReviewerID == actor.UserID
	case models.RoleHOD:
		visible = proposal.HODID != nil && *proposal.HODID == actor.UserID
	case models.RoleAdmin:
		visible = proposal.Status != string(services.StatusDraft)
	}
	if !visible {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return nil, false
	}
	return &proposal, true
}
