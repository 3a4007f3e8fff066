package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
)

type BudgetRequest struct {
	Amount      *float64 `json:"amount" binding:"required"`
	Description string   `json:"description"`
}

// CreateBudget appends a fund injection to the ledger (admin).
func CreateBudget(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := services.AddBudget(config.DB, currentActor(c), *req.Amount, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets lists ledger entries newest first.
func GetBudgets(c *gin.Context) {
	limit, offset := pagination(c)

	var budgets []models.Budget
	if err := config.DB.Order("budget_id DESC").Limit(limit).Offset(offset).Find(&budgets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list budgets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// UpdateBudget corrects a ledger entry (creating admin only).
func UpdateBudget(c *gin.Context) {
	budgetID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	budget, err := services.UpdateBudget(config.DB, currentActor(c), budgetID, *req.Amount, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget removes a ledger entry (creating admin only).
func DeleteBudget(c *gin.Context) {
	budgetID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteBudget(config.DB, currentActor(c), budgetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget entry deleted"})
}

// GetBudgetSummary reports the running balance and utilization statistics.
func GetBudgetSummary(c *gin.Context) {
	summary, err := services.GetBudgetSummary(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
