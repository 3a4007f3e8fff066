package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// BudgetSummary is the admin/HOD budget view: the running ledger balance and
// how much of the pool approved proposals ask for.
type BudgetSummary struct {
	TotalFunds         float64 `json:"total_funds"`
	TotalGranted       float64 `json:"total_granted"`
	RemainingBalance   float64 `json:"remaining_balance"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// AddBudget appends a fund injection to the ledger.
func AddBudget(db *gorm.DB, actor Actor, amount float64, description string) (*models.Budget, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins manage the budget ledger")
	}
	if amount <= 0 {
		return nil, validationf("budget amount must be positive")
	}

	budget := models.Budget{
		Amount:      amount,
		Description: description,
		AdminID:     actor.UserID,
		CreateAt:    time.Now(),
	}
	if err := db.Create(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

// UpdateBudget is an administrative correction, restricted to the entry's
// creator.
func UpdateBudget(db *gorm.DB, actor Actor, budgetID int, amount float64, description string) (*models.Budget, error) {
	if amount <= 0 {
		return nil, validationf("budget amount must be positive")
	}

	var budget models.Budget
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := loadOwnBudget(tx, actor, budgetID, &budget); err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&budget).Updates(map[string]interface{}{
			"amount":      amount,
			"description": description,
			"update_at":   &now,
		}).Error; err != nil {
			return err
		}
		budget.Amount = amount
		budget.Description = description
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget removes a ledger entry, restricted to its creator.
func DeleteBudget(db *gorm.DB, actor Actor, budgetID int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var budget models.Budget
		if err := loadOwnBudget(tx, actor, budgetID, &budget); err != nil {
			return err
		}
		return tx.Delete(&budget).Error
	})
}

// GetBudgetSummary computes the ledger balance and utilization. Division by
// zero yields 0 utilization when no funds exist.
func GetBudgetSummary(db *gorm.DB) (BudgetSummary, error) {
	var summary BudgetSummary

	if err := db.Raw("SELECT COALESCE(SUM(amount), 0) FROM budgets").Scan(&summary.TotalFunds).Error; err != nil {
		return summary, err
	}
	if err := db.Raw("SELECT COALESCE(SUM(grant_amount), 0) FROM grants").Scan(&summary.TotalGranted).Error; err != nil {
		return summary, err
	}
	summary.RemainingBalance = summary.TotalFunds - summary.TotalGranted

	var approvedRequested float64
	if err := db.Raw("SELECT COALESCE(SUM(requested_budget), 0) FROM proposals WHERE status = ?", string(StatusApproved)).
		Scan(&approvedRequested).Error; err != nil {
		return summary, err
	}
	summary.UtilizationPercent = UtilizationPercent(approvedRequested, summary.TotalFunds)
	return summary, nil
}

// UtilizationPercent computes used/total as a percentage, 0 when no funds.
func UtilizationPercent(used, total float64) float64 {
	if total == 0 {
		return 0
	}
	return used / total * 100
}

// ProjectUtilization reports how much of a project's grant its progress
// reports have consumed, as a percentage.
func ProjectUtilization(db *gorm.DB, proposalID int) (float64, error) {
	var grant models.Grant
	err := db.Where("proposal_id = ?", proposalID).First(&grant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, notFoundf("grant record for proposal %d", proposalID)
	}
	if err != nil {
		return 0, err
	}

	var used float64
	if err := db.Raw("SELECT COALESCE(SUM(financial_usage), 0) FROM progress_reports WHERE proposal_id = ?", proposalID).
		Scan(&used).Error; err != nil {
		return 0, err
	}
	return UtilizationPercent(used, grant.GrantAmount), nil
}

func loadOwnBudget(tx *gorm.DB, actor Actor, budgetID int, dst *models.Budget) error {
	if !actor.IsAdmin() {
		return deniedf("only admins manage the budget ledger")
	}
	err := tx.First(dst, "budget_id = ?", budgetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundf("budget entry %d", budgetID)
	}
	if err != nil {
		return err
	}
	if dst.AdminID != actor.UserID {
		return deniedf("budget entry %d was created by another admin", budgetID)
	}
	return nil
}
