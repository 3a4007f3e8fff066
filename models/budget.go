package models

import "time"

// Budget is an append-only ledger entry of funds added by an admin. Only the
// creating admin may edit or delete an entry.
type Budget struct {
	BudgetID    int        `gorm:"primaryKey;column:budget_id" json:"budget_id"`
	Amount      float64    `gorm:"column:amount" json:"amount"`
	Description string     `gorm:"column:description" json:"description"`
	AdminID     int        `gorm:"column:admin_id" json:"admin_id"`
	CreateAt    time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

// Grant is the award record for an approved proposal, one-to-one with the
// proposal. Created with amount 0 on HOD approval and set on allocation.
type Grant struct {
	GrantID     int        `gorm:"primaryKey;column:grant_id" json:"grant_id"`
	ProposalID  int        `gorm:"column:proposal_id;unique" json:"proposal_id"`
	GrantAmount float64    `gorm:"column:grant_amount" json:"grant_amount"`
	AwardedAt   time.Time  `gorm:"column:awarded_at" json:"awarded_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
}

func (Budget) TableName() string {
	return "budgets"
}

func (Grant) TableName() string {
	return "grants"
}
