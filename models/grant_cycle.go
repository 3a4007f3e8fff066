package models

import "time"

// GrantCycle is a faculty-scoped submission window opened by an admin.
type GrantCycle struct {
	CycleID   int        `gorm:"primaryKey;column:cycle_id" json:"cycle_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Faculty   string     `gorm:"column:faculty" json:"faculty"`
	StartDate time.Time  `gorm:"column:start_date" json:"start_date"`
	EndDate   time.Time  `gorm:"column:end_date" json:"end_date"`
	IsOpen    bool       `gorm:"column:is_open" json:"is_open"`
	AdminID   int        `gorm:"column:admin_id" json:"admin_id"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
}

// IsActive reports whether the cycle accepts submissions on the given day.
// "Closed" is inferred at read time; passing dates never flip is_open. Days
// are compared in the campus timezone, not UTC.
func (gc GrantCycle) IsActive(today time.Time) bool {
	day := DateOf(today)
	return gc.IsOpen && !day.Before(DateOf(gc.StartDate)) && !day.After(DateOf(gc.EndDate))
}

// SubmissionClosed reports whether researchers may no longer create or edit
// proposals in this cycle.
func (gc GrantCycle) SubmissionClosed(today time.Time) bool {
	return !gc.IsOpen || DateOf(gc.EndDate).Before(DateOf(today))
}

func (GrantCycle) TableName() string {
	return "grant_cycles"
}
