package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// OpenCycle creates a faculty-scoped submission window, open by default.
func OpenCycle(db *gorm.DB, actor Actor, name, faculty string, start, end time.Time) (*models.GrantCycle, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins open grant cycles")
	}
	if name == "" || faculty == "" {
		return nil, validationf("cycle name and faculty are required")
	}
	if !end.After(start) {
		return nil, validationf("end date must be after start date")
	}

	now := time.Now()
	cycle := models.GrantCycle{
		Name:      name,
		Faculty:   faculty,
		StartDate: start,
		EndDate:   end,
		IsOpen:    true,
		AdminID:   actor.UserID,
		CreateAt:  &now,
	}
	if err := db.Create(&cycle).Error; err != nil {
		return nil, err
	}
	return &cycle, nil
}

// ListActiveCycles returns cycles accepting submissions today, optionally
// narrowed to one faculty. Activity is computed from dates and the is_open
// flag at read time; passing dates never mutate the row.
func ListActiveCycles(db *gorm.DB, faculty string, today time.Time) ([]models.GrantCycle, error) {
	day := models.DateOf(today)
	q := db.Where("is_open = ? AND start_date <= ? AND end_date >= ?", true, day, day)
	if faculty != "" {
		q = q.Where("faculty = ?", faculty)
	}

	var cycles []models.GrantCycle
	if err := q.Order("end_date ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// ToggleCycle flips the is_open flag. An admin capability for corrections;
// the lifecycle itself never closes cycles by date passing.
func ToggleCycle(db *gorm.DB, actor Actor, cycleID int, open bool) (*models.GrantCycle, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins toggle grant cycles")
	}

	var cycle models.GrantCycle
	err := db.First(&cycle, "cycle_id = ?", cycleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("grant cycle %d", cycleID)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Model(&cycle).Update("is_open", open).Error; err != nil {
		return nil, err
	}
	cycle.IsOpen = open
	return &cycle, nil
}
