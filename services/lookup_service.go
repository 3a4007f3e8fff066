package services

import (
	"errors"

	"gorm.io/gorm"

	"grant-management-api/models"
)

// System-data management: faculties and research areas are admin-maintained
// controlled vocabularies. Entries are added or renamed, never deleted, so
// existing proposals keep valid references.

// AddFaculty registers a new faculty name.
func AddFaculty(db *gorm.DB, actor Actor, name string) (*models.Faculty, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins manage system data")
	}
	if name == "" {
		return nil, validationf("faculty name is required")
	}

	var existing models.Faculty
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, validationf("faculty %q already exists", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	faculty := models.Faculty{Name: name}
	if err := db.Create(&faculty).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

// RenameFaculty changes an existing faculty's name.
func RenameFaculty(db *gorm.DB, actor Actor, facultyID int, name string) error {
	if !actor.IsAdmin() {
		return deniedf("only admins manage system data")
	}
	if name == "" {
		return validationf("faculty name is required")
	}

	res := db.Model(&models.Faculty{}).Where("faculty_id = ?", facultyID).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundf("faculty %d", facultyID)
	}
	return nil
}

// AddResearchArea registers a new research area name.
func AddResearchArea(db *gorm.DB, actor Actor, name string) (*models.ResearchArea, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins manage system data")
	}
	if name == "" {
		return nil, validationf("research area name is required")
	}

	var existing models.ResearchArea
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, validationf("research area %q already exists", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	area := models.ResearchArea{Name: name}
	if err := db.Create(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

// RenameResearchArea changes an existing research area's name.
func RenameResearchArea(db *gorm.DB, actor Actor, areaID int, name string) error {
	if !actor.IsAdmin() {
		return deniedf("only admins manage system data")
	}
	if name == "" {
		return validationf("research area name is required")
	}

	res := db.Model(&models.ResearchArea{}).Where("area_id = ?", areaID).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundf("research area %d", areaID)
	}
	return nil
}
