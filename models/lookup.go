package models

// Faculty and ResearchArea are flat controlled-vocabulary lookups used for
// form choices and filtering.

type Faculty struct {
	FacultyID int    `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	Name      string `gorm:"column:name;unique" json:"name"`
}

type ResearchArea struct {
	AreaID int    `gorm:"primaryKey;column:area_id" json:"area_id"`
	Name   string `gorm:"column:name;unique" json:"name"`
}

func (Faculty) TableName() string {
	return "faculties"
}

func (ResearchArea) TableName() string {
	return "research_areas"
}
