package models

import "time"

// Role tags stored in users.role. Each user owns exactly one matching
// role-profile row; the pair is created in a single transaction.
const (
	RoleAdmin      = "Admin"
	RoleResearcher = "Researcher"
	RoleReviewer   = "Reviewer"
	RoleHOD        = "HOD"
)

// ValidRole reports whether role is one of the known role tags.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleResearcher, RoleReviewer, RoleHOD:
		return true
	}
	return false
}

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	MMUID        string     `gorm:"column:mmu_id;unique" json:"mmu_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Password     string     `gorm:"column:password" json:"-"`
	Faculty      string     `gorm:"column:faculty" json:"faculty"`
	Role         string     `gorm:"column:role" json:"role"`
	Phone        *string    `gorm:"column:phone" json:"phone,omitempty"`
	ProfileImage *string    `gorm:"column:profile_image" json:"profile_image,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
}

// Role profiles are sparse satellite tables keyed by a role-scoped id.

type AdminProfile struct {
	AdminID int `gorm:"primaryKey;column:admin_id" json:"admin_id"`
	UserID  int `gorm:"column:user_id;unique" json:"user_id"`
}

type ResearcherProfile struct {
	ResearcherID int `gorm:"primaryKey;column:researcher_id" json:"researcher_id"`
	UserID       int `gorm:"column:user_id;unique" json:"user_id"`
}

type ReviewerProfile struct {
	ReviewerID int `gorm:"primaryKey;column:reviewer_id" json:"reviewer_id"`
	UserID     int `gorm:"column:user_id;unique" json:"user_id"`
}

type HODProfile struct {
	HODID  int `gorm:"primaryKey;column:hod_id" json:"hod_id"`
	UserID int `gorm:"column:user_id;unique" json:"user_id"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

func (ResearcherProfile) TableName() string {
	return "researcher_profiles"
}

func (ReviewerProfile) TableName() string {
	return "reviewer_profiles"
}

func (HODProfile) TableName() string {
	return "hod_profiles"
}
