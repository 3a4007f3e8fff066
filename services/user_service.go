package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"grant-management-api/models"
)

// UserInput carries the fields needed to register a user with one role.
type UserInput struct {
	MMUID    string
	Name     string
	Email    string
	Password string
	Faculty  string
	Role     string
	Phone    string
}

// Authenticate verifies the login id, password and expected role. Every
// failure collapses to ErrAuthentication so callers cannot distinguish an
// unknown id from a wrong password or a role mismatch.
func Authenticate(db *gorm.DB, mmuID, password, expectedRole string) (*models.User, error) {
	var user models.User
	err := db.Where("mmu_id = ?", mmuID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuthentication
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrAuthentication
	}
	if expectedRole != "" && user.Role != expectedRole {
		return nil, ErrAuthentication
	}
	return &user, nil
}

// CreateUser registers a user and its matching role-profile row in one
// transaction; a user never exists without the satellite row its role tag
// promises.
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	if in.MMUID == "" || in.Name == "" || in.Email == "" || in.Password == "" || in.Faculty == "" {
		return nil, validationf("mmu_id, name, email, password and faculty are required")
	}
	if !models.ValidRole(in.Role) {
		return nil, validationf("unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		MMUID:    in.MMUID,
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Faculty:  in.Faculty,
		Role:     in.Role,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if in.Phone != "" {
		user.Phone = &in.Phone
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createRoleProfile(tx, user.Role, user.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserUpdate carries the admin-editable account fields; nil leaves a field
// unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Faculty  *string
	Phone    *string
	Password *string
}

// UpdateUser edits a non-admin account. Admin accounts cannot be edited, not
// even by another admin.
func UpdateUser(db *gorm.DB, actor Actor, userID int, in UserUpdate) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, deniedf("only admins manage user accounts")
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, validationf("name cannot be empty")
		}
		updates["name"] = *in.Name
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, validationf("email cannot be empty")
		}
		updates["email"] = *in.Email
	}
	if in.Faculty != nil {
		if *in.Faculty == "" {
			return nil, validationf("faculty cannot be empty")
		}
		updates["faculty"] = *in.Faculty
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates["password"] = string(hash)
	}
	if len(updates) == 0 {
		return nil, validationf("no fields to update")
	}

	var user models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("user %d", userID)
		}
		if err != nil {
			return err
		}
		if user.Role == models.RoleAdmin {
			return deniedf("admin accounts cannot be edited")
		}

		now := time.Now()
		updates["update_at"] = &now
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		if in.Name != nil {
			user.Name = *in.Name
		}
		if in.Email != nil {
			user.Email = *in.Email
		}
		if in.Faculty != nil {
			user.Faculty = *in.Faculty
		}
		if in.Phone != nil {
			user.Phone = in.Phone
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a non-admin account together with its role profile.
// Admin accounts are never deletable so the system cannot lock itself out.
func DeleteUser(db *gorm.DB, actor Actor, userID int) error {
	if !actor.IsAdmin() {
		return deniedf("only admins manage user accounts")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.First(&user, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("user %d", userID)
		}
		if err != nil {
			return err
		}
		if user.Role == models.RoleAdmin {
			return deniedf("admin accounts cannot be deleted")
		}

		if err := deleteRoleProfile(tx, user.Role, user.UserID); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func createRoleProfile(tx *gorm.DB, role string, userID int) error {
	switch role {
	case models.RoleAdmin:
		return tx.Create(&models.AdminProfile{UserID: userID}).Error
	case models.RoleResearcher:
		return tx.Create(&models.ResearcherProfile{UserID: userID}).Error
	case models.RoleReviewer:
		return tx.Create(&models.ReviewerProfile{UserID: userID}).Error
	case models.RoleHOD:
		return tx.Create(&models.HODProfile{UserID: userID}).Error
	}
	return validationf("unknown role %q", role)
}

func deleteRoleProfile(tx *gorm.DB, role string, userID int) error {
	switch role {
	case models.RoleAdmin:
		return tx.Where("user_id = ?", userID).Delete(&models.AdminProfile{}).Error
	case models.RoleResearcher:
		return tx.Where("user_id = ?", userID).Delete(&models.ResearcherProfile{}).Error
	case models.RoleReviewer:
		return tx.Where("user_id = ?", userID).Delete(&models.ReviewerProfile{}).Error
	case models.RoleHOD:
		return tx.Where("user_id = ?", userID).Delete(&models.HODProfile{}).Error
	}
	return validationf("unknown role %q", role)
}
