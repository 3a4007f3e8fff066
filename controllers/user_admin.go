package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"
)

type CreateUserRequest struct {
	MMUID    string `json:"mmu_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Faculty  string `json:"faculty" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}

// CreateUser registers a user together with its role profile (admin). The
// pair is transactional; a duplicate email rolls both rows back.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user, err := services.CreateUser(config.DB, services.UserInput{
		MMUID:    utils.SanitizeInput(req.MMUID),
		Name:     utils.SanitizeInput(req.Name),
		Email:    utils.SanitizeInput(req.Email),
		Password: req.Password,
		Faculty:  utils.SanitizeInput(req.Faculty),
		Role:     req.Role,
		Phone:    utils.SanitizeInput(req.Phone),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Faculty  *string `json:"faculty"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// UpdateUser edits a non-admin account (admin). Absent fields stay unchanged.
func UpdateUser(c *gin.Context) {
	userID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email != nil && !utils.ValidateEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if req.Password != nil {
		if ok, msg := utils.ValidatePassword(*req.Password); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
	}

	user, err := services.UpdateUser(config.DB, currentActor(c), userID, services.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Faculty:  req.Faculty,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a non-admin account (admin).
func DeleteUser(c *gin.Context) {
	userID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteUser(config.DB, currentActor(c), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// GetUsers lists users by role, for evaluator assignment pickers (admin).
func GetUsers(c *gin.Context) {
	q := config.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if faculty := c.Query("faculty"); faculty != "" {
		q = q.Where("faculty = ?", faculty)
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
