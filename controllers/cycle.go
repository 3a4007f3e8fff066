package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
)

type CreateCycleRequest struct {
	Name      string `json:"name" binding:"required"`
	Faculty   string `json:"faculty" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`
}

// CreateCycle opens a new grant cycle (admin).
func CreateCycle(c *gin.Context) {
	var req CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err1 := time.Parse("2006-01-02", req.StartDate)
	end, err2 := time.Parse("2006-01-02", req.EndDate)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	cycle, err := services.OpenCycle(config.DB, currentActor(c), req.Name, req.Faculty, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cycle": cycle})
}

// GetCycles lists cycles. Researchers see active cycles for their own
// faculty; admins see everything (optionally filtered) with ?all=true.
func GetCycles(c *gin.Context) {
	actor := currentActor(c)
	faculty := c.Query("faculty")

	if actor.IsAdmin() && c.Query("all") == "true" {
		var cycles []models.GrantCycle
		q := config.DB.Order("start_date DESC")
		if faculty != "" {
			q = q.Where("faculty = ?", faculty)
		}
		if err := q.Find(&cycles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cycles"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cycles": cycles})
		return
	}

	if actor.IsResearcher() {
		var user models.User
		if err := config.DB.First(&user, "user_id = ?", actor.UserID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		faculty = user.Faculty
	}

	cycles, err := services.ListActiveCycles(config.DB, faculty, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cycles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycles": cycles})
}

// GetCycle returns one cycle with its computed activity.
func GetCycle(c *gin.Context) {
	cycleID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var cycle models.GrantCycle
	if err := config.DB.First(&cycle, "cycle_id = ?", cycleID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cycle not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cycle":     cycle,
		"is_active": cycle.IsActive(time.Now()),
	})
}

// ToggleCycle flips a cycle's is_open flag (admin).
func ToggleCycle(c *gin.Context) {
	cycleID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req struct {
		IsOpen *bool `json:"is_open" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cycle, err := services.ToggleCycle(config.DB, currentActor(c), cycleID, *req.IsOpen)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cycle": cycle})
}
