package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grant-management-api/config"
	"grant-management-api/models"
	"grant-management-api/services"
	"grant-management-api/utils"
)

// GetFaculties returns the faculty lookup list.
func GetFaculties(c *gin.Context) {
	var faculties []models.Faculty
	if err := config.DB.Order("name ASC").Find(&faculties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list faculties"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"faculties": faculties})
}

// GetResearchAreas returns the research area lookup list.
func GetResearchAreas(c *gin.Context) {
	var areas []models.ResearchArea
	if err := config.DB.Order("name ASC").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list research areas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"research_areas": areas})
}

type LookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateFaculty adds a faculty to the controlled vocabulary (admin).
func CreateFaculty(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	faculty, err := services.AddFaculty(config.DB, currentActor(c), utils.SanitizeInput(req.Name))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"faculty": faculty})
}

// RenameFaculty updates a faculty's name (admin).
func RenameFaculty(c *gin.Context) {
	facultyID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.RenameFaculty(config.DB, currentActor(c), facultyID, utils.SanitizeInput(req.Name)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Faculty updated"})
}

// CreateResearchArea adds a research area to the controlled vocabulary (admin).
func CreateResearchArea(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area, err := services.AddResearchArea(config.DB, currentActor(c), utils.SanitizeInput(req.Name))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"research_area": area})
}

// RenameResearchArea updates a research area's name (admin).
func RenameResearchArea(c *gin.Context) {
	areaID, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.RenameResearchArea(config.DB, currentActor(c), areaID, utils.SanitizeInput(req.Name)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Research area updated"})
}
