package controllers

import (
	"net/http"
	"time"

	"hackathon-portal-api/config"
	"hackathon-portal-api/models"

	"github.com/gin-gonic/gin"
)

// Thin admin CRUD over projects. Projects are owned outside the judging
// core; the scoring engine only reads them.

func AdminCreateProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Year        int    `json:"year" binding:"required"`
		Event       string `json:"event"`
		Track       string `json:"track"`
		DevpostURL  string `json:"devpost_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Event == "" {
		req.Event = models.DefaultEvent
	}

	now := time.Now()
	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Year:        req.Year,
		Event:       req.Event,
		Track:       req.Track,
		DevpostURL:  req.DevpostURL,
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := config.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

func AdminGetProjects(c *gin.Context) {
	query := config.DB.Where("delete_at IS NULL")
	if year := c.Query("year"); year != "" {
		query = query.Where("year = ?", year)
	}
	if track := c.Query("track"); track != "" {
		query = query.Where("track = ?", track)
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

func AdminGetProject(c *gin.Context) {
	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

func AdminUpdateProject(c *gin.Context) {
	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Track       *string `json:"track"`
		DevpostURL  *string `json:"devpost_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Track != nil {
		project.Track = *req.Track
	}
	if req.DevpostURL != nil {
		project.DevpostURL = *req.DevpostURL
	}
	now := time.Now()
	project.UpdateAt = &now

	if err := config.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": project,
	})
}

func AdminDeleteProject(c *gin.Context) {
	var project models.Project
	if err := config.DB.Where("project_id = ? AND delete_at IS NULL", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&project).
		Updates(map[string]interface{}{"delete_at": now, "update_at": now}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
