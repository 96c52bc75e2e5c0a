package controllers

import (
	"net/http"
	"strconv"

	"hackathon-portal-api/config"
	"hackathon-portal-api/middleware"
	"hackathon-portal-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetApplications lists applications with filtering and pagination.
func AdminGetApplications(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	query := config.DB.Model(&models.Application{}).Where("delete_at IS NULL")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if year := c.Query("applicationYear"); year != "" {
		query = query.Where("application_year = ?", year)
	}
	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if gradYear := c.Query("gradYear"); gradYear != "" {
		query = query.Where("grad_year = ?", gradYear)
	}
	for param, column := range map[string]string{
		"gender":         "gender",
		"ethnicity":      "ethnicity",
		"school":         "school",
		"city":           "city",
		"state":          "state",
		"country":        "country",
		"educationLevel": "education_level",
		"major":          "major",
	} {
		if value := c.Query(param); value != "" {
			query = query.Where(column+" LIKE ?", "%"+value+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count applications"})
		return
	}

	if c.Query("include") == "true" {
		query = query.Preload("User")
	}

	var applications []models.Application
	if err := query.
		Order("application_year DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// AdminGetApplication returns any application by ID.
func AdminGetApplication(c *gin.Context) {
	id := c.Param("id")

	query := config.DB.Where("application_id = ? AND delete_at IS NULL", id)
	if c.Query("include") == "true" {
		query = query.Preload("User")
	}

	var application models.Application
	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// AdminSetApplicationStatus applies the admin decision
// (ACCEPTED/WAITLISTED/REJECTED) on an application.
func AdminSetApplicationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, svcErr := getApplicationService().AdminSetStatus(middleware.Actor(c), id, req.Status)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

// AdminDeleteApplication removes an application and its stored resume. The
// delete is hard so the user's (year) slot frees up for a re-application.
func AdminDeleteApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	if svcErr := getApplicationService().AdminDelete(c.Request.Context(), middleware.Actor(c), id); svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}
