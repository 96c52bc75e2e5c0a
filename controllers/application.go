package controllers

import (
	"net/http"
	"strconv"

	"hackathon-portal-api/middleware"
	"hackathon-portal-api/services"

	"github.com/gin-gonic/gin"
)

// CreateApplication submits the caller's application for the current year.
// Multipart body: form fields plus an optional "resume" file.
func CreateApplication(c *gin.Context) {
	var input services.ApplicationInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Optional resume; only a present file goes through the saga.
	file, err := c.FormFile("resume")
	if err != nil {
		file = nil
	}

	application, svcErr := getApplicationService().Create(c.Request.Context(), middleware.Actor(c), input, file)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// UpdateApplication edits the caller's own application, optionally
// replacing the resume.
func UpdateApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	var input services.UpdateInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, ferr := c.FormFile("resume")
	if ferr != nil {
		file = nil
	}

	application, svcErr := getApplicationService().Update(c.Request.Context(), middleware.Actor(c), id, input, file)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": application,
	})
}

// GetApplication returns one application, owner or admin only.
func GetApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	application, svcErr := getApplicationService().Get(middleware.Actor(c), id)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": application})
}

// GetMyApplications lists the caller's applications.
func GetMyApplications(c *gin.Context) {
	applications, err := getApplicationService().ListByUser(middleware.Actor(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// ConfirmApplication applies the applicant's final CONFIRMED/DECLINED
// decision on an accepted application.
func ConfirmApplication(c *gin.Context) {
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

	application, svcErr := getApplicationService().ConfirmOrDecline(middleware.Actor(c), id, req.Status)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated",
		"application": application,
	})
}

// GetResumeURL mints a temporary signed link to the stored resume.
func GetResumeURL(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	ttlMinutes := 15
	if raw := c.Query("ttl"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			ttlMinutes = parsed
		}
	}

	signed, svcErr := getApplicationService().TemporaryResumeURL(middleware.Actor(c), id, ttlMinutes)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resumeUrl":        signed.URL,
		"expiresAt":        signed.ExpiresAt,
		"expiresInMinutes": signed.ExpiresInMinutes,
	})
}
