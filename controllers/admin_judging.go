package controllers

import (
	"net/http"
	"strconv"

	"hackathon-portal-api/middleware"
	"hackathon-portal-api/models"

	"github.com/gin-gonic/gin"
)

// AdminCreateJudgingCriteria registers the weighted criteria set for a
// (year, event). The set is immutable once created.
func AdminCreateJudgingCriteria(c *gin.Context) {
	var req struct {
		Year     int                `json:"year" binding:"required"`
		Event    string             `json:"event"`
		Criteria models.CriteriaMap `json:"criteria" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := getCriteriaService().Create(middleware.Actor(c), req.Year, req.Event, req.Criteria)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Judging criteria created successfully",
		"criteriaSet": set,
	})
}

// AdminGetProjectScores returns every judge's score for a project plus the
// average.
func AdminGetProjectScores(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	summary, svcErr := getScoringService().ProjectScores(middleware.Actor(c), projectID)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, summary)
}
