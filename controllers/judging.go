package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hackathon-portal-api/middleware"
	"hackathon-portal-api/models"
	"hackathon-portal-api/services"

	"github.com/gin-gonic/gin"
)

// CreateJudge registers a judge, optionally binding an existing user. When
// no user is given a placeholder account is created and the access code is
// returned for out-of-band distribution.
func CreateJudge(c *gin.Context) {
	var input services.CreateJudgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := getJudgeService().CreateJudge(middleware.Actor(c), input)
	if err != nil {
		renderError(c, err)
		return
	}

	body := gin.H{
		"message": "Judge created successfully",
		"judge":   result.Judge,
	}
	if result.AccessCode != "" {
		body["message"] = "Judge created successfully with placeholder user"
		body["accessCode"] = result.AccessCode
	}
	c.JSON(http.StatusCreated, body)
}

// AttachJudge claims a judge with its access code for the calling user.
func AttachJudge(c *gin.Context) {
	var req struct {
		AccessCode string `json:"access_code" binding:"required"`
		UserID     int    `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	judge, err := getJudgeService().AttachJudgeToUser(middleware.Actor(c), req.AccessCode, req.UserID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Judge attached to user successfully",
		"judge":   judge,
	})
}

// SubmitScore records the judge's score for a project.
func SubmitScore(c *gin.Context) {
	var req struct {
		ProjectID int             `json:"projectId" binding:"required"`
		ScoreData models.FloatMap `json:"scoreData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := getScoringService().Submit(middleware.Actor(c), req.ProjectID, req.ScoreData)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Score submitted successfully",
		"score":      result.Score,
		"totalScore": result.TotalScore,
	})
}

// UpdateScore rewrites an existing score with freshly validated data.
func UpdateScore(c *gin.Context) {
	scoreID, err := strconv.Atoi(c.Param("scoreId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score id"})
		return
	}

	var req struct {
		ScoreData models.FloatMap `json:"scoreData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, svcErr := getScoringService().Update(middleware.Actor(c), scoreID, req.ScoreData)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Score updated successfully",
		"updatedScore": result.Score,
		"totalScore":   result.TotalScore,
	})
}

// GetMyScores lists the calling judge's scores.
func GetMyScores(c *gin.Context) {
	scores, err := getScoringService().GetByJudge(middleware.Actor(c))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

// GetScore returns one score, readable by its judge or an admin.
func GetScore(c *gin.Context) {
	scoreID, err := strconv.Atoi(c.Param("scoreId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid score id"})
		return
	}

	score, svcErr := getScoringService().GetByID(middleware.Actor(c), scoreID)
	if svcErr != nil {
		renderError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": score})
}

// GetProjectsToJudge lists the projects on the judge's tracks with a scored
// marker.
func GetProjectsToJudge(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	projects, err := getScoringService().ProjectsToJudge(middleware.Actor(c), year)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetJudgingCriteria returns the criteria set for a year and event,
// defaulting to the current year.
func GetJudgingCriteria(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	set, err := getCriteriaService().Get(year, c.Query("event"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"criteriaSet": set})
}
