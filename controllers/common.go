package controllers

import (
	"log"
	"net/http"

	"hackathon-portal-api/services"

	"github.com/gin-gonic/gin"
)

// Lazily constructed services so controllers share one instance against the
// global DB. Tests exercise the services directly.
var (
	applicationService *services.ApplicationService
	judgeService       *services.JudgeService
	criteriaService    *services.CriteriaService
	scoringService     *services.ScoringService
	resumeStorage      *services.ResumeStorage
)

func getResumeStorage() *services.ResumeStorage {
	if resumeStorage == nil {
		resumeStorage = services.NewResumeStorage()
	}
	return resumeStorage
}

func getApplicationService() *services.ApplicationService {
	if applicationService == nil {
		applicationService = services.NewApplicationService(nil, getResumeStorage())
	}
	return applicationService
}

func getJudgeService() *services.JudgeService {
	if judgeService == nil {
		judgeService = services.NewJudgeService(nil)
	}
	return judgeService
}

func getCriteriaService() *services.CriteriaService {
	if criteriaService == nil {
		criteriaService = services.NewCriteriaService(nil)
	}
	return criteriaService
}

func getScoringService() *services.ScoringService {
	if scoringService == nil {
		scoringService = services.NewScoringService(nil, getCriteriaService(), getJudgeService())
	}
	return scoringService
}

// renderError maps a service error to its HTTP status and JSON body. Only
// the caller-safe kind, message and details go out; internal causes are
// logged here.
func renderError(c *gin.Context, err error) {
	if svcErr, ok := services.AsServiceError(err); ok {
		if svcErr.Err != nil {
			log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), svcErr)
		}
		body := gin.H{
			"error":   string(svcErr.Kind),
			"message": svcErr.Message,
		}
		for key, value := range svcErr.Details {
			body[key] = value
		}
		c.JSON(svcErr.StatusCode(), body)
		return
	}

	log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "INTERNAL",
		"message": "Something went wrong",
	})
}
