package services

import (
	"errors"
	"log"
	"time"

	"hackathon-portal-api/config"
	"hackathon-portal-api/models"

	"gorm.io/gorm"
)

// CriteriaService is the keyed registry of weighted judging-criteria sets,
// one per (year, event). It is injected into ScoringService rather than
// reached through a global.
type CriteriaService struct {
	db *gorm.DB
}

func NewCriteriaService(db *gorm.DB) *CriteriaService {
	if db == nil {
		db = config.DB
	}
	return &CriteriaService{db: db}
}

// Create registers the criteria set for (year, event). The set of names is
// immutable once created; there is no partial update.
func (s *CriteriaService) Create(actor Actor, year int, event string, criteria models.CriteriaMap) (*models.JudgingCriteria, error) {
	if !actor.IsAdmin() {
		return nil, ForbiddenError("Admin access required")
	}
	if year == 0 {
		return nil, ValidationError("year is required")
	}
	if event == "" {
		event = models.DefaultEvent
	}
	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.JudgingCriteria{}).
		Where("year = ? AND event = ?", year, event).
		Count(&count).Error; err != nil {
		return nil, DependencyFailure("Failed to check existing criteria", err)
	}
	if count > 0 {
		return nil, ConflictError("Judging criteria for this year and event already exist")
	}

	now := time.Now()
	set := models.JudgingCriteria{
		Year:     year,
		Event:    event,
		Criteria: criteria,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := s.db.Create(&set).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ConflictError("Judging criteria for this year and event already exist")
		}
		return nil, DependencyFailure("Failed to create judging criteria", err)
	}

	log.Printf("Judging criteria created for %s %d with %d criteria", event, year, len(criteria))
	return &set, nil
}

// Get returns the criteria set for (year, event).
func (s *CriteriaService) Get(year int, event string) (*models.JudgingCriteria, error) {
	if event == "" {
		event = models.DefaultEvent
	}

	var set models.JudgingCriteria
	if err := s.db.Where("year = ? AND event = ?", year, event).First(&set).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Judging criteria not found for this year")
		}
		return nil, DependencyFailure("Failed to fetch judging criteria", err)
	}
	return &set, nil
}

// validateCriteria rejects empty or malformed sets. Weights are deliberately
// not required to sum to any fixed total; the total score scale follows the
// raw weights.
func validateCriteria(criteria models.CriteriaMap) error {
	if len(criteria) == 0 {
		return ValidationError("criteria must contain at least one named entry")
	}
	for name, criterion := range criteria {
		if name == "" {
			return ValidationError("criteria names must not be empty")
		}
		if criterion.Weight < 0 {
			return ValidationError("criterion weight must not be negative").
				WithDetail("criterion", name)
		}
	}
	return nil
}
